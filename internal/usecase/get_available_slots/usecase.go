package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/infra/cache/slots"
	categoryRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/category"
	centerRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/center"
)

// UseCase use case для получения сетки доступных слотов
type UseCase struct {
	reservationRepo ReservationRepository
	centers         CenterReader
	categories      CategoryReader
	holidayRepo     HolidayRepository
	cache           SlotCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	centers CenterReader,
	categories CategoryReader,
	holidayRepo HolidayRepository,
	cache SlotCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		centers:         centers,
		categories:      categories,
		holidayRepo:     holidayRepo,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute строит сетку слотов дня
// В выходной все слоты недоступны, в нерабочий день недели сетка пустая
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: center=%d, date=%s, category=%v",
		req.CenterID, req.Date.Format(domain.DateFormat), req.CategoryID)

	if req.CenterID <= 0 || req.Date.IsZero() || (req.CategoryID != nil && *req.CategoryID <= 0) {
		uc.logger.Warn("GetAvailableSlots: invalid request")
		return nil, ErrInvalidInput
	}

	date := domain.DateOnly(req.Date)
	resp := &Response{Date: date, CenterID: req.CenterID, CategoryID: req.CategoryID}

	center, err := uc.centers.GetByID(ctx, req.CenterID)
	if err != nil {
		if errors.Is(err, centerRepo.ErrCenterNotFound) {
			uc.logger.Warn("GetAvailableSlots: center id=%d not found", req.CenterID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}

	if isDateInPast(date, uc.timeProvider.Now().In(center.Location())) {
		resp.Slots = []domain.Slot{}
		return resp, nil
	}

	if entry, ok, err := uc.cache.Get(ctx, req.CenterID, date, req.CategoryID); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache read failed: %v", err)
	} else if ok {
		resp.Slots = entry.Slots
		resp.HolidayName = entry.HolidayName
		resp.IsHoliday = entry.HolidayName != nil
		return resp, nil
	}

	width := domain.DefaultSlotDurationMinutes
	if req.CategoryID != nil {
		category, err := uc.categories.GetByID(ctx, req.CenterID, *req.CategoryID)
		if err != nil {
			if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
				uc.logger.Warn("GetAvailableSlots: category id=%d not found", *req.CategoryID)
				return nil, ErrCategoryNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get category id=%d: %v", *req.CategoryID, err)
			return nil, fmt.Errorf("%w: failed to get category: %v", ErrInternal, err)
		}
		width = category.DurationMinutes
	}

	day, _ := center.OpeningHours.ForDate(date)
	grid, err := generateSlots(day, width)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	holiday, err := uc.holidayRepo.FindActiveCovering(ctx, req.CenterID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to check holidays: %v", ErrInternal, err)
	}

	if holiday != nil {
		markAll(grid)
		resp.IsHoliday = true
		resp.HolidayName = &holiday.Name
	} else if len(grid) > 0 {
		reserved, err := uc.reservationRepo.ListBlocking(ctx, req.CenterID, date, nil)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list reservations: %v", err)
			return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}
		markReserved(grid, reserved)
	}
	resp.Slots = grid

	if err := uc.cache.Set(ctx, req.CenterID, date, req.CategoryID, &slots.Entry{Slots: grid, HolidayName: resp.HolidayName}); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache write failed: %v", err)
	}

	uc.logger.Info("GetAvailableSlots: center=%d date=%s: %d slots", req.CenterID, date.Format(domain.DateFormat), len(grid))
	return resp, nil
}
