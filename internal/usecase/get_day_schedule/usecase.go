package get_day_schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// UseCase расписание дня для персонала центра
type UseCase struct {
	reservationRepo ReservationRepository
	holidayRepo     HolidayRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, holidayRepo HolidayRepository, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		holidayRepo:     holidayRepo,
		logger:          logger,
	}
}

// Execute возвращает записи дня по времени начала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CenterID <= 0 || req.Date.IsZero() {
		return nil, ErrInvalidInput
	}
	date := domain.DateOnly(req.Date)

	holiday, err := uc.holidayRepo.FindActiveCovering(ctx, req.CenterID, date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to check holidays for center=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to check holidays: %v", ErrInternal, err)
	}

	all, err := uc.reservationRepo.ListByDate(ctx, req.CenterID, date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to list reservations for center=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	resp := &Response{Date: date, Reservations: make([]*domain.ReservationDetails, 0, len(all))}
	if holiday != nil {
		resp.IsHoliday = true
		resp.HolidayName = &holiday.Name
	}
	for _, r := range all {
		resp.Stats.Add(r.Status)
		if r.Status != domain.StatusCancelled {
			resp.Reservations = append(resp.Reservations, r)
		}
	}

	uc.logger.Info("GetDaySchedule: center=%d date=%s: %d reservations", req.CenterID, date.Format(domain.DateFormat), len(resp.Reservations))
	return resp, nil
}
