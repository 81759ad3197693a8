package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	categoryRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/category"
	reservationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-InspectionService/pkg/pgerrors"
	"github.com/m04kA/SMC-InspectionService/pkg/txmanager"
)

// UseCase use case для изменения записи
type UseCase struct {
	reservationRepo ReservationRepository
	centers         CenterReader
	categories      CategoryReader
	holidayRepo     HolidayRepository
	slotCache       SlotCache
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	centers CenterReader,
	categories CategoryReader,
	holidayRepo HolidayRepository,
	slotCache SlotCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		centers:         centers,
		categories:      categories,
		holidayRepo:     holidayRepo,
		slotCache:       slotCache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute применяет изменения к записи
// При смене даты, времени или категории конец пересчитывается и пересечения проверяются заново
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	uc.logger.Info("UpdateReservation: center=%d, id=%d", req.CenterID, req.ID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	var (
		result  *domain.Reservation
		oldDate time.Time
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByID(txCtx, req.CenterID, req.ID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if res.IsTerminal() {
			uc.logger.Warn("UpdateReservation: reservation id=%d is %s", res.ID, res.Status)
			return ErrReservationClosed
		}

		oldDate = res.Date

		if req.reschedules() {
			if err := uc.reschedule(txCtx, res, req); err != nil {
				return err
			}
		}
		if req.EmployeeID != nil {
			res.EmployeeID = req.EmployeeID
		}
		if req.Notes != nil {
			res.Notes = req.Notes
		}

		if err := uc.reservationRepo.Update(txCtx, res); err != nil {
			if errors.Is(err, reservationRepo.ErrOverlap) {
				uc.logger.Warn("UpdateReservation: update rejected by database: %v", err)
				return ErrConflict
			}
			if errors.Is(err, reservationRepo.ErrSerialization) {
				uc.logger.Warn("UpdateReservation: update will be retried: %v", err)
				return err
			}
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = res
		return nil
	})
	if err != nil {
		if isSerializationConflict(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if req.reschedules() {
		if err := uc.slotCache.Invalidate(ctx, result.CenterID, oldDate, result.Date); err != nil {
			uc.logger.Warn("UpdateReservation: failed to invalidate slots for center=%d: %v", result.CenterID, err)
		}
	}

	uc.logger.Info("UpdateReservation: reservation id=%d updated, %s %s-%s", result.ID,
		result.Date.Format(domain.DateFormat), result.StartTime, result.EndTime)
	return result, nil
}

// reschedule пересчитывает интервал записи и проверяет его по расписанию центра
func (uc *UseCase) reschedule(ctx context.Context, res *domain.Reservation, req *Request) error {
	now := uc.timeProvider.Now()

	date := res.Date
	if req.Date != nil {
		date = domain.DateOnly(*req.Date)
	}
	start := res.StartTime
	if req.StartTime != nil {
		start = *req.StartTime
	}

	duration := res.DurationMinutes
	if req.CategoryID != nil && *req.CategoryID != res.CategoryID {
		category, err := uc.categories.GetByID(ctx, res.CenterID, *req.CategoryID)
		if err != nil {
			if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
				uc.logger.Warn("UpdateReservation: category id=%d not found", *req.CategoryID)
				return ErrCategoryNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get category id=%d: %v", *req.CategoryID, err)
			return fmt.Errorf("%w: failed to get category: %v", ErrInternal, err)
		}
		if !category.IsBookable() {
			return ErrCategoryInactive
		}
		res.CategoryID = category.ID
		duration = category.DurationMinutes
	}
	if duration <= 0 {
		duration = domain.DefaultSlotDurationMinutes
	}

	center, err := uc.centers.GetByID(ctx, res.CenterID)
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to get center id=%d: %v", res.CenterID, err)
		return fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}

	if req.Date != nil && isDateInPast(date, now, center.Location()) {
		return ErrDateInPast
	}

	holiday, err := uc.holidayRepo.FindActiveCovering(ctx, res.CenterID, date)
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to check holidays: %v", err)
		return fmt.Errorf("%w: failed to check holidays: %v", ErrInternal, err)
	}
	if holiday != nil {
		uc.logger.Warn("UpdateReservation: center=%d is on holiday %q", res.CenterID, holiday.Name)
		return ErrHoliday
	}

	end, err := start.AddMinutes(duration)
	if err != nil {
		return ErrOutsideOpeningHours
	}
	interval := domain.Interval{Start: start, End: end}

	open, fits := center.OpeningHours.Fits(date, interval)
	if !open {
		return ErrCenterClosed
	}
	if !fits {
		return ErrOutsideOpeningHours
	}

	reserved, err := uc.reservationRepo.ListBlocking(ctx, res.CenterID, date, &res.ID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrSerialization) {
			return err
		}
		uc.logger.Error("UpdateReservation: failed to list reservations: %v", err)
		return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}
	if other := domain.FindOverlap(reserved, interval); other != nil {
		uc.logger.Warn("UpdateReservation: %s-%s overlaps reservation id=%d", interval.Start, interval.End, other.ID)
		return ErrConflict
	}

	res.Date = date
	res.StartTime = interval.Start
	res.EndTime = interval.End
	res.DurationMinutes = duration
	return nil
}

// isSerializationConflict ошибка сериализации, оставшаяся после повторов txmanager
func isSerializationConflict(err error) bool {
	return errors.Is(err, txmanager.ErrSerializationFailure) ||
		errors.Is(err, reservationRepo.ErrSerialization) ||
		pgerrors.IsSerializationFailure(err)
}
