package holiday_cascade

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/cancel_reservation"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/change_status"
)

// UseCase каскадная отмена записей при добавлении выходного
type UseCase struct {
	reservationRepo ReservationRepository
	changer         StatusChanger
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, changer StatusChanger, logger Logger) *UseCase {
	return &UseCase{reservationRepo: reservationRepo, changer: changer, logger: logger}
}

// Execute отменяет записи PENDING/CONFIRMED центра в диапазоне дат
// Каждая запись отменяется в своей транзакции; ошибка по одной записи не останавливает остальные
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Result, error) {
	uc.logger.Info("HolidayCascade: center=%d, holiday=%q, %s..%s", req.CenterID, req.HolidayName,
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.CenterID <= 0 || req.From.IsZero() || req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: invalid range", ErrInvalidInput)
	}

	candidates, err := uc.reservationRepo.ListCancellableInRange(ctx, req.CenterID, req.From, req.To)
	if err != nil {
		uc.logger.Error("HolidayCascade: failed to list reservations for center=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	result := &Result{Cancelled: make([]*domain.Reservation, 0, len(candidates))}
	holidayName := req.HolidayName
	note := "Выходной: " + holidayName

	for _, candidate := range candidates {
		res, err := uc.changer.Apply(ctx, &change_status.Transition{
			CenterID:      candidate.CenterID,
			ReservationID: candidate.ID,
			To:            domain.StatusCancelled,
			Cause:         events.CauseHoliday,
			HolidayName:   &holidayName,
			Mutate: func(r *domain.Reservation) error {
				r.Notes = cancel_reservation.AppendCancelNote(r.Notes, note)
				return nil
			},
		})
		if err != nil {
			result.Failed++
			uc.logger.Warn("HolidayCascade: failed to cancel reservation id=%d: %v", candidate.ID, err)
			continue
		}
		result.Cancelled = append(result.Cancelled, res)
	}

	uc.logger.Info("HolidayCascade: center=%d cancelled=%d failed=%d", req.CenterID, len(result.Cancelled), result.Failed)
	return result, nil
}
