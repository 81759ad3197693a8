package cancel_reservation

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/change_status"
)

const cancelNotePrefix = "[Отмена]"

// UseCase отмена записи: запись остается в истории со статусом CANCELLED
type UseCase struct {
	changer StatusChanger
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(changer StatusChanger, logger Logger) *UseCase {
	return &UseCase{changer: changer, logger: logger}
}

// Execute отменяет запись; причина дописывается в заметки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	uc.logger.Info("CancelReservation: center=%d, id=%d", req.CenterID, req.ID)

	if req.CenterID <= 0 || req.ID <= 0 {
		return nil, fmt.Errorf("%w: center and reservation id are required", ErrInvalidInput)
	}

	var reason *string
	if req.Reason != nil {
		trimmed := strings.TrimSpace(*req.Reason)
		if len([]rune(trimmed)) > domain.MaxCancelReasonLength {
			uc.logger.Warn("CancelReservation: reason is too long (%d)", len([]rune(trimmed)))
			return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
		}
		if trimmed != "" {
			reason = &trimmed
		}
	}

	return uc.changer.Apply(ctx, &change_status.Transition{
		CenterID:      req.CenterID,
		ReservationID: req.ID,
		To:            domain.StatusCancelled,
		Cause:         events.CauseManual,
		Reason:        reason,
		Mutate: func(res *domain.Reservation) error {
			if reason != nil {
				res.Notes = AppendCancelNote(res.Notes, *reason)
			}
			return nil
		},
	})
}

// AppendCancelNote дописывает "[Отмена] <причина>" к заметкам записи
func AppendCancelNote(notes *string, reason string) *string {
	line := cancelNotePrefix + " " + reason
	if notes == nil || strings.TrimSpace(*notes) == "" {
		return &line
	}
	joined := *notes + "\n" + line
	return &joined
}
