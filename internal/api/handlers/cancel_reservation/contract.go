package cancel_reservation

import (
	"context"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	cancelReservation "github.com/m04kA/SMC-InspectionService/internal/usecase/cancel_reservation"
)

type CancelReservationUseCase interface {
	Execute(ctx context.Context, req *cancelReservation.Request) (*domain.Reservation, error)
}

// ReservationRemover перенос записи в корзину
type ReservationRemover interface {
	Remove(ctx context.Context, centerID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
