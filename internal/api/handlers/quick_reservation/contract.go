package quick_reservation

import (
	"context"

	quickReservation "github.com/m04kA/SMC-InspectionService/internal/usecase/quick_reservation"
)

type QuickReservationUseCase interface {
	Execute(ctx context.Context, req *quickReservation.Request) (*quickReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
