package update_result

import (
	"context"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	updateResult "github.com/m04kA/SMC-InspectionService/internal/usecase/update_result"
)

type UpdateResultUseCase interface {
	Execute(ctx context.Context, req *updateResult.Request) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
