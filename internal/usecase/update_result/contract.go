package update_result

import (
	"context"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/change_status"
)

// StatusChanger переходы статусов записи
type StatusChanger interface {
	ApplyInTx(ctx context.Context, t *change_status.Transition) (*domain.Reservation, error)
	AfterCommit(ctx context.Context, res *domain.Reservation)
}

// VehicleRepository интерфейс репозитория ТС
type VehicleRepository interface {
	GetByID(ctx context.Context, centerID, id int64) (*domain.Vehicle, error)
	UpdateInspection(ctx context.Context, v *domain.Vehicle) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
