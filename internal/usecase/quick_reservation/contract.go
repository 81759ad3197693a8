package quick_reservation

import (
	"context"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/create_reservation"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	FindByPhoneOrEmail(ctx context.Context, centerID int64, phone, email string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
}

// VehicleRepository интерфейс репозитория ТС
type VehicleRepository interface {
	FindByPlate(ctx context.Context, centerID int64, plate string) (*domain.Vehicle, error)
	Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
}

// ReservationCreator создание записи внутри открытой транзакции
type ReservationCreator interface {
	CreateInTx(ctx context.Context, req *create_reservation.Request) (*domain.Reservation, error)
	AfterCommit(ctx context.Context, res *domain.Reservation)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
