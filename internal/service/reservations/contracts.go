package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetByID(ctx context.Context, centerID, id int64) (*domain.Reservation, error)
	GetDetails(ctx context.Context, centerID, id int64) (*domain.ReservationDetails, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationDetails, int, error)
	SoftDelete(ctx context.Context, centerID, id int64) error
}

// SlotCache кеш доступных слотов
type SlotCache interface {
	Invalidate(ctx context.Context, centerID int64, dates ...time.Time) error
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
