package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ListBlocking(ctx context.Context, centerID int64, date time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// CenterReader источник центров
type CenterReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Center, error)
}

// CategoryReader источник категорий
type CategoryReader interface {
	GetByID(ctx context.Context, centerID, id int64) (*domain.Category, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, centerID, id int64) (*domain.Client, error)
	Touch(ctx context.Context, id int64, at time.Time) error
}

// VehicleRepository интерфейс репозитория ТС
type VehicleRepository interface {
	GetByID(ctx context.Context, centerID, id int64) (*domain.Vehicle, error)
}

// HolidayRepository интерфейс репозитория выходных
type HolidayRepository interface {
	FindActiveCovering(ctx context.Context, centerID int64, date time.Time) (*domain.Holiday, error)
}

// OutboxRepository запись событий в outbox
type OutboxRepository interface {
	Add(ctx context.Context, event *domain.Event) error
}

// EventNotifier будит outbox relay после фиксации транзакции
type EventNotifier interface {
	Wake()
}

// SlotCache кеш доступных слотов
type SlotCache interface {
	Invalidate(ctx context.Context, centerID int64, dates ...time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CodeGenerator генератор кодов записей
type CodeGenerator func() (string, error)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
