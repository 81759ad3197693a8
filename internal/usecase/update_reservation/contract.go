package update_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetByID(ctx context.Context, centerID, id int64) (*domain.Reservation, error)
	ListBlocking(ctx context.Context, centerID int64, date time.Time, excludeID *int64) ([]*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
}

// CenterReader источник центров
type CenterReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Center, error)
}

// CategoryReader источник категорий
type CategoryReader interface {
	GetByID(ctx context.Context, centerID, id int64) (*domain.Category, error)
}

// HolidayRepository интерфейс репозитория выходных
type HolidayRepository interface {
	FindActiveCovering(ctx context.Context, centerID int64, date time.Time) (*domain.Holiday, error)
}

// SlotCache кеш доступных слотов
type SlotCache interface {
	Invalidate(ctx context.Context, centerID int64, dates ...time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

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
