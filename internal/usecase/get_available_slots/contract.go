package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/infra/cache/slots"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	// ListBlocking записи центра на дату, занимающие время
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

// HolidayRepository интерфейс репозитория выходных
type HolidayRepository interface {
	FindActiveCovering(ctx context.Context, centerID int64, date time.Time) (*domain.Holiday, error)
}

// SlotCache кеш сетки слотов
type SlotCache interface {
	Get(ctx context.Context, centerID int64, date time.Time, categoryID *int64) (*slots.Entry, bool, error)
	Set(ctx context.Context, centerID int64, date time.Time, categoryID *int64, entry *slots.Entry) error
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
