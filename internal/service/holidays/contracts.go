package holidays

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// HolidayRepository интерфейс репозитория выходных
type HolidayRepository interface {
	Create(ctx context.Context, h *domain.Holiday) (*domain.Holiday, error)
	List(ctx context.Context, filter domain.HolidayFilter) ([]*domain.Holiday, error)
	Upcoming(ctx context.Context, centerID int64, today time.Time, limit int) ([]*domain.Holiday, error)
	SetActive(ctx context.Context, centerID, id int64, active bool) (*domain.Holiday, error)
	GetByID(ctx context.Context, centerID, id int64) (*domain.Holiday, error)
	Delete(ctx context.Context, centerID, id int64) error
}

// OutboxRepository запись событий в outbox в транзакции изменения
type OutboxRepository interface {
	Add(ctx context.Context, event *domain.Event) error
}

// EventNotifier будит доставку событий после фиксации транзакции
type EventNotifier interface {
	Wake()
}

// SlotCache кеш доступных слотов
type SlotCache interface {
	Invalidate(ctx context.Context, centerID int64, dates ...time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
