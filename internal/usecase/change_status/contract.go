package change_status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetByID(ctx context.Context, centerID, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
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
