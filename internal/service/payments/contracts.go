package payments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*domain.Payment, error)
	MarkCompleted(ctx context.Context, id int64, paidAt time.Time) (bool, error)
}

// OutboxRepository запись событий в outbox в транзакции изменения
type OutboxRepository interface {
	Add(ctx context.Context, event *domain.Event) error
}

// EventNotifier будит доставку событий после фиксации транзакции
type EventNotifier interface {
	Wake()
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
