package outboxrelay

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// OutboxRepository хранилище исходящих событий
type OutboxRepository interface {
	Claim(ctx context.Context, now time.Time, limit int, lockFor time.Duration) ([]*domain.Event, error)
	MarkDispatched(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause string, retryAt *time.Time) error
}

// Sink получатель событий: диспетчер в процессе или брокер
type Sink interface {
	Deliver(ctx context.Context, event *domain.Event) error
}

// Metrics счетчик доставки outbox
type Metrics interface {
	IncOutbox(event, outcome string)
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
