package promotions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// PromotionRepository интерфейс репозитория акций
type PromotionRepository interface {
	Create(ctx context.Context, p *domain.Promotion) (*domain.Promotion, error)
	GetByCode(ctx context.Context, centerID int64, code string) (*domain.Promotion, error)
	ExistsByCode(ctx context.Context, centerID int64, code string) (bool, error)
	List(ctx context.Context, centerID int64, activeOnly bool) ([]*domain.Promotion, error)
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
