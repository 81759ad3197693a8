package sms

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/integrations/smsgateway"
)

// UsageRepository учет SMS по месяцам
type UsageRepository interface {
	Get(ctx context.Context, centerID int64, month time.Time, defaultQuota int) (*domain.SMSUsage, error)
	Increment(ctx context.Context, centerID int64, month time.Time, defaultQuota int) error
}

// CenterReader настройки отправителя центра
type CenterReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Center, error)
}

// Gateway SMS-шлюз
type Gateway interface {
	Send(ctx context.Context, msg smsgateway.Message) error
}

// Metrics счетчик отправленных уведомлений
type Metrics interface {
	IncNotification(channel, outcome string)
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
