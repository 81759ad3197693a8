package mailer

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/integrations/emailgateway"
)

// Gateway почтовый шлюз
type Gateway interface {
	Send(ctx context.Context, msg emailgateway.Message) error
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
