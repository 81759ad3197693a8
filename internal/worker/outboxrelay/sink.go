package outboxrelay

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// Dispatcher диспетчер событий в процессе
type Dispatcher interface {
	Dispatch(ctx context.Context, event *domain.Event) int
}

// LocalSink передает событие диспетчеру в том же процессе
// Ошибки обработчиков логирует диспетчер; событие считается доставленным,
// чтобы повтор не дублировал уже отправленные уведомления
type LocalSink struct {
	dispatcher Dispatcher
}

// NewLocalSink создает sink для транспорта local
func NewLocalSink(dispatcher Dispatcher) *LocalSink {
	return &LocalSink{dispatcher: dispatcher}
}

// Deliver вызывает обработчики события
func (s *LocalSink) Deliver(ctx context.Context, event *domain.Event) error {
	s.dispatcher.Dispatch(ctx, event)
	return nil
}

// Publisher публикация в topic exchange
type Publisher interface {
	Publish(ctx context.Context, key, messageID string, body []byte) error
}

// AMQPSink публикует событие в RabbitMQ, routing key - имя события
type AMQPSink struct {
	publisher Publisher
}

// NewAMQPSink создает sink для транспорта amqp
func NewAMQPSink(publisher Publisher) *AMQPSink {
	return &AMQPSink{publisher: publisher}
}

// Deliver публикует конверт события и ждет подтверждения брокера
func (s *AMQPSink) Deliver(ctx context.Context, event *domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	return s.publisher.Publish(ctx, string(event.Name), event.ID.String(), body)
}
