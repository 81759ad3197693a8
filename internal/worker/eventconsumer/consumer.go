// Package eventconsumer чтение событий из RabbitMQ и передача диспетчеру
package eventconsumer

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// Source поток сообщений с ручным подтверждением
type Source interface {
	Deliveries(ctx context.Context, tag string) (<-chan amqp.Delivery, error)
}

// Dispatcher диспетчер событий
type Dispatcher interface {
	Dispatch(ctx context.Context, event *domain.Event) int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Consumer подтверждает сообщение после вызова всех обработчиков
type Consumer struct {
	source     Source
	dispatcher Dispatcher
	tag        string
	logger     Logger
}

// New создает потребителя
func New(source Source, dispatcher Dispatcher, tag string, logger Logger) *Consumer {
	return &Consumer{source: source, dispatcher: dispatcher, tag: tag, logger: logger}
}

// Run читает сообщения до отмены контекста или закрытия канала
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.source.Deliveries(ctx, c.tag)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	c.logger.Info("EventConsumer: started, tag=%s", c.tag)
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("EventConsumer: stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				c.logger.Warn("EventConsumer: delivery channel closed")
				return nil
			}
			c.Handle(ctx, d)
		}
	}
}

// Handle разбирает конверт события и вызывает обработчики
// Неразбираемое сообщение отклоняется без повтора и уходит в DLX, если он настроен
func (c *Consumer) Handle(ctx context.Context, d amqp.Delivery) {
	var event domain.Event
	if err := json.Unmarshal(d.Body, &event); err != nil || event.Name == "" {
		c.logger.Error("EventConsumer: malformed message key=%s id=%s: %v", d.RoutingKey, d.MessageId, err)
		if nackErr := d.Nack(false, false); nackErr != nil {
			c.logger.Error("EventConsumer: failed to nack message id=%s: %v", d.MessageId, nackErr)
		}
		return
	}

	if failed := c.dispatcher.Dispatch(ctx, &event); failed > 0 {
		c.logger.Warn("EventConsumer: event %s id=%s: %d handlers failed", event.Name, event.ID, failed)
	}

	if err := d.Ack(false); err != nil {
		c.logger.Error("EventConsumer: failed to ack event id=%s: %v", event.ID, err)
	}
}
