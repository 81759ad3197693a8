package events

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// HandlerFunc обработчик события
type HandlerFunc func(ctx context.Context, event *domain.Event) error

// Metrics счетчик обработанных событий
type Metrics interface {
	IncEvent(event, handler, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type registration struct {
	name    string
	handler HandlerFunc
}

// Dispatcher вызывает обработчики события по порядку регистрации
// Ошибка или паника одного обработчика логируется и не мешает остальным
// Регистрация выполняется до начала доставки
type Dispatcher struct {
	handlers map[domain.EventName][]registration
	metrics  Metrics
	logger   Logger
}

// NewDispatcher создает диспетчер; metrics может быть nil
func NewDispatcher(metrics Metrics, logger Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[domain.EventName][]registration),
		metrics:  metrics,
		logger:   logger,
	}
}

// Register добавляет обработчик в конец цепочки события
func (d *Dispatcher) Register(event domain.EventName, name string, handler HandlerFunc) {
	d.handlers[event] = append(d.handlers[event], registration{name: name, handler: handler})
}

// Handlers имена обработчиков события в порядке вызова
func (d *Dispatcher) Handlers(event domain.EventName) []string {
	names := make([]string, 0, len(d.handlers[event]))
	for _, r := range d.handlers[event] {
		names = append(names, r.name)
	}
	return names
}

// Dispatch последовательно вызывает обработчики и возвращает число неудачных
func (d *Dispatcher) Dispatch(ctx context.Context, event *domain.Event) int {
	regs := d.handlers[event.Name]
	if len(regs) == 0 {
		d.logger.Warn("Dispatch: no handlers for event %s id=%s", event.Name, event.ID)
		return 0
	}

	failed := 0
	for _, reg := range regs {
		start := time.Now()
		if err := d.invoke(ctx, reg, event); err != nil {
			failed++
			d.observe(event.Name, reg.name, "failed")
			d.logger.Error("Dispatch: handler %s failed for event %s id=%s: %v", reg.name, event.Name, event.ID, err)
			continue
		}
		d.observe(event.Name, reg.name, "ok")
		d.logger.Info("Dispatch: handler %s done for event %s id=%s in %s", reg.name, event.Name, event.ID, time.Since(start))
	}

	return failed
}

func (d *Dispatcher) invoke(ctx context.Context, reg registration, event *domain.Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return reg.handler(ctx, event)
}

func (d *Dispatcher) observe(event domain.EventName, handler, outcome string) {
	if d.metrics != nil {
		d.metrics.IncEvent(string(event), handler, outcome)
	}
}
