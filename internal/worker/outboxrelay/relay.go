// Package outboxrelay доставка событий из outbox после фиксации транзакций
package outboxrelay

import (
	"context"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

const (
	defaultBatchSize    = 50
	defaultPollInterval = time.Second
	defaultLockFor      = time.Minute
	defaultMaxAttempts  = 10
	maxBackoff          = 5 * time.Minute
)

// Config параметры relay
type Config struct {
	BatchSize    int
	PollInterval time.Duration
	LockFor      time.Duration // время, на которое событие забирается одним relay
	MaxAttempts  int           // после стольких неудачных попыток событие помечается failed
}

// Relay забирает события из outbox и передает их в Sink
// Доставка at-least-once: событие может прийти повторно, если relay упал после доставки
type Relay struct {
	repo         OutboxRepository
	sink         Sink
	cfg          Config
	wake         chan struct{}
	notify       <-chan *pq.Notification
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// New создает relay; metrics может быть nil
func New(repo OutboxRepository, sink Sink, cfg Config, metrics Metrics, logger Logger) *Relay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.LockFor <= 0 {
		cfg.LockFor = defaultLockFor
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	return &Relay{
		repo:         repo,
		sink:         sink,
		cfg:          cfg,
		wake:         make(chan struct{}, 1),
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListenTo подписывает relay на NOTIFY из базы (триггер на вставку в outbox)
func (r *Relay) ListenTo(ch <-chan *pq.Notification) {
	r.notify = ch
}

// Wake будит relay после фиксации транзакции; не блокируется
func (r *Relay) Wake() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Run обрабатывает outbox до отмены контекста
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	r.logger.Info("OutboxRelay: started, poll=%s batch=%d", r.cfg.PollInterval, r.cfg.BatchSize)
	r.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("OutboxRelay: stopped")
			return nil
		case <-ticker.C:
		case <-r.wake:
		case n, ok := <-r.notify:
			if !ok {
				r.notify = nil
				continue
			}
			// nil приходит после переподключения listener: могли пропустить уведомления
			if n == nil {
				r.logger.Warn("OutboxRelay: listener reconnected")
			}
		}
		r.drain(ctx)
	}
}

// drain обрабатывает пачки, пока outbox не опустеет
func (r *Relay) drain(ctx context.Context) {
	for ctx.Err() == nil {
		n, err := r.ProcessBatch(ctx)
		if err != nil {
			r.logger.Error("OutboxRelay: failed to process batch: %v", err)
			return
		}
		if n < r.cfg.BatchSize {
			return
		}
	}
}

// ProcessBatch забирает одну пачку событий и доставляет их по порядку
func (r *Relay) ProcessBatch(ctx context.Context) (int, error) {
	batch, err := r.repo.Claim(ctx, r.timeProvider.Now(), r.cfg.BatchSize, r.cfg.LockFor)
	if err != nil {
		return 0, err
	}

	for _, event := range batch {
		r.deliver(ctx, event)
	}
	return len(batch), nil
}

func (r *Relay) deliver(ctx context.Context, event *domain.Event) {
	if err := r.sink.Deliver(ctx, event); err != nil {
		var retryAt *time.Time
		outcome := "dead"
		if event.Attempts < r.cfg.MaxAttempts {
			at := r.timeProvider.Now().Add(Backoff(event.Attempts))
			retryAt = &at
			outcome = "retry"
		}
		r.observe(event.Name, outcome)
		r.logger.Warn("OutboxRelay: event %s id=%s attempt %d failed (%s): %v", event.Name, event.ID, event.Attempts, outcome, err)

		if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error(), retryAt); markErr != nil {
			r.logger.Error("OutboxRelay: failed to mark event id=%s failed: %v", event.ID, markErr)
		}
		return
	}

	r.observe(event.Name, "dispatched")
	if err := r.repo.MarkDispatched(ctx, event.ID, r.timeProvider.Now()); err != nil {
		// событие будет доставлено повторно после истечения блокировки
		r.logger.Error("OutboxRelay: failed to mark event id=%s dispatched: %v", event.ID, err)
	}
}

// Backoff задержка перед повтором: 2^attempts секунд, не больше 5 минут
func Backoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	if attempts > 9 {
		return maxBackoff
	}
	d := time.Duration(1<<uint(attempts)) * time.Second
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func (r *Relay) observe(event domain.EventName, outcome string) {
	if r.metrics != nil {
		r.metrics.IncOutbox(string(event), outcome)
	}
}
