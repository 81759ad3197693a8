package outboxrelay

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
)

type failure struct {
	cause   string
	retryAt *time.Time
}

// memOutbox outbox в памяти
type memOutbox struct {
	mu         sync.Mutex
	pending    []*domain.Event
	dispatched []uuid.UUID
	failed     map[uuid.UUID]failure
	claims     int
}

func newMemOutbox(events ...*domain.Event) *memOutbox {
	return &memOutbox{pending: events, failed: make(map[uuid.UUID]failure)}
}

func (m *memOutbox) Claim(_ context.Context, _ time.Time, limit int, _ time.Duration) ([]*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claims++
	if limit > len(m.pending) {
		limit = len(m.pending)
	}
	batch := m.pending[:limit]
	m.pending = m.pending[limit:]
	for _, e := range batch {
		e.Attempts++
	}
	return batch, nil
}

func (m *memOutbox) MarkDispatched(_ context.Context, id uuid.UUID, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dispatched = append(m.dispatched, id)
	return nil
}

func (m *memOutbox) MarkFailed(_ context.Context, id uuid.UUID, cause string, retryAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed[id] = failure{cause: cause, retryAt: retryAt}
	return nil
}

func (m *memOutbox) dispatchedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.dispatched)
}

func (m *memOutbox) push(e *domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, e)
}

type sinkStub struct {
	mu        sync.Mutex
	delivered []domain.EventName
	failOn    domain.EventName
}

func (s *sinkStub) Deliver(_ context.Context, e *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.Name == s.failOn {
		return errors.New("broker unavailable")
	}
	s.delivered = append(s.delivered, e.Name)
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var now = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func event(name domain.EventName, attempts int) *domain.Event {
	return &domain.Event{ID: uuid.New(), Name: name, CenterID: 1, Payload: json.RawMessage(`{}`), OccurredAt: now, Attempts: attempts}
}

func newRelay(repo OutboxRepository, sink Sink, cfg Config) *Relay {
	r := New(repo, sink, cfg, nil, logger.Nop())
	r.timeProvider = fixedClock{now}
	return r
}

func TestProcessBatch_DeliversInOrder(t *testing.T) {
	repo := newMemOutbox(
		event(domain.EventReservationCreated, 0),
		event(domain.EventReservationStatusChanged, 0),
		event(domain.EventPaymentCompleted, 0),
	)
	sink := &sinkStub{}

	n, err := newRelay(repo, sink, Config{BatchSize: 10}).ProcessBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []domain.EventName{
		domain.EventReservationCreated,
		domain.EventReservationStatusChanged,
		domain.EventPaymentCompleted,
	}, sink.delivered)
	assert.Len(t, repo.dispatched, 3)
}

func TestProcessBatch_FailureSchedulesRetry(t *testing.T) {
	failing := event(domain.EventPromotionCreated, 1)
	repo := newMemOutbox(failing)

	_, err := newRelay(repo, &sinkStub{failOn: domain.EventPromotionCreated}, Config{MaxAttempts: 5}).ProcessBatch(context.Background())

	require.NoError(t, err)
	require.Contains(t, repo.failed, failing.ID)
	f := repo.failed[failing.ID]
	assert.Equal(t, "broker unavailable", f.cause)
	require.NotNil(t, f.retryAt)
	assert.Equal(t, now.Add(4*time.Second), *f.retryAt)
	assert.Empty(t, repo.dispatched)
}

func TestProcessBatch_GivesUpAfterMaxAttempts(t *testing.T) {
	failing := event(domain.EventPromotionCreated, 4)
	repo := newMemOutbox(failing)

	_, err := newRelay(repo, &sinkStub{failOn: domain.EventPromotionCreated}, Config{MaxAttempts: 5}).ProcessBatch(context.Background())

	require.NoError(t, err)
	assert.Nil(t, repo.failed[failing.ID].retryAt)
}

func TestDrain_ProcessesAllBatches(t *testing.T) {
	repo := newMemOutbox()
	for i := 0; i < 5; i++ {
		repo.push(event(domain.EventReservationCreated, 0))
	}

	newRelay(repo, &sinkStub{}, Config{BatchSize: 2}).drain(context.Background())

	assert.Equal(t, 5, repo.dispatchedCount())
	assert.Equal(t, 3, repo.claims)
}

func TestRun_WakeTriggersDelivery(t *testing.T) {
	repo := newMemOutbox()
	relay := newRelay(repo, &sinkStub{}, Config{PollInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	repo.push(event(domain.EventReservationCreated, 0))
	relay.Wake()
	relay.Wake()

	assert.Eventually(t, func() bool { return repo.dispatchedCount() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, 2*time.Second, Backoff(0))
	assert.Equal(t, 2*time.Second, Backoff(1))
	assert.Equal(t, 8*time.Second, Backoff(3))
	assert.Equal(t, 256*time.Second, Backoff(8))
	assert.Equal(t, maxBackoff, Backoff(9))
	assert.Equal(t, maxBackoff, Backoff(30))
}

type dispatcherStub struct{ events []*domain.Event }

func (d *dispatcherStub) Dispatch(_ context.Context, e *domain.Event) int {
	d.events = append(d.events, e)
	return 1
}

func TestLocalSink_IgnoresHandlerFailures(t *testing.T) {
	d := &dispatcherStub{}
	e := event(domain.EventHolidayCreated, 1)

	require.NoError(t, NewLocalSink(d).Deliver(context.Background(), e))
	assert.Equal(t, []*domain.Event{e}, d.events)
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, key, messageID string, body []byte) error {
	return m.Called(ctx, key, messageID, body).Error(0)
}

func TestAMQPSink_PublishesEnvelope(t *testing.T) {
	pub := new(publisherMock)
	e := event(domain.EventPaymentCompleted, 1)

	pub.On("Publish", mock.Anything, "payment.completed", e.ID.String(), mock.MatchedBy(func(body []byte) bool {
		var decoded domain.Event
		return json.Unmarshal(body, &decoded) == nil && decoded.ID == e.ID && decoded.Name == e.Name
	})).Return(nil)

	require.NoError(t, NewAMQPSink(pub).Deliver(context.Background(), e))
	pub.AssertExpectations(t)
}
