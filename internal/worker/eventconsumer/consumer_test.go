package eventconsumer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
)

type ackRecorder struct {
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (a *ackRecorder) Ack(tag uint64, _ bool) error {
	a.acked = append(a.acked, tag)
	return nil
}

func (a *ackRecorder) Nack(tag uint64, _ bool, requeue bool) error {
	a.nacked = append(a.nacked, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

type dispatcherStub struct{ names []domain.EventName }

func (d *dispatcherStub) Dispatch(_ context.Context, e *domain.Event) int {
	d.names = append(d.names, e.Name)
	return 0
}

type sourceStub struct{ ch chan amqp.Delivery }

func (s sourceStub) Deliveries(context.Context, string) (<-chan amqp.Delivery, error) {
	return s.ch, nil
}

func delivery(t *testing.T, ack amqp.Acknowledger, tag uint64, e *domain.Event) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(e)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, RoutingKey: string(e.Name), Body: body}
}

func TestHandle_DispatchesAndAcks(t *testing.T) {
	ack := &ackRecorder{}
	d := &dispatcherStub{}
	c := New(sourceStub{}, d, "test", logger.Nop())

	c.Handle(context.Background(), delivery(t, ack, 7, &domain.Event{
		ID: uuid.New(), Name: domain.EventHolidayCreated, CenterID: 1, Payload: json.RawMessage(`{}`),
	}))

	assert.Equal(t, []domain.EventName{domain.EventHolidayCreated}, d.names)
	assert.Equal(t, []uint64{7}, ack.acked)
	assert.Empty(t, ack.nacked)
}

func TestHandle_MalformedIsRejectedWithoutRequeue(t *testing.T) {
	ack := &ackRecorder{}
	d := &dispatcherStub{}
	c := New(sourceStub{}, d, "test", logger.Nop())

	c.Handle(context.Background(), amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: []byte("not json")})

	assert.Empty(t, d.names)
	assert.Equal(t, []uint64{3}, ack.nacked)
	assert.Equal(t, []bool{false}, ack.requeue)
}

func TestRun_StopsWhenChannelClosed(t *testing.T) {
	ack := &ackRecorder{}
	d := &dispatcherStub{}
	ch := make(chan amqp.Delivery, 2)
	ch <- delivery(t, ack, 1, &domain.Event{ID: uuid.New(), Name: domain.EventReservationCreated, Payload: json.RawMessage(`{}`)})
	ch <- delivery(t, ack, 2, &domain.Event{ID: uuid.New(), Name: domain.EventPaymentCompleted, Payload: json.RawMessage(`{}`)})
	close(ch)

	done := make(chan error, 1)
	go func() { done <- New(sourceStub{ch: ch}, d, "test", logger.Nop()).Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.Equal(t, []uint64{1, 2}, ack.acked)
}
