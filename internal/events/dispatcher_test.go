package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
)

func TestDispatch_RunsHandlersInOrderDespiteFailures(t *testing.T) {
	d := NewDispatcher(nil, logger.Nop())
	var calls []string

	d.Register(domain.EventReservationCreated, "first", func(ctx context.Context, e *domain.Event) error {
		calls = append(calls, "first")
		return errors.New("smtp down")
	})
	d.Register(domain.EventReservationCreated, "second", func(ctx context.Context, e *domain.Event) error {
		calls = append(calls, "second")
		panic("nil map")
	})
	d.Register(domain.EventReservationCreated, "third", func(ctx context.Context, e *domain.Event) error {
		calls = append(calls, "third")
		return nil
	})

	event, err := New(domain.EventReservationCreated, 1, ReservationCreated{ReservationID: 5}, time.Now())
	require.NoError(t, err)

	failed := d.Dispatch(context.Background(), event)

	assert.Equal(t, 2, failed)
	assert.Equal(t, []string{"first", "second", "third"}, calls)
	assert.Equal(t, []string{"first", "second", "third"}, d.Handlers(domain.EventReservationCreated))
}

func TestDispatch_OnlyMatchingEvent(t *testing.T) {
	d := NewDispatcher(nil, logger.Nop())
	called := false
	d.Register(domain.EventHolidayCreated, "cascade", func(ctx context.Context, e *domain.Event) error {
		called = true
		return nil
	})

	event, err := New(domain.EventPromotionCreated, 1, PromotionCreated{PromotionID: 1}, time.Now())
	require.NoError(t, err)

	assert.Zero(t, d.Dispatch(context.Background(), event))
	assert.False(t, called)
}

func TestDecode_ChecksName(t *testing.T) {
	res := &domain.Reservation{ID: 9, CenterID: 2, BookingCode: "RES-00000009", Status: domain.StatusConfirmed}
	event, err := NewReservationStatusChanged(res, domain.StatusPending, CauseHoliday, nil, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), event.CenterID)

	payload, err := Decode[ReservationStatusChanged](event, domain.EventReservationStatusChanged)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, payload.OldStatus)
	assert.Equal(t, domain.StatusConfirmed, payload.NewStatus)
	assert.Equal(t, CauseHoliday, payload.Cause)

	_, err = Decode[ReservationCreated](event, domain.EventReservationCreated)
	assert.ErrorIs(t, err, ErrUnexpectedEvent)
}
