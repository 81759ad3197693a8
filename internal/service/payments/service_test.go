package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	paymentRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
	"github.com/m04kA/SMC-InspectionService/pkg/ptr"
)

type paymentRepoMock struct {
	mock.Mock
}

func (m *paymentRepoMock) GetByExternalID(ctx context.Context, externalID string) (*domain.Payment, error) {
	args := m.Called(ctx, externalID)
	p, _ := args.Get(0).(*domain.Payment)
	return p, args.Error(1)
}

func (m *paymentRepoMock) MarkCompleted(ctx context.Context, id int64, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, id, paidAt)
	return args.Bool(0), args.Error(1)
}

type outboxMock struct {
	mock.Mock
}

func (m *outboxMock) Add(ctx context.Context, event *domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

type notifierStub struct{ woken int }

func (n *notifierStub) Wake() { n.woken++ }

type txStub struct{}

func (txStub) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var now = time.Date(2026, 6, 2, 14, 30, 0, 0, time.UTC)

func newService(repo *paymentRepoMock, outbox *outboxMock, notifier *notifierStub) *Service {
	svc := NewService(repo, outbox, notifier, txStub{}, logger.Nop())
	svc.timeProvider = fixedClock{now: now}
	return svc
}

func TestComplete_EmitsEventOnce(t *testing.T) {
	repo, outbox, notifier := &paymentRepoMock{}, &outboxMock{}, &notifierStub{}
	ctx := context.Background()
	payment := &domain.Payment{ID: 4, CenterID: 1, ClientID: 9, ReservationID: ptr.Ptr(int64(30)), Amount: 79, Currency: "EUR", ExternalID: "pi_123"}

	repo.On("GetByExternalID", ctx, "pi_123").Return(payment, nil)
	repo.On("MarkCompleted", ctx, int64(4), now).Return(true, nil)
	outbox.On("Add", ctx, mock.MatchedBy(func(e *domain.Event) bool {
		p, err := events.Decode[events.PaymentCompleted](e, domain.EventPaymentCompleted)
		return err == nil && *p.ReservationID == 30 && p.Amount == 79
	})).Return(nil)

	resp, err := newService(repo, outbox, notifier).Complete(ctx, "pi_123")

	require.NoError(t, err)
	assert.False(t, resp.AlreadyCompleted)
	assert.Equal(t, 1, notifier.woken)
	outbox.AssertExpectations(t)
}

func TestComplete_RepeatedWebhookIsNoop(t *testing.T) {
	repo, outbox, notifier := &paymentRepoMock{}, &outboxMock{}, &notifierStub{}
	ctx := context.Background()
	repo.On("GetByExternalID", ctx, "pi_123").Return(&domain.Payment{ID: 4, Status: domain.PaymentCompleted}, nil)
	repo.On("MarkCompleted", ctx, int64(4), now).Return(false, nil)

	resp, err := newService(repo, outbox, notifier).Complete(ctx, "pi_123")

	require.NoError(t, err)
	assert.True(t, resp.AlreadyCompleted)
	assert.Zero(t, notifier.woken)
	outbox.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestComplete_Errors(t *testing.T) {
	ctx := context.Background()

	repo := &paymentRepoMock{}
	repo.On("GetByExternalID", ctx, "pi_404").Return(nil, paymentRepo.ErrPaymentNotFound)
	_, err := newService(repo, &outboxMock{}, &notifierStub{}).Complete(ctx, "pi_404")
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	repo = &paymentRepoMock{}
	repo.On("GetByExternalID", ctx, "pi_500").Return(nil, errors.New("conn reset"))
	_, err = newService(repo, &outboxMock{}, &notifierStub{}).Complete(ctx, "pi_500")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = newService(&paymentRepoMock{}, &outboxMock{}, &notifierStub{}).Complete(ctx, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
