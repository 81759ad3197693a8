package change_status

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
	reservationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
)

type reservationRepoMock struct {
	mock.Mock
}

func (m *reservationRepoMock) GetByID(ctx context.Context, centerID, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, centerID, id)
	res, _ := args.Get(0).(*domain.Reservation)
	return res, args.Error(1)
}

func (m *reservationRepoMock) Update(ctx context.Context, res *domain.Reservation) error {
	return m.Called(ctx, res).Error(0)
}

type outboxMock struct {
	mock.Mock
}

func (m *outboxMock) Add(ctx context.Context, event *domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

type cacheMock struct {
	mock.Mock
}

func (m *cacheMock) Invalidate(ctx context.Context, centerID int64, dates ...time.Time) error {
	return m.Called(ctx, centerID, dates).Error(0)
}

type notifierStub struct{ woken int }

func (n *notifierStub) Wake() { n.woken++ }

type txStub struct{}

func (txStub) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

var day = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func reservation(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{ID: 5, BookingCode: "RES-00000001", CenterID: 1, ClientID: 7, Date: day,
		StartTime: "09:00", EndTime: "09:30", Status: status}
}

func TestExecute_WritesStatusChangedEvent(t *testing.T) {
	repo := &reservationRepoMock{}
	outbox := &outboxMock{}
	notifier := &notifierStub{}
	repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(reservation(domain.StatusPending), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	var written *domain.Event
	outbox.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).(*domain.Event)
	}).Return(nil)

	uc := NewUseCase(repo, outbox, notifier, &cacheMock{}, txStub{}, logger.Nop())
	res, err := uc.Execute(context.Background(), &Request{CenterID: 1, ID: 5, Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, res.Status)
	assert.Equal(t, 1, notifier.woken)

	require.NotNil(t, written)
	payload, err := events.Decode[events.ReservationStatusChanged](written, domain.EventReservationStatusChanged)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, payload.OldStatus)
	assert.Equal(t, domain.StatusConfirmed, payload.NewStatus)
	assert.Equal(t, events.CauseManual, payload.Cause)
}

func TestExecute_TerminalStatusRejectsTransitions(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			repo := &reservationRepoMock{}
			outbox := &outboxMock{}
			repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(reservation(status), nil)

			uc := NewUseCase(repo, outbox, &notifierStub{}, &cacheMock{}, txStub{}, logger.Nop())
			_, err := uc.Execute(context.Background(), &Request{CenterID: 1, ID: 5, Status: "confirmed"})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			outbox.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		})
	}
}

func TestApply_CancellationFreesSlot(t *testing.T) {
	repo := &reservationRepoMock{}
	outbox := &outboxMock{}
	cache := &cacheMock{}
	repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(reservation(domain.StatusConfirmed), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	outbox.On("Add", mock.Anything, mock.Anything).Return(nil)
	cache.On("Invalidate", mock.Anything, int64(1), []time.Time{day}).Return(nil)

	uc := NewUseCase(repo, outbox, &notifierStub{}, cache, txStub{}, logger.Nop())
	_, err := uc.Apply(context.Background(), &Transition{CenterID: 1, ReservationID: 5, To: domain.StatusCancelled, Cause: events.CauseManual})
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestApply_MutateErrorAborts(t *testing.T) {
	repo := &reservationRepoMock{}
	notifier := &notifierStub{}
	repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(reservation(domain.StatusConfirmed), nil)

	boom := errors.New("boom")
	uc := NewUseCase(repo, &outboxMock{}, notifier, &cacheMock{}, txStub{}, logger.Nop())
	_, err := uc.Apply(context.Background(), &Transition{
		CenterID: 1, ReservationID: 5, To: domain.StatusCompleted,
		Mutate: func(*domain.Reservation) error { return boom },
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, notifier.woken)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&reservationRepoMock{}, &outboxMock{}, &notifierStub{}, &cacheMock{}, txStub{}, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{CenterID: 1, ID: 5, Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &reservationRepoMock{}
	repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(nil, reservationRepo.ErrReservationNotFound)

	uc := NewUseCase(repo, &outboxMock{}, &notifierStub{}, &cacheMock{}, txStub{}, logger.Nop())
	_, err := uc.Execute(context.Background(), &Request{CenterID: 1, ID: 5, Status: "confirmed"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_CompletionRequiresResult(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusConfirmed, domain.StatusInProgress} {
		t.Run(string(status), func(t *testing.T) {
			repo := &reservationRepoMock{}
			outbox := &outboxMock{}
			repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(reservation(status), nil)

			uc := NewUseCase(repo, outbox, &notifierStub{}, &cacheMock{}, txStub{}, logger.Nop())
			res, err := uc.Execute(context.Background(), &Request{CenterID: 1, ID: 5, Status: "completed"})

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, res)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			outbox.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		})
	}
}
