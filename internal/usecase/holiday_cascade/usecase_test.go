package holiday_cascade

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/change_status"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
)

type reservationRepoMock struct {
	mock.Mock
}

func (m *reservationRepoMock) ListCancellableInRange(ctx context.Context, centerID int64, from, to time.Time) ([]*domain.Reservation, error) {
	args := m.Called(ctx, centerID, from, to)
	items, _ := args.Get(0).([]*domain.Reservation)
	return items, args.Error(1)
}

// changerStub отменяет записи в памяти; failIDs имитируют ошибки транзакции
type changerStub struct {
	failIDs     map[int64]bool
	transitions []*change_status.Transition
}

func (c *changerStub) Apply(_ context.Context, t *change_status.Transition) (*domain.Reservation, error) {
	c.transitions = append(c.transitions, t)
	if c.failIDs[t.ReservationID] {
		return nil, change_status.ErrInvalidTransition
	}
	res := &domain.Reservation{ID: t.ReservationID, CenterID: t.CenterID, Status: t.To}
	if err := t.Mutate(res); err != nil {
		return nil, err
	}
	return res, nil
}

var (
	from = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC)
)

func TestExecute_CancelsOnlyReservationsOfCenterAndRange(t *testing.T) {
	repo := &reservationRepoMock{}
	repo.On("ListCancellableInRange", mock.Anything, int64(1), from, to).Return([]*domain.Reservation{
		{ID: 10, CenterID: 1, Date: from, Status: domain.StatusConfirmed},
		{ID: 11, CenterID: 1, Date: to, Status: domain.StatusPending},
	}, nil)
	changer := &changerStub{}

	result, err := NewUseCase(repo, changer, logger.Nop()).Execute(context.Background(), &Request{
		CenterID: 1, HolidayName: "Новый год", From: from, To: to,
	})
	require.NoError(t, err)

	require.Len(t, result.Cancelled, 2)
	assert.Zero(t, result.Failed)
	for _, tr := range changer.transitions {
		assert.Equal(t, int64(1), tr.CenterID)
		assert.Equal(t, domain.StatusCancelled, tr.To)
		assert.Equal(t, events.CauseHoliday, tr.Cause)
		assert.Equal(t, "Новый год", *tr.HolidayName)
	}
	assert.Equal(t, "[Отмена] Выходной: Новый год", *result.Cancelled[0].Notes)
	repo.AssertExpectations(t)
}

func TestExecute_FailureIsSkipped(t *testing.T) {
	repo := &reservationRepoMock{}
	repo.On("ListCancellableInRange", mock.Anything, int64(1), from, to).Return([]*domain.Reservation{
		{ID: 10, CenterID: 1, Status: domain.StatusConfirmed},
		{ID: 11, CenterID: 1, Status: domain.StatusConfirmed},
		{ID: 12, CenterID: 1, Status: domain.StatusPending},
	}, nil)
	changer := &changerStub{failIDs: map[int64]bool{11: true}}

	result, err := NewUseCase(repo, changer, logger.Nop()).Execute(context.Background(), &Request{
		CenterID: 1, HolidayName: "Новый год", From: from, To: to,
	})
	require.NoError(t, err)

	assert.Len(t, changer.transitions, 3)
	assert.Len(t, result.Cancelled, 2)
	assert.Equal(t, 1, result.Failed)
}

func TestExecute_InvalidRange(t *testing.T) {
	_, err := NewUseCase(&reservationRepoMock{}, &changerStub{}, logger.Nop()).Execute(context.Background(), &Request{
		CenterID: 1, From: to, To: from,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
