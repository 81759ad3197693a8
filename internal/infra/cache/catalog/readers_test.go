package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

type centerRepoMock struct {
	mock.Mock
}

func (m *centerRepoMock) GetByID(ctx context.Context, id int64) (*domain.Center, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*domain.Center); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(1<<20, 1000)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestCenters_LoadsOnceThenServesFromCache(t *testing.T) {
	store := newStore(t)
	repo := &centerRepoMock{}
	ctx := context.Background()

	center := &domain.Center{
		ID:       1,
		Name:     "CT Lyon",
		Timezone: "Europe/Paris",
		OpeningHours: domain.OpeningHours{
			"monday": {Open: "08:00", Close: "18:00"},
		},
	}
	repo.On("GetByID", ctx, int64(1)).Return(center, nil).Once()

	centers := NewCenters(repo, store, time.Minute)

	first, err := centers.GetByID(ctx, 1)
	require.NoError(t, err)
	store.Wait()

	second, err := centers.GetByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, domain.DaySchedule{Open: "08:00", Close: "18:00"}, second.OpeningHours["monday"])
	repo.AssertExpectations(t)
}

func TestCenters_ErrorsAreNotCached(t *testing.T) {
	store := newStore(t)
	repo := &centerRepoMock{}
	ctx := context.Background()
	boom := errors.New("boom")

	repo.On("GetByID", ctx, int64(2)).Return(nil, boom).Twice()

	centers := NewCenters(repo, store, time.Minute)

	_, err := centers.GetByID(ctx, 2)
	assert.ErrorIs(t, err, boom)
	store.Wait()
	_, err = centers.GetByID(ctx, 2)
	assert.ErrorIs(t, err, boom)

	repo.AssertExpectations(t)
}
