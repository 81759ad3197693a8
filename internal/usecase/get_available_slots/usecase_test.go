package get_available_slots

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/infra/cache/slots"
	categoryRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/category"
	centerRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/center"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
	"github.com/m04kA/SMC-InspectionService/pkg/ptr"
	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

type reservationRepoMock struct {
	mock.Mock
}

func (m *reservationRepoMock) ListBlocking(ctx context.Context, centerID int64, date time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, centerID, date, excludeID)
	items, _ := args.Get(0).([]*domain.Reservation)
	return items, args.Error(1)
}

type centersStub map[int64]*domain.Center

func (s centersStub) GetByID(_ context.Context, id int64) (*domain.Center, error) {
	if c, ok := s[id]; ok {
		return c, nil
	}
	return nil, centerRepo.ErrCenterNotFound
}

type categoriesStub map[int64]*domain.Category

func (s categoriesStub) GetByID(_ context.Context, centerID, id int64) (*domain.Category, error) {
	if c, ok := s[id]; ok && c.CenterID == centerID {
		return c, nil
	}
	return nil, categoryRepo.ErrCategoryNotFound
}

type holidayRepoMock struct {
	mock.Mock
}

func (m *holidayRepoMock) FindActiveCovering(ctx context.Context, centerID int64, date time.Time) (*domain.Holiday, error) {
	args := m.Called(ctx, centerID, date)
	h, _ := args.Get(0).(*domain.Holiday)
	return h, args.Error(1)
}

// memCache кэш в памяти
type memCache struct {
	entries map[string]*slots.Entry
	gets    int
	sets    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]*slots.Entry)}
}

func cacheKey(centerID int64, date time.Time, categoryID *int64) string {
	key := slots.Key(centerID, date)
	if categoryID != nil {
		key += ":" + strconv.FormatInt(*categoryID, 10)
	}
	return key
}

func (c *memCache) Get(_ context.Context, centerID int64, date time.Time, categoryID *int64) (*slots.Entry, bool, error) {
	c.gets++
	e, ok := c.entries[cacheKey(centerID, date, categoryID)]
	return e, ok, nil
}

func (c *memCache) Set(_ context.Context, centerID int64, date time.Time, categoryID *int64, entry *slots.Entry) error {
	c.sets++
	c.entries[cacheKey(centerID, date, categoryID)] = entry
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	now    = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc       *UseCase
	repo     *reservationRepoMock
	holidays *holidayRepoMock
	cache    *memCache
}

func newFixture() *fixture {
	f := &fixture{
		repo:     new(reservationRepoMock),
		holidays: new(holidayRepoMock),
		cache:    newMemCache(),
	}
	centers := centersStub{1: {
		ID:       1,
		Timezone: "UTC",
		OpeningHours: domain.OpeningHours{
			"monday": {Open: "08:00", Close: "18:00"},
			"sunday": {Closed: true},
		},
	}}
	categories := categoriesStub{
		7: {ID: 7, CenterID: 1, Name: "Контрольный осмотр", DurationMinutes: 45, IsActive: true},
	}
	f.uc = NewUseCase(f.repo, centers, categories, f.holidays, f.cache, logger.Nop())
	f.uc.timeProvider = fixedClock{now}
	return f
}

func reservation(start, end string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		CenterID:  1,
		Date:      monday,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    status,
	}
}

func slotAt(t *testing.T, grid []domain.Slot, start string) domain.Slot {
	t.Helper()
	for _, s := range grid {
		if s.StartTime.String() == start {
			return s
		}
	}
	t.Fatalf("slot %s not found", start)
	return domain.Slot{}
}

func TestExecute_DefaultGrid(t *testing.T) {
	f := newFixture()
	f.holidays.On("FindActiveCovering", mock.Anything, int64(1), monday).Return(nil, nil)
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: monday})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 20)
	assert.Equal(t, "08:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "17:30", resp.Slots[19].StartTime.String())
	assert.Equal(t, "18:00", resp.Slots[19].EndTime.String())
	assert.False(t, resp.IsHoliday)
	for _, s := range resp.Slots {
		assert.True(t, s.IsAvailable)
	}
}

func TestExecute_ReservedSlotUnavailable(t *testing.T) {
	f := newFixture()
	f.holidays.On("FindActiveCovering", mock.Anything, int64(1), monday).Return(nil, nil)
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{
		reservation("09:00", "09:30", domain.StatusConfirmed),
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: monday})

	require.NoError(t, err)
	assert.False(t, slotAt(t, resp.Slots, "09:00").IsAvailable)
	assert.True(t, slotAt(t, resp.Slots, "08:30").IsAvailable)
	assert.True(t, slotAt(t, resp.Slots, "09:30").IsAvailable)
}

func TestExecute_PartialOverlapBlocksBothSlots(t *testing.T) {
	f := newFixture()
	f.holidays.On("FindActiveCovering", mock.Anything, int64(1), monday).Return(nil, nil)
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{
		reservation("08:45", "09:15", domain.StatusPending),
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: monday})

	require.NoError(t, err)
	assert.False(t, slotAt(t, resp.Slots, "08:30").IsAvailable)
	assert.False(t, slotAt(t, resp.Slots, "09:00").IsAvailable)
	assert.True(t, slotAt(t, resp.Slots, "08:00").IsAvailable)
	assert.True(t, slotAt(t, resp.Slots, "09:30").IsAvailable)
}

func TestExecute_CancelledDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.holidays.On("FindActiveCovering", mock.Anything, int64(1), monday).Return(nil, nil)
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{
		reservation("09:00", "09:30", domain.StatusCancelled),
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: monday})

	require.NoError(t, err)
	assert.True(t, slotAt(t, resp.Slots, "09:00").IsAvailable)
}

func TestExecute_CategoryWidthClipsTrailingSlot(t *testing.T) {
	f := newFixture()
	f.holidays.On("FindActiveCovering", mock.Anything, int64(1), monday).Return(nil, nil)
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: monday, CategoryID: ptr.Ptr(int64(7))})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 13)
	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, "17:00", last.StartTime.String())
	assert.Equal(t, "17:45", last.EndTime.String())
}

func TestExecute_HolidayAllUnavailable(t *testing.T) {
	f := newFixture()
	f.holidays.On("FindActiveCovering", mock.Anything, int64(1), monday).
		Return(&domain.Holiday{Name: "Jour férié", StartDate: monday, IsActive: true}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: monday})

	require.NoError(t, err)
	assert.True(t, resp.IsHoliday)
	require.NotNil(t, resp.HolidayName)
	assert.Equal(t, "Jour férié", *resp.HolidayName)
	require.NotEmpty(t, resp.Slots)
	for _, s := range resp.Slots {
		assert.False(t, s.IsAvailable)
	}
	f.repo.AssertNotCalled(t, "ListBlocking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ClosedDayEmpty(t *testing.T) {
	f := newFixture()
	f.holidays.On("FindActiveCovering", mock.Anything, int64(1), sunday).Return(nil, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: sunday})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateEmpty(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: now.AddDate(0, 0, -3)})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 0, f.cache.gets)
}

func TestExecute_CacheHitSkipsRepositories(t *testing.T) {
	f := newFixture()
	f.holidays.On("FindActiveCovering", mock.Anything, int64(1), monday).Return(nil, nil).Once()
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{}, nil).Once()

	first, err := f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: monday})
	require.NoError(t, err)
	second, err := f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, 1, f.cache.sets)
	f.repo.AssertNumberOfCalls(t, "ListBlocking", 1)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{CenterID: 0, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{CenterID: 2, Date: monday})
	assert.ErrorIs(t, err, ErrCenterNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: monday, CategoryID: ptr.Ptr(int64(99))})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	f.holidays.On("FindActiveCovering", mock.Anything, int64(1), monday).Return(nil, errors.New("db down"))
	_, err = f.uc.Execute(context.Background(), &Request{CenterID: 1, Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}
