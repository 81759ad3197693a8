package create_reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	categoryRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/category"
	centerRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/center"
	reservationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-InspectionService/pkg/bookingcode"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
	"github.com/m04kA/SMC-InspectionService/pkg/pgerrors"
	"github.com/m04kA/SMC-InspectionService/pkg/ptr"
	"github.com/m04kA/SMC-InspectionService/pkg/txmanager"
	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

type reservationRepoMock struct {
	mock.Mock
}

func (m *reservationRepoMock) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, res)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	res.ID = 100
	return res, nil
}

func (m *reservationRepoMock) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
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

type clientRepoMock struct {
	mock.Mock
}

func (m *clientRepoMock) GetByID(ctx context.Context, centerID, id int64) (*domain.Client, error) {
	args := m.Called(ctx, centerID, id)
	c, _ := args.Get(0).(*domain.Client)
	return c, args.Error(1)
}

func (m *clientRepoMock) Touch(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type vehicleRepoMock struct {
	mock.Mock
}

func (m *vehicleRepoMock) GetByID(ctx context.Context, centerID, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, centerID, id)
	v, _ := args.Get(0).(*domain.Vehicle)
	return v, args.Error(1)
}

type holidayRepoMock struct {
	mock.Mock
}

func (m *holidayRepoMock) FindActiveCovering(ctx context.Context, centerID int64, date time.Time) (*domain.Holiday, error) {
	args := m.Called(ctx, centerID, date)
	h, _ := args.Get(0).(*domain.Holiday)
	return h, args.Error(1)
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

func (txStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
	clients  *clientRepoMock
	vehicles *vehicleRepoMock
	holidays *holidayRepoMock
	outbox   *outboxMock
	cache    *cacheMock
	notifier *notifierStub
}

func newFixture() *fixture {
	f := &fixture{
		repo:     &reservationRepoMock{},
		clients:  &clientRepoMock{},
		vehicles: &vehicleRepoMock{},
		holidays: &holidayRepoMock{},
		outbox:   &outboxMock{},
		cache:    &cacheMock{},
		notifier: &notifierStub{},
	}

	centers := centersStub{1: {
		ID: 1, Name: "CT Nord", Timezone: "UTC",
		OpeningHours: domain.OpeningHours{
			"monday": {Open: "08:00", Close: "18:00"},
			"sunday": {Closed: true},
		},
	}}
	categories := categoriesStub{
		3: {ID: 3, CenterID: 1, Name: "Контрольный осмотр", DurationMinutes: 30, IsActive: true},
		4: {ID: 4, CenterID: 1, Name: "Архив", DurationMinutes: 30, IsActive: false},
	}

	f.uc = NewUseCase(f.repo, centers, categories, f.clients, f.vehicles, f.holidays,
		f.outbox, f.notifier, f.cache, txStub{}, logger.Nop())
	f.uc.timeProvider = fixedClock{now: now}

	f.clients.On("GetByID", mock.Anything, int64(1), int64(7)).
		Return(&domain.Client{ID: 7, CenterID: 1, UserID: ptr.Ptr(int64(70)), FirstName: "Иван"}, nil).Maybe()
	f.clients.On("Touch", mock.Anything, int64(7), now).Return(nil).Maybe()
	f.vehicles.On("GetByID", mock.Anything, int64(1), int64(9)).
		Return(&domain.Vehicle{ID: 9, CenterID: 1, ClientID: 7, LicensePlate: "AB-123-CD"}, nil).Maybe()
	f.vehicles.On("GetByID", mock.Anything, int64(1), int64(10)).
		Return(&domain.Vehicle{ID: 10, CenterID: 1, ClientID: 8, LicensePlate: "ZZ-999-ZZ"}, nil).Maybe()
	f.holidays.On("FindActiveCovering", mock.Anything, int64(1), mock.Anything).Return(nil, nil).Maybe()
	f.repo.On("ExistsByCode", mock.Anything, mock.Anything).Return(false, nil).Maybe()
	f.outbox.On("Add", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.cache.On("Invalidate", mock.Anything, int64(1), mock.Anything).Return(nil).Maybe()

	return f
}

func request(start types.TimeString) *Request {
	return &Request{
		Actor:      domain.Actor{UserID: 2, Role: domain.RoleCTAdmin},
		CenterID:   1,
		ClientID:   7,
		VehicleID:  9,
		CategoryID: 3,
		Date:       monday,
		StartTime:  start,
	}
}

func existing(start, end types.TimeString) *domain.Reservation {
	return &domain.Reservation{ID: 50, CenterID: 1, Date: monday, StartTime: start, EndTime: end, Status: domain.StatusConfirmed}
}

func TestExecute_StaffCreatesConfirmedReservation(t *testing.T) {
	f := newFixture()
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	res, err := f.uc.Execute(context.Background(), request("09:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(100), res.ID)
	assert.Equal(t, domain.StatusConfirmed, res.Status)
	assert.Equal(t, types.TimeString("09:30"), res.EndTime)
	assert.Equal(t, 30, res.DurationMinutes)
	assert.True(t, bookingcode.Valid(res.BookingCode), res.BookingCode)
	assert.Equal(t, 1, f.notifier.woken)

	f.outbox.AssertCalled(t, "Add", mock.Anything, mock.MatchedBy(func(e *domain.Event) bool {
		return e.Name == domain.EventReservationCreated && e.CenterID == 1
	}))
	f.cache.AssertCalled(t, "Invalidate", mock.Anything, int64(1), []time.Time{monday})
}

func TestExecute_ClientCreatesPendingReservation(t *testing.T) {
	f := newFixture()
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := request("10:00")
	req.Actor = domain.Actor{UserID: 70, Role: domain.RoleClient}
	req.Status = ptr.Ptr("confirmed")

	res, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, res.Status)
}

func TestExecute_ClientCannotBookForAnotherClient(t *testing.T) {
	f := newFixture()

	req := request("10:00")
	req.Actor = domain.Actor{UserID: 71, Role: domain.RoleClient}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, f.notifier.woken)
}

func TestExecute_OverlapIsConflict(t *testing.T) {
	cases := []struct {
		name     string
		existing *domain.Reservation
		start    types.TimeString
		conflict bool
	}{
		{name: "same slot", existing: existing("09:00", "09:30"), start: "09:00", conflict: true},
		{name: "partial overlap", existing: existing("08:45", "09:15"), start: "09:00", conflict: true},
		{name: "touching end", existing: existing("08:45", "09:15"), start: "09:15", conflict: false},
		{name: "touching start", existing: existing("09:30", "10:00"), start: "09:00", conflict: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).
				Return([]*domain.Reservation{tc.existing}, nil)
			f.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()

			_, err := f.uc.Execute(context.Background(), request(tc.start))
			if tc.conflict {
				assert.ErrorIs(t, err, ErrConflict)
				f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				f.outbox.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	f := newFixture()
	cancelled := existing("09:00", "09:30")
	cancelled.Status = domain.StatusCancelled
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{cancelled}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Execute(context.Background(), request("09:00"))
	assert.NoError(t, err)
}

func TestExecute_ExclusionViolationIsConflict(t *testing.T) {
	f := newFixture()
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("%w: insert", reservationRepo.ErrOverlap))

	_, err := f.uc.Execute(context.Background(), request("09:00"))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Zero(t, f.notifier.woken)
}

func TestExecute_ScheduleChecks(t *testing.T) {
	t.Run("holiday", func(t *testing.T) {
		f := newFixture()
		f.holidays.ExpectedCalls = nil
		f.holidays.On("FindActiveCovering", mock.Anything, int64(1), monday).
			Return(&domain.Holiday{ID: 1, Name: "Праздник", StartDate: monday}, nil)

		_, err := f.uc.Execute(context.Background(), request("09:00"))
		assert.ErrorIs(t, err, ErrHoliday)
	})

	t.Run("closed weekday", func(t *testing.T) {
		f := newFixture()
		req := request("09:00")
		req.Date = sunday

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCenterClosed)
	})

	t.Run("past closing time", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Execute(context.Background(), request("17:45"))
		assert.ErrorIs(t, err, ErrOutsideOpeningHours)
	})

	t.Run("before opening", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Execute(context.Background(), request("07:30"))
		assert.ErrorIs(t, err, ErrOutsideOpeningHours)
	})

	t.Run("past date", func(t *testing.T) {
		f := newFixture()
		req := request("09:00")
		req.Date = now.AddDate(0, 0, -1)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateInPast)
	})
}

func TestExecute_OwnershipChecks(t *testing.T) {
	t.Run("inactive category", func(t *testing.T) {
		f := newFixture()
		req := request("09:00")
		req.CategoryID = 4

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCategoryInactive)
	})

	t.Run("category of another center", func(t *testing.T) {
		f := newFixture()
		req := request("09:00")
		req.CategoryID = 99

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("vehicle of another client", func(t *testing.T) {
		f := newFixture()
		req := request("09:00")
		req.VehicleID = 10

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrVehicleNotOwned)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	req := request("9:00")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request("09:00")
	req.Status = ptr.Ptr("completed")
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateCode_RetriesOnCollision(t *testing.T) {
	f := newFixture()
	f.repo.ExpectedCalls = nil
	f.repo.On("ExistsByCode", mock.Anything, "RES-AAAAAAAA").Return(true, nil).Once()
	f.repo.On("ExistsByCode", mock.Anything, "RES-BBBBBBBB").Return(false, nil).Once()

	codes := []string{"RES-AAAAAAAA", "RES-BBBBBBBB"}
	f.uc.newCode = func() (string, error) {
		code := codes[0]
		codes = codes[1:]
		return code, nil
	}

	code, err := f.uc.generateCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RES-BBBBBBBB", code)
}

func TestGenerateCode_GivesUpAfterRetries(t *testing.T) {
	f := newFixture()
	f.repo.ExpectedCalls = nil
	f.repo.On("ExistsByCode", mock.Anything, mock.Anything).Return(true, nil)

	_, err := f.uc.generateCode(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
	f.repo.AssertNumberOfCalls(t, "ExistsByCode", domain.MaxBookingCodeRetries)
}

// codeStore помнит выданные коды, как уникальный индекс в таблице
type codeStore struct {
	reservationRepoMock
	taken map[string]struct{}
}

func (s *codeStore) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := s.taken[code]
	return ok, nil
}

func TestGenerateCode_ThousandUniqueCodes(t *testing.T) {
	store := &codeStore{taken: make(map[string]struct{}, 1000)}
	uc := &UseCase{reservationRepo: store, newCode: bookingcode.New, logger: logger.Nop()}

	for i := 0; i < 1000; i++ {
		code, err := uc.generateCode(context.Background())
		require.NoError(t, err)
		require.True(t, bookingcode.Valid(code))
		store.taken[code] = struct{}{}
	}

	assert.Len(t, store.taken, 1000)
}

func TestExecute_DuplicateCodeAtInsertRetriesTransaction(t *testing.T) {
	f := newFixture()
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: insert: %w", reservationRepo.ErrDuplicateCode, &pq.Error{Code: "23505"})).Once()
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	res, err := f.uc.Execute(context.Background(), request("09:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.ID)
	f.repo.AssertNumberOfCalls(t, "Create", 2)
	assert.Equal(t, 1, f.notifier.woken)
}

func TestExecute_DuplicateCodeExhaustsRetries(t *testing.T) {
	f := newFixture()
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("%w: insert", reservationRepo.ErrDuplicateCode))

	_, err := f.uc.Execute(context.Background(), request("09:00"))
	assert.ErrorIs(t, err, ErrInternal)
	f.repo.AssertNumberOfCalls(t, "Create", domain.MaxBookingCodeRetries)
	assert.Zero(t, f.notifier.woken)
}

func TestCreateInTx_SerializationFailurePropagatesForRetry(t *testing.T) {
	f := newFixture()
	f.repo.On("ListBlocking", mock.Anything, int64(1), monday, (*int64)(nil)).Return([]*domain.Reservation{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: insert: %w", reservationRepo.ErrSerialization, &pq.Error{Code: "40001"}))

	_, err := f.uc.CreateInTx(context.Background(), request("09:00"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.True(t, pgerrors.IsSerializationFailure(err))

	assert.ErrorIs(t, MapTxError(err), ErrConflict)
}

func TestMapTxError(t *testing.T) {
	assert.NoError(t, MapTxError(nil))
	assert.ErrorIs(t, MapTxError(fmt.Errorf("%w: 40001", txmanager.ErrSerializationFailure)), ErrConflict)
	assert.ErrorIs(t, MapTxError(fmt.Errorf("%w: insert", reservationRepo.ErrOverlap)), ErrConflict)
	assert.ErrorIs(t, MapTxError(fmt.Errorf("%w: insert", reservationRepo.ErrDuplicateCode)), ErrInternal)
	assert.ErrorIs(t, MapTxError(ErrHoliday), ErrHoliday)
}
