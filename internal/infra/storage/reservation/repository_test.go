package reservation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionService/pkg/pgerrors"
	"github.com/m04kA/SMC-InspectionService/pkg/txmanager"
)

func newRepo(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), db, mock
}

func reservationRow(mock sqlmock.Sqlmock) *sqlmock.Rows {
	return mock.NewRows([]string{
		"id", "booking_code", "center_id", "client_id", "vehicle_id", "category_id", "employee_id",
		"date", "start_time", "end_time", "duration_minutes", "status", "result", "report", "notes",
		"reminder_sent_at", "deleted_at", "created_at", "updated_at",
	})
}

func sampleReservation() *domain.Reservation {
	return &domain.Reservation{
		BookingCode:     "RES-0A1B2C3D",
		CenterID:        1,
		ClientID:        2,
		VehicleID:       3,
		CategoryID:      4,
		Date:            time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		EndTime:         "09:30",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO reservations .* RETURNING id, created_at, updated_at`).
		WithArgs("RES-0A1B2C3D", int64(1), int64(2), int64(3), int64(4), nil,
			sqlmock.AnyArg(), "09:00:00", "09:30:00", 30, "confirmed", nil, nil, nil).
		WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(10, now, now))

	res, err := repo.Create(context.Background(), sampleReservation())

	require.NoError(t, err)
	assert.Equal(t, int64(10), res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExclusionViolationIsOverlap(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "reservations_no_overlap"})

	_, err := repo.Create(context.Background(), sampleReservation())

	assert.ErrorIs(t, err, ErrOverlap)
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_reservations_booking_code"})

	_, err := repo.Create(context.Background(), sampleReservation())

	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .* FROM reservations r WHERE`).
		WillReturnRows(reservationRow(mock))

	_, err := repo.GetByID(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetByID_DecodesReport(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM reservations r WHERE`).
		WillReturnRows(reservationRow(mock).AddRow(
			7, "RES-0A1B2C3D", 1, 2, 3, 4, nil,
			date, "09:00:00", "09:30:00", 30, "completed", "passed",
			[]byte(`{"defects":["pneu"],"mileage":120000}`), nil,
			nil, nil, now, now,
		))

	res, err := repo.GetByID(context.Background(), 1, 7)

	require.NoError(t, err)
	require.NotNil(t, res.Result)
	assert.Equal(t, domain.ResultPassed, *res.Result)
	require.NotNil(t, res.Report)
	assert.Equal(t, []string{"pneu"}, res.Report.Defects)
	assert.Equal(t, 120000, *res.Report.Mileage)
	assert.Equal(t, "09:30", res.EndTime.String())
	assert.Nil(t, res.EmployeeID)
}

func TestListBlocking_LocksInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations r WHERE .*status NOT IN .* ORDER BY r.start_time ASC FOR UPDATE`).
		WithArgs(int64(1), date, "cancelled").
		WillReturnRows(reservationRow(mock))
	mock.ExpectRollback()

	tx, err := dbmetrics.Wrap(db).BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	items, err := repo.ListBlocking(ctx, 1, date, nil)

	require.NoError(t, err)
	assert.Empty(t, items)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE reservations SET deleted_at = NOW\(\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), 1, 5)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}

func TestCreate_SerializationFailureKeepsSQLState(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.Create(context.Background(), sampleReservation())

	assert.ErrorIs(t, err, ErrSerialization)
	assert.True(t, pgerrors.IsSerializationFailure(err))
}

func TestCreate_StatementSerializationFailureRetriesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db)
	repo := NewRepository(wrapped)
	tm := txmanager.NewTransactionManager(wrapped)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO reservations`).WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))
	mock.ExpectCommit()

	attempts := 0
	var created *domain.Reservation
	err = tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		res, err := repo.Create(ctx, sampleReservation())
		if err != nil {
			return err
		}
		created = res
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, int64(11), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
