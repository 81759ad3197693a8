package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionService/pkg/pgerrors"
	"github.com/m04kA/SMC-InspectionService/pkg/psqlbuilder"
)

var columns = []string{
	"r.id",
	"r.booking_code",
	"r.center_id",
	"r.client_id",
	"r.vehicle_id",
	"r.category_id",
	"r.employee_id",
	"r.date",
	"r.start_time",
	"r.end_time",
	"r.duration_minutes",
	"r.status",
	"r.result",
	"r.report",
	"r.notes",
	"r.reminder_sent_at",
	"r.deleted_at",
	"r.created_at",
	"r.updated_at",
}

var detailColumns = []string{
	"TRIM(c.first_name || ' ' || c.last_name)",
	"c.phone",
	"c.email",
	"c.user_id",
	"v.license_plate",
	"v.brand",
	"v.model",
	"cat.name",
}

// Repository репозиторий записей на техосмотр
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись
// Нарушение EXCLUDE-ограничения возвращается как ErrOverlap, конфликт сериализации как ErrSerialization
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	report, err := marshalReport(res.Report)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal report: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"booking_code",
			"center_id",
			"client_id",
			"vehicle_id",
			"category_id",
			"employee_id",
			"date",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"result",
			"report",
			"notes",
		).
		Values(
			res.BookingCode,
			res.CenterID,
			res.ClientID,
			res.VehicleID,
			res.CategoryID,
			res.EmployeeID,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.DurationMinutes,
			res.Status,
			res.Result,
			report,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, classify("Create - execute insert", err)
	}

	return res, nil
}

// GetByID получает запись центра по ID (удаленные не возвращаются)
func (r *Repository) GetByID(ctx context.Context, centerID, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("reservations r").
		Where(squirrel.Eq{"r.id": id, "r.center_id": centerID, "r.deleted_at": nil})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetDetails получает запись с данными клиента, ТС и категории
func (r *Repository) GetDetails(ctx context.Context, centerID, id int64) (*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"r.id": id, "r.center_id": centerID, "r.deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - build select query: %v", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - scan reservation: %v", ErrScanRow, err)
	}

	return details, nil
}

// ExistsByCode проверяет, занят ли код записи (включая удаленные)
func (r *Repository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("reservations").
		Where(squirrel.Eq{"booking_code": code}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByCode - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsByCode - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// ListBlocking возвращает записи центра на дату, занимающие время (не отмененные и не удаленные)
// excludeID исключает редактируемую запись
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельные записи на ту же дату сериализовались
func (r *Repository) ListBlocking(ctx context.Context, centerID int64, date time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("reservations r").
		Where(squirrel.Eq{"r.center_id": centerID, "r.date": domain.DateOnly(date), "r.deleted_at": nil}).
		Where(squirrel.NotEq{"r.status": statusStrings(domain.NonBlockingStatuses)}).
		OrderBy("r.start_time ASC")

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"r.id": *excludeID})
	}
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("ListBlocking - execute query", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListByDate записи центра на дату с деталями, отсортированные по времени начала
func (r *Repository) ListByDate(ctx context.Context, centerID int64, date time.Time) ([]*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"r.center_id": centerID, "r.date": domain.DateOnly(date), "r.deleted_at": nil}).
		OrderBy("r.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetailsRows(rows)
}

// List возвращает страницу записей по фильтру и общее количество
// Сортировка: дата по убыванию, затем время начала по убыванию
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationDetails, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Eq{"r.center_id": filter.CenterID, "r.deleted_at": nil}}

	if filter.DateFrom != nil {
		where = append(where, squirrel.GtOrEq{"r.date": domain.DateOnly(*filter.DateFrom)})
	}
	if filter.DateTo != nil {
		where = append(where, squirrel.LtOrEq{"r.date": domain.DateOnly(*filter.DateTo)})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"r.status": *filter.Status})
	}
	if filter.Result != nil {
		where = append(where, squirrel.Eq{"r.result": *filter.Result})
	}
	if filter.ClientID != nil {
		where = append(where, squirrel.Eq{"r.client_id": *filter.ClientID})
	}
	if filter.ClientUserID != nil {
		where = append(where, squirrel.Eq{"c.user_id": *filter.ClientUserID})
	}
	if filter.EmployeeID != nil {
		where = append(where, squirrel.Eq{"r.employee_id": *filter.EmployeeID})
	}
	if filter.CategoryID != nil {
		where = append(where, squirrel.Eq{"r.category_id": *filter.CategoryID})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"c.first_name": pattern},
			squirrel.ILike{"c.last_name": pattern},
			squirrel.ILike{"v.license_plate": pattern},
			squirrel.ILike{"r.booking_code": pattern},
		})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("reservations r").
		Join("clients c ON c.id = r.client_id").
		Join("vehicles v ON v.id = r.vehicle_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	query, args, err := detailsSelect().
		Where(where).
		OrderBy("r.date DESC", "r.start_time DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items, err := scanDetailsRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Update сохраняет изменяемые поля записи
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	report, err := marshalReport(res.Report)
	if err != nil {
		return fmt.Errorf("%w: Update - marshal report: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("reservations").
		Set("category_id", res.CategoryID).
		Set("employee_id", res.EmployeeID).
		Set("date", res.Date).
		Set("start_time", res.StartTime).
		Set("end_time", res.EndTime).
		Set("duration_minutes", res.DurationMinutes).
		Set("status", res.Status).
		Set("result", res.Result).
		Set("report", report).
		Set("notes", res.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID, "center_id": res.CenterID, "deleted_at": nil}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReservationNotFound
	}
	if err != nil {
		return classify("Update - execute update", err)
	}

	return nil
}

// ListCancellableInRange записи центра в диапазоне дат (включительно) в статусах, которые можно отменить
func (r *Repository) ListCancellableInRange(ctx context.Context, centerID int64, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("reservations r").
		Where(squirrel.Eq{
			"r.center_id":  centerID,
			"r.deleted_at": nil,
			"r.status":     statusStrings(domain.CancellableStatuses),
		}).
		Where(squirrel.GtOrEq{"r.date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"r.date": domain.DateOnly(to)}).
		OrderBy("r.date ASC", "r.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCancellableInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCancellableInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// SoftDelete помечает запись удаленной; запись исчезает из всех списков
func (r *Repository) SoftDelete(ctx context.Context, centerID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "center_id": centerID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// ListForReminder подтвержденные записи на дату, по которым напоминание еще не отправлялось
func (r *Repository) ListForReminder(ctx context.Context, date time.Time, limit int) ([]*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{
			"r.date":             domain.DateOnly(date),
			"r.status":           domain.StatusConfirmed,
			"r.reminder_sent_at": nil,
			"r.deleted_at":       nil,
		}).
		OrderBy("r.center_id ASC", "r.start_time ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForReminder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForReminder - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetailsRows(rows)
}

// MarkReminderSent фиксирует отправку напоминания
func (r *Repository) MarkReminderSent(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("reminder_sent_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(append(append([]string{}, columns...), detailColumns...)...).
		From("reservations r").
		Join("clients c ON c.id = r.client_id").
		Join("vehicles v ON v.id = r.vehicle_id").
		Join("categories cat ON cat.id = r.category_id")
}

// classify переводит ошибки PostgreSQL в ошибки репозитория
// Исходная *pq.Error остается в цепочке: txmanager по ней решает, повторять ли транзакцию
func classify(op string, err error) error {
	switch {
	case pgerrors.IsExclusionViolation(err):
		return fmt.Errorf("%w: %s: %w", ErrOverlap, op, err)
	case pgerrors.IsSerializationFailure(err):
		return fmt.Errorf("%w: %s: %w", ErrSerialization, op, err)
	case pgerrors.IsUniqueViolation(err) && pgerrors.Constraint(err) == "uq_reservations_booking_code":
		return fmt.Errorf("%w: %s: %w", ErrDuplicateCode, op, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
	}
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// marshalReport возвращает nil-интерфейс для пустого протокола, чтобы в jsonb записался NULL
func marshalReport(report *domain.InspectionReport) (any, error) {
	if report == nil {
		return nil, nil
	}
	b, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func reservationDest(res *domain.Reservation, result *sql.NullString, report *[]byte) []any {
	return []any{
		&res.ID,
		&res.BookingCode,
		&res.CenterID,
		&res.ClientID,
		&res.VehicleID,
		&res.CategoryID,
		&res.EmployeeID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.DurationMinutes,
		&res.Status,
		result,
		report,
		&res.Notes,
		&res.ReminderSentAt,
		&res.DeletedAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	}
}

func fillOptional(res *domain.Reservation, result sql.NullString, report []byte) error {
	if result.Valid {
		v := domain.InspectionResult(result.String)
		res.Result = &v
	}
	if len(report) > 0 {
		var rep domain.InspectionReport
		if err := json.Unmarshal(report, &rep); err != nil {
			return fmt.Errorf("decode report: %w", err)
		}
		res.Report = &rep
	}
	return nil
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res    domain.Reservation
		result sql.NullString
		report []byte
	)

	if err := row.Scan(reservationDest(&res, &result, &report)...); err != nil {
		return nil, err
	}
	if err := fillOptional(&res, result, report); err != nil {
		return nil, err
	}

	return &res, nil
}

func scanDetails(row rowScanner) (*domain.ReservationDetails, error) {
	var (
		d      domain.ReservationDetails
		result sql.NullString
		report []byte
	)

	dest := reservationDest(&d.Reservation, &result, &report)
	dest = append(dest,
		&d.ClientName,
		&d.ClientPhone,
		&d.ClientEmail,
		&d.ClientUserID,
		&d.LicensePlate,
		&d.VehicleBrand,
		&d.VehicleModel,
		&d.CategoryName,
	)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := fillOptional(&d.Reservation, result, report); err != nil {
		return nil, err
	}

	return &d, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	items := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		items = append(items, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}
	return items, nil
}

func scanDetailsRows(rows *sql.Rows) ([]*domain.ReservationDetails, error) {
	items := make([]*domain.ReservationDetails, 0)
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDetailsRows - scan row: %v", ErrScanRow, err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetailsRows - rows error: %v", ErrScanRow, err)
	}
	return items, nil
}
