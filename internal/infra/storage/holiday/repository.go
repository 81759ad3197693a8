package holiday

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"center_id",
	"name",
	"description",
	"start_date",
	"end_date",
	"is_recurring",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий выходных дней центра
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория выходных
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает выходной
func (r *Repository) Create(ctx context.Context, h *domain.Holiday) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var endDate *time.Time
	if h.EndDate != nil {
		d := domain.DateOnly(*h.EndDate)
		endDate = &d
	}

	query, args, err := psqlbuilder.Insert("holidays").
		Columns("center_id", "name", "description", "start_date", "end_date", "is_recurring", "is_active").
		Values(h.CenterID, h.Name, h.Description, domain.DateOnly(h.StartDate), endDate, h.IsRecurring, h.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return h, nil
}

// GetByID получает выходной центра по ID
func (r *Repository) GetByID(ctx context.Context, centerID, id int64) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("holidays").
		Where(squirrel.Eq{"id": id, "center_id": centerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanHoliday(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan holiday: %v", ErrScanRow, err)
	}

	return h, nil
}

// List выходные центра по фильтру (год/месяц пересекаются с периодом выходного)
func (r *Repository) List(ctx context.Context, filter domain.HolidayFilter) ([]*domain.Holiday, error) {
	builder := psqlbuilder.Select(columns...).
		From("holidays").
		Where(squirrel.Eq{"center_id": filter.CenterID}).
		OrderBy("start_date ASC")

	if !filter.IncludeInactive {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	if filter.Year != nil {
		from := time.Date(*filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(1, 0, -1)
		if filter.Month != nil {
			from = time.Date(*filter.Year, time.Month(*filter.Month), 1, 0, 0, 0, 0, time.UTC)
			to = from.AddDate(0, 1, -1)
		}
		builder = builder.
			Where(squirrel.LtOrEq{"start_date": to}).
			Where(squirrel.Expr("COALESCE(end_date, start_date) >= ?", from))
	}

	return r.list(ctx, "List", builder)
}

// Upcoming ближайшие активные выходные, которые еще не закончились
func (r *Repository) Upcoming(ctx context.Context, centerID int64, today time.Time, limit int) ([]*domain.Holiday, error) {
	builder := psqlbuilder.Select(columns...).
		From("holidays").
		Where(squirrel.Eq{"center_id": centerID, "is_active": true}).
		Where(squirrel.Expr("COALESCE(end_date, start_date) >= ?", domain.DateOnly(today))).
		OrderBy("start_date ASC").
		Limit(uint64(limit))

	return r.list(ctx, "Upcoming", builder)
}

// FindActiveCovering активный выходной центра, покрывающий дату; nil, если такого нет
func (r *Repository) FindActiveCovering(ctx context.Context, centerID int64, date time.Time) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := domain.DateOnly(date)

	query, args, err := psqlbuilder.Select(columns...).
		From("holidays").
		Where(squirrel.Eq{"center_id": centerID, "is_active": true}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.Expr("COALESCE(end_date, start_date) >= ?", day)).
		OrderBy("start_date ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveCovering - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanHoliday(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveCovering - scan holiday: %v", ErrScanRow, err)
	}

	return h, nil
}

// SetActive включает или выключает выходной
func (r *Repository) SetActive(ctx context.Context, centerID, id int64, active bool) (*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("holidays").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "center_id": centerID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	h, err := scanHoliday(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	return h, nil
}

// Delete удаляет выходной (физически)
func (r *Repository) Delete(ctx context.Context, centerID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holidays").
		Where(squirrel.Eq{"id": id, "center_id": centerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrHolidayNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]*domain.Holiday, 0)
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHoliday(row rowScanner) (*domain.Holiday, error) {
	var h domain.Holiday
	err := row.Scan(
		&h.ID,
		&h.CenterID,
		&h.Name,
		&h.Description,
		&h.StartDate,
		&h.EndDate,
		&h.IsRecurring,
		&h.IsActive,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
