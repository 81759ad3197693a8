package client

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
	"user_id",
	"first_name",
	"last_name",
	"phone",
	"email",
	"type",
	"last_activity_at",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий клиентов центра
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента центра по ID (удаленные не возвращаются)
func (r *Repository) GetByID(ctx context.Context, centerID, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("clients").
		Where(squirrel.Eq{"id": id, "center_id": centerID, "deleted_at": nil}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanClient(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan client: %v", ErrScanRow, err)
	}

	return c, nil
}

// FindByPhoneOrEmail ищет клиента центра по телефону или email (email без учета регистра)
// Внутри транзакции строка блокируется
func (r *Repository) FindByPhoneOrEmail(ctx context.Context, centerID int64, phone, email string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	match := squirrel.Or{}
	if phone != "" {
		match = append(match, squirrel.Eq{"phone": phone})
	}
	if email != "" {
		match = append(match, squirrel.Eq{"lower(email)": strings.ToLower(email)})
	}
	if len(match) == 0 {
		return nil, ErrClientNotFound
	}

	builder := psqlbuilder.Select(columns...).
		From("clients").
		Where(squirrel.Eq{"center_id": centerID, "deleted_at": nil}).
		Where(match).
		OrderBy("id ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByPhoneOrEmail - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanClient(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByPhoneOrEmail - scan client: %w", ErrScanRow, err)
	}

	return c, nil
}

// Create создает клиента
func (r *Repository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if c.Type == "" {
		c.Type = domain.ClientTypeNormal
	}

	query, args, err := psqlbuilder.Insert("clients").
		Columns("center_id", "user_id", "first_name", "last_name", "phone", "email", "type", "last_activity_at").
		Values(c.CenterID, c.UserID, c.FirstName, c.LastName, c.Phone, c.Email, c.Type, c.LastActivityAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return c, nil
}

// Touch обновляет время последней активности клиента
func (r *Repository) Touch(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clients").
		Set("last_activity_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Touch - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Touch - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ListRecentlyActive последние активные клиенты центра, не более limit
func (r *Repository) ListRecentlyActive(ctx context.Context, centerID int64, limit int) ([]*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("clients").
		Where(squirrel.Eq{"center_id": centerID, "deleted_at": nil}).
		OrderBy("last_activity_at DESC NULLS LAST", "id DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRecentlyActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecentlyActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRecentlyActive - scan row: %v", ErrScanRow, err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRecentlyActive - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.CenterID,
		&c.UserID,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&c.Email,
		&c.Type,
		&c.LastActivityAt,
		&c.DeletedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
