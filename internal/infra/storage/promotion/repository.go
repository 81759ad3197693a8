package promotion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionService/pkg/pgerrors"
	"github.com/m04kA/SMC-InspectionService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"center_id",
	"name",
	"description",
	"code",
	"discount_type",
	"discount_value",
	"usage_limit",
	"used_count",
	"start_date",
	"end_date",
	"is_active",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий акций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория акций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает акцию; код хранится в верхнем регистре
func (r *Repository) Create(ctx context.Context, p *domain.Promotion) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))

	query, args, err := psqlbuilder.Insert("promotions").
		Columns("center_id", "name", "description", "code", "discount_type", "discount_value",
			"usage_limit", "start_date", "end_date", "is_active").
		Values(p.CenterID, p.Name, p.Description, p.Code, p.DiscountType, p.DiscountValue,
			p.UsageLimit, p.StartDate, p.EndDate, p.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if pgerrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, p.Code)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// GetByCode ищет действующую (не удаленную) акцию центра по коду
func (r *Repository) GetByCode(ctx context.Context, centerID int64, code string) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("promotions").
		Where(squirrel.Eq{
			"center_id":  centerID,
			"code":       strings.ToUpper(strings.TrimSpace(code)),
			"deleted_at": nil,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPromotion(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan promotion: %v", ErrScanRow, err)
	}

	return p, nil
}

// ExistsByCode проверяет, занят ли код среди не удаленных акций центра
func (r *Repository) ExistsByCode(ctx context.Context, centerID int64, code string) (bool, error) {
	_, err := r.GetByCode(ctx, centerID, code)
	if errors.Is(err, ErrPromotionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List акции центра, новые первыми
func (r *Repository) List(ctx context.Context, centerID int64, activeOnly bool) ([]*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("promotions").
		Where(squirrel.Eq{"center_id": centerID, "deleted_at": nil}).
		OrderBy("created_at DESC")

	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.Promotion, 0)
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPromotion(row rowScanner) (*domain.Promotion, error) {
	var p domain.Promotion
	err := row.Scan(
		&p.ID,
		&p.CenterID,
		&p.Name,
		&p.Description,
		&p.Code,
		&p.DiscountType,
		&p.DiscountValue,
		&p.UsageLimit,
		&p.UsedCount,
		&p.StartDate,
		&p.EndDate,
		&p.IsActive,
		&p.DeletedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
