package center

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionService/pkg/psqlbuilder"
)

// Repository репозиторий центров техосмотра (только чтение: создание центров вне сервиса)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория центров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает центр по ID вместе с расписанием работы
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Center, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timezone",
		"currency",
		"owner_user_id",
		"phone",
		"email",
		"opening_hours",
		"sms_sender_name",
		"sms_api_key",
		"created_at",
		"updated_at",
	).
		From("centers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		c     domain.Center
		hours []byte
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Timezone,
		&c.Currency,
		&c.OwnerUserID,
		&c.Phone,
		&c.Email,
		&hours,
		&c.SMSSenderName,
		&c.SMSAPIKey,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCenterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan center: %v", ErrScanRow, err)
	}

	c.OpeningHours = domain.OpeningHours{}
	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &c.OpeningHours); err != nil {
			return nil, fmt.Errorf("%w: GetByID - decode opening hours: %v", ErrScanRow, err)
		}
	}

	return &c, nil
}
