package smsusage

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionService/pkg/psqlbuilder"
)

// Repository учет отправленных SMS по центрам и месяцам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория использования SMS
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// MonthStart первое число месяца даты
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Get возвращает использование за месяц, создавая строку с квотой defaultQuota при первом обращении
func (r *Repository) Get(ctx context.Context, centerID int64, month time.Time, defaultQuota int) (*domain.SMSUsage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	month = MonthStart(month)

	query, args, err := psqlbuilder.Insert("sms_usage").
		Columns("center_id", "month", "sent_count", "quota").
		Values(centerID, month, 0, defaultQuota).
		Suffix("ON CONFLICT (center_id, month) DO UPDATE SET quota = sms_usage.quota RETURNING sent_count, quota").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build upsert query: %v", ErrBuildQuery, err)
	}

	usage := domain.SMSUsage{CenterID: centerID, Month: month}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&usage.SentCount, &usage.Quota); err != nil {
		return nil, fmt.Errorf("%w: Get - execute upsert: %v", ErrExecQuery, err)
	}

	return &usage, nil
}

// Increment увеличивает счетчик отправленных SMS за месяц
func (r *Repository) Increment(ctx context.Context, centerID int64, month time.Time, defaultQuota int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sms_usage").
		Columns("center_id", "month", "sent_count", "quota").
		Values(centerID, MonthStart(month), 1, defaultQuota).
		Suffix("ON CONFLICT (center_id, month) DO UPDATE SET sent_count = sms_usage.sent_count + 1").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Increment - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Increment - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
