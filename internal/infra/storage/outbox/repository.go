// Package outbox хранилище исходящих доменных событий (transactional outbox)
package outbox

import (
	"context"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-InspectionService/pkg/psqlbuilder"
)

// maxErrorLength ограничение длины сохраняемой ошибки доставки, в байтах
const maxErrorLength = 2000

// truncateError обрезает текст ошибки по границе руны: Postgres не примет обрезанный UTF-8
func truncateError(cause string) string {
	if len(cause) <= maxErrorLength {
		return cause
	}
	cut := maxErrorLength
	for cut > 0 && !utf8.RuneStart(cause[cut]) {
		cut--
	}
	return cause[:cut]
}

// Repository репозиторий outbox
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Add записывает событие; вызывается в транзакции изменения состояния
func (r *Repository) Add(ctx context.Context, event *domain.Event) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	query, args, err := psqlbuilder.Insert("outbox_events").
		Columns("id", "name", "center_id", "payload", "status", "occurred_at", "available_at").
		Values(event.ID, event.Name, event.CenterID, string(event.Payload), domain.OutboxPending, event.OccurredAt, event.OccurredAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Add - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Add - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Claim забирает до limit готовых к доставке событий и блокирует их на lockFor
// Зависшие в processing события (истек locked_until) забираются повторно
// Параллельные relay не получают одни и те же строки (FOR UPDATE SKIP LOCKED)
func (r *Repository) Claim(ctx context.Context, now time.Time, limit int, lockFor time.Duration) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ready := squirrel.Select("id").
		From("outbox_events").
		Where(squirrel.Or{
			squirrel.And{squirrel.Eq{"status": domain.OutboxPending}, squirrel.LtOrEq{"available_at": now}},
			squirrel.And{squirrel.Eq{"status": domain.OutboxProcessing}, squirrel.Lt{"locked_until": now}},
		}).
		OrderBy("occurred_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED")

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("status", domain.OutboxProcessing).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("locked_until", now.Add(lockFor)).
		Where(squirrel.Expr("id IN (?)", ready)).
		Suffix("RETURNING id, name, center_id, payload, occurred_at, attempts").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Claim - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Claim - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0, limit)
	for rows.Next() {
		var (
			e       domain.Event
			payload []byte
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.CenterID, &payload, &e.OccurredAt, &e.Attempts); err != nil {
			return nil, fmt.Errorf("%w: Claim - scan row: %v", ErrScanRow, err)
		}
		e.Payload = payload
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Claim - rows error: %v", ErrScanRow, err)
	}

	// RETURNING не гарантирует порядок
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].OccurredAt.Before(events[j].OccurredAt)
	})

	return events, nil
}

// MarkDispatched событие доставлено
func (r *Repository) MarkDispatched(ctx context.Context, id uuid.UUID, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("status", domain.OutboxDispatched).
		Set("dispatched_at", at).
		Set("locked_until", nil).
		Set("last_error", nil).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkDispatched - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkDispatched - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// MarkFailed фиксирует ошибку доставки
// retryAt != nil - событие вернется в очередь в указанное время, иначе помечается окончательно неудачным
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, cause string, retryAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cause = truncateError(cause)

	builder := psqlbuilder.Update("outbox_events").
		Set("last_error", cause).
		Set("locked_until", nil).
		Where(squirrel.Eq{"id": id})

	if retryAt != nil {
		builder = builder.Set("status", domain.OutboxPending).Set("available_at", *retryAt)
	} else {
		builder = builder.Set("status", domain.OutboxFailed)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkFailed - execute update: %v", ErrExecQuery, err)
	}

	return nil
}
