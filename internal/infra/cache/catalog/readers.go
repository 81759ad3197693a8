package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// CenterRepository источник центров
type CenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Center, error)
}

// CategoryRepository источник категорий
type CategoryRepository interface {
	GetByID(ctx context.Context, centerID, id int64) (*domain.Category, error)
}

// Centers читает центры через L1 кэш
type Centers struct {
	repo  CenterRepository
	store *Store
	ttl   time.Duration
}

func NewCenters(repo CenterRepository, store *Store, ttl time.Duration) *Centers {
	return &Centers{repo: repo, store: store, ttl: ttl}
}

// GetByID возвращает центр; ошибки репозитория пробрасываются без изменений
func (c *Centers) GetByID(ctx context.Context, id int64) (*domain.Center, error) {
	key := fmt.Sprintf("center:%d", id)
	return cached(ctx, c.store, key, c.ttl, func(ctx context.Context) (*domain.Center, error) {
		return c.repo.GetByID(ctx, id)
	})
}

// Categories читает категории через L1 кэш
type Categories struct {
	repo  CategoryRepository
	store *Store
	ttl   time.Duration
}

func NewCategories(repo CategoryRepository, store *Store, ttl time.Duration) *Categories {
	return &Categories{repo: repo, store: store, ttl: ttl}
}

func (c *Categories) GetByID(ctx context.Context, centerID, id int64) (*domain.Category, error) {
	key := fmt.Sprintf("category:%d:%d", centerID, id)
	return cached(ctx, c.store, key, c.ttl, func(ctx context.Context) (*domain.Category, error) {
		return c.repo.GetByID(ctx, centerID, id)
	})
}

// cached читает значение из кэша или загружает его; поврежденная запись перечитывается из источника
func cached[T any](ctx context.Context, store *Store, key string, ttl time.Duration, load func(context.Context) (*T, error)) (*T, error) {
	if raw, ok := store.Get(key); ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return &v, nil
		}
		store.Delete(key)
	}

	v, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(v); err == nil {
		store.Set(key, raw, ttl)
	}

	return v, nil
}
