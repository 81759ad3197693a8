// Package slots кэш сетки слотов в Redis: хэш на центр/дату, поле - категория
package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

const defaultField = "default"

var (
	// ErrCacheRead ошибка чтения из Redis
	ErrCacheRead = errors.New("slots.cache: failed to read")

	// ErrCacheWrite ошибка записи в Redis
	ErrCacheWrite = errors.New("slots.cache: failed to write")
)

// Entry закэшированная сетка дня
type Entry struct {
	Slots       []domain.Slot
	HolidayName *string
}

type cachedSlot struct {
	Start     types.TimeString `json:"s"`
	End       types.TimeString `json:"e"`
	Available bool             `json:"a"`
}

type cachedEntry struct {
	Slots       []cachedSlot `json:"slots"`
	HolidayName *string      `json:"holiday,omitempty"`
}

// Metrics счетчик попаданий (опционально)
type Metrics interface {
	IncSlotCache(result string)
}

// Cache кэш слотов
type Cache struct {
	rdb     redis.Cmdable
	ttl     time.Duration
	metrics Metrics
}

// NewCache создает кэш; metrics может быть nil
func NewCache(rdb redis.Cmdable, ttl time.Duration, metrics Metrics) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, metrics: metrics}
}

// Key ключ хэша центра на дату
func Key(centerID int64, date time.Time) string {
	return fmt.Sprintf("slots:%d:%s", centerID, date.Format(domain.DateFormat))
}

func field(categoryID *int64) string {
	if categoryID == nil {
		return defaultField
	}
	return strconv.FormatInt(*categoryID, 10)
}

// Get возвращает сетку из кэша; ok=false при промахе
func (c *Cache) Get(ctx context.Context, centerID int64, date time.Time, categoryID *int64) (*Entry, bool, error) {
	raw, err := c.rdb.HGet(ctx, Key(centerID, date), field(categoryID)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.observe("miss")
		return nil, false, nil
	}
	if err != nil {
		c.observe("error")
		return nil, false, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	var cached cachedEntry
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.observe("error")
		return nil, false, fmt.Errorf("%w: decode: %v", ErrCacheRead, err)
	}

	entry := &Entry{Slots: make([]domain.Slot, len(cached.Slots)), HolidayName: cached.HolidayName}
	for i, s := range cached.Slots {
		entry.Slots[i] = domain.Slot{StartTime: s.Start, EndTime: s.End, IsAvailable: s.Available}
	}

	c.observe("hit")
	return entry, true, nil
}

// Set сохраняет сетку; TTL выставляется на весь хэш
func (c *Cache) Set(ctx context.Context, centerID int64, date time.Time, categoryID *int64, entry *Entry) error {
	cached := cachedEntry{Slots: make([]cachedSlot, len(entry.Slots)), HolidayName: entry.HolidayName}
	for i, s := range entry.Slots {
		cached.Slots[i] = cachedSlot{Start: s.StartTime, End: s.EndTime, Available: s.IsAvailable}
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCacheWrite, err)
	}

	key := Key(centerID, date)
	if err := c.rdb.HSet(ctx, key, field(categoryID), raw).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	if err := c.rdb.Expire(ctx, key, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: expire: %v", ErrCacheWrite, err)
	}

	return nil
}

// Invalidate удаляет сетки центра на перечисленные даты
func (c *Cache) Invalidate(ctx context.Context, centerID int64, dates ...time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	keys := make([]string, 0, len(dates))
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		k := Key(centerID, d)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCacheWrite, err)
	}
	return nil
}

func (c *Cache) observe(result string) {
	if c.metrics != nil {
		c.metrics.IncSlotCache(result)
	}
}

// Disabled кэш без хранилища для запуска без Redis: всегда промах
type Disabled struct{}

func (Disabled) Get(context.Context, int64, time.Time, *int64) (*Entry, bool, error) {
	return nil, false, nil
}

func (Disabled) Set(context.Context, int64, time.Time, *int64, *Entry) error {
	return nil
}

func (Disabled) Invalidate(context.Context, int64, ...time.Time) error {
	return nil
}
