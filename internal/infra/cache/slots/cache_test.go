package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/ptr"
)

var testDate = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func TestGet_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCache(db, time.Minute, nil)

	mock.ExpectHGet("slots:1:2026-10-19", "default").RedisNil()

	entry, ok, err := cache.Get(context.Background(), 1, testDate, nil)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, entry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCache(db, time.Minute, nil)

	mock.ExpectHGet("slots:1:2026-10-19", "7").
		SetVal(`{"slots":[{"s":"09:00","e":"09:45","a":false},{"s":"09:45","e":"10:30","a":true}]}`)

	entry, ok, err := cache.Get(context.Background(), 1, testDate, ptr.Ptr[int64](7))

	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, entry.Slots, 2)
	assert.Equal(t, domain.Slot{StartTime: "09:00", EndTime: "09:45", IsAvailable: false}, entry.Slots[0])
	assert.True(t, entry.Slots[1].IsAvailable)
	assert.Nil(t, entry.HolidayName)
}

func TestSet_WritesFieldAndTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCache(db, 5*time.Minute, nil)

	mock.ExpectHSet("slots:1:2026-10-19", "default",
		[]byte(`{"slots":[{"s":"09:00","e":"09:30","a":true}]}`)).SetVal(1)
	mock.ExpectExpire("slots:1:2026-10-19", 5*time.Minute).SetVal(true)

	err := cache.Set(context.Background(), 1, testDate, nil, &Entry{
		Slots: []domain.Slot{{StartTime: "09:00", EndTime: "09:30", IsAvailable: true}},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidate_DeduplicatesDates(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCache(db, time.Minute, nil)

	mock.ExpectDel("slots:1:2026-10-19", "slots:1:2026-10-20").SetVal(2)

	err := cache.Invalidate(context.Background(), 1, testDate, testDate, testDate.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_RedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewCache(db, time.Minute, nil)

	mock.ExpectHGet("slots:1:2026-10-19", "default").SetErr(errors.New("connection refused"))

	_, _, err := cache.Get(context.Background(), 1, testDate, nil)

	assert.ErrorIs(t, err, ErrCacheRead)
}

func TestDisabled_AlwaysMisses(t *testing.T) {
	var cache Disabled

	require.NoError(t, cache.Set(context.Background(), 1, testDate, nil, &Entry{}))
	entry, ok, err := cache.Get(context.Background(), 1, testDate, nil)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, entry)
	assert.NoError(t, cache.Invalidate(context.Background(), 1, testDate))
}
