// Package catalog in-process L1 кэш редко меняющихся справочников (центры, категории) на ristretto
package catalog

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Store обертка над ristretto: строковый ключ, значение - сериализованный JSON
type Store struct {
	c *ristretto.Cache[string, []byte]
}

// NewStore создает кэш; maxCostBytes - максимальный суммарный размер значений
func NewStore(maxCostBytes, numCounters int64) (*Store, error) {
	if numCounters <= 0 {
		numCounters = maxCostBytes / 100 * 10
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: numCounters,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(key string) ([]byte, bool) {
	return s.c.Get(key)
}

func (s *Store) Set(key string, value []byte, ttl time.Duration) {
	s.c.SetWithTTL(key, value, int64(len(value)), ttl)
}

func (s *Store) Delete(key string) {
	s.c.Del(key)
}

// Wait дожидается применения буферизованных записей
func (s *Store) Wait() {
	s.c.Wait()
}

func (s *Store) Close() {
	s.c.Close()
}
