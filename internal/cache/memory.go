package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"isstracker/internal/metrics"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
)

const memoryBackend = "memory"

type entry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache - потокобезопасный кэш в памяти процесса.
// Истечение проверяется лениво при чтении, размер не ограничен.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   clockwork.Clock
}

func NewMemoryCache(clock clockwork.Clock) *MemoryCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryCache{
		entries: make(map[string]entry),
		clock:   clock,
	}
}

func (c *MemoryCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		metrics.CacheMisses.WithLabelValues(memoryBackend).Inc()
		return false, nil
	}

	if !c.clock.Now().Before(e.expiresAt) {
		c.mu.Lock()
		// Запись могли перезаписать, пока лок был отпущен
		if cur, ok := c.entries[key]; ok && !c.clock.Now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		metrics.CacheEntries.Set(float64(len(c.entries)))
		c.mu.Unlock()

		metrics.CacheMisses.WithLabelValues(memoryBackend).Inc()
		return false, nil
	}

	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value %q: %w", key, err)
	}

	metrics.CacheHits.WithLabelValues(memoryBackend).Inc()
	return true, nil
}

func (c *MemoryCache) SetJSON(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	c.mu.Lock()
	c.entries[key] = entry{
		data:      data,
		expiresAt: c.clock.Now().Add(ttl),
	}
	metrics.CacheEntries.Set(float64(len(c.entries)))
	c.mu.Unlock()

	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	metrics.CacheEntries.Set(float64(len(c.entries)))
	c.mu.Unlock()

	return nil
}

// Len - количество записей, включая еще не вычищенные истекшие
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// DeleteExpired удаляет все истекшие записи и возвращает их число
func (c *MemoryCache) DeleteExpired() int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	metrics.CacheEntries.Set(float64(len(c.entries)))
	return removed
}

// StartJanitor периодически чистит истекшие записи, пока жив ctx.
// Для корректности не нужен: истечение и так проверяется при чтении.
func (c *MemoryCache) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := c.clock.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.Chan():
				c.DeleteExpired()
			case <-ctx.Done():
				return
			}
		}
	}()
}
