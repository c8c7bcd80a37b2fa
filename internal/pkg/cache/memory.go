package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache keeps actionable shifts in process. Entries are stored encoded
// so callers never share memory with the cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements shift.ActionableShiftCache.
func (c *MemoryCache) Get(ctx context.Context, userCode string, date time.Time) (shift.ShiftRecord, error) {
	c.mu.RLock()
	entry, ok := c.entries[Key(userCode, date)]
	c.mu.RUnlock()

	if !ok || c.expired(entry) {
		return shift.ShiftRecord{}, shift.ErrCacheMiss
	}
	return decode(entry.value)
}

// Set implements shift.ActionableShiftCache.
func (c *MemoryCache) Set(ctx context.Context, userCode string, date time.Time, record shift.ShiftRecord) error {
	data, err := encode(record)
	if err != nil {
		return err
	}

	entry := memoryEntry{value: data}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[Key(userCode, date)] = entry
	c.mu.Unlock()
	return nil
}

// PurgeExpired drops expired entries. Its signature matches a cron job.
func (c *MemoryCache) PurgeExpired(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	purged := 0
	for key, entry := range c.entries {
		if c.expired(entry) {
			delete(c.entries, key)
			purged++
		}
	}
	if purged > 0 {
		slog.Info("Purged expired actionable shifts", "count", purged, "remaining", len(c.entries))
	}
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}
