package cron

import (
	"context"
	"time"
)

// ExpiringCache is a cache that needs its expired entries swept.
type ExpiringCache interface {
	PurgeExpired(ctx context.Context) error
}

// CacheJobs contains housekeeping jobs for the in-process actionable-shift cache
type CacheJobs struct {
	cache    ExpiringCache
	interval time.Duration
}

func NewCacheJobs(cache ExpiringCache, interval time.Duration) *CacheJobs {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &CacheJobs{cache: cache, interval: interval}
}

func (j *CacheJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_actionable_shifts", j.interval, j.PurgeExpired)
}

func (j *CacheJobs) PurgeExpired(ctx context.Context) error {
	return j.cache.PurgeExpired(ctx)
}
