package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// ReportCache stores point-in-time report snapshots. A nil *ReportCache is valid and caches nothing.
//
// Every snapshot is tagged with the cache generation observed before the report read its
// data. Invalidate moves the generation forward, so a snapshot built from data read before a
// mutation committed is never served afterwards, even if it is written after the invalidation.
type ReportCache struct {
	cache Cache
	ttl   time.Duration
}

type cachedReport struct {
	Generation string          `json:"generation"`
	Report     json.RawMessage `json:"report"`
}

// NewReportCache creates a ReportCache backed by cache. Returns nil when cache is nil.
func NewReportCache(cache Cache, ttl time.Duration) *ReportCache {
	if cache == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultReportCacheTTL
	}
	return &ReportCache{cache: cache, ttl: ttl}
}

func (c *ReportCache) generation(ctx context.Context) string {
	data, err := c.cache.Get(ctx, reportKeyGeneration)
	if err != nil {
		return ""
	}
	return string(data)
}

// load decodes a cached snapshot of the current generation into dst. Misses, stale snapshots
// and cache failures all return false. The returned generation must be passed to store.
func (c *ReportCache) load(ctx context.Context, key string, dst any) (string, bool) {
	if c == nil {
		return "", false
	}

	gen := c.generation(ctx)

	data, err := c.cache.Get(ctx, key)
	if err != nil || data == nil {
		return gen, false
	}

	var snapshot cachedReport
	if err := json.Unmarshal(data, &snapshot); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("discarding unreadable cached report")
		return gen, false
	}
	if snapshot.Generation != gen {
		return gen, false
	}

	if err := json.Unmarshal(snapshot.Report, dst); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("discarding unreadable cached report")
		return gen, false
	}

	return gen, true
}

func (c *ReportCache) store(ctx context.Context, key, gen string, v any) {
	if c == nil {
		return
	}

	report, err := json.Marshal(v)
	if err != nil {
		return
	}
	data, err := json.Marshal(cachedReport{Generation: gen, Report: report})
	if err != nil {
		return
	}

	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to cache report")
	}
}

// Invalidate starts a new cache generation and drops every cached balance snapshot.
// Called after each committed mutation.
func (c *ReportCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	if err := c.cache.Set(ctx, reportKeyGeneration, []byte(ulid.Make().String()), 0); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to advance report cache generation")
	}

	if err := c.cache.Delete(ctx, reportKeyTrialBalance, reportKeyBalanceSheet); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate cached reports")
	}
}
