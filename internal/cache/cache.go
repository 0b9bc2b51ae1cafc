// Package cache holds the conflation-decision cache: an L1 Redis cache in
// front of an L2 MongoDB cache, the same two-tier shape as the teacher's
// hybrid_cache_service.go.
package cache

import (
	"context"
	"strconv"
	"time"
)

// Stats mirrors the teacher's CacheStats shape.
type Stats struct {
	HitRate    float64
	TotalHits  int64
	TotalMiss  int64
	TotalItems int64
}

// Key identifies one cached conflation decision: the new-side feature id
// plus the strictness mode, since the same feature can be asked about under
// both modes. The master candidates are not part of the key.
type Key struct {
	NewID  int64
	Strict bool
}

func (k Key) string() string {
	mode := "loose"
	if k.Strict {
		mode = "strict"
	}
	return "conflate:" + mode + ":" + strconv.FormatInt(k.NewID, 10)
}

// Cache is the contract RedisCache, MongoCache, and HybridCache satisfy.
type Cache interface {
	Get(ctx context.Context, key Key) (Decision, bool, error)
	Set(ctx context.Context, key Key, decision Decision) error
	Delete(ctx context.Context, key Key) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

// Decision is the cached form of a store.ConflationDecision, kept as its
// own type so this package does not import internal/store.
type Decision struct {
	MasterID int64
	NewID    int64
	Score    float64
	Matched  bool
	CachedAt time.Time
}
