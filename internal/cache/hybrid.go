package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// HybridCache checks Redis (L1) before falling back to MongoDB (L2),
// syncing L2 hits back up to L1 in the background.
type HybridCache struct {
	redis  *RedisCache
	mongo  *MongoCache
	logger *zap.Logger
}

// NewHybridCache combines an already-constructed RedisCache and MongoCache.
func NewHybridCache(redis *RedisCache, mongo *MongoCache, logger *zap.Logger) *HybridCache {
	return &HybridCache{redis: redis, mongo: mongo, logger: logger}
}

func (h *HybridCache) Get(ctx context.Context, key Key) (Decision, bool, error) {
	d, found, err := h.redis.Get(ctx, key)
	if err != nil {
		h.logger.Warn("hybrid cache: redis error, falling back to mongo", zap.Error(err))
	} else if found {
		return d, true, nil
	}

	d, found, err = h.mongo.Get(ctx, key)
	if err != nil {
		return Decision{}, false, err
	}
	if !found {
		return Decision{}, false, nil
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.redis.Set(bgCtx, key, d); err != nil {
			h.logger.Warn("hybrid cache: failed syncing mongo->redis", zap.Error(err))
		}
	}()

	return d, true, nil
}

func (h *HybridCache) Set(ctx context.Context, key Key, d Decision) error {
	errCh := make(chan error, 2)
	go func() { errCh <- h.redis.Set(ctx, key, d) }()
	go func() { errCh <- h.mongo.Set(ctx, key, d) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("hybrid cache set errors: %v", errs)
	}
	return nil
}

func (h *HybridCache) Delete(ctx context.Context, key Key) error {
	errCh := make(chan error, 2)
	go func() { errCh <- h.redis.Delete(ctx, key) }()
	go func() { errCh <- h.mongo.Delete(ctx, key) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("hybrid cache delete errors: %v", errs)
	}
	return nil
}

func (h *HybridCache) Clear(ctx context.Context) error {
	if err := h.redis.Clear(ctx); err != nil {
		return err
	}
	return h.mongo.Clear(ctx)
}

func (h *HybridCache) Stats(ctx context.Context) (Stats, error) {
	rs, rErr := h.redis.Stats(ctx)
	ms, mErr := h.mongo.Stats(ctx)
	if rErr != nil && mErr != nil {
		return Stats{}, fmt.Errorf("hybrid cache stats: redis=%v mongo=%v", rErr, mErr)
	}
	if rErr != nil {
		return ms, nil
	}
	if mErr != nil {
		return rs, nil
	}
	totalHits := rs.TotalHits + ms.TotalHits
	totalMiss := rs.TotalMiss + ms.TotalMiss
	total := totalHits + totalMiss
	var hitRate float64
	if total > 0 {
		hitRate = float64(totalHits) / float64(total)
	}
	return Stats{HitRate: hitRate, TotalHits: totalHits, TotalMiss: totalMiss, TotalItems: rs.TotalItems + ms.TotalItems}, nil
}

func (h *HybridCache) Close() error {
	if err := h.redis.Close(); err != nil {
		return err
	}
	return h.mongo.Close()
}

var _ Cache = (*HybridCache)(nil)
