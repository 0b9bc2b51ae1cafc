// Package conflate orchestrates the data-parallel fan-out described in the
// concurrency model: for each "new"-side record, fetch it, ask the spatial
// index for nearby master candidates, run the matcher, and report the
// resulting decision to the caller. The engine does not write to either
// store itself.
package conflate

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/roadlink/conflate/internal/cache"
	"github.com/roadlink/conflate/internal/linker"
	"github.com/roadlink/conflate/internal/store"
)

// Options configures one conflation run.
type Options struct {
	BufferMeters float64
	Strict       bool
	Workers      int
	CandidateCap int
}

// Engine drives the worker pool over a new-side store against a master
// store, using cache to skip decisions already computed.
type Engine struct {
	master store.FeatureStore
	newer  store.FeatureStore
	cache  cache.Cache
	logger *zap.Logger
	opts   Options
}

// New builds an Engine. cache may be nil to disable decision caching.
func New(master, newer store.FeatureStore, decisionCache cache.Cache, logger *zap.Logger, opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.CandidateCap <= 0 {
		opts.CandidateCap = 10
	}
	return &Engine{master: master, newer: newer, cache: decisionCache, logger: logger, opts: opts}
}

// Run fans out over every id the new-side store reports, cancelling the
// whole batch on the first unrecoverable error. Decisions are delivered to
// onDecision as they complete; onDecision must be safe for concurrent use.
func (e *Engine) Run(ctx context.Context, onDecision func(store.ConflationDecision) error) error {
	ids, err := e.newer.IDs(ctx)
	if err != nil {
		return fmt.Errorf("conflate: listing new-side ids: %w", err)
	}

	idCh := make(chan int64)
	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < e.opts.Workers; w++ {
		g.Go(func() error {
			for id := range idCh {
				decision, err := e.processOne(gctx, id)
				if err != nil {
					return err
				}
				if err := onDecision(decision); err != nil {
					return fmt.Errorf("conflate: handling decision for id %d: %w", id, err)
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(idCh)
		for _, id := range ids {
			select {
			case idCh <- id:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}

func (e *Engine) processOne(ctx context.Context, id int64) (store.ConflationDecision, error) {
	f, ok, err := e.newer.Get(ctx, id)
	if err != nil {
		return store.ConflationDecision{}, fmt.Errorf("conflate: fetch new feature %d: %w", id, err)
	}
	if !ok {
		return store.ConflationDecision{NewID: id}, nil
	}

	if e.cache != nil {
		if cached, found, err := e.cache.Get(ctx, cache.Key{NewID: id, Strict: e.opts.Strict}); err == nil && found {
			return store.ConflationDecision{MasterID: cached.MasterID, NewID: id, Score: cached.Score, Matched: cached.Matched}, nil
		}
	}

	candidates, err := e.master.Nearest(ctx, f, e.opts.BufferMeters, e.opts.CandidateCap)
	if err != nil {
		return store.ConflationDecision{}, fmt.Errorf("conflate: nearest candidates for %d: %w", id, err)
	}

	primary := linker.Candidate{ID: id, Names: f.Names}
	potentials := make([]linker.Candidate, len(candidates))
	for i, c := range candidates {
		potentials[i] = linker.Candidate{ID: c.ID, Names: c.Names}
	}

	result, matched := linker.Link(primary, potentials, e.opts.Strict)
	if e.opts.Strict && !matched {
		e.logStrictRejection(id, primary, candidates)
	}

	decision := store.ConflationDecision{NewID: id, Matched: matched}
	if matched {
		decision.MasterID = result.ID
		decision.Score = result.Score
	}

	if e.cache != nil {
		_ = e.cache.Set(ctx, cache.Key{NewID: id, Strict: e.opts.Strict}, cache.Decision{
			MasterID: decision.MasterID, NewID: id, Score: decision.Score, Matched: matched,
		})
	}

	return decision, nil
}

// logStrictRejection records, at debug level, the highest Jaro-Winkler
// similarity among the rejected candidates, to help distinguish a
// genuinely novel segment from one the strict cardinal/way-type gate
// turned away.
func (e *Engine) logStrictRejection(id int64, primary linker.Candidate, candidates []store.Candidate) {
	if len(primary.Names.Names) == 0 || len(candidates) == 0 {
		return
	}
	var best float64
	var bestID int64
	for _, c := range candidates {
		for _, pn := range primary.Names.Names {
			for _, cn := range c.Names.Names {
				if score := linker.JaroWinklerScore(pn, cn); score > best {
					best, bestID = score, c.ID
				}
			}
		}
	}
	e.logger.Debug("conflate: strict mode rejected nearest candidate",
		zap.Int64("new_id", id),
		zap.Int64("closest_candidate_id", bestID),
		zap.Float64("jaro_winkler", best))
}
