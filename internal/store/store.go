// Package store defines the feature-store contract the conflation engine
// consumes: per-record geometry/properties/names plus nearest-candidate
// lookups and the two write operations (insert, merge-update).
package store

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/roadlink/conflate/internal/nameset"
)

// Feature is one road-network record moving through the pipeline, built
// from a GeoJSON line or a database row.
type Feature struct {
	ID         int64
	Properties map[string]any
	Geometry   orb.Geometry
	Names      nameset.NameSet
}

// Candidate is a master-side Feature returned by a proximity query, kept
// separate from Feature so callers can't confuse which side of a
// conflation pass they're holding.
type Candidate struct {
	Feature
}

// ConflationDecision is the output of comparing one "new" Feature against
// its nearest master candidates: either a merge into MasterID or a fresh
// insert when MasterID is zero.
type ConflationDecision struct {
	MasterID int64
	NewID    int64
	Score    float64
	Matched  bool
	Merged   map[string]any
}

// FeatureStore is the contract pgstore.Store and memstore.Store both
// satisfy: the conflation engine depends only on this interface.
type FeatureStore interface {
	// Get fetches a single feature by id. ok is false when no row exists.
	Get(ctx context.Context, id int64) (Feature, bool, error)

	// IDs streams every "new"-side record id needing a conflation
	// decision, in ascending order.
	IDs(ctx context.Context) ([]int64, error)

	// Nearest returns up to limit master candidates within bufferMeters
	// of the feature's geometry, closest first.
	Nearest(ctx context.Context, f Feature, bufferMeters float64, limit int) ([]Candidate, error)

	// Insert appends f to the master network and returns its new id.
	Insert(ctx context.Context, f Feature) (int64, error)

	// Update merges patch into the master row identified by id.
	Update(ctx context.Context, id int64, patch map[string]any) error
}
