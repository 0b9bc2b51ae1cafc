// Package memstore is an in-process map-backed FeatureStore, used by tests
// and by the drop/list CLI commands when operating on a loaded GeoJSON file
// instead of a database.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/roadlink/conflate/internal/store"
	"github.com/roadlink/conflate/internal/store/spatialindex"
)

// Store holds master features in memory, indexed for nearest-candidate
// queries.
type Store struct {
	mu       sync.RWMutex
	features map[int64]store.Feature
	index    *spatialindex.Index
	nextID   int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		features: make(map[int64]store.Feature),
		index:    spatialindex.New(),
	}
}

// Load seeds the store with features, keeping their existing ids and
// advancing the insert counter past the highest one seen.
func (s *Store) Load(features []store.Feature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range features {
		s.features[f.ID] = f
		s.index.Insert(f.ID, f.Geometry)
		if f.ID >= s.nextID {
			s.nextID = f.ID + 1
		}
	}
}

func (s *Store) Get(ctx context.Context, id int64) (store.Feature, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.features[id]
	return f, ok, nil
}

func (s *Store) IDs(ctx context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.features))
	for id := range s.features {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) Nearest(ctx context.Context, f store.Feature, bufferMeters float64, limit int) ([]store.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.index.Nearest(f.Geometry, bufferMeters, limit)
	out := make([]store.Candidate, 0, len(ids))
	for _, id := range ids {
		if id == f.ID {
			continue
		}
		out = append(out, store.Candidate{Feature: s.features[id]})
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, f store.Feature) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	f.ID = id
	s.features[id] = f
	s.index.Insert(id, f.Geometry)
	return id, nil
}

func (s *Store) Update(ctx context.Context, id int64, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.features[id]
	if !ok {
		return fmt.Errorf("memstore: update of unknown id %d", id)
	}
	if f.Properties == nil {
		f.Properties = make(map[string]any)
	}
	for k, v := range patch {
		f.Properties[k] = v
	}
	s.features[id] = f
	return nil
}

// All returns every feature currently held, sorted by id, for the list
// CLI command.
func (s *Store) All() []store.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Feature, 0, len(s.features))
	for _, f := range s.features {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ store.FeatureStore = (*Store)(nil)
