package main

import (
	"io"
	"os"

	"github.com/roadlink/conflate/internal/store"
	"github.com/roadlink/conflate/internal/store/memstore"
	"github.com/roadlink/conflate/internal/stream"
)

// loadMemstore reads every GeoJSON-lines Feature at path into a fresh
// in-memory store, ready for matching or inspection.
func loadMemstore(path string) (*memstore.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := stream.NewReader(f, nameCtx)
	var features []store.Feature
	for {
		feat, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		features = append(features, feat)
	}

	st := memstore.New()
	st.Load(features)
	return st, nil
}
