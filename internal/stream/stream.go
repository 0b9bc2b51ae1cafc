// Package stream reads and writes line-delimited GeoJSON Features without
// buffering the whole file, wrapping paulmach/orb/geojson for both
// directions.
package stream

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb/geojson"

	"github.com/roadlink/conflate/internal/nameset"
	"github.com/roadlink/conflate/internal/store"
	"github.com/roadlink/conflate/internal/types"
)

// Reader decodes one GeoJSON Feature per line.
type Reader struct {
	scanner *bufio.Scanner
	ctx     *types.Context
}

// NewReader wraps r, resolving each Feature's "name"/"names" property
// through ctx's abbreviation table and synonym generators.
func NewReader(r io.Reader, ctx *types.Context) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{scanner: scanner, ctx: ctx}
}

// Next decodes the next non-blank line into a Feature. io.EOF is returned
// once the underlying reader is exhausted.
func (r *Reader) Next() (store.Feature, error) {
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		gjFeature, err := geojson.UnmarshalFeature(line)
		if err != nil {
			return store.Feature{}, fmt.Errorf("stream: decode feature: %w", err)
		}
		return r.toFeature(gjFeature)
	}
	if err := r.scanner.Err(); err != nil {
		return store.Feature{}, fmt.Errorf("stream: scan: %w", err)
	}
	return store.Feature{}, io.EOF
}

func (r *Reader) toFeature(gj *geojson.Feature) (store.Feature, error) {
	var id int64
	switch v := gj.ID.(type) {
	case float64:
		id = int64(v)
	case int64:
		id = v
	}

	raw, hasNames := gj.Properties["names"]
	if !hasNames {
		raw = gj.Properties["name"]
	}
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return store.Feature{}, fmt.Errorf("stream: marshal names property: %w", err)
	}

	ns, err := nameset.FromValue(rawJSON, types.SourceNetwork, r.ctx)
	if err != nil {
		return store.Feature{}, fmt.Errorf("stream: feature %v names: %w", gj.ID, err)
	}
	ns = nameset.New(ns.Names, types.SourceNetwork, r.ctx)

	return store.Feature{
		ID:         id,
		Properties: gj.Properties,
		Geometry:   gj.Geometry,
		Names:      ns,
	}, nil
}

// Writer encodes one GeoJSON Feature per line.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes f as one GeoJSON Feature line, with Names flattened back
// into a "names" property.
func (w *Writer) Write(f store.Feature) error {
	gj := geojson.NewFeature(f.Geometry)
	gj.ID = f.ID
	for k, v := range f.Properties {
		gj.Properties[k] = v
	}
	gj.Properties["names"] = namesProperty(f.Names)

	line, err := gj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("stream: encode feature %d: %w", f.ID, err)
	}
	if _, err := w.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("stream: write feature %d: %w", f.ID, err)
	}
	return nil
}

func namesProperty(ns nameset.NameSet) []map[string]any {
	out := make([]map[string]any, len(ns.Names))
	for i, n := range ns.Names {
		out[i] = map[string]any{"display": n.Display, "priority": n.Priority}
	}
	return out
}
