// Package spatialindex is an in-memory R-tree candidate index: it stands
// in for the PostGIS ST_DWithin query in tests and the memstore-backed CLI
// path.
package spatialindex

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

// metersPerDegree approximates degrees-of-latitude to meters, enough for
// the bounding-box expansion a buffer search needs; it is not a geodesic
// distance calculation.
const metersPerDegree = 111320.0

// Index maps feature ids to their geometry's bounding box for fast
// nearest-candidate lookups.
type Index struct {
	tree   rtree.RTree
	bounds map[int64][2][2]float64
}

// New returns an empty Index.
func New() *Index {
	return &Index{bounds: make(map[int64][2][2]float64)}
}

// Insert adds or replaces id's geometry in the index.
func (idx *Index) Insert(id int64, geom orb.Geometry) {
	if geom == nil {
		return
	}
	if old, ok := idx.bounds[id]; ok {
		idx.tree.Delete(old[0], old[1], id)
	}
	b := geom.Bound()
	min := [2]float64{b.Min.X(), b.Min.Y()}
	max := [2]float64{b.Max.X(), b.Max.Y()}
	idx.tree.Insert(min, max, id)
	idx.bounds[id] = [2][2]float64{min, max}
}

// Delete removes id from the index.
func (idx *Index) Delete(id int64) {
	old, ok := idx.bounds[id]
	if !ok {
		return
	}
	idx.tree.Delete(old[0], old[1], id)
	delete(idx.bounds, id)
}

type scored struct {
	id   int64
	dist float64
}

// Nearest returns up to limit ids whose bounding box lies within
// bufferMeters of geom's centroid, closest-centroid-first.
func (idx *Index) Nearest(geom orb.Geometry, bufferMeters float64, limit int) []int64 {
	if geom == nil {
		return nil
	}
	center := geom.Bound().Center()
	degBuffer := bufferMeters / metersPerDegree
	min := [2]float64{center.X() - degBuffer, center.Y() - degBuffer}
	max := [2]float64{center.X() + degBuffer, center.Y() + degBuffer}

	var hits []scored
	idx.tree.Search(min, max, func(bmin, bmax [2]float64, data interface{}) bool {
		id := data.(int64)
		cx := (bmin[0] + bmax[0]) / 2
		cy := (bmin[1] + bmax[1]) / 2
		dx := cx - center.X()
		dy := cy - center.Y()
		hits = append(hits, scored{id: id, dist: math.Hypot(dx, dy)})
		return true
	})

	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]int64, len(hits))
	for i, h := range hits {
		out[i] = h.id
	}
	return out
}

// Len reports how many geometries are indexed.
func (idx *Index) Len() int {
	return len(idx.bounds)
}
