package spatialindex

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestNearestOrdersByDistance(t *testing.T) {
	idx := New()
	idx.Insert(1, orb.Point{0, 0})
	idx.Insert(2, orb.Point{0.0005, 0})
	idx.Insert(3, orb.Point{5, 5})

	got := idx.Nearest(orb.Point{0, 0}, 100, 10)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("Nearest = %v, want [1 2]", got)
	}
}

func TestNearestRespectsLimit(t *testing.T) {
	idx := New()
	idx.Insert(1, orb.Point{0, 0})
	idx.Insert(2, orb.Point{0.0001, 0})
	idx.Insert(3, orb.Point{0.0002, 0})

	got := idx.Nearest(orb.Point{0, 0}, 1000, 2)
	if len(got) != 2 {
		t.Fatalf("Nearest returned %d ids, want 2", len(got))
	}
}

func TestDeleteRemovesFromIndex(t *testing.T) {
	idx := New()
	idx.Insert(1, orb.Point{0, 0})
	idx.Delete(1)
	if idx.Len() != 0 {
		t.Fatalf("Len = %d, want 0 after delete", idx.Len())
	}
	if got := idx.Nearest(orb.Point{0, 0}, 1000, 10); len(got) != 0 {
		t.Fatalf("Nearest after delete = %v, want none", got)
	}
}
