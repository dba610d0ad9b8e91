package geo

import (
	"sort"
	"testing"
)

func TestIndex_WithinRadius(t *testing.T) {
	t.Parallel()

	center := Point{ID: 1, Lat: 37.5665, Lon: 126.9780}
	// ~0.5 km and ~2 km north of the center.
	near := Point{ID: 2, Lat: center.Lat + 0.0044966, Lon: center.Lon}
	far := Point{ID: 3, Lat: center.Lat + 0.0179864, Lon: center.Lon}

	ix := NewIndexOf([]Point{center, near, far})
	if ix.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ix.Len())
	}

	ids := ix.WithinRadius(center.Lat, center.Lon, 1000)
	sort.Ints(ids)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("WithinRadius(1km) = %v, want [1 2]", ids)
	}

	ids = ix.WithinRadius(center.Lat, center.Lon, 3000)
	if len(ids) != 3 {
		t.Fatalf("WithinRadius(3km) returned %v, want all three points", ids)
	}
}

func TestIndex_WithinRadius_ExcludesBoxCorners(t *testing.T) {
	t.Parallel()

	// A point on the bounding-box diagonal: inside the box, outside the circle.
	corner := Point{ID: 9, Lat: 37.5665 + 0.0080, Lon: 126.9780 + 0.0101}
	ix := NewIndexOf([]Point{corner})

	if ids := ix.WithinRadius(37.5665, 126.9780, 1000); len(ids) != 0 {
		t.Fatalf("corner point leaked through exact-distance refine: %v", ids)
	}
}

func TestIndex_WithinRadius_AntimeridianWrap(t *testing.T) {
	t.Parallel()

	// Two points ~2.2 km apart straddling the ±180 seam, plus one well away.
	east := Point{ID: 1, Lat: 0, Lon: 179.99}
	west := Point{ID: 2, Lat: 0, Lon: -179.99}
	away := Point{ID: 3, Lat: 0, Lon: 170}
	ix := NewIndexOf([]Point{east, west, away})

	ids := ix.WithinRadius(0, 179.99, 10_000)
	sort.Ints(ids)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("WithinRadius across +180 = %v, want [1 2]", ids)
	}

	ids = ix.WithinRadius(0, -179.99, 10_000)
	sort.Ints(ids)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("WithinRadius across -180 = %v, want [1 2]", ids)
	}
}

func TestIndex_Empty(t *testing.T) {
	t.Parallel()

	ix := NewIndex()
	if ids := ix.WithinRadius(0, 0, 1000); len(ids) != 0 {
		t.Fatalf("empty index returned %v", ids)
	}
}
