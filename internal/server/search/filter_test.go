package search

import (
	"testing"

	"github.com/neogulmap/zonemap/internal/geo"
)

func TestFilterPredicates(t *testing.T) {
	t.Parallel()

	if !Empty().IsEmpty() {
		t.Fatal("Empty() must be empty")
	}
	if Empty().IsLocationBased() || Empty().IsKeywordSearch() {
		t.Fatal("empty filter claims conditions")
	}

	kw := ByKeyword("han river")
	if kw.IsEmpty() || !kw.IsKeywordSearch() || kw.IsLocationBased() {
		t.Fatalf("keyword filter predicates wrong: %+v", kw)
	}
	if ByKeyword("   ").IsKeywordSearch() {
		t.Fatal("blank keyword must not count as keyword search")
	}

	loc := ByLocation(37.5, 127.0, 2)
	if !loc.IsLocationBased() || loc.IsKeywordSearch() || loc.IsEmpty() {
		t.Fatalf("location filter predicates wrong: %+v", loc)
	}

	zoom := ByZoom(37.5, 127.0, 9)
	if !zoom.IsLocationBased() {
		t.Fatalf("zoom filter must be location based: %+v", zoom)
	}

	// Coordinates without radius or zoom are not location based.
	lat, lon := 37.5, 127.0
	partial := Filter{Latitude: &lat, Longitude: &lon}
	if partial.IsLocationBased() {
		t.Fatal("coordinates alone must not be location based")
	}
}

func TestFilterEffectiveRadiusKm(t *testing.T) {
	t.Parallel()

	if got := ByLocation(0, 0, 2.5).EffectiveRadiusKm(); got != 2.5 {
		t.Fatalf("explicit radius: got %v", got)
	}
	if got := ByZoom(0, 0, 9).EffectiveRadiusKm(); got != geo.RadiusKmForZoom(9) {
		t.Fatalf("zoom radius: got %v", got)
	}

	// An explicit radius wins over a zoom level when both are present.
	f := ByZoom(0, 0, 15)
	r := 1.0
	f.RadiusKm = &r
	if got := f.EffectiveRadiusKm(); got != 1.0 {
		t.Fatalf("radius should win over zoom: got %v", got)
	}
}
