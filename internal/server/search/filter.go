// Package search implements zone filtering: keyword and attribute matching
// plus radius search over zone coordinates.
package search

import (
	"strings"

	"github.com/neogulmap/zonemap/internal/geo"
)

// Filter describes one search request. Every field is optional; zero-value
// strings and nil pointers mean the dimension is absent. Filters are
// request-scoped values and never persisted.
type Filter struct {
	Keyword string
	Region  string
	Type    string
	Subtype string
	Size    string
	User    string

	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
	ZoomLevel *int
}

// Empty returns a filter with no conditions set.
func Empty() Filter {
	return Filter{}
}

// ByKeyword builds a keyword-only filter.
func ByKeyword(keyword string) Filter {
	return Filter{Keyword: keyword}
}

// ByRegionAndType builds an attribute filter on region and type.
func ByRegionAndType(region, typ string) Filter {
	return Filter{Region: region, Type: typ}
}

// ByLocation builds a radius filter around (lat, lon).
func ByLocation(lat, lon, radiusKm float64) Filter {
	return Filter{Latitude: &lat, Longitude: &lon, RadiusKm: &radiusKm}
}

// ByZoom builds a radius filter whose radius comes from the zoom table.
func ByZoom(lat, lon float64, zoomLevel int) Filter {
	return Filter{Latitude: &lat, Longitude: &lon, ZoomLevel: &zoomLevel}
}

// IsEmpty reports whether no condition is set at all.
func (f Filter) IsEmpty() bool {
	return f.Keyword == "" && f.Region == "" && f.Type == "" && f.Subtype == "" &&
		f.Size == "" && f.User == "" &&
		f.Latitude == nil && f.Longitude == nil && f.RadiusKm == nil && f.ZoomLevel == nil
}

// IsLocationBased reports whether the filter carries a usable location
// condition: both coordinates plus either an explicit radius or a zoom
// level.
func (f Filter) IsLocationBased() bool {
	return f.Latitude != nil && f.Longitude != nil && (f.RadiusKm != nil || f.ZoomLevel != nil)
}

// IsKeywordSearch reports whether a non-blank keyword is present.
func (f Filter) IsKeywordSearch() bool {
	return strings.TrimSpace(f.Keyword) != ""
}

// EffectiveRadiusKm resolves the search radius: an explicit RadiusKm wins,
// otherwise the zoom level is mapped through the radius table. Only
// meaningful when IsLocationBased is true.
func (f Filter) EffectiveRadiusKm() float64 {
	if f.RadiusKm != nil {
		return *f.RadiusKm
	}
	if f.ZoomLevel != nil {
		return geo.RadiusKmForZoom(*f.ZoomLevel)
	}
	return 0
}

func (f Filter) hasAttributeFilters() bool {
	return f.Region != "" || f.Type != "" || f.Subtype != "" || f.Size != "" || f.User != ""
}
