package search

import (
	"strings"

	"github.com/neogulmap/zonemap/internal/geo"
	"github.com/neogulmap/zonemap/internal/server/models"
)

// spatialIndexThreshold is the candidate count above which a location pass
// builds an R-tree instead of scanning linearly. Below it the index costs
// more than it saves.
const spatialIndexThreshold = 256

// Engine evaluates a Filter against a set of zone records. All present
// filter dimensions compose as successive AND passes; within the keyword
// pass the four searchable fields are OR-matched.
type Engine struct{}

// NewEngine returns a search engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Search returns the records matching f. An empty filter matches
// everything; an empty result is a valid outcome, not an error.
func (e *Engine) Search(zones []models.Zone, f Filter) []models.Zone {
	if f.IsEmpty() {
		return zones
	}

	result := zones

	if f.IsKeywordSearch() {
		result = filterZones(result, func(z models.Zone) bool {
			return matchesKeyword(z, f.Keyword)
		})
	}

	if f.hasAttributeFilters() {
		result = filterZones(result, func(z models.Zone) bool {
			return matchesAttributes(z, f)
		})
	}

	if f.IsLocationBased() {
		result = e.filterByLocation(result, f)
	}

	return result
}

// matchesKeyword OR-matches the keyword as a case-insensitive substring of
// region, address, type, or subtype.
func matchesKeyword(z models.Zone, keyword string) bool {
	k := strings.ToLower(strings.TrimSpace(keyword))
	return containsFold(z.Region, k) ||
		containsFold(z.Address, k) ||
		containsFold(z.Type, k) ||
		containsFold(z.Subtype, k)
}

// matchesAttributes AND-matches every present attribute field as a
// case-insensitive substring.
func matchesAttributes(z models.Zone, f Filter) bool {
	if f.Region != "" && !containsFold(z.Region, strings.ToLower(f.Region)) {
		return false
	}
	if f.Type != "" && !containsFold(z.Type, strings.ToLower(f.Type)) {
		return false
	}
	if f.Subtype != "" && !containsFold(z.Subtype, strings.ToLower(f.Subtype)) {
		return false
	}
	if f.Size != "" && !containsFold(z.Size, strings.ToLower(f.Size)) {
		return false
	}
	if f.User != "" && !containsFold(z.User, strings.ToLower(f.User)) {
		return false
	}
	return true
}

func (e *Engine) filterByLocation(zones []models.Zone, f Filter) []models.Zone {
	radiusMeters := f.EffectiveRadiusKm() * 1000
	lat, lon := *f.Latitude, *f.Longitude

	if len(zones) >= spatialIndexThreshold {
		return filterBySpatialIndex(zones, lat, lon, radiusMeters)
	}

	return filterZones(zones, func(z models.Zone) bool {
		return geo.DistanceMeters(lat, lon, z.Latitude, z.Longitude) <= radiusMeters
	})
}

func filterBySpatialIndex(zones []models.Zone, lat, lon, radiusMeters float64) []models.Zone {
	byID := make(map[int]int, len(zones))
	points := make([]geo.Point, len(zones))
	for i, z := range zones {
		byID[z.ID] = i
		points[i] = geo.Point{ID: z.ID, Lat: z.Latitude, Lon: z.Longitude}
	}

	ids := geo.NewIndexOf(points).WithinRadius(lat, lon, radiusMeters)

	matched := make([]models.Zone, 0, len(ids))
	for _, id := range ids {
		matched = append(matched, zones[byID[id]])
	}
	return matched
}

func filterZones(zones []models.Zone, keep func(models.Zone) bool) []models.Zone {
	out := make([]models.Zone, 0, len(zones))
	for _, z := range zones {
		if keep(z) {
			out = append(out, z)
		}
	}
	return out
}

// containsFold reports whether s contains the already-lowercased needle.
func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}
