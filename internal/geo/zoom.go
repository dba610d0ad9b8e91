package geo

// Map zoom levels supported by the client.
const (
	MinZoomLevel = 1
	MaxZoomLevel = 15

	// DefaultZoomLevel is used when a request carries a zoom level outside
	// the table; its radius (1 km) is the fallback search radius.
	DefaultZoomLevel = 8
)

// radiusByZoom pairs each zoom level with its search radius in meters.
// Both columns are strictly increasing.
var radiusByZoom = [...]struct {
	zoom   int
	meters float64
}{
	{1, 1},
	{2, 5},
	{3, 30},
	{4, 50},
	{5, 100},
	{6, 250},
	{7, 500},
	{8, 1000},
	{9, 2000},
	{10, 4000},
	{11, 9000},
	{12, 19000},
	{13, 38000},
	{14, 76000},
	{15, 152000},
}

// RadiusForZoom returns the search radius in meters for the given zoom
// level. Levels outside the table fall back to the level-8 radius (1 km)
// rather than erroring.
func RadiusForZoom(level int) float64 {
	for _, e := range radiusByZoom {
		if e.zoom == level {
			return e.meters
		}
	}
	return radiusByZoom[DefaultZoomLevel-1].meters
}

// RadiusKmForZoom is RadiusForZoom converted to kilometers.
func RadiusKmForZoom(level int) float64 {
	return RadiusForZoom(level) / 1000
}

// ZoomForRadius returns the smallest zoom level whose table radius covers
// the given radius in meters. Radii beyond the largest entry map to the
// maximum zoom level.
func ZoomForRadius(meters float64) int {
	for _, e := range radiusByZoom {
		if meters <= e.meters {
			return e.zoom
		}
	}
	return MaxZoomLevel
}

// ZoomForRadiusKm is ZoomForRadius with the input in kilometers.
func ZoomForRadiusKm(km float64) int {
	return ZoomForRadius(km * 1000)
}
