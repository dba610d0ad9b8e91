package geo

import (
	"math"
	"sync"

	"github.com/dhconnelly/rtreego"
)

const (
	indexTolerance   = 0.0001
	indexMinChildren = 25
	indexMaxChildren = 50
	indexDimensions  = 2

	kmPerDegreeLat = 111.195
)

// Point is one indexed coordinate with the owning record's ID.
type Point struct {
	ID  int
	Lat float64
	Lon float64
}

type spatialItem struct {
	Point
	rect *rtreego.Rect
}

func (si *spatialItem) Bounds() *rtreego.Rect {
	return si.rect
}

// Index is a thread-safe R-tree over zone coordinates. It answers radius
// queries with a bounding-box search followed by an exact Haversine pass,
// so results never include points outside the radius.
type Index struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{tree: rtreego.NewTree(indexDimensions, indexMinChildren, indexMaxChildren)}
}

// NewIndexOf builds an index holding all given points.
func NewIndexOf(points []Point) *Index {
	ix := NewIndex()
	for _, p := range points {
		ix.Insert(p)
	}
	return ix
}

// Insert adds a point to the index.
func (ix *Index) Insert(p Point) {
	rect := rtreego.Point{p.Lat, p.Lon}.ToRect(indexTolerance)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.tree.Insert(&spatialItem{Point: p, rect: rect})
}

// Len returns the number of indexed points.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.tree.Size()
}

// WithinRadius returns the IDs of all points whose great-circle distance
// from (lat, lon) is at most radiusMeters.
func (ix *Index) WithinRadius(lat, lon, radiusMeters float64) []int {
	radiusKm := radiusMeters / 1000

	// Bounding box in degrees. Longitude degrees shrink with latitude;
	// clamp the cosine so boxes near the poles stay finite.
	latDelta := radiusKm / kmPerDegreeLat
	cosLat := math.Cos(radians(lat))
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lonDelta := radiusKm / (kmPerDegreeLat * cosLat)

	rects := boundingRects(lat-latDelta, 2*latDelta, lon-lonDelta, lon+lonDelta)

	ix.mu.RLock()
	var candidates []rtreego.Spatial
	for _, r := range rects {
		candidates = append(candidates, ix.tree.SearchIntersect(r)...)
	}
	ix.mu.RUnlock()

	seen := make(map[int]bool)
	var ids []int
	for _, c := range candidates {
		item, ok := c.(*spatialItem)
		if !ok || seen[item.ID] {
			continue
		}
		if DistanceMeters(lat, lon, item.Lat, item.Lon) <= radiusMeters {
			seen[item.ID] = true
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// boundingRects covers the longitude range [lonMin, lonMax] with search
// rectangles. Indexed longitudes live in [-180, 180], so a range that
// crosses the antimeridian needs a second rectangle wrapped to the other
// side of the seam.
func boundingRects(latMin, latLen, lonMin, lonMax float64) []*rtreego.Rect {
	var rects []*rtreego.Rect
	add := func(lo, hi float64) {
		if hi <= lo {
			return
		}
		r, err := rtreego.NewRect(rtreego.Point{latMin, lo}, []float64{latLen, hi - lo})
		if err == nil {
			rects = append(rects, r)
		}
	}

	if lonMax-lonMin >= 360 {
		add(-180, 180)
		return rects
	}
	add(lonMin, lonMax)
	if lonMin < -180 {
		add(lonMin+360, 180)
	}
	if lonMax > 180 {
		add(-180, lonMax-360)
	}
	return rects
}
