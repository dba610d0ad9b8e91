package httpapi

import (
	"net/url"
	"strconv"

	"github.com/neogulmap/zonemap/internal/geo"
	"github.com/neogulmap/zonemap/internal/server/httpapi/errcode"
	"github.com/neogulmap/zonemap/internal/server/models"
	"github.com/neogulmap/zonemap/internal/server/search"
)

// parseSearchFilter builds a search filter from query parameters,
// validating each one against the code table. A nil error code means the
// filter is usable (possibly empty).
func parseSearchFilter(q url.Values) (search.Filter, *errcode.Code) {
	f := search.Filter{
		Region:  q.Get("region"),
		Type:    q.Get("type"),
		Subtype: q.Get("subtype"),
		Size:    q.Get("size"),
		User:    q.Get("user"),
	}

	if keyword := q.Get("keyword"); keyword != "" {
		if !models.ValidKeyword(keyword) {
			if len([]rune(keyword)) < models.MinKeywordLength {
				return f, &errcode.SearchKeywordTooShort
			}
			return f, &errcode.SearchKeywordTooLong
		}
		f.Keyword = keyword
	}

	latStr, lonStr := q.Get("latitude"), q.Get("longitude")
	if (latStr == "") != (lonStr == "") {
		return f, &errcode.LocationCoordinatesInvalid
	}
	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil || !models.ValidLatitude(lat) {
			return f, &errcode.LocationLatitudeInvalid
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil || !models.ValidLongitude(lon) {
			return f, &errcode.LocationLongitudeInvalid
		}
		f.Latitude, f.Longitude = &lat, &lon
	}

	if radiusStr := q.Get("radius"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || !models.ValidRadiusKm(radius) {
			return f, &errcode.RadiusInvalid
		}
		f.RadiusKm = &radius
	}

	if zoomStr := q.Get("zoomLevel"); zoomStr != "" {
		zoom, err := strconv.Atoi(zoomStr)
		switch {
		case err != nil:
			return f, &errcode.ZoomLevelInvalid
		case zoom < geo.MinZoomLevel:
			return f, &errcode.ZoomLevelTooLow
		case zoom > geo.MaxZoomLevel:
			return f, &errcode.ZoomLevelTooHigh
		}
		f.ZoomLevel = &zoom
	}

	// a radius or zoom without coordinates cannot define a location
	if f.Latitude == nil && (f.RadiusKm != nil || f.ZoomLevel != nil) {
		return f, &errcode.LocationCoordinatesInvalid
	}

	return f, nil
}
