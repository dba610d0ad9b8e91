package models

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Geographic coordinate bounds.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Search radius bounds in kilometers.
const (
	MinRadiusKm = 0.1
	MaxRadiusKm = 100.0
)

const (
	maxStringLength   = 1000
	minAddressLength  = 5
	MinKeywordLength  = 2
	MaxKeywordLength  = 100
)

var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9가-힣]{2,20}$`)

// ValidLatitude reports whether lat is within [-90, 90].
func ValidLatitude(lat float64) bool {
	return lat >= MinLatitude && lat <= MaxLatitude
}

// ValidLongitude reports whether lon is within [-180, 180].
func ValidLongitude(lon float64) bool {
	return lon >= MinLongitude && lon <= MaxLongitude
}

// ValidRadiusKm reports whether a search radius is within the accepted
// 0.1–100 km window.
func ValidRadiusKm(km float64) bool {
	return km >= MinRadiusKm && km <= MaxRadiusKm
}

// ValidZoneAddress requires a non-blank address of at least five and at
// most a thousand characters.
func ValidZoneAddress(address string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(address))
	return n >= minAddressLength && n <= maxStringLength
}

// ValidNickname allows 2–20 latin, hangul, or digit characters.
func ValidNickname(nickname string) bool {
	return nicknamePattern.MatchString(nickname)
}

// ValidKeyword bounds search keywords to 2–100 characters after trimming.
func ValidKeyword(keyword string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(keyword))
	return n >= MinKeywordLength && n <= MaxKeywordLength
}
