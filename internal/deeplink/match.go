package deeplink

import (
	"net/url"
	"regexp"
)

var (
	placeIDPattern   = regexp.MustCompile(`place/(\d+)`)
	kakaoPathPattern = regexp.MustCompile(`map\.kakao\.com/link/map/[^,]*,([0-9.\-]+),([0-9.\-]+)`)
)

// Coordinates is a latitude/longitude pair kept in the textual form it was found in.
type Coordinates struct {
	Lat string
	Lng string
}

// MatchPlaceID finds the first "place/<digits>" segment in raw.
func MatchPlaceID(raw string) (string, bool) {
	m := placeIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MatchQueryCoordinates picks the first non-empty value among latKeys and among
// lngKeys. Both must be present for a match.
func MatchQueryCoordinates(u *url.URL, latKeys, lngKeys []string) (Coordinates, bool) {
	q := u.Query()
	lat := firstNonEmpty(q, latKeys)
	lng := firstNonEmpty(q, lngKeys)
	if lat == "" || lng == "" {
		return Coordinates{}, false
	}
	return Coordinates{Lat: lat, Lng: lng}, true
}

// MatchKakaoPath extracts coordinates from map.kakao.com/link/map/<name>,<lat>,<lng>.
func MatchKakaoPath(raw string) (Coordinates, bool) {
	m := kakaoPathPattern.FindStringSubmatch(raw)
	if m == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: m[1], Lng: m[2]}, true
}

func firstNonEmpty(q url.Values, keys []string) string {
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			return v
		}
	}
	return ""
}
