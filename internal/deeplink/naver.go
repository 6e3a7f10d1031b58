package deeplink

import (
	"fmt"
	"net/url"

	"github.com/gw0212/maplink-manager/internal/weburl"
	"github.com/rs/zerolog/log"
)

var (
	naverLatKeys = []string{"lat", "y", "mapy"}
	naverLngKeys = []string{"lng", "x", "mapx"}
)

// NaverBuilder builds nmap:// links.
type NaverBuilder struct {
	appName string
}

// NewNaverBuilder creates a NaverBuilder; appName is escaped once here.
func NewNaverBuilder(appName string) NaverBuilder {
	if appName == "" {
		appName = DefaultAppName
	}
	return NaverBuilder{appName: url.QueryEscape(appName)}
}

// Build prefers a place ID over query coordinates.
func (b NaverBuilder) Build(rawURL string) (string, bool) {
	u, err := weburl.Parse(rawURL)
	if err != nil {
		log.Error().Err(err).Str("url", rawURL).Msg("naver deep link: invalid url")
		return "", false
	}

	if id, ok := MatchPlaceID(rawURL); ok {
		return fmt.Sprintf("nmap://place?id=%s&appname=%s", id, b.appName), true
	}

	if c, ok := MatchQueryCoordinates(u, naverLatKeys, naverLngKeys); ok {
		return fmt.Sprintf("nmap://map?lat=%s&lng=%s&appname=%s", c.Lat, c.Lng, b.appName), true
	}

	return "", false
}
