package deeplink

import (
	"fmt"

	"github.com/gw0212/maplink-manager/internal/weburl"
	"github.com/rs/zerolog/log"
)

var (
	kakaoLatKeys = []string{"lat", "y"}
	kakaoLngKeys = []string{"lng", "x"}
)

// KakaoBuilder builds kakaomap:// links.
type KakaoBuilder struct{}

// Build tries the /link/map/ path form on the raw text first, then query parameters.
func (KakaoBuilder) Build(rawURL string) (string, bool) {
	if c, ok := MatchKakaoPath(rawURL); ok {
		return kakaoLook(c), true
	}

	u, err := weburl.Parse(rawURL)
	if err != nil {
		log.Error().Err(err).Str("url", rawURL).Msg("kakao deep link: invalid url")
		return "", false
	}

	if c, ok := MatchQueryCoordinates(u, kakaoLatKeys, kakaoLngKeys); ok {
		return kakaoLook(c), true
	}

	return "", false
}

func kakaoLook(c Coordinates) string {
	return fmt.Sprintf("kakaomap://look?p=%s,%s", c.Lat, c.Lng)
}
