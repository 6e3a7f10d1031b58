// Package deeplink turns Naver and Kakao map URLs into app deep links.
package deeplink

// Service identifiers accepted in requests.
const (
	ServiceNaver = "naver"
	ServiceKakao = "kakao"
)

// DefaultAppName identifies the calling application to the Naver Map app.
const DefaultAppName = "https://gw0212.github.io/MapLink_Manager/"

// Builder produces a deep link for a fully resolved map URL.
// The boolean is false when nothing could be extracted.
type Builder interface {
	Build(rawURL string) (string, bool)
}

// Builders returns the builder registry keyed by service identifier.
func Builders(appName string) map[string]Builder {
	return map[string]Builder{
		ServiceNaver: NewNaverBuilder(appName),
		ServiceKakao: KakaoBuilder{},
	}
}
