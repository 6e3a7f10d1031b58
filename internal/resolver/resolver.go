// Package resolver expands map short links by following HTTP redirects.
package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gw0212/maplink-manager/internal/weburl"
	"github.com/rs/zerolog/log"
)

// maxRedirects matches the redirect limit browsers apply to fetch.
const maxRedirects = 20

// shortLinkHosts are matched as case-insensitive substrings of the input URL.
var shortLinkHosts = []string{
	"naver.me/",
	"kko.to/",
	"kko.kakao.com",
}

// IsShortLink reports whether raw points at a known map link shortener.
func IsShortLink(raw string) bool {
	lower := strings.ToLower(raw)
	for _, host := range shortLinkHosts {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}

// Resolver follows redirects of short links to their final location.
type Resolver struct {
	client *http.Client
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClient replaces the HTTP client used for outbound fetches.
func WithClient(client *http.Client) Option {
	return func(r *Resolver) {
		r.client = client
	}
}

// New creates a Resolver. The default client follows up to 20 redirects.
func New(opts ...Option) *Resolver {
	r := &Resolver{client: &http.Client{CheckRedirect: limitRedirects}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func limitRedirects(req *http.Request, via []*http.Request) error {
	if len(via) > maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	return nil
}

// Resolve returns the URL the fetch of raw ended up at. Surrounding whitespace
// is ignored. Failures are logged and raw is returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, raw string) string {
	u, err := weburl.Parse(raw)
	if err != nil {
		log.Warn().Err(err).Str("url", raw).Msg("resolve short link: invalid url")
		return raw
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.Warn().Err(err).Str("url", raw).Msg("resolve short link: bad request")
		return raw
	}

	resp, err := r.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", raw).Msg("resolve short link: fetch failed")
		return raw
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.Request == nil || resp.Request.URL == nil {
		return raw
	}

	final := resp.Request.URL.String()
	log.Debug().Str("url", raw).Str("final_url", final).Msg("short link resolved")
	return final
}
