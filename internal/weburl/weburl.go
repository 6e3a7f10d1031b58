// Package weburl parses user-pasted URLs with the leniency browsers apply.
package weburl

import (
	"errors"
	"net/url"
	"strings"
)

// ErrNotAbsolute is returned by Parse for references without a scheme.
var ErrNotAbsolute = errors.New("url has no scheme")

// Clean strips leading and trailing control characters and spaces, then
// removes tabs and newlines anywhere in raw.
func Clean(raw string) string {
	s := strings.TrimFunc(raw, func(r rune) bool { return r <= ' ' })
	if strings.ContainsAny(s, "\t\n\r") {
		s = strings.Map(func(r rune) rune {
			if r == '\t' || r == '\n' || r == '\r' {
				return -1
			}
			return r
		}, s)
	}
	return s
}

// Parse cleans raw and parses it as an absolute URL. A '%' that does not
// start a valid escape is kept literally instead of failing the parse.
func Parse(raw string) (*url.URL, error) {
	u, err := url.Parse(escapeStrayPercents(Clean(raw)))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, ErrNotAbsolute
	}
	return u, nil
}

func escapeStrayPercents(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
