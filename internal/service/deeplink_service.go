package service

import (
	"context"
	"errors"

	"github.com/gw0212/maplink-manager/internal/deeplink"
	"github.com/gw0212/maplink-manager/internal/model"
	"github.com/gw0212/maplink-manager/internal/resolver"
	"github.com/rs/zerolog/log"
)

// ErrInvalidRequest is returned when url or service is missing.
var ErrInvalidRequest = errors.New("url, service 필수")

// ShortLinkResolver expands short links; it never fails.
type ShortLinkResolver interface {
	Resolve(ctx context.Context, raw string) string
}

// DeepLinkService resolves map URLs to app deep links.
type DeepLinkService struct {
	resolver ShortLinkResolver
	builders map[string]deeplink.Builder
}

// NewDeepLinkService constructs a DeepLinkService with the given resolver and builder registry.
func NewDeepLinkService(resolver ShortLinkResolver, builders map[string]deeplink.Builder) *DeepLinkService {
	return &DeepLinkService{
		resolver: resolver,
		builders: builders,
	}
}

// Resolve expands req.URL when it is a short link and builds a deep link for req.Service.
// An unknown service yields a nil DeepLink and no error.
func (s *DeepLinkService) Resolve(ctx context.Context, req model.ResolveRequest) (model.ResolveResponse, error) {
	if req.URL == "" || req.Service == "" {
		return model.ResolveResponse{}, ErrInvalidRequest
	}

	finalURL := req.URL
	if resolver.IsShortLink(req.URL) {
		finalURL = s.resolver.Resolve(ctx, req.URL)
	}

	resp := model.ResolveResponse{
		OriginalURL: req.URL,
		FinalURL:    finalURL,
	}

	builder, ok := s.builders[req.Service]
	if !ok {
		log.Debug().Str("service", req.Service).Msg("unsupported service")
		return resp, nil
	}

	if link, ok := builder.Build(finalURL); ok {
		resp.DeepLink = &link
	}

	return resp, nil
}
