package service

import (
	"context"
	"testing"

	"github.com/gw0212/maplink-manager/internal/deeplink"
	"github.com/gw0212/maplink-manager/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	resolveFunc func(ctx context.Context, raw string) string
	calls       []string
}

func (m *mockResolver) Resolve(ctx context.Context, raw string) string {
	m.calls = append(m.calls, raw)
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, raw)
	}
	return raw
}

func newTestService(r *mockResolver) *DeepLinkService {
	return NewDeepLinkService(r, deeplink.Builders(deeplink.DefaultAppName))
}

func TestDeepLinkService_Resolve(t *testing.T) {
	tests := []struct {
		name          string
		req           model.ResolveRequest
		resolved      string
		wantFinal     string
		wantDeepLink  string
		wantNil       bool
		wantResolving bool
	}{
		{
			name:         "naver place",
			req:          model.ResolveRequest{URL: "https://map.naver.com/place/123", Service: deeplink.ServiceNaver},
			wantFinal:    "https://map.naver.com/place/123",
			wantDeepLink: "nmap://place?id=123&appname=https%3A%2F%2Fgw0212.github.io%2FMapLink_Manager%2F",
		},
		{
			name:         "kakao path",
			req:          model.ResolveRequest{URL: "https://map.kakao.com/link/map/X,37.5,127.0", Service: deeplink.ServiceKakao},
			wantFinal:    "https://map.kakao.com/link/map/X,37.5,127.0",
			wantDeepLink: "kakaomap://look?p=37.5,127.0",
		},
		{
			name:          "naver short link",
			req:           model.ResolveRequest{URL: "https://naver.me/AbC", Service: deeplink.ServiceNaver},
			resolved:      "https://map.naver.com/p/entry/place/555",
			wantFinal:     "https://map.naver.com/p/entry/place/555",
			wantDeepLink:  "nmap://place?id=555&appname=https%3A%2F%2Fgw0212.github.io%2FMapLink_Manager%2F",
			wantResolving: true,
		},
		{
			name:          "kakao short link",
			req:           model.ResolveRequest{URL: "https://kko.to/q1w2", Service: deeplink.ServiceKakao},
			resolved:      "https://map.kakao.com/?lat=37.1&lng=127.1",
			wantFinal:     "https://map.kakao.com/?lat=37.1&lng=127.1",
			wantDeepLink:  "kakaomap://look?p=37.1,127.1",
			wantResolving: true,
		},
		{
			name:      "nothing extractable",
			req:       model.ResolveRequest{URL: "https://example.com/", Service: deeplink.ServiceNaver},
			wantFinal: "https://example.com/",
			wantNil:   true,
		},
		{
			name:      "unknown service",
			req:       model.ResolveRequest{URL: "https://map.naver.com/place/123", Service: "google"},
			wantFinal: "https://map.naver.com/place/123",
			wantNil:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &mockResolver{}
			if tt.resolved != "" {
				r.resolveFunc = func(ctx context.Context, raw string) string { return tt.resolved }
			}

			resp, err := newTestService(r).Resolve(context.Background(), tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.req.URL, resp.OriginalURL)
			assert.Equal(t, tt.wantFinal, resp.FinalURL)
			if tt.wantNil {
				assert.Nil(t, resp.DeepLink)
			} else {
				require.NotNil(t, resp.DeepLink)
				assert.Equal(t, tt.wantDeepLink, *resp.DeepLink)
			}

			if tt.wantResolving {
				assert.Equal(t, []string{tt.req.URL}, r.calls)
			} else {
				assert.Empty(t, r.calls)
			}
		})
	}
}

func TestDeepLinkService_ResolveMissingFields(t *testing.T) {
	svc := newTestService(&mockResolver{})

	for _, req := range []model.ResolveRequest{
		{},
		{URL: "https://map.naver.com/place/1"},
		{Service: deeplink.ServiceNaver},
	} {
		_, err := svc.Resolve(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	}
}

func TestDeepLinkService_ResolveIsIdempotent(t *testing.T) {
	svc := newTestService(&mockResolver{})
	req := model.ResolveRequest{URL: "https://map.naver.com/?lat=37.5&lng=127.0", Service: deeplink.ServiceNaver}

	first, err := svc.Resolve(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
