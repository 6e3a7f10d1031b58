package handler

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gw0212/maplink-manager/internal/logger"
	"github.com/gw0212/maplink-manager/internal/middleware"
	"github.com/gw0212/maplink-manager/internal/model"
	"github.com/gw0212/maplink-manager/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	msgMissingFields    = "url, service 필수"
	msgMethodNotAllowed = "Method not allowed"
	msgInternalError    = "internal_error"
	msgNotFound         = "Not found"
)

// maxBodySize caps how much of a request body is read.
const maxBodySize = 1 << 20

type DeepLinkService interface {
	Resolve(ctx context.Context, req model.ResolveRequest) (model.ResolveResponse, error)
}

type Handler struct {
	deepLinkService DeepLinkService
	requestTimeout  time.Duration
	enableGzip      bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithRequestTimeout bounds how long a single request may run. Zero disables the limit.
func WithRequestTimeout(d time.Duration) Option {
	return func(h *Handler) {
		h.requestTimeout = d
	}
}

// WithGzip toggles gzip compression of responses.
func WithGzip(enabled bool) Option {
	return func(h *Handler) {
		h.enableGzip = enabled
	}
}

func NewHandler(deepLinkService DeepLinkService, opts ...Option) *Handler {
	h := &Handler{
		deepLinkService: deepLinkService,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logger.RequestLogger)
	r.Use(middleware.Recoverer)

	if h.requestTimeout > 0 {
		r.Use(chimiddleware.Timeout(h.requestTimeout))
	}

	r.Use(middleware.GzipReader)
	if h.enableGzip {
		r.Use(middleware.GzipMiddleware)
	}

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleMethodNotAllowed)

	r.Get("/healthz", h.handleHealth)

	for _, pattern := range []string{"/", "/api/resolve"} {
		r.Options(pattern, h.handlePreflight)
		r.Post(pattern, h.handleResolve)
	}

	return r
}

func (h *Handler) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		log.Warn().Err(err).Msg("failed to read request body")
		body = nil
	}
	defer r.Body.Close()

	var req model.ResolveRequest
	if isFormRequest(r) {
		req = decodeResolveForm(body)
	} else {
		req = decodeResolveRequest(body)
	}

	resp, err := h.deepLinkService.Resolve(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, msgMissingFields)
			return
		}

		log.Error().
			Err(err).
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Msg("resolve failed")
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func isFormRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgNotFound)
}
