// Package server provides HTTP handler construction for authmock.
package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/alexjbarnes/authmock/internal/auth"
	"github.com/alexjbarnes/authmock/internal/keys"
)

// MuxConfig holds dependencies for building the HTTP handler.
type MuxConfig struct {
	Store     *auth.Store
	Fixture   auth.Fixture
	Keys      *keys.Keys
	Logger    *slog.Logger
	IssuerURL string
	BaseURL   string
}

// NewMux builds the HTTP handler: registration, authorization, token,
// JWKS, and discovery endpoints, with CORS preflight answered on any
// path, a JSON 404 fallback for unknown routes, and a per-request
// access line.
func NewMux(cfg MuxConfig) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/register", auth.HandleRegistration(cfg.Store, cfg.Fixture, cfg.Logger))
	mux.HandleFunc("/authorize", auth.HandleAuthorize(cfg.Fixture, cfg.Logger))
	mux.HandleFunc("/token", auth.HandleToken(cfg.Fixture, cfg.Keys, cfg.Logger))
	mux.HandleFunc("/.well-known/jwks.json", auth.HandleJWKS(cfg.Keys))
	mux.HandleFunc("/.well-known/oauth-authorization-server", auth.HandleServerMetadata(cfg.IssuerURL, cfg.BaseURL))
	mux.HandleFunc("/", auth.HandleNotFound())

	// Preflight is uniform across routes, so intercept it before the
	// path-based dispatch.
	preflight := auth.HandlePreflight()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			preflight(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})

	return logRequests(cfg.Logger, handler)
}

// statusRecorder captures the response code for access logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// logRequests emits one access line per request.
func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote", remoteIP(r)),
		)
	})
}

// remoteIP strips the port from r.RemoteAddr, falling back to the raw
// value if parsing fails.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
