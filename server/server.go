// ABOUTME: HTTP API for hashing and comparing DOT graphs behind a chi router.
// ABOUTME: Serves /v1/hash, /v1/compare, /healthz, and Prometheus /metrics.
package server

import (
	"crypto/rand"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/2389-research/wlhash/wl"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// Config holds the server configuration.
type Config struct {
	Addr string // listen address (default: "127.0.0.1:2390")

	// Defaults applies to requests that omit a parameter.
	Defaults wl.Options

	// Timeout bounds one hash computation. Zero means no limit.
	Timeout time.Duration
}

// Server is the hashing HTTP API.
type Server struct {
	router   chi.Router
	addr     string
	defaults wl.Options
	timeout  time.Duration
}

// New creates a Server with all routes configured.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:2390"
	}
	if cfg.Defaults.DigestSize == 0 {
		cfg.Defaults.DigestSize = wl.DefaultDigestSize
	}
	s := &Server{
		addr:     cfg.Addr,
		defaults: cfg.Defaults,
		timeout:  cfg.Timeout,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/hash", s.handleHash)
		r.Post("/compare", s.handleCompare)
	})

	return r
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// HTTPServer returns an http.Server for the configured address with timeouts
// suited to small synchronous requests.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}

// ListenAndServe starts the HTTP server on the configured address.
func (s *Server) ListenAndServe() error {
	return s.HTTPServer().ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// newRequestID returns a ULID string for correlating logs and responses.
func newRequestID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
