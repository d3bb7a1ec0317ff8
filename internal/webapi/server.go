// Package webapi serves endpoint extraction over an HTTP JSON API.
//
// A client first posts a document (or a URL to fetch) to /api/reference and
// receives a session id with the list of endpoints. It then posts the session
// id and a selection to /api/generate to receive the trimmed document.
package webapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/erraggy/swagrec"
	"github.com/erraggy/swagrec/internal/httputil"
	"github.com/erraggy/swagrec/internal/speccache"
	"github.com/erraggy/swagrec/parser"
)

const (
	// DefaultAddr is the listen address used when Config.Addr is empty.
	DefaultAddr = ":8080"
	// DefaultSessionTTL is how long an uploaded document is kept.
	DefaultSessionTTL = 30 * time.Minute
	// DefaultMaxSessions bounds the number of documents kept in memory.
	DefaultMaxSessions = 64
	// DefaultMaxBodySize bounds request bodies.
	DefaultMaxBodySize int64 = 10 * 1024 * 1024

	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

// Config configures a Server. Zero values select the defaults.
type Config struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string
	// SessionTTL is how long an uploaded document stays available
	SessionTTL time.Duration
	// MaxSessions bounds the number of stored documents; the least recently
	// used session is evicted first
	MaxSessions int
	// MaxBodySize bounds request bodies and fetched documents in bytes
	MaxBodySize int64
	// AllowedOrigins lists CORS origins. Empty allows all origins.
	AllowedOrigins []string
	// RequireJSON rejects URL references not served as JSON
	RequireJSON bool
	// UserAgent is sent when fetching URL references
	UserAgent string
	// AllowPrivateIPs lets URL references reach loopback, private and
	// link-local addresses. Only meaningful without HTTPClient.
	AllowPrivateIPs bool
	// HTTPClient fetches URL references. Defaults to a client that refuses
	// private addresses, or the parser client with AllowPrivateIPs.
	HTTPClient *http.Client
	// Logger receives request logs. Defaults to parser.NopLogger.
	Logger parser.Logger
}

// Server is the HTTP API.
type Server struct {
	cfg      Config
	sessions *speccache.Cache[*parser.ParseResult]
	handler  http.Handler
}

// New creates a Server from cfg.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = swagrec.UserAgent()
	}
	if cfg.Logger == nil {
		cfg.Logger = parser.NopLogger{}
	}
	if cfg.HTTPClient == nil && !cfg.AllowPrivateIPs {
		cfg.HTTPClient = httputil.NewSafeClient()
	}

	s := &Server{
		cfg:      cfg,
		sessions: speccache.New[*parser.ParseResult](cfg.MaxSessions),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/reference", s.handleReference)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/endpoints", s.handleEndpoints)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.logRequests(mux))
	return s
}

// Handler returns the root handler, including CORS.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("webapi: failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.sessions.StartSweeper(ctx, sweepInterval)

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("serving HTTP API", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("webapi: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("webapi: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("webapi: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.cfg.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
