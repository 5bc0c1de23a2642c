// internal/httpserver/server.go
//
// HTTP server wiring for the Wordlet backend.
// Responsibilities:
//   - Router + middleware (request IDs, access logs, CORS, timeouts, panic recovery).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: /game/* drive one Session per id (routes_game.go).
//   - Share endpoints: /result, /links, /qr, /batch (routes_share.go).
//   - Player endpoints: /settings, /history (routes_player.go), /daily (routes_daily.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled so the player cookie works.
//   - Every request carries an anonymous player id (player.go).
//   - The WebSocket route is the only one without a request timeout.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordlet/internal/config"
	"github.com/robalobadob/wordlet/internal/settings"
	"github.com/robalobadob/wordlet/internal/store"
	"github.com/robalobadob/wordlet/internal/words"
)

const requestTimeout = 10 * time.Second

// Server bundles the router with the session store, the settings store and
// the word list.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	sessions store.Store
	prefs    settings.Store
	words    *words.List
	hub      *Hub
	now      func() time.Time
	logger   zerolog.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithClock overrides time.Now for sessions, tokens and the daily word.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the logger used for access logs (default: the global logger).
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, sessions store.Store, prefs settings.Store, list *words.List, opts ...Option) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		sessions: sessions,
		prefs:    prefs,
		words:    list,
		hub:      NewHub(cfg.ClientOrigin),
		now:      time.Now,
		logger:   log.Logger,
	}
	for _, o := range opts {
		o(s)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(s.logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(cors(cfg.ClientOrigin))
	s.r.Use(s.withPlayer)

	go s.hub.Run()

	// --- diagnostics ---
	s.r.Get("/", s.handleIndex)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.Len()})
	})

	s.mountGame(s.r)
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		s.mountShare(r)
		s.mountPlayer(r)
		s.mountDaily(r)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" "+r.URL.Path)
	})
	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		s.hub.Close()
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops background work owned by the server.
func (s *Server) Close() { s.hub.Close() }

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "wordlet",
		"words":   s.words.Len(),
		"endpoints": []string{
			"/health",
			"POST /game/new", "GET /game/load", "GET /game/{id}",
			"POST /game/{id}/letter", "POST /game/{id}/backspace", "POST /game/{id}/guess",
			"GET /game/{id}/share", "DELETE /game/{id}", "GET /game/{id}/ws",
			"GET /result", "POST /links", "GET /qr", "POST /batch",
			"GET /daily", "GET|PUT /settings", "GET /history",
		},
	})
}

// ----------------------------- middleware ----------------------------------

// accessLog writes one line per request through the request logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
