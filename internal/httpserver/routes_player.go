// internal/httpserver/routes_player.go
//
// Per-player endpoints, keyed by the anonymous player id:
//   - GET /settings  current defaults (attempts, hardMode, lastWord)
//   - PUT /settings  replace them
//   - GET /history   most recent finished games

package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordlet/internal/game"
	"github.com/robalobadob/wordlet/internal/settings"
)

func (s *Server) mountPlayer(r chi.Router) {
	r.Get("/settings", s.handleGetSettings)
	r.Put("/settings", s.handlePutSettings)
	r.Get("/history", s.handleHistory)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.loadPrefs(r))
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	req := s.loadPrefs(r)
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Attempts < s.cfg.Game.MinAttempts || req.Attempts > s.cfg.Game.MaxAttempts {
		writeErr(w, r, fmt.Errorf("%w: %d not in [%d, %d]", game.ErrInvalidAttempts,
			req.Attempts, s.cfg.Game.MinAttempts, s.cfg.Game.MaxAttempts))
		return
	}
	if req.LastWord != "" {
		req.LastWord = game.Normalize(req.LastWord)
	}
	if s.prefs == nil {
		writeError(w, http.StatusServiceUnavailable, "no_storage", "settings are not persisted on this server")
		return
	}
	if err := s.prefs.Save(r.Context(), playerFrom(r.Context()), req); err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.prefs == nil {
		writeJSON(w, http.StatusOK, []settings.Result{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 100 {
		limit = 100
	}
	rows, err := s.prefs.History(r.Context(), playerFrom(r.Context()), limit)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
