// internal/httpserver/routes_game.go
//
// Game endpoints. Each game is a *game.Session held in the session store and
// addressed by id; every operation on it runs inside store.Update so
// requests for one game apply one at a time, in arrival order.
//
//   - POST   /game/new            start from a plain word, an encoded word or a random one
//   - GET    /game/load           start from game link params (word, attempts, hard)
//   - GET    /game/{id}           current snapshot
//   - POST   /game/{id}/letter    type one letter
//   - POST   /game/{id}/backspace delete the last letter
//   - POST   /game/{id}/guess     submit the row (or a whole word)
//   - GET    /game/{id}/share     result token + transcript, finished games only
//   - DELETE /game/{id}           forget the game
//   - GET    /game/{id}/ws        live snapshots (ws.go)

package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordlet/internal/game"
	"github.com/robalobadob/wordlet/internal/settings"
	"github.com/robalobadob/wordlet/internal/share"
	"github.com/robalobadob/wordlet/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		// long-lived, so outside the timeout
		r.Get("/{id}/ws", s.handleWS)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(requestTimeout))
			r.Post("/new", s.handleNewGame)
			r.Get("/load", s.handleLoadGame)
			r.Get("/{id}", s.handleSnapshot)
			r.Delete("/{id}", s.handleDeleteGame)
			r.Post("/{id}/letter", s.handleLetter)
			r.Post("/{id}/backspace", s.handleBackspace)
			r.Post("/{id}/guess", s.handleGuess)
			r.Get("/{id}/share", s.handleShare)
		})
	})
}

// newGameReq is the body of POST /game/new. Nil fields fall back to the
// player's settings.
type newGameReq struct {
	Word     string `json:"word"`  // plain word
	Token    string `json:"token"` // encoded word, as in a game link
	Attempts *int   `json:"attempts"`
	HardMode *bool  `json:"hardMode"`
}

type gameRes struct {
	ID       string        `json:"id"`
	GameURL  string        `json:"gameUrl,omitempty"`
	Snapshot game.Snapshot `json:"snapshot"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if !decodeJSON(w, r, &req) {
		return
	}
	prefs := s.loadPrefs(r)

	word := req.Word
	if word == "" && req.Token != "" {
		decoded, err := share.DecodeWord(req.Token)
		if err != nil {
			writeErr(w, r, err)
			return
		}
		word = decoded
	}
	if word == "" {
		word = s.words.Random()
	}

	attempts := s.cfg.Game.ClampAttempts(prefs.Attempts)
	if req.Attempts != nil {
		attempts = *req.Attempts
		if attempts >= 1 {
			attempts = s.cfg.Game.ClampAttempts(attempts)
		}
	}
	hard := prefs.HardMode
	if req.HardMode != nil {
		hard = *req.HardMode
	}

	s.startGame(w, r, share.GameParams{Word: word, Attempts: attempts, HardMode: hard}, req.Word != "" || req.Token != "")
}

func (s *Server) handleLoadGame(w http.ResponseWriter, r *http.Request) {
	p, err := share.ParseGameParams(r.URL.Query(), s.cfg.Game)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	s.startGame(w, r, p, true)
}

// startGame creates and stores a session, then remembers the options as the
// player's defaults. remember=false keeps random words out of LastWord.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, p share.GameParams, remember bool) {
	sess := game.NewSession(s.cfg.Game, game.WithClock(s.now))
	if err := sess.SetupGame(p.Word, p.Attempts, p.HardMode); err != nil {
		writeErr(w, r, err)
		return
	}
	id := store.NewID()
	sess.OnChange(func(snap game.Snapshot) { s.hub.Publish(id, snap) })
	if err := s.sessions.Save(r.Context(), id, sess); err != nil {
		writeErr(w, r, err)
		return
	}

	prefs := s.loadPrefs(r)
	prefs.Attempts, prefs.HardMode = sess.MaxAttempts(), sess.HardMode()
	if remember {
		prefs.LastWord = sess.TargetWord()
	}
	s.savePrefs(r, prefs)

	res := gameRes{ID: id, Snapshot: sess.Snapshot()}
	if remember {
		// links to a random word would give it away
		link, err := share.GameURL(s.cfg.GameBase(), share.GameParams{
			Word: sess.TargetWord(), Attempts: sess.MaxAttempts(), HardMode: sess.HardMode(),
		})
		if err == nil {
			res.GameURL = link
		}
	}
	hlog.FromRequest(r).Info().Str("session", id).Int("length", res.Snapshot.TargetLength).
		Int("attempts", sess.MaxAttempts()).Bool("hard", sess.HardMode()).Msg("game started")
	writeJSON(w, http.StatusCreated, res)
}

// withSession runs fn on the session named by the {id} URL param.
func (s *Server) withSession(r *http.Request, fn func(*game.Session) error) error {
	return s.sessions.Update(r.Context(), chi.URLParam(r, "id"), fn)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	err := s.withSession(r, func(sess *game.Session) error {
		snap = sess.Snapshot()
		return nil
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type editRes struct {
	Accepted bool          `json:"accepted"`
	Snapshot game.Snapshot `json:"snapshot"`
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Letter string `json:"letter"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	var res editRes
	err := s.withSession(r, func(sess *game.Session) error {
		res.Accepted = sess.AddLetter(req.Letter)
		res.Snapshot = sess.Snapshot()
		return nil
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBackspace(w http.ResponseWriter, r *http.Request) {
	var res editRes
	err := s.withSession(r, func(sess *game.Session) error {
		res.Accepted = sess.RemoveLetter()
		res.Snapshot = sess.Snapshot()
		return nil
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type guessRes struct {
	game.SubmitResult
	Snapshot  game.Snapshot `json:"snapshot"`
	Stats     *game.Stats   `json:"stats,omitempty"`
	Token     string        `json:"token,omitempty"`
	ResultURL string        `json:"resultUrl,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word string `json:"word"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	var res guessRes
	err := s.withSession(r, func(sess *game.Session) error {
		if req.Word != "" && !sess.SetInput(req.Word) {
			return game.ErrGameOver
		}
		out, err := sess.SubmitGuess()
		if err != nil {
			return err
		}
		res.SubmitResult = out
		res.Snapshot = sess.Snapshot()
		if sess.State().Terminal() {
			st := sess.Stats()
			res.Stats = &st
			if res.Token, err = share.EncodeAt(sess, s.now()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if res.Token != "" {
		res.ResultURL, _ = share.ResultURL(s.cfg.ResultBase(), res.Token)
		s.recordResult(r, res.Token, *res.Stats)
	}
	writeJSON(w, http.StatusOK, res)
}

type shareRes struct {
	Token        string `json:"token"`
	ResultURL    string `json:"resultUrl"`
	PlayAgainURL string `json:"playAgainUrl"`
	Transcript   string `json:"transcript"`
	ShareText    string `json:"shareText"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var token string
	err := s.withSession(r, func(sess *game.Session) error {
		var err error
		token, err = share.EncodeAt(sess, s.now())
		return err
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	sum, err := share.Decode(token)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.describeResult(token, sum))
}

// describeResult builds the links and texts shown next to a shared result.
func (s *Server) describeResult(token string, sum share.Summary) shareRes {
	resultURL, _ := share.ResultURL(s.cfg.ResultBase(), token)
	again, _ := share.PlayAgainURL(s.cfg.GameBase(), sum)
	return shareRes{
		Token:        token,
		ResultURL:    resultURL,
		PlayAgainURL: again,
		Transcript:   sum.Transcript(),
		ShareText:    sum.ShareText(resultURL),
	}
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	s.hub.DropSession(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// unknown ids get a plain 404 before the upgrade
	if _, err := s.sessions.Get(r.Context(), id); err != nil {
		writeErr(w, r, err)
		return
	}
	s.hub.serve(w, r, id, func() (game.Snapshot, error) {
		var snap game.Snapshot
		err := s.sessions.Update(context.WithoutCancel(r.Context()), id, func(sess *game.Session) error {
			snap = sess.Snapshot()
			return nil
		})
		return snap, err
	})
}

// ------------------------------ settings glue -------------------------------

// loadPrefs returns the player's settings, or config defaults when there is
// no settings store or it fails.
func (s *Server) loadPrefs(r *http.Request) settings.Settings {
	def := settings.Defaults(s.cfg.Game)
	if s.prefs == nil {
		return def
	}
	p, err := s.prefs.Load(r.Context(), playerFrom(r.Context()))
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("load settings")
		return def
	}
	return p
}

func (s *Server) savePrefs(r *http.Request, p settings.Settings) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Save(r.Context(), playerFrom(r.Context()), p); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("save settings")
	}
}

func (s *Server) recordResult(r *http.Request, token string, st game.Stats) {
	if s.prefs == nil {
		return
	}
	err := s.prefs.RecordResult(context.WithoutCancel(r.Context()), settings.Result{
		PlayerID:  playerFrom(r.Context()),
		Token:     token,
		Word:      st.TargetWord,
		State:     st.State,
		Attempts:  st.Attempts,
		PlayTime:  st.PlayTime,
		CreatedAt: s.now(),
	})
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("record result")
	}
}
