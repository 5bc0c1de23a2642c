// internal/httpserver/routes_daily.go
//
// Word of the day.
//   - GET /daily → today's date, a game link for today's word and the
//     word's length. The word itself is only inside the encoded link.
//
// Every server sharing DAILY_SALT and the word list serves the same word
// for a given UTC date (see internal/daily).

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordlet/internal/daily"
	"github.com/robalobadob/wordlet/internal/share"
)

func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily", s.handleDaily)
}

type dailyRes struct {
	Date     string `json:"date"`
	Length   int    `json:"length"`
	Attempts int    `json:"attempts"`
	GameURL  string `json:"gameUrl"`
	// Token is the encoded word, accepted by POST /game/new.
	Token string `json:"token"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date := s.now()
	if q := r.URL.Query().Get("date"); q != "" {
		d, err := time.Parse("2006-01-02", q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_date", "date must be YYYY-MM-DD")
			return
		}
		date = d
	}
	word := s.words.Daily(date, s.cfg.DailySalt)
	p := share.GameParams{Word: word, Attempts: s.cfg.Game.DefaultAttempts}
	link, err := share.GameURL(s.cfg.GameBase(), p)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	token, err := share.EncodeWord(word)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dailyRes{
		Date:     daily.DateKey(date),
		Length:   len([]rune(word)),
		Attempts: p.Attempts,
		GameURL:  link,
		Token:    token,
	})
}
