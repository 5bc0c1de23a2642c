// internal/httpserver/routes_share.go
//
// Sharing endpoints. None of them touch a live session.
//   - GET  /result?data=  decode a result token for the result page
//   - POST /links         build a game link for a chosen word
//   - GET  /qr?url=&size= PNG QR code for any link
//   - POST /batch         links (and QR codes) for a list of words

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordlet/internal/batch"
	"github.com/robalobadob/wordlet/internal/qr"
	"github.com/robalobadob/wordlet/internal/share"
)

const maxBatchWords = 200

func (s *Server) mountShare(r chi.Router) {
	r.Get("/result", s.handleResult)
	r.Post("/links", s.handleLink)
	r.Get("/qr", s.handleQR)
	r.Post("/batch", s.handleBatch)
}

type resultRes struct {
	Summary share.Summary `json:"summary"`
	shareRes
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(share.ParamData)
	sum, err := share.Decode(token)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resultRes{Summary: sum, shareRes: s.describeResult(token, sum)})
}

type linkReq struct {
	Word     string `json:"word"`
	Attempts int    `json:"attempts"`
	HardMode bool   `json:"hardMode"`
}

type linkRes struct {
	share.GameParams
	URL string `json:"url"`
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	var req linkReq
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := share.NewGameParams(req.Word, req.Attempts, req.HardMode, s.cfg.Game)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	link, err := share.GameURL(s.cfg.GameBase(), p)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, linkRes{GameParams: p, URL: link})
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	content := r.URL.Query().Get("url")
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	// the render is abandoned when the client goes away
	var (
		png []byte
		err error
	)
	job := qr.Start(r.Context(), content, size, func(b []byte, e error) { png, err = b, e })
	defer job.Cancel()
	job.Wait()
	if err != nil {
		if content == "" {
			writeError(w, http.StatusBadRequest, "missing_url", err.Error())
			return
		}
		writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(png)
}

type batchReq struct {
	Words    string `json:"words"` // newline or comma separated
	Auto     bool   `json:"auto"`
	Attempts int    `json:"attempts"`
	HardMode bool   `json:"hardMode"`
	QRSize   int    `json:"qrSize"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchReq
	if !decodeJSON(w, r, &req) {
		return
	}
	list := batch.ParseWords(req.Words)
	if len(list) == 0 {
		writeError(w, http.StatusBadRequest, "no_words", "no words given")
		return
	}
	if len(list) > maxBatchWords {
		writeError(w, http.StatusRequestEntityTooLarge, "too_many_words",
			"at most "+strconv.Itoa(maxBatchWords)+" words per batch")
		return
	}
	if req.Attempts == 0 {
		req.Attempts = s.cfg.Game.DefaultAttempts
	}
	qrSize := req.QRSize
	if qrSize > 0 {
		qrSize = qr.ClampSize(qrSize)
	}
	res, err := batch.Generate(r.Context(), s.cfg.Game, list, batch.Options{
		BaseURL:  s.cfg.GameBase(),
		Auto:     req.Auto,
		Attempts: req.Attempts,
		HardMode: req.HardMode,
		QRSize:   qrSize,
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
