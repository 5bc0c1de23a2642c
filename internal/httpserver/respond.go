// internal/httpserver/respond.go
//
// JSON response helpers and the mapping from domain errors to HTTP errors.
//
// Every error body has the shape {"error": code, "message": text}. Codes are
// stable identifiers the front-end switches on; messages are for humans.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordlet/internal/game"
	"github.com/robalobadob/wordlet/internal/share"
	"github.com/robalobadob/wordlet/internal/store"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}

// errorCodes maps sentinel errors to status and code, checked in order.
var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{store.ErrNotFound, http.StatusNotFound, "not_found"},
	{game.ErrInvalidWord, http.StatusBadRequest, "invalid_word"},
	{game.ErrInvalidAttempts, http.StatusBadRequest, "invalid_attempts"},
	{game.ErrIncompleteWord, http.StatusUnprocessableEntity, "incomplete_word"},
	{game.ErrGameOver, http.StatusConflict, "game_over"},
	{game.ErrNotStarted, http.StatusConflict, "not_started"},
	{game.ErrHardModeViolation, http.StatusUnprocessableEntity, "hard_mode"},
	{share.ErrGameNotFinished, http.StatusConflict, "game_not_finished"},
	{share.ErrCorruptResult, http.StatusBadRequest, "corrupt_result"},
	{share.ErrMissingWord, http.StatusBadRequest, "missing_word"},
	{share.ErrBadWordEncoding, http.StatusBadRequest, "bad_word_encoding"},
}

// writeErr translates err; anything unrecognized is logged and reported as a 500.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			writeError(w, e.status, e.code, err.Error())
			return
		}
	}
	hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal", "internal error")
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		return true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	return true
}
