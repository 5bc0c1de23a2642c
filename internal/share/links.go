package share

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/robalobadob/wordlet/internal/game"
)

// Query parameter names shared with the browser front-end.
const (
	ParamWord     = "word"
	ParamAttempts = "attempts"
	ParamHard     = "hard"
	ParamData     = "data"
)

var (
	ErrMissingWord     = errors.New("missing word parameter")
	ErrBadWordEncoding = errors.New("word parameter is not valid base64")
)

// GameParams is what a game link carries.
type GameParams struct {
	Word     string `json:"word"`
	Attempts int    `json:"attempts"`
	HardMode bool   `json:"hardMode"`
}

// EncodeWord hides a word from casual reading: normalized, Latin-1 bytes, base64.
// Latin-1 keeps Ñ as one byte, matching what browsers produce with btoa.
func EncodeWord(word string) (string, error) {
	n := game.Normalize(word)
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(n))
	if err != nil {
		return "", fmt.Errorf("share: encode word %q: %w", n, err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeWord reverses EncodeWord. UTF-8 payloads are accepted as well.
func DecodeWord(encoded string) (string, error) {
	raw, err := decodeBase64(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadWordEncoding, err)
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadWordEncoding, err)
	}
	return string(out), nil
}

// GameURL builds base?word=…&attempts=…&hard=1|0.
func GameURL(base string, p GameParams) (string, error) {
	w, err := EncodeWord(p.Word)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set(ParamWord, w)
	q.Set(ParamAttempts, strconv.Itoa(p.Attempts))
	q.Set(ParamHard, boolParam(p.HardMode))
	return withQuery(base, q)
}

// ParseGameParams reads a game link's query. attempts falls back to the
// config default and is clamped to the config bounds; hard is on only for "1".
func ParseGameParams(q url.Values, cfg game.Config) (GameParams, error) {
	enc := q.Get(ParamWord)
	if enc == "" {
		return GameParams{}, ErrMissingWord
	}
	word, err := DecodeWord(enc)
	if err != nil {
		return GameParams{}, err
	}
	attempts, _ := strconv.Atoi(strings.TrimSpace(q.Get(ParamAttempts)))
	return NewGameParams(word, attempts, q.Get(ParamHard) == "1", cfg)
}

// NewGameParams normalizes and validates a word for a game link. attempts
// is clamped like in ParseGameParams.
func NewGameParams(word string, attempts int, hard bool, cfg game.Config) (GameParams, error) {
	w := game.Normalize(word)
	if w == "" {
		return GameParams{}, ErrMissingWord
	}
	if !cfg.ValidWord(w) {
		return GameParams{}, fmt.Errorf("%w: %q", game.ErrInvalidWord, w)
	}
	return GameParams{Word: w, Attempts: cfg.ClampAttempts(attempts), HardMode: hard}, nil
}

// ResultURL builds base?data=<token>.
func ResultURL(base, token string) (string, error) {
	q := url.Values{}
	q.Set(ParamData, token)
	return withQuery(base, q)
}

// PlayAgainURL links a shared result back to a fresh game with the same word and options.
func PlayAgainURL(base string, s Summary) (string, error) {
	return GameURL(base, GameParams{Word: s.Word, Attempts: s.MaxAttempts, HardMode: s.HardMode})
}

func withQuery(base string, q url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("share: parse base url: %w", err)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
