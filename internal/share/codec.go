// internal/share/codec.go
//
// Result codec: turns a finished game into a compact, URL-safe token and back.
//
// Token format:
//   base64url( JSON{word, attempts, maxAttempts, playTime, gameState,
//                   hardMode, guesses:[{word,result}], timestamp} )
//
// Decode is a transcript viewer, not a verifier: it checks that the payload
// parses and carries the required fields, and never re-scores the guesses.
// Tokens from the browser build (standard base64 over Latin-1 JSON) decode too.

package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/robalobadob/wordlet/internal/game"
)

var (
	ErrGameNotFinished = errors.New("game not finished")
	ErrCorruptResult   = errors.New("corrupt result")
)

// Summary is the decoded, read-only view of a shared result.
type Summary struct {
	Word        string       `json:"word"`
	Attempts    int          `json:"attempts"`
	MaxAttempts int          `json:"maxAttempts"`
	PlayTime    int64        `json:"playTime"`
	State       game.State   `json:"gameState"`
	HardMode    bool         `json:"hardMode"`
	Guesses     []game.Guess `json:"guesses"`
	Timestamp   int64        `json:"timestamp"` // ms since epoch
}

// Won reports whether the shared game was solved.
func (s Summary) Won() bool { return s.State == game.Won }

// CreatedAt converts the token timestamp.
func (s Summary) CreatedAt() time.Time { return time.UnixMilli(s.Timestamp) }

// payload mirrors Summary with pointers so missing fields can be told apart
// from zero values.
type payload struct {
	Word        *string       `json:"word"`
	Attempts    *int          `json:"attempts"`
	MaxAttempts *int          `json:"maxAttempts"`
	PlayTime    *int64        `json:"playTime"`
	State       *game.State   `json:"gameState"`
	HardMode    *bool         `json:"hardMode,omitempty"`
	Guesses     *[]game.Guess `json:"guesses"`
	Timestamp   *int64        `json:"timestamp,omitempty"`
}

// Encode builds a token for a finished session, stamped with the current time.
func Encode(s *game.Session) (string, error) {
	return EncodeAt(s, time.Now())
}

// EncodeAt is Encode with an explicit creation time.
func EncodeAt(s *game.Session, at time.Time) (string, error) {
	if !s.State().Terminal() {
		return "", ErrGameNotFinished
	}
	st := s.Stats()
	sum := Summary{
		Word:        st.TargetWord,
		Attempts:    st.Attempts,
		MaxAttempts: st.MaxAttempts,
		PlayTime:    st.PlayTime,
		State:       st.State,
		HardMode:    st.HardMode,
		Guesses:     s.Guesses(),
		Timestamp:   at.UnixMilli(),
	}
	return EncodeSummary(sum)
}

// EncodeSummary serializes an already-built summary.
func EncodeSummary(sum Summary) (string, error) {
	if sum.Guesses == nil {
		sum.Guesses = []game.Guess{}
	}
	raw, err := json.Marshal(sum)
	if err != nil {
		return "", fmt.Errorf("share: marshal result: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode parses a token produced by Encode (or by the browser build).
func Decode(token string) (Summary, error) {
	raw, err := decodeBase64(token)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrCorruptResult, err)
	}
	if !utf8.Valid(raw) {
		if raw, err = charmap.ISO8859_1.NewDecoder().Bytes(raw); err != nil {
			return Summary{}, fmt.Errorf("%w: %v", ErrCorruptResult, err)
		}
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrCorruptResult, err)
	}
	if missing := p.missing(); len(missing) > 0 {
		return Summary{}, fmt.Errorf("%w: missing %s", ErrCorruptResult, strings.Join(missing, ", "))
	}
	if !p.State.Terminal() {
		return Summary{}, fmt.Errorf("%w: game state %q", ErrCorruptResult, *p.State)
	}

	sum := Summary{
		Word:        *p.Word,
		Attempts:    *p.Attempts,
		MaxAttempts: *p.MaxAttempts,
		PlayTime:    *p.PlayTime,
		State:       *p.State,
		Guesses:     *p.Guesses,
	}
	if p.HardMode != nil {
		sum.HardMode = *p.HardMode
	}
	if p.Timestamp != nil {
		sum.Timestamp = *p.Timestamp
	}
	if sum.Guesses == nil {
		sum.Guesses = []game.Guess{}
	}
	return sum, nil
}

func (p payload) missing() []string {
	var out []string
	if p.Word == nil {
		out = append(out, "word")
	}
	if p.Attempts == nil {
		out = append(out, "attempts")
	}
	if p.MaxAttempts == nil {
		out = append(out, "maxAttempts")
	}
	if p.PlayTime == nil {
		out = append(out, "playTime")
	}
	if p.State == nil {
		out = append(out, "gameState")
	}
	if p.Guesses == nil {
		out = append(out, "guesses")
	}
	return out
}

// decodeBase64 accepts standard or URL-safe alphabets, with or without
// padding. A '+' turned into a space by form decoding is restored.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty token")
	}
	s = strings.NewReplacer(" ", "+", "-", "+", "_", "/", "\n", "", "\r", "").Replace(s)
	s = strings.TrimRight(s, "=")
	return base64.RawStdEncoding.DecodeString(s)
}

// Transcript renders the result-page emoji block:
//
//	Wordlet 3/6
//	⏱️ 1:05
//	🔥 Modo difícil
//
//	🟨⬛⬛⬛⬛
//	...
func (s Summary) Transcript() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Wordlet %d/%d\n", s.Attempts, s.MaxAttempts)
	fmt.Fprintf(&b, "⏱️ %s\n", FormatPlayTime(s.PlayTime))
	if s.HardMode {
		b.WriteString("🔥 Modo difícil\n")
	}
	b.WriteByte('\n')
	b.WriteString(game.GlyphRows(s.Guesses))
	return b.String()
}

// ShareText is the message attached to a shared result link.
func (s Summary) ShareText(resultURL string) string {
	verb := "intentado"
	if s.Won() {
		verb = "completado"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Wordlet %s!\n", verb)
	fmt.Fprintf(&b, "📝 Palabra: %s\n", s.Word)
	fmt.Fprintf(&b, "⏱️ Tiempo: %s\n", FormatPlayTime(s.PlayTime))
	fmt.Fprintf(&b, "🎮 Intentos: %d/%d\n", s.Attempts, s.MaxAttempts)
	if s.HardMode {
		b.WriteString("🔥 Modo difícil\n")
	}
	fmt.Fprintf(&b, "🔗 Ver resultado: %s", resultURL)
	return b.String()
}

// FormatPlayTime renders seconds as m:ss.
func FormatPlayTime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
