// internal/game/session.go
//
// Session is the state machine for a single game:
//   - SetupGame resets everything for a new target word.
//   - AddLetter / RemoveLetter edit the pending row.
//   - SubmitGuess evaluates the pending row and advances playing → won | lost.
//
// A Session is synchronous and not safe for concurrent use; callers that
// share one across goroutines must serialize access (see internal/store).

package game

import (
	"fmt"
	"strings"
	"time"
)

// Session holds all mutable state of one game.
type Session struct {
	cfg   Config
	clock func() time.Time

	target       string
	maxAttempts  int
	hardMode     bool
	guesses      []Guess
	currentRow   int
	currentInput []rune
	state        State
	startTime    time.Time
	endTime      time.Time
	keyboard     Keyboard

	onChange []func(Snapshot)
}

// Option customizes a Session at construction.
type Option func(*Session)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.clock = now }
}

// NewSession returns an empty session bound to cfg. Call SetupGame before playing.
func NewSession(cfg Config, opts ...Option) *Session {
	s := &Session{cfg: cfg, clock: time.Now, state: Playing}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetupGame (re)starts the session with a new target word.
// The word is normalized first; ErrInvalidWord is returned when the result
// does not satisfy the configured length bounds.
func (s *Session) SetupGame(targetWord string, maxAttempts int, hardMode bool) error {
	word := Normalize(targetWord)
	if !s.cfg.ValidWord(word) {
		return fmt.Errorf("%w: %q must have %d-%d letters", ErrInvalidWord, targetWord, s.cfg.MinWordLength, s.cfg.MaxWordLength)
	}
	if maxAttempts < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidAttempts, maxAttempts)
	}

	s.target = word
	s.maxAttempts = maxAttempts
	s.hardMode = hardMode
	s.guesses = nil
	s.currentRow = 0
	s.currentInput = s.currentInput[:0]
	s.state = Playing
	s.startTime = s.clock()
	s.endTime = time.Time{}
	s.keyboard.Reset()

	s.notify()
	return nil
}

// AddLetter appends one letter to the pending row.
// It returns false when the game is over, the row is full or letter
// normalizes to nothing.
func (s *Session) AddLetter(letter string) bool {
	if s.state != Playing || s.target == "" {
		return false
	}
	n := []rune(Normalize(letter))
	if len(n) == 0 {
		return false
	}
	if len(s.currentInput)+len(n) > letterCount(s.target) {
		return false
	}
	s.currentInput = append(s.currentInput, n...)
	s.notify()
	return true
}

// RemoveLetter drops the last pending letter.
func (s *Session) RemoveLetter() bool {
	if s.state != Playing || len(s.currentInput) == 0 {
		return false
	}
	s.currentInput = s.currentInput[:len(s.currentInput)-1]
	s.notify()
	return true
}

// SetInput replaces the pending row with word, normalized but not cut to
// length: a word of the wrong length fails at SubmitGuess. It is a
// convenience for clients that send whole words.
func (s *Session) SetInput(word string) bool {
	if s.state != Playing || s.target == "" {
		return false
	}
	s.currentInput = append(s.currentInput[:0], []rune(Normalize(word))...)
	s.notify()
	return true
}

// SubmitResult describes a successful submission.
type SubmitResult struct {
	Guess Guess `json:"guess"`
	Won   bool  `json:"won"`
	Lost  bool  `json:"lost"`
}

// SubmitGuess evaluates the pending row.
//
// Failures (nothing is recorded):
//   - ErrNotStarted before SetupGame.
//   - ErrGameOver when the session is already won or lost.
//   - ErrIncompleteWord when the row is not exactly the target length.
//   - ErrHardModeViolation when hard mode is on and the previous hints are ignored.
func (s *Session) SubmitGuess() (SubmitResult, error) {
	if s.target == "" {
		return SubmitResult{}, ErrNotStarted
	}
	if s.state != Playing {
		return SubmitResult{}, ErrGameOver
	}
	if len(s.currentInput) != letterCount(s.target) {
		return SubmitResult{}, ErrIncompleteWord
	}
	word := string(s.currentInput)
	if s.hardMode && len(s.guesses) > 0 {
		if err := CheckHardMode(s.guesses[len(s.guesses)-1], word); err != nil {
			return SubmitResult{}, err
		}
	}

	g := Guess{Word: word, Result: Evaluate(s.target, word)}
	s.guesses = append(s.guesses, g)
	s.keyboard.Apply(word, g.Result)
	s.currentRow++
	s.currentInput = s.currentInput[:0]

	res := SubmitResult{Guess: g}
	switch {
	case g.Solved():
		s.state = Won
		s.endTime = s.clock()
		res.Won = true
	case s.currentRow >= s.maxAttempts:
		s.state = Lost
		s.endTime = s.clock()
		res.Lost = true
	}
	s.notify()
	return res, nil
}

// Stats summarizes the session for result screens and share tokens.
type Stats struct {
	Attempts    int    `json:"attempts"`
	MaxAttempts int    `json:"maxAttempts"`
	PlayTime    int64  `json:"playTime"` // seconds
	State       State  `json:"gameState"`
	TargetWord  string `json:"targetWord"`
	HardMode    bool   `json:"hardMode"`
}

// Stats reports attempts used and elapsed seconds (up to now while playing).
func (s *Session) Stats() Stats {
	end := s.endTime
	if end.IsZero() {
		end = s.clock()
	}
	elapsed := int64(end.Sub(s.startTime) / time.Second)
	if elapsed < 0 || s.startTime.IsZero() {
		elapsed = 0
	}
	return Stats{
		Attempts:    len(s.guesses),
		MaxAttempts: s.maxAttempts,
		PlayTime:    elapsed,
		State:       s.state,
		TargetWord:  s.target,
		HardMode:    s.hardMode,
	}
}

// ShareTranscript renders the board as emoji rows, e.g.
//
//	Wordlet 3/6
//
//	⬛🟨⬛⬛⬛
//	🟩⬛🟨⬛⬛
//	🟩🟩🟩🟩🟩
func (s *Session) ShareTranscript() string {
	return Transcript(len(s.guesses), s.maxAttempts, s.guesses)
}

// Transcript renders a header plus one glyph row per guess.
func Transcript(attempts, maxAttempts int, guesses []Guess) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Wordlet %d/%d\n\n", attempts, maxAttempts)
	writeGlyphRows(&b, guesses)
	return b.String()
}

// writeGlyphRows appends one emoji row per guess.
func writeGlyphRows(b *strings.Builder, guesses []Guess) {
	for _, g := range guesses {
		for _, st := range g.Result {
			b.WriteString(Glyph(st))
		}
		b.WriteByte('\n')
	}
}

// GlyphRows is the emoji board without any header.
func GlyphRows(guesses []Guess) string {
	var b strings.Builder
	writeGlyphRows(&b, guesses)
	return b.String()
}

// Glyph maps a status to its share emoji.
func Glyph(st LetterStatus) string {
	switch st {
	case Correct:
		return "🟩"
	case Present:
		return "🟨"
	case Absent:
		return "⬛"
	}
	return ""
}

// Accessors used by renderers and the result codec.

func (s *Session) TargetWord() string { return s.target }
func (s *Session) MaxAttempts() int { return s.maxAttempts }
func (s *Session) HardMode() bool { return s.hardMode }
func (s *Session) State() State { return s.state }
func (s *Session) CurrentRow() int { return s.currentRow }
func (s *Session) CurrentInput() string { return string(s.currentInput) }
func (s *Session) StartTime() time.Time { return s.startTime }

// EndTime is the zero time while playing.
func (s *Session) EndTime() time.Time { return s.endTime }

// Guesses returns a copy of the history.
func (s *Session) Guesses() []Guess { return cloneGuesses(s.guesses) }

// KeyStatus returns the aggregate keyboard status of one letter.
func (s *Session) KeyStatus(letter rune) LetterStatus { return s.keyboard.Status(letter) }

// Config returns the bounds the session was built with.
func (s *Session) Config() Config { return s.cfg }

func cloneGuesses(in []Guess) []Guess {
	out := make([]Guess, len(in))
	for i, g := range in {
		out[i] = Guess{Word: g.Word, Result: append([]LetterStatus(nil), g.Result...)}
	}
	return out
}
