// internal/game/types.go
//
// Core type definitions for the Wordlet game engine.
// Defines:
//   - LetterStatus: ordered per-letter classification (unused < absent < present < correct).
//   - State: session lifecycle (playing → won | lost).
//   - Guess: a submitted word together with its evaluation.
//   - Config: word-length / attempt bounds and keyboard layout for a session.

package game

import (
	"fmt"
	"strings"
)

// LetterStatus is the evaluation of one letter.
// The numeric order is meaningful: a higher value is "better" knowledge
// about a letter, which is what keyboard aggregation relies on.
type LetterStatus int

const (
	Unused  LetterStatus = iota // keyboard only: never guessed
	Absent                      // not in the target (or already fully credited)
	Present                     // in the target, different position
	Correct                     // in the target, same position
)

var statusNames = [...]string{"unused", "absent", "present", "correct"}

func (s LetterStatus) String() string {
	if s < Unused || s > Correct {
		return fmt.Sprintf("LetterStatus(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status as its lowercase name.
func (s LetterStatus) MarshalText() ([]byte, error) {
	if s < Unused || s > Correct {
		return nil, fmt.Errorf("game: invalid letter status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText accepts the lowercase names produced by MarshalText.
func (s *LetterStatus) UnmarshalText(b []byte) error {
	v, err := ParseLetterStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseLetterStatus maps a status name back to its value.
func ParseLetterStatus(name string) (LetterStatus, error) {
	for i, n := range statusNames {
		if strings.EqualFold(n, name) {
			return LetterStatus(i), nil
		}
	}
	return Unused, fmt.Errorf("game: unknown letter status %q", name)
}

// Merge returns the better of two statuses. Keyboard aggregation is a fold
// of Merge over every evaluated letter, so a letter never regresses.
func Merge(a, b LetterStatus) LetterStatus {
	if b > a {
		return b
	}
	return a
}

// State is the coarse lifecycle of a session.
type State string

const (
	Playing State = "playing"
	Won     State = "won"
	Lost    State = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool { return s == Won || s == Lost }

// Guess is a submitted word and its per-position result.
type Guess struct {
	Word   string         `json:"word"`
	Result []LetterStatus `json:"result"`
}

// Solved reports whether every position is Correct.
func (g Guess) Solved() bool {
	if len(g.Result) == 0 {
		return false
	}
	for _, s := range g.Result {
		if s != Correct {
			return false
		}
	}
	return true
}

// Config carries the bounds that used to live in a process-wide CONFIG.
type Config struct {
	MinWordLength   int
	MaxWordLength   int
	MinAttempts     int
	MaxAttempts     int
	DefaultAttempts int
	DefaultHardMode bool
	KeyboardLayout  [][]string
}

// DefaultConfig mirrors the stock game: 3–12 letters, 3–10 attempts (6 by default)
// and a Spanish keyboard.
func DefaultConfig() Config {
	return Config{
		MinWordLength:   3,
		MaxWordLength:   12,
		MinAttempts:     3,
		MaxAttempts:     10,
		DefaultAttempts: 6,
		KeyboardLayout: [][]string{
			{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
			{"A", "S", "D", "F", "G", "H", "J", "K", "L", "Ñ"},
			{"ENTER", "Z", "X", "C", "V", "B", "N", "M", "BACKSPACE"},
		},
	}
}

// ClampAttempts forces n into [MinAttempts, MaxAttempts]; n <= 0 selects DefaultAttempts.
func (c Config) ClampAttempts(n int) int {
	if n <= 0 {
		n = c.DefaultAttempts
	}
	if c.MinAttempts > 0 && n < c.MinAttempts {
		n = c.MinAttempts
	}
	if c.MaxAttempts > 0 && n > c.MaxAttempts {
		n = c.MaxAttempts
	}
	return n
}
