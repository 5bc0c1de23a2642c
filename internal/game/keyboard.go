// internal/game/keyboard.go
//
// Per-letter keyboard hints. A letter only ever moves up the
// Unused < Absent < Present < Correct order.

package game

import "encoding/json"

// Keyboard is the aggregate status of every alphabet letter across a session.
// The zero value has every letter Unused.
type Keyboard struct {
	states [27]LetterStatus
}

// Status returns the aggregate status of r (Unused for non-alphabet runes).
func (k *Keyboard) Status(r rune) LetterStatus {
	i := alphabetIndex(r)
	if i < 0 {
		return Unused
	}
	return k.states[i]
}

// Apply folds an evaluated guess into the keyboard, keeping the best status per letter.
func (k *Keyboard) Apply(word string, result []LetterStatus) {
	for i, r := range []rune(word) {
		if i >= len(result) {
			return
		}
		if j := alphabetIndex(r); j >= 0 {
			k.states[j] = Merge(k.states[j], result[i])
		}
	}
}

// Reset puts every letter back to Unused.
func (k *Keyboard) Reset() { k.states = [27]LetterStatus{} }

// Map returns letter → status for all 27 letters.
func (k *Keyboard) Map() map[string]LetterStatus {
	out := make(map[string]LetterStatus, len(k.states))
	for i, r := range []rune(Alphabet) {
		out[string(r)] = k.states[i]
	}
	return out
}

func (k *Keyboard) MarshalJSON() ([]byte, error) { return json.Marshal(k.Map()) }
