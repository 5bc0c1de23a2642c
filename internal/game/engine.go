// internal/game/engine.go
//
// Pure scoring rules shared by sessions, tests and tooling:
//   - Evaluate: two-pass Wordle scoring that handles repeated letters.
//   - CheckHardMode: the "use the previous hints" constraint.
//
// Neither function touches session state.

package game

import "strings"

// Evaluate scores guess against target, position by position.
//
// Pass 1 marks exact matches Correct and consumes both letters.
// Pass 2 walks the remaining guess letters left to right and consumes the
// first unconsumed equal target letter (Present), or marks Absent.
//
// A letter is therefore never credited more often than it occurs in target.
// Inputs must be normalized and of equal letter length; otherwise nil is returned.
func Evaluate(target, guess string) []LetterStatus {
	t := []rune(target)
	g := []rune(guess)
	if len(t) != len(g) {
		return nil
	}

	res := make([]LetterStatus, len(g))
	targetUsed := make([]bool, len(t))

	// First pass: exact hits.
	for i := range g {
		if g[i] == t[i] {
			res[i] = Correct
			targetUsed[i] = true
		}
	}

	// Second pass: presents/misses for the rest.
	for i := range g {
		if res[i] == Correct {
			continue
		}
		res[i] = Absent
		for j := range t {
			if !targetUsed[j] && t[j] == g[i] {
				res[i] = Present
				targetUsed[j] = true
				break
			}
		}
	}
	return res
}

// CheckHardMode validates candidate against the immediately preceding guess:
// each Correct letter must stay in place and each Present letter must appear
// somewhere in candidate. Earlier guesses are deliberately not consulted.
func CheckHardMode(prev Guess, candidate string) error {
	pw := []rune(prev.Word)
	cw := []rune(candidate)

	for i, s := range prev.Result {
		if s != Correct || i >= len(pw) {
			continue
		}
		if i >= len(cw) || cw[i] != pw[i] {
			return ErrHardModeViolation
		}
	}
	for i, s := range prev.Result {
		if s != Present || i >= len(pw) {
			continue
		}
		if !strings.ContainsRune(candidate, pw[i]) {
			return ErrHardModeViolation
		}
	}
	return nil
}
