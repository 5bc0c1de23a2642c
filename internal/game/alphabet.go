// internal/game/alphabet.go
//
// The fixed 27-letter Spanish/Latin alphabet and text normalization.
//
// Normalize uppercases, decomposes (NFD), drops combining marks and anything
// that is not A–Z. The one exception is the tilde on N: "ñ"/"Ñ" survive as Ñ
// because it is a letter of its own in this alphabet.

package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Alphabet lists the playable letters in keyboard-state order.
const Alphabet = "ABCDEFGHIJKLMNÑOPQRSTUVWXYZ"

const combiningTilde = '\u0303'

// alphabetIndex maps a letter to its position in Alphabet, or -1.
func alphabetIndex(r rune) int {
	switch {
	case r >= 'A' && r <= 'N':
		return int(r - 'A')
	case r == 'Ñ':
		return 14
	case r >= 'O' && r <= 'Z':
		return int(r-'O') + 15
	}
	return -1
}

// IsLetter reports whether r belongs to the alphabet.
func IsLetter(r rune) bool { return alphabetIndex(r) >= 0 }

// Normalize converts free text into alphabet letters only.
func Normalize(s string) string {
	decomposed := []rune(norm.NFD.String(strings.ToUpper(s)))
	var b strings.Builder
	b.Grow(len(decomposed))
	for i := 0; i < len(decomposed); i++ {
		r := decomposed[i]
		if r == 'N' && i+1 < len(decomposed) && decomposed[i+1] == combiningTilde {
			b.WriteRune('Ñ')
			i++
			continue
		}
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidWord reports whether an already-normalized word fits the config bounds
// and uses only alphabet letters.
func (c Config) ValidWord(word string) bool {
	n := 0
	for _, r := range word {
		if !IsLetter(r) {
			return false
		}
		n++
	}
	return n >= c.MinWordLength && n <= c.MaxWordLength
}

// letterCount is the length of a word in letters, not bytes.
func letterCount(s string) int { return len([]rune(s)) }
