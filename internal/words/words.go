// internal/words/words.go
//
// Word list management.
//
// The list comes from WORDS_FILE when configured, otherwise from the list
// embedded in assets. Every entry is normalized to the game alphabet and
// kept only when it fits the configured word-length bounds; duplicates left
// after normalization ("año" and "ano" stay distinct, "árbol" and "arbol" do
// not) are dropped.
//
// The list feeds random games and the word of the day. Guesses are never
// checked against it.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/samber/lo"

	"github.com/robalobadob/wordlet/assets"
	"github.com/robalobadob/wordlet/internal/daily"
	"github.com/robalobadob/wordlet/internal/game"
)

// ErrEmptyList is returned when no usable word survives loading.
var ErrEmptyList = errors.New("words: list is empty")

// List is an immutable, normalized word list.
type List struct {
	words []string
	set   map[string]struct{}
}

// Load reads the list from path, or the embedded default when path is "".
func Load(path string, cfg game.Config) (*List, error) {
	var (
		lines []string
		err   error
	)
	if path == "" {
		lines, err = assets.Words()
	} else {
		lines, err = readWordFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: load %q: %w", path, err)
	}
	l := FromLines(lines, cfg)
	if l.Len() == 0 {
		return nil, ErrEmptyList
	}
	return l, nil
}

// FromLines builds a list from raw entries.
func FromLines(lines []string, cfg game.Config) *List {
	normalized := lo.Map(lines, func(w string, _ int) string { return game.Normalize(w) })
	valid := lo.Uniq(lo.Filter(normalized, func(w string, _ int) bool { return cfg.ValidWord(w) }))
	return &List{
		words: valid,
		set:   lo.SliceToMap(valid, func(w string) (string, struct{}) { return w, struct{}{} }),
	}
}

func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// Len is the number of words.
func (l *List) Len() int { return len(l.words) }

// Words returns a copy of the list in file order.
func (l *List) Words() []string { return append([]string(nil), l.words...) }

// Contains reports whether w (after normalization) is in the list.
func (l *List) Contains(w string) bool {
	_, ok := l.set[game.Normalize(w)]
	return ok
}

// Random returns a cryptographically random word.
func (l *List) Random() string {
	if len(l.words) == 0 {
		return ""
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.words))))
	if err != nil {
		return l.words[0]
	}
	return l.words[n.Int64()]
}

// Daily returns the word of the day for date.
func (l *List) Daily(date time.Time, salt string) string {
	return daily.Pick(l.words, date, salt)
}

// Stats returns counts per word length.
func (l *List) Stats() map[int]int {
	return lo.CountValuesBy(l.words, func(w string) int { return len([]rune(w)) })
}
