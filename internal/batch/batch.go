// internal/batch/batch.go
//
// Batch link generation: one game link (and QR code) per word of a pasted
// list, for handing out a set of puzzles at once.
//
// Input order is preserved in the output. Words that do not normalize to a
// valid game word are reported back instead of failing the whole batch.

package batch

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordlet/internal/game"
	"github.com/robalobadob/wordlet/internal/qr"
	"github.com/robalobadob/wordlet/internal/share"
)

const (
	autoMinAttempts = 4
	autoMaxAttempts = 8
	defaultWorkers  = 4
)

// Options control a batch run.
type Options struct {
	BaseURL  string
	Auto     bool // attempts derived from each word's length
	Attempts int  // used when Auto is false
	HardMode bool
	QRSize   int  // 0 skips QR rendering
	Workers  int  // concurrent QR renders; 0 means a small default
}

// Item is the output for one word.
type Item struct {
	Word     string `json:"word"`
	Attempts int    `json:"attempts"`
	HardMode bool   `json:"hardMode"`
	URL      string `json:"url"`
	QR       []byte `json:"qr,omitempty"` // PNG, base64 in JSON
}

// Result holds generated items and the entries that were skipped.
type Result struct {
	Items   []Item   `json:"items"`
	Invalid []string `json:"invalid"`
}

// ParseWords splits free text on newlines and commas, trims each entry and
// drops empties and exact duplicates.
func ParseWords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})
	trimmed := lo.Map(fields, func(s string, _ int) string { return strings.TrimSpace(s) })
	return lo.Uniq(lo.Compact(trimmed))
}

// Attempts picks the attempt count for a word of wordLen letters.
// In auto mode it is wordLen+1 clamped to [4, 8]; otherwise fixed.
func Attempts(wordLen int, auto bool, fixed int) int {
	if !auto {
		return fixed
	}
	return min(max(wordLen+1, autoMinAttempts), autoMaxAttempts)
}

// Generate builds a link for every valid word and, when opts.QRSize > 0,
// renders its QR code. QR renders run concurrently, bounded by opts.Workers.
func Generate(ctx context.Context, cfg game.Config, words []string, opts Options) (Result, error) {
	res := Result{Items: []Item{}, Invalid: []string{}}
	for _, raw := range words {
		w := game.Normalize(raw)
		if !cfg.ValidWord(w) {
			res.Invalid = append(res.Invalid, raw)
			continue
		}
		attempts := cfg.ClampAttempts(Attempts(len([]rune(w)), opts.Auto, opts.Attempts))
		link, err := share.GameURL(opts.BaseURL, share.GameParams{Word: w, Attempts: attempts, HardMode: opts.HardMode})
		if err != nil {
			return Result{}, fmt.Errorf("batch: link for %q: %w", w, err)
		}
		res.Items = append(res.Items, Item{Word: w, Attempts: attempts, HardMode: opts.HardMode, URL: link})
	}

	if opts.QRSize <= 0 || len(res.Items) == 0 {
		return res, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range res.Items {
		g.Go(func() error {
			png, err := qr.Render(gctx, res.Items[i].URL, opts.QRSize)
			if err != nil {
				return fmt.Errorf("batch: qr for %q: %w", res.Items[i].Word, err)
			}
			res.Items[i].QR = png
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return res, nil
}
