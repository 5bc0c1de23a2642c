package words

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/wordlet/internal/game"
)

func TestLoadEmbedded(t *testing.T) {
	l, err := Load("", game.DefaultConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Len() < 100 {
		t.Errorf("Expected the embedded list to have at least 100 words, got %d", l.Len())
	}
	for _, w := range []string{"ARBOL", "NIÑO", "PINGUINO", "GATOS"} {
		if !l.Contains(w) {
			t.Errorf("Expected embedded list to contain %q", w)
		}
	}
	for _, w := range l.Words() {
		if !game.DefaultConfig().ValidWord(w) {
			t.Errorf("Embedded list kept invalid word %q", w)
		}
	}
}

func TestFromLinesNormalizesAndFilters(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.MinWordLength, cfg.MaxWordLength = 4, 5

	l := FromLines([]string{"árbol", "arbol", "Niño", "sol", "caballos", "casa", "  ", "año"}, cfg)
	want := []string{"ARBOL", "NIÑO", "CASA"}
	got := l.Words()
	if len(got) != len(want) {
		t.Fatalf("Words() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Words()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if stats := l.Stats(); stats[4] != 2 || stats[5] != 1 {
		t.Errorf("Unexpected stats %v", stats)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("# custom\nmango\n\nfresa\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(path, game.DefaultConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Len() != 2 || !l.Contains("mango") {
		t.Errorf("Unexpected list %v", l.Words())
	}

	empty := filepath.Join(dir, "empty.txt")
	_ = os.WriteFile(empty, []byte("# nothing\nab\n"), 0o644)
	if _, err := Load(empty, game.DefaultConfig()); !errors.Is(err, ErrEmptyList) {
		t.Errorf("Expected ErrEmptyList, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.txt"), game.DefaultConfig()); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestRandomAndDaily(t *testing.T) {
	l := FromLines([]string{"GATOS", "PERRO", "ABEJA"}, game.DefaultConfig())
	for i := 0; i < 20; i++ {
		if !l.Contains(l.Random()) {
			t.Fatal("Random returned a word outside the list")
		}
	}
	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if l.Daily(d, "x") != l.Daily(d.Add(5*time.Hour), "x") {
		t.Error("Expected the same daily word within one day")
	}
	if (&List{}).Random() != "" {
		t.Error("Expected empty word from an empty list")
	}
}
