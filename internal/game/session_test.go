package game

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func newTestSession(t *testing.T, word string, attempts int, hard bool) (*Session, *fakeClock) {
	t.Helper()
	clk := newFakeClock()
	s := NewSession(DefaultConfig(), WithClock(clk.Now))
	if err := s.SetupGame(word, attempts, hard); err != nil {
		t.Fatalf("SetupGame(%q) failed: %v", word, err)
	}
	return s, clk
}

func typeWord(t *testing.T, s *Session, word string) {
	t.Helper()
	for _, r := range word {
		if !s.AddLetter(string(r)) {
			t.Fatalf("AddLetter(%q) rejected", r)
		}
	}
}

func submit(t *testing.T, s *Session, word string) SubmitResult {
	t.Helper()
	typeWord(t, s, word)
	res, err := s.SubmitGuess()
	if err != nil {
		t.Fatalf("SubmitGuess(%q) failed: %v", word, err)
	}
	return res
}

func TestSetupGameNormalizesWord(t *testing.T) {
	s, _ := newTestSession(t, " canción! ", 6, false)
	if s.TargetWord() != "CANCION" {
		t.Errorf("Expected target CANCION, got %q", s.TargetWord())
	}

	s2, _ := newTestSession(t, "niño", 6, false)
	if s2.TargetWord() != "NIÑO" {
		t.Errorf("Expected target NIÑO, got %q", s2.TargetWord())
	}
	if s2.State() != Playing {
		t.Errorf("Expected state playing, got %s", s2.State())
	}
	for _, r := range Alphabet {
		if st := s2.KeyStatus(r); st != Unused {
			t.Fatalf("Expected %q to start unused, got %s", r, st)
		}
	}
}

func TestSetupGameRejectsInvalidWords(t *testing.T) {
	s := NewSession(DefaultConfig())
	for _, w := range []string{"", "ab", "12345", "abcdefghijklm", "!!"} {
		if err := s.SetupGame(w, 6, false); !errors.Is(err, ErrInvalidWord) {
			t.Errorf("SetupGame(%q): expected ErrInvalidWord, got %v", w, err)
		}
	}
	if err := s.SetupGame("GATOS", 0, false); !errors.Is(err, ErrInvalidAttempts) {
		t.Errorf("Expected ErrInvalidAttempts for 0 attempts, got %v", err)
	}
}

func TestSetupGameCustomBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinWordLength, cfg.MaxWordLength = 5, 5
	s := NewSession(cfg)
	if err := s.SetupGame("GATO", 6, false); !errors.Is(err, ErrInvalidWord) {
		t.Errorf("Expected ErrInvalidWord for a 4-letter word, got %v", err)
	}
	if err := s.SetupGame("GATOS", 6, false); err != nil {
		t.Errorf("Expected 5-letter word to be accepted, got %v", err)
	}
}

func TestAddAndRemoveLetter(t *testing.T) {
	s, _ := newTestSession(t, "GATO", 6, false)

	if s.RemoveLetter() {
		t.Error("Expected RemoveLetter on empty input to return false")
	}
	if s.AddLetter("1") {
		t.Error("Expected a digit to be rejected")
	}
	typeWord(t, s, "gato")
	if s.AddLetter("s") {
		t.Error("Expected AddLetter to refuse a fifth letter")
	}
	if s.CurrentInput() != "GATO" {
		t.Errorf("Expected input GATO, got %q", s.CurrentInput())
	}
	if !s.RemoveLetter() {
		t.Error("Expected RemoveLetter to succeed")
	}
	if s.CurrentInput() != "GAT" {
		t.Errorf("Expected input GAT, got %q", s.CurrentInput())
	}
	if !s.AddLetter("ñ") || s.CurrentInput() != "GATÑ" {
		t.Errorf("Expected ñ to be typed as Ñ, got %q", s.CurrentInput())
	}
}

func TestSubmitIncompleteWord(t *testing.T) {
	s, _ := newTestSession(t, "GATOS", 6, false)
	typeWord(t, s, "GAT")
	if _, err := s.SubmitGuess(); !errors.Is(err, ErrIncompleteWord) {
		t.Errorf("Expected ErrIncompleteWord, got %v", err)
	}
	if len(s.Guesses()) != 0 {
		t.Errorf("Expected no guesses recorded, got %d", len(s.Guesses()))
	}
}

func TestSubmitOverlongWord(t *testing.T) {
	s, _ := newTestSession(t, "GATOS", 6, false)
	if !s.SetInput("gatosxyz") {
		t.Fatal("SetInput rejected")
	}
	if s.CurrentInput() != "GATOSXYZ" {
		t.Errorf("Expected the whole word as input, got %q", s.CurrentInput())
	}
	if _, err := s.SubmitGuess(); !errors.Is(err, ErrIncompleteWord) {
		t.Errorf("Expected ErrIncompleteWord, got %v", err)
	}
	if s.State() != Playing || len(s.Guesses()) != 0 {
		t.Errorf("Expected nothing recorded, got state %s and %d guesses", s.State(), len(s.Guesses()))
	}
}

func TestSubmitBeforeSetup(t *testing.T) {
	s := NewSession(DefaultConfig())
	if _, err := s.SubmitGuess(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Expected ErrNotStarted, got %v", err)
	}
	if s.State() != Playing || len(s.Guesses()) != 0 {
		t.Errorf("Expected an untouched session, got state %s and %d guesses", s.State(), len(s.Guesses()))
	}
}

func TestDoubleSubmitDoesNotRecordTwice(t *testing.T) {
	s, _ := newTestSession(t, "GATOS", 6, false)
	submit(t, s, "PERRO")

	if _, err := s.SubmitGuess(); !errors.Is(err, ErrIncompleteWord) {
		t.Errorf("Expected second submit to fail with ErrIncompleteWord, got %v", err)
	}
	if got := len(s.Guesses()); got != 1 {
		t.Errorf("Expected exactly 1 guess, got %d", got)
	}
	if s.CurrentRow() != 1 {
		t.Errorf("Expected current row 1, got %d", s.CurrentRow())
	}
}

func TestWinFlow(t *testing.T) {
	s, clk := newTestSession(t, "GATOS", 6, false)
	submit(t, s, "TOGAS")
	clk.Advance(75 * time.Second)
	res := submit(t, s, "GATOS")

	if !res.Won || res.Lost {
		t.Errorf("Expected won result, got %+v", res)
	}
	if s.State() != Won {
		t.Errorf("Expected state won, got %s", s.State())
	}
	if s.EndTime().IsZero() {
		t.Error("Expected end time to be set")
	}

	stats := s.Stats()
	if stats.Attempts != 2 || stats.MaxAttempts != 6 {
		t.Errorf("Expected 2/6 attempts, got %d/%d", stats.Attempts, stats.MaxAttempts)
	}
	if stats.PlayTime != 75 {
		t.Errorf("Expected 75s play time, got %d", stats.PlayTime)
	}

	clk.Advance(time.Hour)
	if s.Stats().PlayTime != 75 {
		t.Error("Expected play time to freeze once the game is over")
	}

	if s.AddLetter("A") {
		t.Error("Expected AddLetter to fail after the game is won")
	}
	if _, err := s.SubmitGuess(); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
}

func TestLoseFlow(t *testing.T) {
	s, _ := newTestSession(t, "GATOS", 3, false)
	if res := submit(t, s, "PERRO"); res.Won || res.Lost {
		t.Fatalf("First guess ended the game: %+v", res)
	}
	if res := submit(t, s, "RATON"); res.Won || res.Lost {
		t.Fatalf("Second guess ended the game: %+v", res)
	}
	if res := submit(t, s, "LOROS"); !res.Lost || res.Won {
		t.Fatalf("Expected the last guess to lose, got %+v", res)
	}
	if s.State() != Lost {
		t.Errorf("Expected state lost, got %s", s.State())
	}
	if len(s.Guesses()) != 3 || s.CurrentRow() != 3 {
		t.Errorf("Expected 3 guesses on row 3, got %d on row %d", len(s.Guesses()), s.CurrentRow())
	}
	if _, err := s.SubmitGuess(); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
}

func TestWinOnLastAttemptIsWonNotLost(t *testing.T) {
	s, _ := newTestSession(t, "SOL", 1, false)
	res := submit(t, s, "SOL")
	if !res.Won || res.Lost || s.State() != Won {
		t.Errorf("Expected a win on the final attempt, got %+v state=%s", res, s.State())
	}
}

func TestHardModeSession(t *testing.T) {
	s, _ := newTestSession(t, "CARRO", 6, true)
	submit(t, s, "CARTA") // C A R correct

	typeWord(t, s, "BARCO")
	if _, err := s.SubmitGuess(); !errors.Is(err, ErrHardModeViolation) {
		t.Fatalf("Expected ErrHardModeViolation for BARCO, got %v", err)
	}
	if len(s.Guesses()) != 1 {
		t.Errorf("Expected rejected guess not to be recorded")
	}
	if s.CurrentInput() != "BARCO" {
		t.Errorf("Expected rejected input to stay editable, got %q", s.CurrentInput())
	}

	if !s.SetInput("CARLA") {
		t.Fatal("SetInput rejected")
	}
	if _, err := s.SubmitGuess(); err != nil {
		t.Errorf("Expected CARLA to be accepted, got %v", err)
	}
}

func TestHardModeOnlyLooksAtPreviousGuess(t *testing.T) {
	s, _ := newTestSession(t, "MANGO", 6, true)
	submit(t, s, "MARES") // M, A correct
	submit(t, s, "MAPAS") // keeps M, A
	// The third guess must satisfy MAPAS' hints only.
	res := submit(t, s, "MANGO")
	if !res.Won {
		t.Errorf("Expected MANGO to win, got %+v", res)
	}
}

func TestKeyboardNeverRegresses(t *testing.T) {
	s, _ := newTestSession(t, "ABEJA", 6, false)
	var history []LetterStatus
	track := func() { history = append(history, s.KeyStatus('A')) }

	track()
	submit(t, s, "AAAAA") // A correct
	track()
	submit(t, s, "BAAAB") // A present only
	track()
	submit(t, s, "CCCCC") // A unused in this guess
	track()

	for i := 1; i < len(history); i++ {
		if history[i] < history[i-1] {
			t.Fatalf("Keyboard status of A regressed: %v", history)
		}
	}
	if s.KeyStatus('A') != Correct {
		t.Errorf("Expected A correct, got %s", s.KeyStatus('A'))
	}
	if s.KeyStatus('C') != Absent {
		t.Errorf("Expected C absent, got %s", s.KeyStatus('C'))
	}
	if s.KeyStatus('B') != Present {
		t.Errorf("Expected B present, got %s", s.KeyStatus('B'))
	}
}

func TestShareTranscript(t *testing.T) {
	s, _ := newTestSession(t, "GATOS", 6, false)
	submit(t, s, "TOGAS")
	submit(t, s, "GATOS")

	want := "Wordlet 2/6\n\n🟨🟨🟨🟨🟩\n🟩🟩🟩🟩🟩\n"
	if got := s.ShareTranscript(); got != want {
		t.Errorf("ShareTranscript() = %q, want %q", got, want)
	}
}

func TestSnapshotAndOnChange(t *testing.T) {
	s, _ := newTestSession(t, "GATOS", 6, false)

	var snaps []Snapshot
	s.OnChange(func(snap Snapshot) { snaps = append(snaps, snap) })

	typeWord(t, s, "PERRO")
	if len(snaps) != 5 {
		t.Fatalf("Expected 5 change notifications, got %d", len(snaps))
	}
	last := snaps[len(snaps)-1]
	if last.CurrentInput != "PERRO" || last.TargetWord != "" {
		t.Errorf("Unexpected snapshot while playing: %+v", last)
	}
	if s.AddLetter("X") {
		t.Fatal("Expected full row to reject a letter")
	}
	if len(snaps) != 5 {
		t.Errorf("Expected no notification for a rejected letter, got %d", len(snaps))
	}

	typeWordAndWin := func() {
		for s.RemoveLetter() {
		}
		submit(t, s, "GATOS")
	}
	typeWordAndWin()
	final := snaps[len(snaps)-1]
	if final.State != Won || final.TargetWord != "GATOS" || final.EndTime == nil {
		t.Errorf("Unexpected final snapshot: %+v", final)
	}
	if final.Keyboard["G"] != Correct {
		t.Errorf("Expected G correct in keyboard snapshot, got %s", final.Keyboard["G"])
	}
	if !strings.Contains(s.ShareTranscript(), "🟩🟩🟩🟩🟩") {
		t.Error("Expected transcript to contain the winning row")
	}
}
