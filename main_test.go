package main

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalobadob/wordlet/internal/config"
	"github.com/robalobadob/wordlet/internal/game"
	"github.com/robalobadob/wordlet/internal/share"
)

func testConfig() (config.Config, error) {
	env := map[string]string{
		"PUBLIC_BASE_URL": "https://wordlet.test",
		"DAILY_SALT":      "test-salt",
	}
	return config.FromEnv(func(k string) string { return env[k] })
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(strings.NewReader(stdin), &out, testConfig)
	err := app.Run(context.Background(), append([]string{"wordlet"}, args...))
	return out.String(), err
}

func TestLinkCommand(t *testing.T) {
	out, err := run(t, "", "link", "--hard", "Niño")
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	u, err := url.Parse(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("Expected a URL, got %q", out)
	}
	if u.Host != "wordlet.test" || u.Path != "/juego.html" {
		t.Errorf("Unexpected link %q", out)
	}
	p, err := share.ParseGameParams(u.Query(), game.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if p.Word != "NIÑO" || p.Attempts != 6 || !p.HardMode {
		t.Errorf("Unexpected params %+v", p)
	}
}

func TestLinkCommandWritesQR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gato.png")
	if _, err := run(t, "", "link", "--qr", path, "--qr-size", "96", "gato"); err != nil {
		t.Fatalf("link: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Error("Expected a PNG file")
	}
}

func TestLinkCommandErrors(t *testing.T) {
	if _, err := run(t, "", "link"); !errors.Is(err, errMissingArg) {
		t.Errorf("Expected errMissingArg, got %v", err)
	}
	if _, err := run(t, "", "link", "x"); !errors.Is(err, game.ErrInvalidWord) {
		t.Errorf("Expected ErrInvalidWord, got %v", err)
	}
}

func TestDecodeCommand(t *testing.T) {
	token, err := share.EncodeSummary(share.Summary{
		Word:        "GATOS",
		Attempts:    2,
		MaxAttempts: 6,
		PlayTime:    65,
		State:       game.Won,
		Guesses: []game.Guess{
			{Word: "TOGAS", Result: []game.LetterStatus{game.Present, game.Present, game.Present, game.Present, game.Correct}},
			{Word: "GATOS", Result: []game.LetterStatus{game.Correct, game.Correct, game.Correct, game.Correct, game.Correct}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	link, err := share.ResultURL("https://wordlet.test/resultado.html", token)
	if err != nil {
		t.Fatal(err)
	}

	for _, arg := range []string{token, link} {
		out, err := run(t, "", "decode", arg)
		if err != nil {
			t.Fatalf("decode %q: %v", arg, err)
		}
		if !strings.HasPrefix(out, "GATOS won (2/6)\n") || !strings.Contains(out, "⏱️ 1:05") ||
			!strings.Contains(out, "🟨🟨🟨🟨🟩\n🟩🟩🟩🟩🟩") {
			t.Errorf("Unexpected output:\n%s", out)
		}
	}

	if _, err := run(t, "", "decode", "bm9wZQ"); !errors.Is(err, share.ErrCorruptResult) {
		t.Errorf("Expected ErrCorruptResult, got %v", err)
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "gato\nperro, xy\ngato", "batch", "--auto", "--qr-dir", dir, "-")
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "GATO\t5\thttps://wordlet.test/juego.html?") ||
		!strings.HasPrefix(lines[1], "PERRO\t6\t") {
		t.Errorf("Unexpected output %q", out)
	}
	for _, name := range []string{"gato.png", "perro.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s: %v", name, err)
		}
	}

	if _, err := run(t, "xy, q", "batch"); err == nil {
		t.Error("Expected an error when no word is valid")
	}
}

func TestDailyCommand(t *testing.T) {
	first, err := run(t, "", "daily", "--date", "2025-03-01", "--reveal")
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	again, _ := run(t, "", "daily", "--date", "2025-03-01", "--reveal")
	if first != again {
		t.Errorf("Expected the same daily word, got %q and %q", first, again)
	}
	fields := strings.Split(strings.TrimSpace(first), "\t")
	if len(fields) != 3 || fields[0] != "2025-03-01" || !strings.Contains(fields[2], "juego.html?") {
		t.Errorf("Unexpected output %q", first)
	}

	if _, err := run(t, "", "daily", "--date", "tomorrow"); err == nil {
		t.Error("Expected an error for a bad date")
	}
}
