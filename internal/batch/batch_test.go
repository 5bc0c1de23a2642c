package batch

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/robalobadob/wordlet/internal/game"
	"github.com/robalobadob/wordlet/internal/share"
)

func TestParseWords(t *testing.T) {
	got := ParseWords("gato, perro\n\n  casa \r\ngato,,niño")
	want := []string{"gato", "perro", "casa", "niño"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWords = %q, want %q", got, want)
	}
	if got := ParseWords("  \n , "); len(got) != 0 {
		t.Errorf("Expected no words, got %q", got)
	}
}

func TestAttempts(t *testing.T) {
	cases := []struct {
		n, want int
	}{
		{2, 4}, {3, 4}, {4, 5}, {5, 6}, {7, 8}, {12, 8},
	}
	for _, c := range cases {
		if got := Attempts(c.n, true, 6); got != c.want {
			t.Errorf("Attempts(%d, auto) = %d, want %d", c.n, got, c.want)
		}
	}
	if got := Attempts(5, false, 9); got != 9 {
		t.Errorf("Expected fixed attempts, got %d", got)
	}
}

func TestGenerateLinks(t *testing.T) {
	cfg := game.DefaultConfig()
	words := []string{"gato", "xy", "canción", "12345", "sol"}
	res, err := Generate(context.Background(), cfg, words, Options{
		BaseURL: "https://example.test/juego.html", Auto: true, HardMode: true,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(res.Invalid, []string{"xy", "12345"}) {
		t.Errorf("Unexpected invalid list %q", res.Invalid)
	}
	wantWords := []string{"GATO", "CANCION", "SOL"}
	wantAttempts := []int{5, 8, 4}
	if len(res.Items) != len(wantWords) {
		t.Fatalf("Expected %d items, got %+v", len(wantWords), res.Items)
	}
	for i, it := range res.Items {
		if it.Word != wantWords[i] || it.Attempts != wantAttempts[i] || !it.HardMode || it.QR != nil {
			t.Errorf("Item %d = %+v", i, it)
		}
		u, err := url.Parse(it.URL)
		if err != nil {
			t.Fatalf("url.Parse: %v", err)
		}
		p, err := share.ParseGameParams(u.Query(), cfg)
		if err != nil || p.Word != it.Word || p.Attempts != it.Attempts || !p.HardMode {
			t.Errorf("Link %q parsed to %+v, %v", it.URL, p, err)
		}
	}
}

func TestGenerateFixedAttemptsAreClamped(t *testing.T) {
	res, err := Generate(context.Background(), game.DefaultConfig(), []string{"gatos"}, Options{Attempts: 50})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Items[0].Attempts != 10 {
		t.Errorf("Expected attempts clamped to 10, got %d", res.Items[0].Attempts)
	}
}

func TestGenerateQR(t *testing.T) {
	res, err := Generate(context.Background(), game.DefaultConfig(), []string{"gato", "perro", "mango"}, Options{
		BaseURL: "https://example.test/", Attempts: 6, QRSize: 100, Workers: 2,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, it := range res.Items {
		if len(it.QR) < 8 || string(it.QR[1:4]) != "PNG" {
			t.Errorf("Expected a PNG for %s", it.Word)
		}
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, game.DefaultConfig(), []string{"gato"}, Options{Attempts: 6, QRSize: 100})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
