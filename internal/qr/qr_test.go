package qr

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"
	"time"
)

func TestRenderPNG(t *testing.T) {
	b, err := Render(context.Background(), "https://example.test/juego.html?word=R0FUT1M%3D", 128)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Expected a PNG: %v", err)
	}
	if got := img.Bounds().Dx(); got != 128 {
		t.Errorf("Expected width 128, got %d", got)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(context.Background(), "", 100); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Render(ctx, "x", 100); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestClampSize(t *testing.T) {
	cases := map[int]int{0: DefaultSize, -5: DefaultSize, 10: MinSize, 300: 300, 5000: MaxSize}
	for in, want := range cases {
		if got := ClampSize(in); got != want {
			t.Errorf("ClampSize(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestStartDeliversResult(t *testing.T) {
	var (
		got    []byte
		gotErr error
	)
	job := Start(context.Background(), "hola", 100, func(b []byte, err error) {
		got, gotErr = b, err
	})
	select {
	case <-job.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("render did not finish")
	}
	if gotErr != nil || len(got) == 0 {
		t.Errorf("Expected PNG bytes, got %d bytes, err %v", len(got), gotErr)
	}
	job.Cancel() // no-op after completion
}

func TestStartCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var gotErr error
	calls := 0
	job := Start(ctx, "hola", 100, func(b []byte, err error) {
		calls++
		gotErr = err
	})
	job.Cancel()
	job.Wait()
	if calls != 1 || !errors.Is(gotErr, context.Canceled) {
		t.Errorf("Expected one call with context.Canceled, got %d calls, err %v", calls, gotErr)
	}
}
