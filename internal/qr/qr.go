// internal/qr/qr.go
//
// QR code rendering for game links.
//
// Render encodes synchronously. Start runs the same work on its own goroutine
// and reports through a callback, so a caller (a batch job, a request that
// may be abandoned) can cancel it without waiting. Rendering never touches a
// game session.

package qr

import (
	"context"
	"errors"
	"fmt"
	"sync"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 200
	MinSize     = 64
	MaxSize     = 1024
)

// ErrEmptyContent is returned when there is nothing to encode.
var ErrEmptyContent = errors.New("qr: empty content")

// ClampSize maps size into [MinSize, MaxSize]; 0 or less means DefaultSize.
func ClampSize(size int) int {
	switch {
	case size <= 0:
		return DefaultSize
	case size < MinSize:
		return MinSize
	case size > MaxSize:
		return MaxSize
	}
	return size
}

// Render returns a size×size PNG encoding content.
func Render(ctx context.Context, content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(content, qrcode.Medium, ClampSize(size))
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}
	// encoding itself is not interruptible; drop the result if we were cancelled meanwhile
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return png, nil
}

type outcome struct {
	png []byte
	err error
}

// Job is a background render started by Start.
type Job struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start renders content on a new goroutine and calls fn exactly once with
// the PNG or the error. After Cancel, fn receives context.Canceled.
func Start(ctx context.Context, content string, size int, fn func([]byte, error)) *Job {
	ctx, cancel := context.WithCancel(ctx)
	j := &Job{cancel: cancel, done: make(chan struct{})}

	result := make(chan outcome, 1)
	go func() {
		png, err := Render(ctx, content, size)
		result <- outcome{png, err}
	}()

	go func() {
		defer close(j.done)
		defer cancel()
		select {
		case <-ctx.Done():
			fn(nil, ctx.Err())
		case r := <-result:
			if err := ctx.Err(); err != nil {
				fn(nil, err)
				return
			}
			fn(r.png, r.err)
		}
	}()
	return j
}

// Cancel abandons the render. Safe to call more than once and after completion.
func (j *Job) Cancel() { j.once.Do(j.cancel) }

// Done is closed after the callback has returned.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the callback has returned.
func (j *Job) Wait() { <-j.done }
