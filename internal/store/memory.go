// internal/store/memory.go
//
// In-memory store for live game sessions.
//
// Characteristics:
//   - Sessions are keyed by a random UUID and never persisted.
//   - The map is guarded by an RWMutex; each entry has its own mutex so that
//     operations on one session run one at a time, in arrival order, while
//     different sessions proceed in parallel.
//   - Entries record their last access; Sweep drops the ones left idle.

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordlet/internal/game"
)

// ErrNotFound is returned for unknown or swept session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for live sessions.
type Store interface {
	// Save adds or replaces the session stored under id.
	Save(ctx context.Context, id string, s *game.Session) error

	// Get returns the session stored under id. Callers that mutate it must
	// go through Update instead.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Update runs fn with exclusive access to the session.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete forgets the session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions idle for longer than maxIdle and reports how many went.
	Sweep(maxIdle time.Duration) int

	// Len reports the number of live sessions.
	Len() int
}

// NewID returns a fresh session identifier.
func NewID() string { return uuid.NewString() }

type entry struct {
	mu         sync.Mutex
	session    *game.Session
	lastAccess atomic.Int64 // unix nanos
}

type memory struct {
	mu      sync.RWMutex
	entries map[string]*entry
	now     func() time.Time
}

// Option configures the memory store.
type Option func(*memory)

// WithClock overrides the time source used for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(m *memory) { m.now = now }
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	m := &memory{entries: make(map[string]*entry), now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *memory) touch(e *entry) { e.lastAccess.Store(m.now().UnixNano()) }

func (m *memory) lookup(id string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (m *memory) Save(ctx context.Context, id string, s *game.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := &entry{session: s}
	m.touch(e)
	m.mu.Lock()
	m.entries[id] = e
	m.mu.Unlock()
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	m.touch(e)
	return e.session, nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	m.touch(e)
	return fn(e.session)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

func (m *memory) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle).UnixNano()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		if e.lastAccess.Load() < cutoff {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// RunSweeper calls Sweep every interval until ctx is done.
func RunSweeper(ctx context.Context, s Store, every, maxIdle time.Duration) {
	if every <= 0 || maxIdle <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(maxIdle); n > 0 {
				log.Info().Int("swept", n).Int("live", s.Len()).Msg("idle sessions removed")
			}
		}
	}
}
