// internal/game/snapshot.go
//
// Read-only view of a session for renderers and the WebSocket feed.

package game

import "time"

// Snapshot is a read-only copy of a session for board and keyboard renderers.
type Snapshot struct {
	TargetLength int                     `json:"targetLength"`
	MaxAttempts  int                     `json:"maxAttempts"`
	HardMode     bool                    `json:"hardMode"`
	Guesses      []Guess                 `json:"guesses"`
	CurrentRow   int                     `json:"currentRow"`
	CurrentInput string                  `json:"currentInput"`
	State        State                   `json:"gameState"`
	Keyboard     map[string]LetterStatus `json:"letterStates"`
	Layout       [][]string              `json:"keyboardLayout"`
	StartTime    time.Time               `json:"startTime"`
	EndTime      *time.Time              `json:"endTime,omitempty"`

	// TargetWord is only filled once the game is over.
	TargetWord string `json:"targetWord,omitempty"`
}

// Snapshot copies the current state. The target word stays hidden while playing.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		TargetLength: letterCount(s.target),
		MaxAttempts:  s.maxAttempts,
		HardMode:     s.hardMode,
		Guesses:      cloneGuesses(s.guesses),
		CurrentRow:   s.currentRow,
		CurrentInput: string(s.currentInput),
		State:        s.state,
		Keyboard:     s.keyboard.Map(),
		Layout:       s.cfg.KeyboardLayout,
		StartTime:    s.startTime,
	}
	if s.state.Terminal() {
		end := s.endTime
		snap.EndTime = &end
		snap.TargetWord = s.target
	}
	return snap
}

// OnChange registers a render hook called synchronously after every
// operation that changed the session.
func (s *Session) OnChange(fn func(Snapshot)) {
	if fn != nil {
		s.onChange = append(s.onChange, fn)
	}
}

func (s *Session) notify() {
	if len(s.onChange) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.onChange {
		fn(snap)
	}
}
