// internal/game/errors.go
//
// Sentinel errors of the game package.

package game

import "errors"

// Failure values returned by session operations. Callers match them with
// errors.Is and decide how to present them.
var (
	ErrInvalidWord       = errors.New("invalid word")
	ErrInvalidAttempts   = errors.New("invalid attempts")
	ErrIncompleteWord    = errors.New("incomplete word")
	ErrGameOver          = errors.New("game over")
	ErrHardModeViolation = errors.New("hard mode violation")
	ErrNotStarted        = errors.New("game not started")
)
