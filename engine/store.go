package engine

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned by Store.Load when no game is saved.
var ErrNoSnapshot = errors.New("no saved game")

// Store persists the key/value form of a Snapshot and the high score. The high
// score is kept apart from the snapshot and survives Clear.
type Store interface {
	// Save replaces any saved game with fields.
	Save(ctx context.Context, fields map[string]string) error

	// Load returns the saved game, or ErrNoSnapshot.
	Load(ctx context.Context) (map[string]string, error)

	// Clear deletes the saved game.
	Clear(ctx context.Context) error

	// LoadHighScore returns the stored high score, 0 when none was saved.
	LoadHighScore(ctx context.Context) (int, error)

	// SaveHighScore stores score as the high score.
	SaveHighScore(ctx context.Context, score int) error
}
