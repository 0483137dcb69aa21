// Package memory provides an in-process engine.Store.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/plus3/tetris/engine"
)

// Store keeps the saved game and the high score in memory. It is safe for
// concurrent use.
type Store struct {
	mu        sync.Mutex
	fields    map[string]string
	highScore int
}

var _ engine.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Save replaces the saved game with a copy of fields.
func (s *Store) Save(ctx context.Context, fields map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields = maps.Clone(fields)
	return nil
}

// Load returns a copy of the saved game.
func (s *Store) Load(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fields == nil {
		return nil, engine.ErrNoSnapshot
	}
	return maps.Clone(s.fields), nil
}

// Clear deletes the saved game. The high score is kept.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields = nil
	return nil
}

func (s *Store) LoadHighScore(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highScore, nil
}

func (s *Store) SaveHighScore(ctx context.Context, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highScore = score
	return nil
}
