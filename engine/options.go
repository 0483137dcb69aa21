package engine

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/tetris/board"
)

const (
	DefaultNextPieces     = 4
	DefaultPersistTimeout = 2 * time.Second

	// MinBoardWidth is the narrowest board on which every kind spawns in
	// bounds at (width/2-1, 0).
	MinBoardWidth = 5
	// MinBoardHeight is the shortest board that holds every rotation.
	MinBoardHeight = 4
)

type options struct {
	width          int
	height         int
	nextPieces     int
	rng            *rand.Rand
	seed           uint64
	seeded         bool
	store          Store
	observer       Observer
	logger         *zap.Logger
	persistTimeout time.Duration
}

// Option configures an Engine.
type Option func(*options)

func defaultOptions() options {
	return options{
		width:          board.DefaultWidth,
		height:         board.DefaultHeight,
		nextPieces:     DefaultNextPieces,
		logger:         zap.NewNop(),
		persistTimeout: DefaultPersistTimeout,
	}
}

// WithBoardSize sets the playfield dimensions.
func WithBoardSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithNextPieces sets the length of the next-piece queue.
func WithNextPieces(n int) Option {
	return func(o *options) {
		o.nextPieces = n
	}
}

// WithRand sets the source of piece draws. It takes precedence over WithSeed.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithSeed makes piece draws deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithStore sets where games and the high score are persisted.
func WithStore(s Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithObserver sets the receiver of view updates.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPersistTimeout bounds the store calls the engine makes on its own, such
// as clearing the saved game on game over.
func WithPersistTimeout(d time.Duration) Option {
	return func(o *options) {
		o.persistTimeout = d
	}
}

func (o options) validate() error {
	switch {
	case o.width < MinBoardWidth || o.height < MinBoardHeight:
		return NewError(CodeInvalidConfig, "board too small")
	case o.nextPieces < 1:
		return NewError(CodeInvalidConfig, "next queue must hold at least one piece")
	case o.persistTimeout <= 0:
		return NewError(CodeInvalidConfig, "persist timeout must be positive")
	}
	return nil
}

func (o options) random() *rand.Rand {
	if o.rng != nil {
		return o.rng
	}
	if o.seeded {
		return rand.New(rand.NewPCG(o.seed, o.seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
