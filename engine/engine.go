// Package engine runs a game of Tetris: spawning, gravity, line clears,
// scoring, the pause and game-over state machine, and persistence of an
// in-progress game.
//
// An Engine is driven by a single collaborator that delivers player intents
// and timer ticks one at a time. It is not safe for concurrent use; Driver
// serializes intents and ticks onto one goroutine for callers that need it.
package engine

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/tetris/board"
	"github.com/plus3/tetris/piece"
	"github.com/plus3/tetris/placement"
)

// Phase is the observable state of a game.
type Phase int

const (
	// Idle is an engine that has not been started.
	Idle Phase = iota
	// Falling accepts player intents and gravity.
	Falling
	// Paused suspends gravity, the clock and movement.
	Paused
	// GameOver only accepts Restart.
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Falling:
		return "falling"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Engine owns the board and every piece of game state.
type Engine struct {
	width      int
	height     int
	nextPieces int

	rng            *rand.Rand
	store          Store
	observer       Observer
	logger         *zap.Logger
	persistTimeout time.Duration

	board      *board.Board
	current    placement.Piece
	hasCurrent bool
	held       piece.Kind
	next       []piece.Kind
	score      Score
	highScore  int
	elapsed    int
	phase      Phase
	fast       bool
	superFast  bool

	events events
}

// New creates an idle engine. Call Start or Restart to begin playing.
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	return &Engine{
		width:          o.width,
		height:         o.height,
		nextPieces:     o.nextPieces,
		rng:            o.random(),
		store:          o.store,
		observer:       o.observer,
		logger:         o.logger,
		persistTimeout: o.persistTimeout,
		board:          board.New(o.width, o.height),
		held:           piece.None,
		next:           make([]piece.Kind, 0, o.nextPieces),
	}, nil
}

// Start loads the high score and resumes the saved game, if any, in the
// paused phase. Without a usable saved game a fresh game starts. Store
// failures are logged and never prevent play.
func (e *Engine) Start(ctx context.Context) {
	if e.store != nil {
		score, err := e.store.LoadHighScore(ctx)
		if err != nil {
			e.logger.Warn("load high score", zap.Error(err))
		} else {
			e.highScore = score
		}
	}
	e.events.highScore(e.highScore)

	err := e.Load(ctx)
	switch {
	case err == nil:
		return
	case errors.Is(err, ErrNoSnapshot):
	case IsCode(err, CodeCorruptSnapshot):
		e.logger.Warn("discarding saved game", zap.Error(err))
		e.persist("clear corrupt snapshot", func(ctx context.Context, s Store) error {
			return s.Clear(ctx)
		})
	default:
		e.logger.Warn("load saved game", zap.Error(err))
	}

	e.Restart()
}

// Restart discards the current game and starts a fresh one. It is accepted in
// every phase.
func (e *Engine) Restart() {
	e.board = board.New(e.width, e.height)
	e.score = Score{}
	e.held = piece.None
	e.elapsed = 0
	e.fast = false
	e.superFast = false
	e.hasCurrent = false
	e.next = e.next[:0]
	for range e.nextPieces {
		e.next = append(e.next, e.draw())
	}

	e.events.markBoard()
	e.events.heldPiece(piece.None)
	e.events.score(0, 0)
	e.events.elapsed(FormatElapsed(0))
	e.events.pauseLabel(LabelPause)
	e.events.pauseEnabled(true)
	e.events.interactions(true)
	e.events.overlay(false, false)
	e.logger.Info("game restarted")

	e.spawn()
	e.flush()
}

func (e *Engine) draw() piece.Kind {
	return piece.Kind(e.rng.IntN(piece.Count))
}

func (e *Engine) spawnPoint() board.Point {
	return board.Point{X: e.width/2 - 1, Y: 0}
}

// spawn moves the head of the next queue onto the board, replenishing the
// queue with one fresh draw.
func (e *Engine) spawn() {
	kind := e.next[0]
	e.next = append(slices.Delete(e.next, 0, 1), e.draw())
	e.events.nextPieces(e.next)
	e.logger.Debug("piece spawned", zap.Stringer("kind", kind))
	e.enter(placement.Spawn(kind, e.spawnPoint()))
}

// enter places p as the active piece, or ends the game when p collides.
func (e *Engine) enter(p placement.Piece) {
	if !placement.Fits(p, e.board) {
		e.gameOver()
		return
	}
	e.current = p
	e.hasCurrent = true
	e.phase = Falling
	e.insertCurrent()
}

func (e *Engine) insertCurrent() {
	placement.Insert(e.board, e.current)
	placement.PaintShadow(e.board, e.current)
	e.events.markBoard()
}

// lock settles the active piece, clears full rows and spawns the next piece.
func (e *Engine) lock() {
	e.hasCurrent = false
	e.board.ClearShadows()

	if rows := e.board.FullRows(); len(rows) > 0 {
		e.events.linesCleared(rows)
		e.board.ClearRows(rows)
		e.events.markBoard()

		if err := e.score.AddLines(len(rows)); err != nil {
			e.logger.Error("score line clear", zap.Ints("rows", rows), zap.Error(err))
		} else {
			e.scoreChanged()
		}
	}

	e.fast = false
	e.superFast = false
	e.spawn()
}

func (e *Engine) gameOver() {
	e.phase = GameOver
	e.hasCurrent = false
	e.fast = false
	e.superFast = false

	e.events.markBoard()
	e.events.interactions(false)
	e.events.pauseEnabled(false)
	e.events.overlay(true, false)
	e.logger.Info("game over",
		zap.Int("score", e.score.Total),
		zap.Int("level", e.score.Level),
		zap.Int("elapsed", e.elapsed),
	)

	e.persist("clear snapshot", func(ctx context.Context, s Store) error {
		return s.Clear(ctx)
	})
}

func (e *Engine) scoreChanged() {
	e.events.score(e.score.Level, e.score.Total)
	if e.score.Total <= e.highScore {
		return
	}
	e.highScore = e.score.Total
	e.events.highScore(e.highScore)
	e.persist("save high score", func(ctx context.Context, s Store) error {
		return s.SaveHighScore(ctx, e.highScore)
	})
}

// persist runs a store call the engine makes on its own behalf. Failures are
// logged.
func (e *Engine) persist(op string, fn func(context.Context, Store) error) {
	if e.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.persistTimeout)
	defer cancel()
	if err := fn(ctx, e.store); err != nil {
		e.logger.Warn("persistence failed", zap.String("op", op), zap.Error(err))
	}
}

func (e *Engine) flush() {
	e.events.Flush(e.observer, e.board)
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Score returns the scoring state.
func (e *Engine) Score() Score {
	return e.score
}

// HighScore returns the best total seen so far.
func (e *Engine) HighScore() int {
	return e.highScore
}

// Current returns the active piece, and false when there is none.
func (e *Engine) Current() (placement.Piece, bool) {
	return e.current, e.hasCurrent
}

// Held returns the held kind, or piece.None.
func (e *Engine) Held() piece.Kind {
	return e.held
}

// Next returns a copy of the upcoming kinds, head first.
func (e *Engine) Next() []piece.Kind {
	return slices.Clone(e.next)
}

// Board returns a copy of the grid including the active piece and its ghost.
func (e *Engine) Board() [][]board.Cell {
	return e.board.Cells()
}

// Dimensions returns the board width and height.
func (e *Engine) Dimensions() (int, int) {
	return e.width, e.height
}
