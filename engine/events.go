package engine

import (
	"slices"

	"github.com/plus3/tetris/board"
	"github.com/plus3/tetris/piece"
)

// events buffers observer notifications raised while an operation mutates the
// engine. They are delivered by flush once the operation has finished, so an
// observer never sees a half-applied state.
type events struct {
	pending    []func(Observer)
	boardDirty bool
}

func (q *events) push(fn func(Observer)) {
	q.pending = append(q.pending, fn)
}

// markBoard records that the board changed. Only one board notification is
// sent per flush.
func (q *events) markBoard() {
	q.boardDirty = true
}

func (q *events) linesCleared(rows []int) {
	rows = slices.Clone(rows)
	q.push(func(o Observer) { o.LinesCleared(rows) })
}

func (q *events) nextPieces(next []piece.Kind) {
	next = slices.Clone(next)
	q.push(func(o Observer) { o.NextPiecesChanged(next) })
}

func (q *events) heldPiece(held piece.Kind) {
	q.push(func(o Observer) { o.HeldPieceChanged(held) })
}

func (q *events) score(level, total int) {
	q.push(func(o Observer) { o.ScoreChanged(level, total) })
}

func (q *events) highScore(score int) {
	q.push(func(o Observer) { o.HighScoreChanged(score) })
}

func (q *events) elapsed(text string) {
	q.push(func(o Observer) { o.ElapsedChanged(text) })
}

func (q *events) interactions(enabled bool) {
	q.push(func(o Observer) { o.InteractionsChanged(enabled) })
}

func (q *events) pauseLabel(label string) {
	q.push(func(o Observer) { o.PauseLabelChanged(label) })
}

func (q *events) pauseEnabled(enabled bool) {
	q.push(func(o Observer) { o.PauseEnabledChanged(enabled) })
}

func (q *events) overlay(showing, paused bool) {
	q.push(func(o Observer) { o.OverlayChanged(showing, paused) })
}

// Flush delivers every queued notification to o and resets the buffer. The
// board notification, if any, is sent last with a copy taken from b. A nil
// observer drops the queue.
func (q *events) Flush(o Observer, b *board.Board) {
	pending := q.pending
	dirty := q.boardDirty
	q.pending = nil
	q.boardDirty = false

	if o == nil {
		return
	}
	for _, fn := range pending {
		fn(o)
	}
	if dirty {
		o.BoardChanged(b.Cells())
	}
}
