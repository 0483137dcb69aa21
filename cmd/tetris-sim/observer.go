package main

import (
	"github.com/kamstrup/intmap"

	"github.com/plus3/tetris/engine"
	"github.com/plus3/tetris/piece"
)

// statsObserver tallies piece draws and line clears across games. Each
// NextPiecesChanged after a spawn appends exactly one freshly drawn kind at
// the tail of the queue.
type statsObserver struct {
	engine.BaseObserver

	draws      *intmap.Map[piece.Kind, int]
	clears     *intmap.Map[int, int]
	highScores int
	muted      bool
}

func newStatsObserver() *statsObserver {
	return &statsObserver{
		draws:  intmap.New[piece.Kind, int](piece.Count),
		clears: intmap.New[int, int](4),
	}
}

func (o *statsObserver) NextPiecesChanged(next []piece.Kind) {
	if o.muted || len(next) == 0 {
		return
	}
	kind := next[len(next)-1]
	n, _ := o.draws.Get(kind)
	o.draws.Put(kind, n+1)
}

func (o *statsObserver) LinesCleared(rows []int) {
	if o.muted {
		return
	}
	n, _ := o.clears.Get(len(rows))
	o.clears.Put(len(rows), n+1)
}

func (o *statsObserver) HighScoreChanged(int) {
	if !o.muted {
		o.highScores++
	}
}

// mute suppresses tallies while fn runs.
func (o *statsObserver) mute(fn func()) {
	o.muted = true
	defer func() { o.muted = false }()
	fn()
}
