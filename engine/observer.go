package engine

import (
	"github.com/plus3/tetris/board"
	"github.com/plus3/tetris/piece"
)

// Pause button labels.
const (
	LabelPause = "PAUSE"
	LabelPlay  = "PLAY"
)

// Observer receives view updates pushed by the engine. Calls happen after the
// operation that caused them has completed, on the goroutine that invoked the
// operation. Slices passed to an Observer are copies it may keep.
type Observer interface {
	BoardChanged(cells [][]board.Cell)
	LinesCleared(rows []int)
	NextPiecesChanged(next []piece.Kind)
	HeldPieceChanged(held piece.Kind)
	ScoreChanged(level, score int)
	HighScoreChanged(score int)
	ElapsedChanged(text string)
	InteractionsChanged(enabled bool)
	PauseLabelChanged(label string)
	PauseEnabledChanged(enabled bool)
	OverlayChanged(showing, paused bool)
}

// BaseObserver implements Observer with no-op methods. Embed it to handle a
// subset of notifications.
type BaseObserver struct{}

func (BaseObserver) BoardChanged([][]board.Cell)    {}
func (BaseObserver) LinesCleared([]int)             {}
func (BaseObserver) NextPiecesChanged([]piece.Kind) {}
func (BaseObserver) HeldPieceChanged(piece.Kind)    {}
func (BaseObserver) ScoreChanged(int, int)          {}
func (BaseObserver) HighScoreChanged(int)           {}
func (BaseObserver) ElapsedChanged(string)          {}
func (BaseObserver) InteractionsChanged(bool)       {}
func (BaseObserver) PauseLabelChanged(string)       {}
func (BaseObserver) PauseEnabledChanged(bool)       {}
func (BaseObserver) OverlayChanged(bool, bool)      {}

var _ Observer = BaseObserver{}
