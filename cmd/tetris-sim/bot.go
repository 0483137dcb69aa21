package main

import (
	"math/rand/v2"

	"github.com/plus3/tetris/engine"
)

type intent int

const (
	intentNone intent = iota
	intentLeft
	intentRight
	intentRotate
	intentSoftDrop
	intentHardDrop
	intentHold
	intentCount
)

var intentNames = [intentCount]string{"none", "left", "right", "rotate", "soft drop", "hard drop", "hold"}

func (i intent) String() string {
	return intentNames[i]
}

// intentWeights biases the bot towards sideways moves and rotations so games
// last long enough to clear lines.
var intentWeights = [intentCount]int{6, 4, 4, 3, 2, 1, 1}

// bot plays random intents drawn from intentWeights.
type bot struct {
	rng   *rand.Rand
	total int
}

func newBot(seed uint64) *bot {
	total := 0
	for _, w := range intentWeights {
		total += w
	}
	return &bot{rng: rand.New(rand.NewPCG(seed, seed^0x5eed)), total: total}
}

func (b *bot) choose() intent {
	n := b.rng.IntN(b.total)
	for i, w := range intentWeights {
		if n < w {
			return intent(i)
		}
		n -= w
	}
	return intentNone
}

// apply delivers i to e and reports whether the engine accepted it.
func apply(e *engine.Engine, i intent) bool {
	switch i {
	case intentLeft:
		return e.MoveLeft()
	case intentRight:
		return e.MoveRight()
	case intentRotate:
		return e.Rotate()
	case intentSoftDrop:
		return e.SoftDrop()
	case intentHardDrop:
		return e.HardDrop()
	case intentHold:
		return e.Hold()
	default:
		return false
	}
}
