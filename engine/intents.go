package engine

import (
	"github.com/plus3/tetris/placement"
)

// intent runs fn when a piece is falling and reports its result. Intents in
// any other phase are ignored.
func (e *Engine) intent(fn func() bool) bool {
	if e.phase != Falling {
		return false
	}
	ok := fn()
	e.flush()
	return ok
}

// MoveLeft shifts the active piece one column left.
func (e *Engine) MoveLeft() bool {
	return e.intent(func() bool { return e.move(-1, 0) })
}

// MoveRight shifts the active piece one column right.
func (e *Engine) MoveRight() bool {
	return e.intent(func() bool { return e.move(1, 0) })
}

// SoftDrop moves the active piece down one row and grants the drop bonus
// when it moved.
func (e *Engine) SoftDrop() bool {
	return e.intent(func() bool {
		if !e.move(0, 1) {
			return false
		}
		e.score.AddDropBonus()
		e.scoreChanged()
		return true
	})
}

// SoftDropBegin switches gravity to the fast interval until SoftDropEnd.
// Locking or pausing also ends it.
func (e *Engine) SoftDropBegin() bool {
	return e.intent(func() bool {
		e.fast = true
		return true
	})
}

// SoftDropEnd returns gravity to the level interval.
func (e *Engine) SoftDropEnd() bool {
	if !e.fast {
		return false
	}
	e.fast = false
	return true
}

// HardDrop grants the drop bonus and latches super-fast gravity until the
// piece locks. A latched drop is not granted twice.
func (e *Engine) HardDrop() bool {
	return e.intent(func() bool {
		if e.superFast {
			return false
		}
		e.superFast = true
		e.score.AddDropBonus()
		e.scoreChanged()
		return true
	})
}

// Rotate turns the active piece to its next rotation, kicking it back inside
// the walls when needed. An illegal rotation leaves the piece unchanged.
func (e *Engine) Rotate() bool {
	return e.intent(func() bool {
		placement.Erase(e.board, e.current)
		candidate := placement.Kick(e.current.Rotated(), e.board)
		ok := placement.Fits(candidate, e.board)
		if ok {
			e.current = candidate
		}
		e.insertCurrent()
		return ok
	})
}

// Hold stores the active piece and brings in the next one, or exchanges the
// active piece with the held one. An exchange happens only when the held
// piece fits where the active piece is; otherwise nothing changes.
func (e *Engine) Hold() bool {
	return e.intent(func() bool {
		if !e.held.Valid() {
			placement.Erase(e.board, e.current)
			e.held = e.current.Kind
			e.hasCurrent = false
			e.superFast = false
			e.events.heldPiece(e.held)
			e.events.markBoard()
			e.spawn()
			return true
		}

		scratch := e.board.Clone()
		placement.Erase(scratch, e.current)
		swapped := placement.Kick(placement.Spawn(e.held, e.current.Pos), scratch)
		if !placement.Fits(swapped, scratch) {
			return false
		}

		e.board = scratch
		e.held = e.current.Kind
		e.current = swapped
		e.insertCurrent()
		e.events.heldPiece(e.held)
		return true
	})
}

// Tick applies one step of gravity. A piece that cannot move down locks and
// the next piece spawns. Tick reports whether it was accepted.
func (e *Engine) Tick() bool {
	return e.intent(func() bool {
		if !e.move(0, 1) {
			e.lock()
		}
		return true
	})
}

// Pause suspends gravity, the clock and movement.
func (e *Engine) Pause() bool {
	if e.phase != Falling {
		return false
	}
	e.phase = Paused
	e.fast = false
	e.superFast = false
	e.events.pauseLabel(LabelPlay)
	e.events.interactions(false)
	e.events.overlay(true, true)
	e.flush()
	return true
}

// Resume continues a paused game.
func (e *Engine) Resume() bool {
	if e.phase != Paused {
		return false
	}
	e.phase = Falling
	e.events.pauseLabel(LabelPause)
	e.events.interactions(true)
	e.events.overlay(false, false)
	e.flush()
	return true
}

// TogglePause pauses a falling game or resumes a paused one.
func (e *Engine) TogglePause() bool {
	if e.phase == Paused {
		return e.Resume()
	}
	return e.Pause()
}

// move erases the active piece, tries the translated and bounds-adjusted
// position, and reinserts the piece at whichever position won. A move that
// the adjustment cancels out fails.
func (e *Engine) move(dx, dy int) bool {
	placement.Erase(e.board, e.current)
	candidate := placement.Kick(e.current.Moved(dx, dy), e.board)
	ok := candidate.Pos != e.current.Pos && placement.Fits(candidate, e.board)
	if ok {
		e.current = candidate
	}
	e.insertCurrent()
	return ok
}
