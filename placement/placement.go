// Package placement holds the movement legality rules: collision and bounds
// checks, the single-pass bounds adjustment ("kick"), and ghost-piece
// projection.
package placement

import (
	"github.com/plus3/tetris/board"
	"github.com/plus3/tetris/piece"
)

// Piece is the active falling piece: kind, rotation and the board position
// of its bitmap origin.
type Piece struct {
	Kind     piece.Kind
	Rotation int
	Pos      board.Point
}

// Spawn returns kind at rotation 0 placed at pos.
func Spawn(kind piece.Kind, pos board.Point) Piece {
	return Piece{Kind: kind, Pos: pos}
}

// Bitmap returns the shape of the piece at its current rotation.
func (p Piece) Bitmap() piece.Bitmap {
	return piece.Shape(p.Kind, p.Rotation)
}

// Rotated returns the piece turned to the next rotation state.
func (p Piece) Rotated() Piece {
	p.Rotation = piece.NextRotation(p.Rotation)
	return p
}

// Moved returns the piece translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.Pos = p.Pos.Add(dx, dy)
	return p
}

// At returns the piece with its origin at pos.
func (p Piece) At(pos board.Point) Piece {
	p.Pos = pos
	return p
}

// CanPlace reports whether every set bit of bitmap, placed at pos, lands on
// an in-bounds cell that is not Filled. Empty and Shadow cells never block.
func CanPlace(bitmap piece.Bitmap, pos board.Point, b *board.Board) bool {
	for dx, dy := range bitmap.Cells() {
		x, y := pos.X+dx, pos.Y+dy
		if !b.InBounds(x, y) {
			return false
		}
		if b.At(x, y).State == board.Filled {
			return false
		}
	}
	return true
}

// Fits reports whether p can be placed on b.
func Fits(p Piece, b *board.Board) bool {
	return CanPlace(p.Bitmap(), p.Pos, b)
}

// AdjustIntoBounds returns the position translated by the smallest offset
// that puts every set bit of bitmap inside [0,width)x[0,height).
func AdjustIntoBounds(bitmap piece.Bitmap, pos board.Point, width, height int) board.Point {
	var lowX, highX, lowY, highY int
	for dx, dy := range bitmap.Cells() {
		x, y := pos.X+dx, pos.Y+dy
		if x < 0 && -x > lowX {
			lowX = -x
		}
		if x > width-1 && width-1-x < highX {
			highX = width - 1 - x
		}
		if y < 0 && -y > lowY {
			lowY = -y
		}
		if y > height-1 && height-1-y < highY {
			highY = height - 1 - y
		}
	}
	return pos.Add(shift(lowX, highX), shift(lowY, highY))
}

func shift(low, high int) int {
	if low != 0 {
		return low
	}
	return high
}

// Kick adjusts p into the bounds of b.
func Kick(p Piece, b *board.Board) Piece {
	w, h := b.Dimensions()
	return p.At(AdjustIntoBounds(p.Bitmap(), p.Pos, w, h))
}

// ProjectShadow returns the resting position of p if it were dropped straight
// down. The active piece must not be present on b.
func ProjectShadow(p Piece, b *board.Board) board.Point {
	bitmap := p.Bitmap()
	pos := p.Pos
	for CanPlace(bitmap, pos.Add(0, 1), b) {
		pos = pos.Add(0, 1)
	}
	return pos
}

// Insert writes p onto b as Filled cells in the color of its kind. Cells
// outside the board are skipped.
func Insert(b *board.Board, p Piece) {
	cell := board.Cell{State: board.Filled, Color: piece.ColorOf(p.Kind)}
	for dx, dy := range p.Bitmap().Cells() {
		_ = b.Set(p.Pos.X+dx, p.Pos.Y+dy, cell)
	}
}

// Erase clears the cells covered by p. Cells outside the board are skipped.
func Erase(b *board.Board, p Piece) {
	for dx, dy := range p.Bitmap().Cells() {
		_ = b.Clear(p.Pos.X+dx, p.Pos.Y+dy)
	}
}

// PaintShadow clears every shadow on b and paints the ghost of p at its
// resting position. p must already be inserted; only Empty cells are painted.
func PaintShadow(b *board.Board, p Piece) {
	b.ClearShadows()

	scratch := b.Clone()
	Erase(scratch, p)
	rest := ProjectShadow(p, scratch)
	if rest.Y <= p.Pos.Y {
		return
	}

	cell := board.Cell{State: board.Shadow, Color: piece.ShadowColor}
	for dx, dy := range p.Bitmap().Cells() {
		x, y := rest.X+dx, rest.Y+dy
		if b.InBounds(x, y) && b.At(x, y).State == board.Empty {
			_ = b.Set(x, y, cell)
		}
	}
}
