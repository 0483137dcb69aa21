// Package piece is the tetromino catalogue: the seven piece kinds, their four
// precomputed rotation bitmaps and their display colors.
//
// Bitmaps are addressed [dx][dy], columns first, so a bitmap cell maps onto the
// board cell [x+dx][y+dy] for a piece whose origin sits at (x, y).
package piece

import (
	"image/color"
	"iter"
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	None Kind = iota - 1
	I
	J
	L
	O
	S
	T
	Z
)

// Count is the number of playable kinds.
const Count = 7

// Rotations is the number of rotation states every kind has.
const Rotations = 4

var kindNames = [Count]string{"I", "J", "L", "O", "S", "T", "Z"}

// Valid reports whether k names a playable kind.
func (k Kind) Valid() bool {
	return k >= I && k <= Z
}

func (k Kind) String() string {
	if !k.Valid() {
		return "None"
	}
	return kindNames[k]
}

// Kinds returns every playable kind in catalogue order.
func Kinds() []Kind {
	return []Kind{I, J, L, O, S, T, Z}
}

// Bitmap is a fixed grid of 0/1 values marking the occupied cells of a shape.
type Bitmap [][]uint8

// Size returns the bitmap width (columns) and height (rows).
func (b Bitmap) Size() (int, int) {
	height := 0
	for _, column := range b {
		if len(column) > height {
			height = len(column)
		}
	}
	return len(b), height
}

// Cells yields the (dx, dy) offset of every set bit.
func (b Bitmap) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for dx, column := range b {
			for dy, value := range column {
				if value != 1 {
					continue
				}
				if !yield(dx, dy) {
					return
				}
			}
		}
	}
}

// Equal reports whether two bitmaps mark the same cells with the same layout.
func (b Bitmap) Equal(other Bitmap) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if len(b[i]) != len(other[i]) {
			return false
		}
		for j := range b[i] {
			if b[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Shape returns the bitmap of kind at the given rotation index.
// Out-of-range input returns nil; callers validate indices.
func Shape(kind Kind, rotation int) Bitmap {
	if !kind.Valid() || rotation < 0 || rotation >= Rotations {
		return nil
	}
	return catalogue[kind].rotations[rotation]
}

// ColorOf returns the display color of kind.
func ColorOf(kind Kind) color.RGBA {
	if !kind.Valid() {
		return color.RGBA{}
	}
	return catalogue[kind].color
}

// NextRotation returns the rotation index that follows r.
func NextRotation(r int) int {
	return ((r+1)%Rotations + Rotations) % Rotations
}
