package placement_test

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tetris/board"
	"github.com/plus3/tetris/piece"
	"github.com/plus3/tetris/placement"
)

func TestCanPlace(t *testing.T) {
	b := board.New(4, 4)
	square := piece.Shape(piece.O, 0)

	tests := []struct {
		name string
		pos  board.Point
		want bool
	}{
		{"origin", board.Point{X: 0, Y: 0}, true},
		{"bottom right", board.Point{X: 2, Y: 2}, true},
		{"past right wall", board.Point{X: 3, Y: 0}, false},
		{"past left wall", board.Point{X: -1, Y: 0}, false},
		{"above top", board.Point{X: 0, Y: -1}, false},
		{"below floor", board.Point{X: 0, Y: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, placement.CanPlace(square, tt.pos, b))
		})
	}
}

func TestCanPlaceOnlyFilledBlocks(t *testing.T) {
	b := board.New(4, 4)
	square := piece.Shape(piece.O, 0)

	require.NoError(t, b.Set(1, 1, board.Cell{State: board.Shadow, Color: piece.ShadowColor}))
	assert.True(t, placement.CanPlace(square, board.Point{}, b), "shadow never blocks")

	require.NoError(t, b.Set(1, 1, board.Cell{State: board.Filled, Color: color.RGBA{A: 0xFF}}))
	assert.False(t, placement.CanPlace(square, board.Point{}, b))
	assert.True(t, placement.CanPlace(square, board.Point{X: 2, Y: 2}, b))
}

func TestAdjustIntoBounds(t *testing.T) {
	square := piece.Shape(piece.O, 0)
	line := piece.Shape(piece.I, 0)

	tests := []struct {
		name   string
		bitmap piece.Bitmap
		pos    board.Point
		want   board.Point
	}{
		{"inside", square, board.Point{X: 3, Y: 5}, board.Point{X: 3, Y: 5}},
		{"left", square, board.Point{X: -1, Y: 0}, board.Point{X: 0, Y: 0}},
		{"right", square, board.Point{X: 9, Y: 0}, board.Point{X: 8, Y: 0}},
		{"top", square, board.Point{X: 0, Y: -2}, board.Point{X: 0, Y: 0}},
		{"floor", square, board.Point{X: 0, Y: 19}, board.Point{X: 0, Y: 18}},
		{"corner", square, board.Point{X: 9, Y: 19}, board.Point{X: 8, Y: 18}},
		{"line right", line, board.Point{X: 8, Y: 0}, board.Point{X: 6, Y: 0}},
		{"line top", line, board.Point{X: 0, Y: -3}, board.Point{X: 0, Y: -2}},
		{"line floor", line, board.Point{X: 0, Y: 18}, board.Point{X: 0, Y: 17}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := placement.AdjustIntoBounds(tt.bitmap, tt.pos, 10, 20)
			assert.Equal(t, tt.want, got)
			assert.True(t, placement.CanPlace(tt.bitmap, got, board.New(10, 20)))
		})
	}
}

func TestPieceValueMethods(t *testing.T) {
	p := placement.Spawn(piece.T, board.Point{X: 4})
	assert.Equal(t, 0, p.Rotation)
	assert.True(t, p.Bitmap().Equal(piece.Shape(piece.T, 0)))

	turned := p.Rotated().Rotated().Rotated()
	assert.Equal(t, 3, turned.Rotation)
	assert.Equal(t, 0, turned.Rotated().Rotation)
	assert.Equal(t, 0, p.Rotation, "value receiver leaves the original alone")

	assert.Equal(t, board.Point{X: 3, Y: 2}, p.Moved(-1, 2).Pos)
	assert.Equal(t, board.Point{X: 7, Y: 7}, p.At(board.Point{X: 7, Y: 7}).Pos)
}

func TestKick(t *testing.T) {
	b := board.New(10, 20)
	p := placement.Piece{Kind: piece.I, Rotation: 1, Pos: board.Point{X: -3}}
	kicked := placement.Kick(p, b)
	assert.Equal(t, board.Point{X: -2}, kicked.Pos)
	assert.True(t, placement.Fits(kicked, b))
	assert.False(t, placement.Fits(p, b))
}

func TestProjectShadow(t *testing.T) {
	b := board.New(10, 20)
	p := placement.Spawn(piece.O, board.Point{X: 4})
	assert.Equal(t, board.Point{X: 4, Y: 18}, placement.ProjectShadow(p, b))

	require.NoError(t, b.Set(5, 10, board.Cell{State: board.Filled}))
	assert.Equal(t, board.Point{X: 4, Y: 8}, placement.ProjectShadow(p, b))

	blocked := p.At(board.Point{X: 4, Y: 8})
	assert.Equal(t, blocked.Pos, placement.ProjectShadow(blocked, b))
}

func TestInsertAndErase(t *testing.T) {
	b := board.New(10, 20)
	p := placement.Spawn(piece.O, board.Point{X: 4})

	placement.Insert(b, p)
	assert.Equal(t, 4, b.Count(board.Filled))
	assert.Equal(t, piece.ColorOf(piece.O), b.At(5, 1).Color)

	placement.Erase(b, p)
	assert.Equal(t, 0, b.Count(board.Filled))

	partial := placement.Spawn(piece.I, board.Point{X: 8})
	placement.Insert(b, partial)
	assert.Equal(t, 2, b.Count(board.Filled))
	placement.Erase(b, partial)
	assert.Equal(t, 0, b.Count(board.Filled))
}

func TestPaintShadow(t *testing.T) {
	b := board.New(10, 20)
	p := placement.Spawn(piece.O, board.Point{X: 4})
	placement.Insert(b, p)

	placement.PaintShadow(b, p)
	assert.Equal(t, 4, b.Count(board.Shadow))
	assert.Equal(t, 4, b.Count(board.Filled))
	assert.Equal(t, board.Cell{State: board.Shadow, Color: piece.ShadowColor}, b.At(4, 19))

	placement.Erase(b, p)
	p = p.At(board.Point{X: 4, Y: 17})
	placement.Insert(b, p)
	placement.PaintShadow(b, p)
	assert.Equal(t, 2, b.Count(board.Shadow), "cells covered by the piece stay filled")
	assert.Equal(t, board.Shadow, b.At(4, 19).State)
	assert.Equal(t, board.Filled, b.At(4, 18).State)

	placement.Erase(b, p)
	p = p.At(board.Point{X: 4, Y: 18})
	placement.Insert(b, p)
	placement.PaintShadow(b, p)
	assert.Equal(t, 0, b.Count(board.Shadow), "a resting piece has no ghost")
}

func ExampleProjectShadow() {
	b := board.New(board.DefaultWidth, board.DefaultHeight)
	p := placement.Spawn(piece.O, board.Point{X: 4})
	fmt.Println(placement.ProjectShadow(p, b))

	// Output:
	// {4 18}
}
