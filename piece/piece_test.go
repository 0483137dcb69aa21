package piece_test

import (
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tetris/piece"
)

func TestEveryRotationHasFourCells(t *testing.T) {
	for _, kind := range piece.Kinds() {
		for rotation := 0; rotation < piece.Rotations; rotation++ {
			t.Run(fmt.Sprintf("%s/%d", kind, rotation), func(t *testing.T) {
				bitmap := piece.Shape(kind, rotation)
				require.NotNil(t, bitmap)

				count := 0
				for range bitmap.Cells() {
					count++
				}
				assert.Equal(t, 4, count)

				w, h := bitmap.Size()
				assert.GreaterOrEqual(t, w, 2)
				assert.LessOrEqual(t, w, 4)
				assert.GreaterOrEqual(t, h, 2)
				assert.LessOrEqual(t, h, 4)
			})
		}
	}
}

func TestFourRotationsReturnToStart(t *testing.T) {
	for _, kind := range piece.Kinds() {
		for start := 0; start < piece.Rotations; start++ {
			rotation := start
			for i := 0; i < 4; i++ {
				rotation = piece.NextRotation(rotation)
			}
			assert.Equal(t, start, rotation)
			assert.True(t, piece.Shape(kind, start).Equal(piece.Shape(kind, rotation)))
		}
	}
}

func TestShapeRejectsInvalidIndices(t *testing.T) {
	assert.Nil(t, piece.Shape(piece.None, 0))
	assert.Nil(t, piece.Shape(piece.Kind(7), 0))
	assert.Nil(t, piece.Shape(piece.I, -1))
	assert.Nil(t, piece.Shape(piece.I, 4))
}

func TestShapeIsConstant(t *testing.T) {
	first := piece.Shape(piece.T, 1)
	second := piece.Shape(piece.T, 1)
	assert.True(t, first.Equal(second))
	assert.Same(t, &first[0][0], &second[0][0])
}

func TestColors(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x28, G: 0xE4, B: 0xEB, A: 0xFF}, piece.ColorOf(piece.I))
	assert.Equal(t, color.RGBA{R: 0xE8, G: 0xD7, B: 0x26, A: 0xFF}, piece.ColorOf(piece.Z))
	assert.Equal(t, color.RGBA{}, piece.ColorOf(piece.None))
	assert.Equal(t, color.RGBA{R: 0xE4, G: 0xE7, B: 0xEA, A: 0xFF}, piece.ShadowColor)

	seen := make(map[color.RGBA]piece.Kind)
	for _, kind := range piece.Kinds() {
		c := piece.ColorOf(kind)
		prev, dup := seen[c]
		assert.False(t, dup, "%s shares a color with %s", kind, prev)
		seen[c] = kind
	}
}

func TestKindValidity(t *testing.T) {
	assert.False(t, piece.None.Valid())
	assert.Equal(t, "None", piece.None.String())
	assert.Len(t, piece.Kinds(), piece.Count)
	for i, kind := range piece.Kinds() {
		assert.Equal(t, piece.Kind(i), kind)
		assert.True(t, kind.Valid())
	}
}

func ExampleShape() {
	bitmap := piece.Shape(piece.I, 0)
	var cells []string
	for dx, dy := range bitmap.Cells() {
		cells = append(cells, fmt.Sprintf("(%d,%d)", dx, dy))
	}
	fmt.Println(strings.Join(cells, " "))
	w, h := bitmap.Size()
	fmt.Printf("%dx%d\n", w, h)

	// Output:
	// (0,2) (1,2) (2,2) (3,2)
	// 4x3
}
