package piece

import "image/color"

type definition struct {
	rotations [Rotations]Bitmap
	color     color.RGBA
}

// ShadowColor is the color of ghost-piece preview cells.
var ShadowColor = rgb(0xE4E7EA)

// Each bitmap is drawn column by column: every inner slice is one column
// of the shape, top to bottom.
var catalogue = [Count]definition{
	I: {
		rotations: [Rotations]Bitmap{
			{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
			{{0, 0, 0, 0}, {0, 0, 0, 0}, {1, 1, 1, 1}},
			{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
			{{0, 0, 0, 0}, {1, 1, 1, 1}},
		},
		color: rgb(0x28E4EB),
	},
	J: {
		rotations: [Rotations]Bitmap{
			{{0, 1}, {0, 1}, {1, 1}},
			{{0, 0, 0}, {1, 1, 1}, {0, 0, 1}},
			{{0, 1, 1}, {0, 1, 0}, {0, 1, 0}},
			{{1, 0, 0}, {1, 1, 1}},
		},
		color: rgb(0x106DED),
	},
	L: {
		rotations: [Rotations]Bitmap{
			{{1, 1}, {0, 1}, {0, 1}},
			{{0, 0, 0}, {1, 1, 1}, {1, 0, 0}},
			{{0, 1, 0}, {0, 1, 0}, {0, 1, 1}},
			{{0, 0, 1}, {1, 1, 1}},
		},
		color: rgb(0xBE5BFF),
	},
	O: {
		rotations: [Rotations]Bitmap{
			{{1, 1}, {1, 1}},
			{{1, 1}, {1, 1}},
			{{1, 1}, {1, 1}},
			{{1, 1}, {1, 1}},
		},
		color: rgb(0xFF44A6),
	},
	S: {
		rotations: [Rotations]Bitmap{
			{{0, 1}, {1, 1}, {1, 0}},
			{{0, 0, 0}, {1, 1, 0}, {0, 1, 1}},
			{{0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
			{{1, 1, 0}, {0, 1, 1}},
		},
		color: rgb(0x00B560),
	},
	T: {
		rotations: [Rotations]Bitmap{
			{{0, 1}, {1, 1}, {0, 1}},
			{{0, 0, 0}, {1, 1, 1}, {0, 1, 0}},
			{{0, 1, 0}, {0, 1, 1}, {0, 1, 0}},
			{{0, 1, 0}, {1, 1, 1}},
		},
		color: rgb(0x7BBE2F),
	},
	Z: {
		rotations: [Rotations]Bitmap{
			{{1, 0}, {1, 1}, {0, 1}},
			{{0, 0, 0}, {0, 1, 1}, {1, 1, 0}},
			{{0, 1, 0}, {0, 1, 1}, {0, 0, 1}},
			{{0, 1, 1}, {1, 1, 0}},
		},
		color: rgb(0xE8D726),
	},
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 0xFF,
	}
}
