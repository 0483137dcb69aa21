// Package board implements the fixed-size playfield grid.
//
// The grid is addressed [x][y] with y growing downward. Every cell is exactly
// one of Empty, Filled or Shadow. Shadow cells are transient ghost-piece
// previews and never count as occupied.
package board

import (
	"errors"
	"fmt"
	"image/color"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// ErrOutOfBounds is returned for coordinates outside the grid.
var ErrOutOfBounds = errors.New("coordinates out of bounds")

// ErrInvalidGrid is returned when a serialized grid cannot become a board.
var ErrInvalidGrid = errors.New("invalid grid")

// State tags a cell. The numeric values match the serialized grid format.
type State int

const (
	Shadow State = -1
	Empty  State = 0
	Filled State = 1
)

func (s State) Valid() bool {
	return s == Shadow || s == Empty || s == Filled
}

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Filled:
		return "filled"
	case Shadow:
		return "shadow"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Cell is one grid square.
type Cell struct {
	State State      `json:"state"`
	Color color.RGBA `json:"color"`
}

// Point is a board coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Board is the playfield grid.
type Board struct {
	width  int
	height int
	cells  [][]Cell
}

// New creates an empty board of the given dimensions.
func New(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("board: invalid dimensions %dx%d", width, height))
	}
	return &Board{
		width:  width,
		height: height,
		cells:  makeGrid(width, height),
	}
}

// FromCells builds a board from a serialized [x][y] grid.
func FromCells(cells [][]Cell) (*Board, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidGrid)
	}
	width, height := len(cells), len(cells[0])
	b := New(width, height)
	for x, column := range cells {
		if len(column) != height {
			return nil, fmt.Errorf("%w: column %d has %d rows, want %d", ErrInvalidGrid, x, len(column), height)
		}
		for y, cell := range column {
			if !cell.State.Valid() {
				return nil, fmt.Errorf("%w: cell (%d,%d) has %s", ErrInvalidGrid, x, y, cell.State)
			}
			b.cells[x][y] = cell
		}
	}
	return b, nil
}

func makeGrid(width, height int) [][]Cell {
	backing := make([]Cell, width*height)
	grid := make([][]Cell, width)
	for x := range grid {
		grid[x] = backing[x*height : (x+1)*height : (x+1)*height]
	}
	return grid
}

// Dimensions returns the board width and height.
func (b *Board) Dimensions() (int, int) {
	return b.width, b.height
}

// InBounds reports whether (x, y) addresses a cell.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y).
func (b *Board) Get(x, y int) (Cell, error) {
	if !b.InBounds(x, y) {
		return Cell{}, fmt.Errorf("get (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	return b.cells[x][y], nil
}

// At returns the cell at (x, y), or an empty cell when out of bounds.
func (b *Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{}
	}
	return b.cells[x][y]
}

// Set overwrites the cell at (x, y).
func (b *Board) Set(x, y int, cell Cell) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("set (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	b.cells[x][y] = cell
	return nil
}

// Clear resets the cell at (x, y) to Empty.
func (b *Board) Clear(x, y int) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("clear (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	b.cells[x][y] = Cell{}
	return nil
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{
		width:  b.width,
		height: b.height,
		cells:  makeGrid(b.width, b.height),
	}
	for x := range b.cells {
		copy(out.cells[x], b.cells[x])
	}
	return out
}

// Cells returns a deep copy of the grid, addressed [x][y].
func (b *Board) Cells() [][]Cell {
	return b.Clone().cells
}

// Count returns the number of cells in the given state.
func (b *Board) Count(state State) int {
	n := 0
	for _, column := range b.cells {
		for _, cell := range column {
			if cell.State == state {
				n++
			}
		}
	}
	return n
}

// Equal reports whether both boards have the same dimensions and cells.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.width != other.width || b.height != other.height {
		return false
	}
	for x := range b.cells {
		for y := range b.cells[x] {
			if b.cells[x][y] != other.cells[x][y] {
				return false
			}
		}
	}
	return true
}
