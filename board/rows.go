package board

import "slices"

// FullRows returns the indices, in ascending order, of rows whose every
// column is Filled.
func (b *Board) FullRows() []int {
	var rows []int
	for y := 0; y < b.height; y++ {
		full := true
		for x := 0; x < b.width; x++ {
			if b.cells[x][y].State != Filled {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearRows removes the given rows. Indices are processed in ascending order;
// for each one every row strictly above it moves down by one and an empty row
// enters at the top.
func (b *Board) ClearRows(rows []int) {
	for _, index := range slices.Sorted(slices.Values(rows)) {
		if index < 0 || index >= b.height {
			continue
		}
		for x := 0; x < b.width; x++ {
			column := b.cells[x]
			copy(column[1:index+1], column[:index])
			column[0] = Cell{}
		}
	}
}

// ClearShadows resets every Shadow cell to Empty.
func (b *Board) ClearShadows() {
	for x := range b.cells {
		for y := range b.cells[x] {
			if b.cells[x][y].State == Shadow {
				b.cells[x][y] = Cell{}
			}
		}
	}
}
