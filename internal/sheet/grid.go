package sheet

import "fmt"

// Grid is a row-major two-dimensional block of cell values.
//
// A nil *Grid means "no data"; a zero-sized grid means "known to be empty".
// Callers that receive a grid from change tracking share it with the
// tracker and must not modify it.
type Grid struct {
	rows  int
	cols  int
	cells []string
}

// NewGrid returns a rows x cols grid of empty strings.
// Negative dimensions are treated as zero.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]string, rows*cols),
	}
}

// GridFromRows builds a grid from nested rows. Short rows are padded with
// empty strings to the width of the widest row.
func GridFromRows(rows [][]string) *Grid {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	g := NewGrid(len(rows), cols)
	for r, row := range rows {
		copy(g.cells[r*cols:], row)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// CellCount returns the number of cells.
func (g *Grid) CellCount() int64 { return CellCount(g.rows, g.cols) }

// At returns the value at the zero-based row and column.
// It panics if the position is out of bounds.
func (g *Grid) At(row, col int) string {
	return g.cells[g.index(row, col)]
}

// Set stores a value at the zero-based row and column.
// It panics if the position is out of bounds.
func (g *Grid) Set(row, col int, value string) {
	g.cells[g.index(row, col)] = value
}

// Row returns a copy of the given zero-based row.
func (g *Grid) Row(row int) []string {
	out := make([]string, g.cols)
	if g.cols == 0 {
		return out
	}
	copy(out, g.cells[g.index(row, 0):])
	return out
}

// SameShape reports whether both grids have identical dimensions.
func (g *Grid) SameShape(other *Grid) bool {
	if g == nil || other == nil {
		return false
	}
	return g.rows == other.rows && g.cols == other.cols
}

// Equal reports whether both grids have the same dimensions and every
// cell compares byte-for-byte equal. A nil grid equals nothing, not even
// another nil grid.
func (g *Grid) Equal(other *Grid) bool {
	if !g.SameShape(other) {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String returns a short description of the grid's shape.
func (g *Grid) String() string {
	if g == nil {
		return "<no data>"
	}
	return fmt.Sprintf("%dx%d grid", g.rows, g.cols)
}

func (g *Grid) index(row, col int) int {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("sheet: cell (%d,%d) out of bounds for %dx%d grid", row, col, g.rows, g.cols))
	}
	return row*g.cols + col
}
