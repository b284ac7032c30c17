// Package geometry derives the board grid from a rectangular region and a
// target column count. It is a pure function of its inputs.
//
// Coordinates inside the region grow to the right and upward: row 0 is the
// bottom of the board. The board itself only works with integer column and
// row indices; centre coordinates are for the presentation layer.
package geometry

import "math"

// Region is the area available to the board, in abstract grid units.
type Region struct {
	W, H int
}

// Layout controls how the board is fitted into a region.
type Layout struct {
	Columns        int     // Target column count
	WidthFraction  float64 // Share of the region width used by the board
	HeightFraction float64 // Share of the region height used by the board
	MinRows        int     // Lower bound for the visible row count
}

// Geometry is the immutable grid description of one board.
type Geometry struct {
	CellSize int
	OffsetX  int
	OffsetY  int

	// Columns holds column centre x values, ascending left to right.
	Columns []int
	// Rows holds row centre y values, ascending bottom to top. The last
	// entry is the buffer row above the visible area where pieces spawn.
	Rows []int
}

// New fits a grid of layout.Columns columns into region.
func New(region Region, layout Layout) Geometry {
	cols := layout.Columns
	if cols < 1 {
		cols = 1
	}

	size := int(math.Round(float64(region.W) * layout.WidthFraction / float64(cols)))
	if size < 1 {
		size = 1
	}
	for size > 1 && size*cols > region.W {
		size--
	}

	visible := int(math.Round(float64(region.H) * layout.HeightFraction / float64(size)))
	if visible < layout.MinRows {
		visible = layout.MinRows
	}
	if visible < 1 {
		visible = 1
	}

	g := Geometry{
		CellSize: size,
		OffsetX:  (region.W - size*cols) / 2,
		OffsetY:  int(math.Round(float64(region.H) * (1 - layout.HeightFraction) / 2)),
		Columns:  make([]int, cols),
		Rows:     make([]int, visible+1),
	}
	if g.OffsetX < 0 {
		g.OffsetX = 0
	}

	for i := range g.Columns {
		g.Columns[i] = g.OffsetX + i*size + size/2
	}
	for j := range g.Rows {
		g.Rows[j] = g.OffsetY + j*size + size/2
	}
	return g
}

// NumColumns returns the number of columns.
func (g Geometry) NumColumns() int { return len(g.Columns) }

// NumRows returns the number of rows including the buffer row.
func (g Geometry) NumRows() int { return len(g.Rows) }

// VisibleRows returns the number of rows below the buffer row.
func (g Geometry) VisibleRows() int { return len(g.Rows) - 1 }

// LastColumn returns the index of the rightmost column.
func (g Geometry) LastColumn() int { return len(g.Columns) - 1 }

// TopRow returns the index of the buffer row.
func (g Geometry) TopRow() int { return len(g.Rows) - 1 }

// Width returns the board width in region units.
func (g Geometry) Width() int { return g.CellSize * len(g.Columns) }

// Height returns the visible board height in region units.
func (g Geometry) Height() int { return g.CellSize * g.VisibleRows() }

// InColumns reports whether col is a valid column index.
func (g Geometry) InColumns(col int) bool {
	return col >= 0 && col < len(g.Columns)
}

// InRows reports whether row is a valid row index, buffer row included.
func (g Geometry) InRows(row int) bool {
	return row >= 0 && row < len(g.Rows)
}

// Center returns the centre of the cell at (col, row).
// The second result is false when either index is out of range.
func (g Geometry) Center(col, row int) (x, y int, ok bool) {
	if !g.InColumns(col) || !g.InRows(row) {
		return 0, 0, false
	}
	return g.Columns[col], g.Rows[row], true
}

// CellOrigin returns the bottom-left corner of the cell at (col, row).
func (g Geometry) CellOrigin(col, row int) (x, y int) {
	return g.OffsetX + col*g.CellSize, g.OffsetY + row*g.CellSize
}

// ColumnIndex maps a column centre x back to its index.
func (g Geometry) ColumnIndex(x int) (int, bool) {
	return lookup(g.Columns, x)
}

// RowIndex maps a row centre y back to its index.
func (g Geometry) RowIndex(y int) (int, bool) {
	return lookup(g.Rows, y)
}

// lookup finds v in an ascending table.
func lookup(table []int, v int) (int, bool) {
	lo, hi := 0, len(table)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case table[mid] == v:
			return mid, true
		case table[mid] < v:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}
