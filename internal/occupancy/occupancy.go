// Package occupancy records which board cells are held by settled blocks.
//
// The map is keyed by row index; each row holds the set of occupied column
// indices together with a small tag (the settled piece kind). Iteration
// order of the underlying hash maps never leaks out: every listing is
// returned sorted.
package occupancy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kamstrup/intmap"
)

// ErrShiftCollision is returned by ShiftRowsDown when a moved row lands on
// an occupied row or below row 0. Cells are merged, never dropped.
var ErrShiftCollision = errors.New("occupancy: shift collision")

// Tag is opaque per-cell data stored alongside an occupied position.
type Tag uint8

// Cell is one occupied position.
type Cell struct {
	Col, Row int
	Tag      Tag
}

// View is the read-only side of a Map.
type View interface {
	IsOccupied(col, row int) bool
	RowCount(row int) int
	Rows() []int
	Columns(row int) []int
	Tag(col, row int) (Tag, bool)
	Cells() []Cell
	Len() int
}

const rowCapacity = 16

// Map is the row → columns record of settled cells.
type Map struct {
	rows *intmap.Map[int, *intmap.Map[int, Tag]]
	size int
}

// New creates an empty occupancy map.
func New() *Map {
	return &Map{rows: intmap.New[int, *intmap.Map[int, Tag]](32)}
}

// IsOccupied reports whether (col, row) holds a settled cell.
func (m *Map) IsOccupied(col, row int) bool {
	cols, ok := m.rows.Get(row)
	if !ok {
		return false
	}
	return cols.Has(col)
}

// Occupy marks (col, row) as held with the given tag.
// It returns false and leaves the map unchanged if the cell is already held.
func (m *Map) Occupy(col, row int, tag Tag) bool {
	cols, ok := m.rows.Get(row)
	if !ok {
		cols = intmap.New[int, Tag](rowCapacity)
		m.rows.Put(row, cols)
	}
	if cols.Has(col) {
		return false
	}
	cols.Put(col, tag)
	m.size++
	return true
}

// RowCount returns the number of occupied cells in row.
func (m *Map) RowCount(row int) int {
	cols, ok := m.rows.Get(row)
	if !ok {
		return 0
	}
	return cols.Len()
}

// RowIsFull reports whether every column of row is occupied.
func (m *Map) RowIsFull(row, totalColumns int) bool {
	return totalColumns > 0 && m.RowCount(row) == totalColumns
}

// ClearRow removes every cell in row and returns how many were removed.
func (m *Map) ClearRow(row int) int {
	cols, ok := m.rows.Get(row)
	if !ok {
		return 0
	}
	n := cols.Len()
	m.rows.Del(row)
	m.size -= n
	return n
}

// ShiftRowsDown moves every occupied row strictly above fromRow down by
// byCount rows. Rows are processed lowest first from a sorted snapshot of
// the keys, so the map is never mutated while being walked.
//
// A row landing on an existing row, or below row 0, is merged into the
// target and reported with ErrShiftCollision.
func (m *Map) ShiftRowsDown(fromRow, byCount int) error {
	if byCount <= 0 {
		return nil
	}

	var collisions []string
	for _, row := range m.Rows() {
		if row <= fromRow {
			continue
		}
		cols, _ := m.rows.Get(row)
		m.rows.Del(row)

		target := row - byCount
		if target < 0 {
			collisions = append(collisions, fmt.Sprintf("row %d below floor", row))
		}
		existing, ok := m.rows.Get(target)
		if !ok {
			m.rows.Put(target, cols)
			continue
		}

		collisions = append(collisions, fmt.Sprintf("row %d onto %d", row, target))
		cols.ForEach(func(col int, tag Tag) bool {
			if existing.Has(col) {
				m.size--
			} else {
				existing.Put(col, tag)
			}
			return true
		})
	}

	if len(collisions) > 0 {
		return fmt.Errorf("%w: %v", ErrShiftCollision, collisions)
	}
	return nil
}

// Rows returns a sorted snapshot of the occupied row indices.
func (m *Map) Rows() []int {
	rows := make([]int, 0, m.rows.Len())
	m.rows.ForEach(func(row int, cols *intmap.Map[int, Tag]) bool {
		if cols.Len() > 0 {
			rows = append(rows, row)
		}
		return true
	})
	sort.Ints(rows)
	return rows
}

// Columns returns the sorted occupied column indices of row.
func (m *Map) Columns(row int) []int {
	cols, ok := m.rows.Get(row)
	if !ok {
		return nil
	}
	out := make([]int, 0, cols.Len())
	cols.ForEach(func(col int, _ Tag) bool {
		out = append(out, col)
		return true
	})
	sort.Ints(out)
	return out
}

// Tag returns the tag stored at (col, row).
func (m *Map) Tag(col, row int) (Tag, bool) {
	cols, ok := m.rows.Get(row)
	if !ok {
		return 0, false
	}
	return cols.Get(col)
}

// Cells lists every occupied cell, ordered by row then column.
func (m *Map) Cells() []Cell {
	out := make([]Cell, 0, m.size)
	for _, row := range m.Rows() {
		cols, _ := m.rows.Get(row)
		for _, col := range m.Columns(row) {
			tag, _ := cols.Get(col)
			out = append(out, Cell{Col: col, Row: row, Tag: tag})
		}
	}
	return out
}

// Len returns the total number of occupied cells.
func (m *Map) Len() int {
	return m.size
}

// Reset removes every cell.
func (m *Map) Reset() {
	m.rows.Clear()
	m.size = 0
}
