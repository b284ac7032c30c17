package occupancy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(m *Map, row, columns int, skip ...int) {
	skipped := make(map[int]bool)
	for _, c := range skip {
		skipped[c] = true
	}
	for col := 0; col < columns; col++ {
		if !skipped[col] {
			m.Occupy(col, row, 1)
		}
	}
}

func TestOccupy(t *testing.T) {
	m := New()

	assert.False(t, m.IsOccupied(3, 0))
	assert.True(t, m.Occupy(3, 0, 5))
	assert.True(t, m.IsOccupied(3, 0))
	assert.False(t, m.Occupy(3, 0, 6), "second occupy of the same cell must fail")

	tag, ok := m.Tag(3, 0)
	require.True(t, ok)
	assert.Equal(t, Tag(5), tag, "failed occupy must not overwrite the tag")
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 1, m.RowCount(0))
	assert.Equal(t, 0, m.RowCount(1))
}

func TestRowIsFull(t *testing.T) {
	tests := []struct {
		name     string
		skip     []int
		expected bool
	}{
		{"full", nil, true},
		{"one gap", []int{7}, false},
		{"empty", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New()
			fillRow(m, 0, 12, tc.skip...)
			assert.Equal(t, tc.expected, m.RowIsFull(0, 12))
			assert.LessOrEqual(t, m.RowCount(0), 12)
		})
	}
}

func TestClearRow(t *testing.T) {
	m := New()
	fillRow(m, 0, 12)
	m.Occupy(4, 1, 1)

	assert.Equal(t, 12, m.ClearRow(0))
	assert.Equal(t, 0, m.RowCount(0))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []int{1}, m.Rows())
	assert.Equal(t, 0, m.ClearRow(5))
}

func TestShiftRowsDown(t *testing.T) {
	m := New()
	m.Occupy(0, 0, 1) // below the cleared row, must not move
	m.Occupy(1, 2, 2)
	m.Occupy(2, 3, 3)
	m.Occupy(5, 3, 3)

	require.NoError(t, m.ShiftRowsDown(1, 1))

	assert.True(t, m.IsOccupied(0, 0))
	assert.True(t, m.IsOccupied(1, 1))
	assert.True(t, m.IsOccupied(2, 2))
	assert.True(t, m.IsOccupied(5, 2))
	assert.False(t, m.IsOccupied(2, 3))
	assert.Equal(t, []int{0, 1, 2}, m.Rows())
	assert.Equal(t, 4, m.Len())

	tag, ok := m.Tag(2, 2)
	require.True(t, ok)
	assert.Equal(t, Tag(3), tag, "tags travel with their cells")
}

func TestShiftRowsDownCollision(t *testing.T) {
	m := New()
	m.Occupy(0, 0, 1)
	m.Occupy(0, 2, 1)
	m.Occupy(1, 2, 1)

	// Row 2 lands on row 0 which is still occupied.
	err := m.ShiftRowsDown(1, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShiftCollision))

	// Merged, with the duplicate coordinate counted once.
	assert.Equal(t, []int{0, 1}, m.Columns(0))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, len(m.Cells()), m.Len())
}

func TestShiftRowsDownBelowFloor(t *testing.T) {
	m := New()
	m.Occupy(0, 1, 1)

	err := m.ShiftRowsDown(0, 3)
	assert.ErrorIs(t, err, ErrShiftCollision)
	assert.Equal(t, 1, m.Len())
}

func TestCellsSorted(t *testing.T) {
	m := New()
	m.Occupy(3, 2, 1)
	m.Occupy(1, 0, 2)
	m.Occupy(0, 2, 3)
	m.Occupy(2, 0, 4)

	expected := []Cell{
		{Col: 1, Row: 0, Tag: 2},
		{Col: 2, Row: 0, Tag: 4},
		{Col: 0, Row: 2, Tag: 3},
		{Col: 3, Row: 2, Tag: 1},
	}
	assert.Equal(t, expected, m.Cells())
}

func TestReset(t *testing.T) {
	m := New()
	fillRow(m, 0, 12)
	fillRow(m, 3, 12, 4)

	m.Reset()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Rows())
	assert.False(t, m.IsOccupied(0, 0))
}

func TestViewInterface(t *testing.T) {
	var v View = New()
	assert.Equal(t, 0, v.Len())
}
