// Package piece models the seven tetrominoes: their rotation states,
// occupied-cell offsets and spawn placement. It never touches the board.
package piece

import (
	"fmt"
	"strings"
)

// Kind identifies a tetromino shape.
type Kind uint8

const (
	KindNone Kind = iota
	I
	O
	T
	S
	Z
	J
	L
)

var kindNames = [...]string{"None", "I", "O", "T", "S", "Z", "J", "L"}

// Kinds returns all playable kinds in a stable order.
func Kinds() []Kind {
	return []Kind{I, O, T, S, Z, J, L}
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Letter returns the rune used to draw the kind in plain-text output.
func (k Kind) Letter() rune {
	if k == KindNone || int(k) >= len(kindNames) {
		return '.'
	}
	return rune(kindNames[k][0])
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= I && k <= L
}

// ParseKind converts a letter (case-insensitive) into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("piece: unknown kind %q", s)
}

// Cell is an absolute (column, row) board position.
type Cell struct {
	Col, Row int
}

// offset is a position relative to a piece origin.
// Rows grow upward, so offsets below the origin are negative.
type offset struct {
	dc, dr int
}

// shape is one rotation state: exactly four occupied offsets.
type shape [4]offset

// rotations lists every rotation state per kind. Offsets are anchored at the
// top-left of the bounding box: dr is in [-3, 0] and dc in [0, 3].
var rotations = map[Kind][]shape{
	I: {
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		{{1, 0}, {1, -1}, {1, -2}, {1, -3}},
	},
	O: {
		{{0, 0}, {1, 0}, {0, -1}, {1, -1}},
	},
	T: {
		{{0, 0}, {1, 0}, {2, 0}, {1, -1}},
		{{1, 0}, {1, -1}, {1, -2}, {0, -1}},
		{{1, 0}, {0, -1}, {1, -1}, {2, -1}},
		{{0, 0}, {0, -1}, {0, -2}, {1, -1}},
	},
	S: {
		{{1, 0}, {2, 0}, {0, -1}, {1, -1}},
		{{0, 0}, {0, -1}, {1, -1}, {1, -2}},
	},
	Z: {
		{{0, 0}, {1, 0}, {1, -1}, {2, -1}},
		{{1, 0}, {1, -1}, {0, -1}, {0, -2}},
	},
	J: {
		{{0, 0}, {0, -1}, {1, -1}, {2, -1}},
		{{0, 0}, {1, 0}, {0, -1}, {0, -2}},
		{{0, 0}, {1, 0}, {2, 0}, {2, -1}},
		{{1, 0}, {1, -1}, {1, -2}, {0, -2}},
	},
	L: {
		{{2, 0}, {0, -1}, {1, -1}, {2, -1}},
		{{0, 0}, {0, -1}, {0, -2}, {1, -2}},
		{{0, 0}, {1, 0}, {2, 0}, {0, -1}},
		{{0, 0}, {1, 0}, {1, -1}, {1, -2}},
	},
}

// RotationCount returns the number of distinct rotation states of k.
func RotationCount(k Kind) int {
	return len(rotations[k])
}

// Piece is a tetromino placed on the board.
type Piece struct {
	Kind     Kind
	Rotation int
	Col      int // Origin column (left edge of the bounding box)
	Row      int // Origin row (top edge of the bounding box)
}

// Spawn places a piece of kind k in its default rotation, centred
// horizontally in a board of the given width with its top on topRow.
func Spawn(k Kind, columns, topRow int) Piece {
	p := Piece{Kind: k, Row: topRow}
	p.Col = (columns - p.Width()) / 2
	if p.Col < 0 {
		p.Col = 0
	}
	return p
}

func (p Piece) shape() shape {
	states := rotations[p.Kind]
	if len(states) == 0 {
		return shape{}
	}
	return states[p.Rotation%len(states)]
}

// Cells returns the four absolute cells the piece occupies.
func (p Piece) Cells() []Cell {
	sh := p.shape()
	cells := make([]Cell, len(sh))
	for i, o := range sh {
		cells[i] = Cell{Col: p.Col + o.dc, Row: p.Row + o.dr}
	}
	return cells
}

// Width returns the bounding box width of the current rotation.
func (p Piece) Width() int {
	w := 0
	for _, o := range p.shape() {
		if o.dc+1 > w {
			w = o.dc + 1
		}
	}
	return w
}

// Height returns the bounding box height of the current rotation.
func (p Piece) Height() int {
	h := 0
	for _, o := range p.shape() {
		if -o.dr+1 > h {
			h = -o.dr + 1
		}
	}
	return h
}

// Moved returns a copy of p translated by (dc, dr).
func (p Piece) Moved(dc, dr int) Piece {
	p.Col += dc
	p.Row += dr
	return p
}

// Rotated returns a copy of p in its next rotation state.
func (p Piece) Rotated() Piece {
	if n := RotationCount(p.Kind); n > 0 {
		p.Rotation = (p.Rotation + 1) % n
	}
	return p
}

// Bounds returns the column and row extents of the occupied cells.
func (p Piece) Bounds() (minCol, maxCol, minRow, maxRow int) {
	cells := p.Cells()
	if len(cells) == 0 {
		return p.Col, p.Col, p.Row, p.Row
	}
	minCol, maxCol = cells[0].Col, cells[0].Col
	minRow, maxRow = cells[0].Row, cells[0].Row
	for _, c := range cells[1:] {
		minCol = min(minCol, c.Col)
		maxCol = max(maxCol, c.Col)
		minRow = min(minRow, c.Row)
		maxRow = max(maxRow, c.Row)
	}
	return minCol, maxCol, minRow, maxRow
}
