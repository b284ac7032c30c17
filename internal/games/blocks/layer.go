package blocks

import (
	"github.com/vovakirdan/blockfall/internal/board"
	"github.com/vovakirdan/blockfall/internal/piece"
)

// flashFrames is how long a cleared row stays highlighted.
const flashFrames = 12

type cellKey struct{ col, row int }

// layer is the presentation copy of the settled cells. It is driven only by
// board notifications, so row shifts show up after the board's shift delay.
type layer struct {
	board.NopObserver

	cells   map[cellKey]piece.Kind
	flashes map[int]int // row -> frames left
	next    piece.Kind
	saves   []board.Progress
}

func newLayer() *layer {
	return &layer{
		cells:   make(map[cellKey]piece.Kind),
		flashes: make(map[int]int),
	}
}

func (l *layer) OnCellSettled(col, row int, kind piece.Kind) {
	l.cells[cellKey{col, row}] = kind
}

func (l *layer) OnRowCleared(row int) {
	for k := range l.cells {
		if k.row == row {
			delete(l.cells, k)
		}
	}
	l.flashes[row] = flashFrames
}

// OnRowShifted moves a whole row. Shifts arrive lowest row first, so the
// target row has always been vacated.
func (l *layer) OnRowShifted(from, to int) {
	for k, kind := range l.cells {
		if k.row == from {
			delete(l.cells, k)
			l.cells[cellKey{k.col, to}] = kind
		}
	}
}

func (l *layer) OnNextPieceChanged(kind piece.Kind) {
	l.next = kind
}

func (l *layer) OnRequestSave(p board.Progress) {
	l.saves = append(l.saves, p)
}

// advance counts down row flashes by one frame.
func (l *layer) advance() {
	for row, left := range l.flashes {
		if left <= 1 {
			delete(l.flashes, row)
		} else {
			l.flashes[row] = left - 1
		}
	}
}

// drainSaves returns and forgets the pending save requests.
func (l *layer) drainSaves() []board.Progress {
	saves := l.saves
	l.saves = nil
	return saves
}

// reset drops every settled cell and flash. Pending saves are kept.
func (l *layer) reset() {
	clear(l.cells)
	clear(l.flashes)
}
