package blocks

import (
	"github.com/vovakirdan/blockfall/internal/occupancy"
	"github.com/vovakirdan/blockfall/internal/piece"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Mode     string
	State    string
	Score    int
	Level    int
	Lines    int
	Interval int
	Next     piece.Kind
	Active   piece.Piece
	HasPiece bool
	Settled  []occupancy.Cell // Ordered by row then column
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.board == nil {
		return Snapshot{Mode: string(g.mode)}
	}
	active, ok := g.board.Active()
	return Snapshot{
		Tick:     g.tick,
		Mode:     string(g.mode),
		State:    g.board.State().String(),
		Score:    g.board.Score(),
		Level:    g.board.Level(),
		Lines:    g.board.Lines(),
		Interval: g.board.Interval(),
		Next:     g.board.Next(),
		Active:   active,
		HasPiece: ok,
		Settled:  g.board.Occupancy().Cells(),
	}
}
