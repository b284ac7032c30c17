package blocks

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/board"
	"github.com/vovakirdan/blockfall/internal/piece"
)

// logObserver writes board notifications to the game logger.
type logObserver struct {
	board.NopObserver
	logger *log.Logger
}

func (o logObserver) OnPieceSpawned(kind piece.Kind) {
	o.logger.Debug("piece spawned", "kind", kind)
}

func (o logObserver) OnRowCleared(row int) {
	o.logger.Debug("row cleared", "row", row)
}

func (o logObserver) OnLevelChanged(level int) {
	o.logger.Debug("level changed", "level", level)
}

func (o logObserver) OnRequestSave(p board.Progress) {
	o.logger.Debug("save requested", "run", p.Run, "score", p.Score, "level", p.Level, "lines", p.Lines)
}
