package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/savegame"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// Persister writes finished runs to the leaderboard and the progress record.
// Either store may be nil; a nil Persister drops everything.
type Persister struct {
	scores  *storage.Store
	records *savegame.Store
	logger  *log.Logger
	gameID  string
	lastRun uint64
}

// NewPersister creates a persister for the given game.
func NewPersister(scores *storage.Store, records *savegame.Store, logger *log.Logger, gameID string) *Persister {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Persister{
		scores:  scores,
		records: records,
		logger:  logger,
		gameID:  gameID,
	}
}

// Save persists a progress snapshot once per run.
// Run 0 means nothing was played and is ignored.
// Returns true if the snapshot was accepted.
func (p *Persister) Save(pr core.Progress) bool {
	if p == nil || pr.Run == 0 || pr.Run == p.lastRun {
		return false
	}
	p.lastRun = pr.Run

	if p.records != nil {
		if _, err := p.records.Record(pr); err != nil {
			p.logger.Warn("could not update progress record", "error", err)
		}
	}
	if p.scores != nil && pr.Score > 0 {
		if _, err := p.scores.SaveScore(p.gameID, pr.Score, pr.Level, pr.Lines); err != nil {
			p.logger.Warn("could not save score", "error", err)
		}
	}
	p.logger.Debug("run saved", "game", p.gameID, "run", pr.Run, "score", pr.Score)
	return true
}

// Forget clears the remembered run, used after the game is rebuilt
// and run numbers start over.
func (p *Persister) Forget() {
	if p != nil {
		p.lastRun = 0
	}
}

// Close releases the underlying leaderboard database.
func (p *Persister) Close() error {
	if p == nil || p.scores == nil {
		return nil
	}
	return p.scores.Close()
}
