package board

import "github.com/vovakirdan/blockfall/internal/piece"

// Progress is the snapshot handed to whoever persists results.
type Progress struct {
	Run   uint64 // Incremented on every Start
	Score int
	Level int
	Lines int
}

// Observer receives board notifications. Calls are made synchronously from
// the goroutine driving the board.
type Observer interface {
	OnGameOver()
	OnRequestSave(p Progress)
	OnRequestPause()
	OnScoreChanged(score int)
	OnLevelChanged(level int)
	OnNextPieceChanged(kind piece.Kind)
	OnRowCleared(row int)
	OnCellSettled(col, row int, kind piece.Kind)
	OnPieceSpawned(kind piece.Kind)
	// OnRowShifted is delayed by the configured shift delay after the
	// clear that caused it.
	OnRowShifted(from, to int)
}

// NopObserver ignores every notification. Embed it to implement only the
// methods you need.
type NopObserver struct{}

func (NopObserver) OnGameOver() {}
func (NopObserver) OnRequestSave(Progress) {}
func (NopObserver) OnRequestPause() {}
func (NopObserver) OnScoreChanged(int) {}
func (NopObserver) OnLevelChanged(int) {}
func (NopObserver) OnNextPieceChanged(piece.Kind) {}
func (NopObserver) OnRowCleared(int) {}
func (NopObserver) OnCellSettled(int, int, piece.Kind) {}
func (NopObserver) OnPieceSpawned(piece.Kind) {}
func (NopObserver) OnRowShifted(int, int) {}

// Observers fans every notification out to each member in order.
type Observers []Observer

func (o Observers) OnGameOver() {
	for _, obs := range o {
		obs.OnGameOver()
	}
}

func (o Observers) OnRequestSave(p Progress) {
	for _, obs := range o {
		obs.OnRequestSave(p)
	}
}

func (o Observers) OnRequestPause() {
	for _, obs := range o {
		obs.OnRequestPause()
	}
}

func (o Observers) OnScoreChanged(score int) {
	for _, obs := range o {
		obs.OnScoreChanged(score)
	}
}

func (o Observers) OnLevelChanged(level int) {
	for _, obs := range o {
		obs.OnLevelChanged(level)
	}
}

func (o Observers) OnNextPieceChanged(kind piece.Kind) {
	for _, obs := range o {
		obs.OnNextPieceChanged(kind)
	}
}

func (o Observers) OnRowCleared(row int) {
	for _, obs := range o {
		obs.OnRowCleared(row)
	}
}

func (o Observers) OnCellSettled(col, row int, kind piece.Kind) {
	for _, obs := range o {
		obs.OnCellSettled(col, row, kind)
	}
}

func (o Observers) OnPieceSpawned(kind piece.Kind) {
	for _, obs := range o {
		obs.OnPieceSpawned(kind)
	}
}

func (o Observers) OnRowShifted(from, to int) {
	for _, obs := range o {
		obs.OnRowShifted(from, to)
	}
}
