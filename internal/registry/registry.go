// Package registry maps mode IDs such as "blocks" and "blocks_bag" to the
// games that implement them. Modes add themselves from init, so the CLI and
// the SSH server pick a mode by name without importing it directly.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is one playable Blockfall mode driven by the platform loop.
// Implementations never touch the terminal; the platform owns keys,
// ticks, drawing and score storage.
type Game interface {
	// ID names the mode on the command line and in the scores table.
	ID() string

	// Title is the name shown in menus and score headers.
	Title() string

	// Reset builds a fresh board sized to the screen in cfg.
	// It runs on start and on every restart after game over.
	Reset(cfg core.RuntimeConfig)

	// Step runs one fixed tick with the actions pressed during it.
	// The result carries the state after the tick and the finished runs
	// the platform should store.
	Step(in core.InputFrame) core.StepResult

	// Render draws the board, HUD and overlays into a cleared screen.
	Render(dst *core.Screen)

	// State reports score, level and run status.
	State() core.GameState
}

// Describer is implemented by modes that can say how they deal pieces.
type Describer interface {
	Pieces() string
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID     string
	Title  string
	Pieces string // Empty when the mode does not say
}

// Factory builds a new game for the mode it is registered under.
type Factory func() Game

type mode struct {
	factory Factory
	info    GameInfo
}

var (
	mu    sync.RWMutex
	modes = make(map[string]mode)
)

// Register adds a mode. Registering the same ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := modes[id]; dup {
		panic(fmt.Sprintf("registry: mode %q registered twice", id))
	}

	// A throwaway instance supplies the display metadata.
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Pieces = d.Pieces()
	}
	modes[id] = mode{factory: f, info: info}
}

// List returns every registered mode ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(modes))
	for _, m := range modes {
		out = append(out, m.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Info looks up one mode.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	return m.info, ok
}

// Create builds a new game for the mode.
func Create(id string) (Game, error) {
	mu.RLock()
	m, ok := modes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return m.factory(), nil
}

// Exists reports whether a mode is registered under id.
func Exists(id string) bool {
	_, ok := Info(id)
	return ok
}
