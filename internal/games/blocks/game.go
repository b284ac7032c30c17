// Package blocks is the falling-block game as the platform sees it: it maps
// input actions onto board commands, keeps the presentation copy of the
// settled cells and renders everything into a core.Screen.
package blocks

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/board"
	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/geometry"
	"github.com/vovakirdan/blockfall/internal/piece"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Mode selects the piece randomizer.
type Mode string

const (
	ModeUniform Mode = "uniform"
	ModeBag     Mode = "bag"
)

const (
	hudHeight    = 2 // Status line and separator
	footerHeight = 1 // Message line under the board
)

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the config file path used by the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by the next Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger sets the logger for games created from now on. Nil discards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the falling-block game.
type Game struct {
	mode   Mode
	tick   uint64
	cfg    config.BlocksConfig
	board  *board.Board
	layer  *layer
	geom   geometry.Geometry
	logger *log.Logger

	// Screen dimensions and the board region inside them
	screenW int
	screenH int
	regionW int
	regionH int

	tooSmall bool
}

// New creates a game with uniformly random pieces.
func New() *Game {
	return &Game{mode: ModeUniform}
}

// NewBag creates a game with the 7-bag randomizer.
func NewBag() *Game {
	return &Game{mode: ModeBag}
}

func init() {
	registry.Register("blocks", func() registry.Game {
		return New()
	})
	registry.Register("blocks_bag", func() registry.Game {
		return NewBag()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeBag {
		return "blocks_bag"
	}
	return "blocks"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeBag {
		return "Blockfall (7-bag)"
	}
	return "Blockfall"
}

// Pieces describes how the mode deals pieces.
func (g *Game) Pieces() string {
	if g.mode == ModeBag {
		return "7-bag, every kind once per seven"
	}
	return "uniform random"
}

// Reset builds a fresh board for the given screen. The run starts on Confirm.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.logger = logger
	g.cfg = g.loadConfig()
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH

	// A block is two characters wide so cells look square.
	g.regionW = rc.ScreenW / 2
	g.regionH = rc.ScreenH - hudHeight - footerHeight
	g.geom = geometry.New(
		geometry.Region{W: g.regionW, H: g.regionH},
		geometry.Layout{
			Columns:        g.cfg.Board.Columns,
			WidthFraction:  g.cfg.Board.WidthFraction,
			HeightFraction: g.cfg.Board.HeightFraction,
			MinRows:        g.cfg.Board.MinRows,
		},
	)
	g.tooSmall = !g.fits()

	rng := rand.New(rand.NewSource(rc.Seed))
	var rnd piece.Randomizer
	if g.cfg.Randomizer == config.RandomizerBag {
		rnd = piece.NewBag(rng)
	} else {
		rnd = piece.NewUniform(rng)
	}

	g.layer = newLayer()
	obs := board.Observers{g.layer, logObserver{logger: g.logger}}
	g.board = board.New(g.cfg, g.geom, rnd, obs, board.Options{Logger: g.logger})
}

// Resize adapts to a new screen without touching the board. The layout stays
// as built; while it does not fit, the game shows the too-small message and
// ignores input until the screen grows again.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = !g.fits()
}

// fits reports whether the board and its HUD fit on the current screen.
func (g *Game) fits() bool {
	if g.geom.Width() > g.regionW || g.geom.Height() > g.regionH {
		return false
	}
	return g.regionW*2 <= g.screenW && g.regionH+hudHeight+footerHeight <= g.screenH
}

// loadConfig resolves the configuration, falling back to defaults on error.
func (g *Game) loadConfig() config.BlocksConfig {
	cfg, err := config.LoadBlocks(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultBlocksConfig()
	}
	if difficultyPreset != "" {
		preset, err := config.ParsePreset(difficultyPreset)
		if err != nil {
			g.logger.Warn("ignoring difficulty", "err", err)
		} else {
			config.ApplyBlocksPreset(&cfg, preset)
		}
	}
	if g.mode == ModeBag {
		cfg.Randomizer = config.RandomizerBag
	}
	return cfg
}

// Step advances the game by one frame.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	b := g.board
	if input.Has(core.ActionRestart) {
		b.Reset()
		g.layer.reset()
		b.Start()
	}
	if input.Has(core.ActionConfirm) && b.State() == board.NotStarted {
		b.Start()
	}
	if input.Has(core.ActionPause) {
		switch b.State() {
		case board.InPlay:
			b.Pause()
		case board.Paused:
			b.Resume()
		}
	}

	g.processInput(input)
	b.Advance()
	if b.State() != board.Paused {
		g.layer.advance()
	}

	return core.StepResult{State: g.State(), Saves: g.pendingSaves()}
}

// processInput forwards movement actions. The board ignores them when no
// piece is active.
func (g *Game) processInput(input core.InputFrame) {
	b := g.board
	if input.Has(core.ActionLeft) {
		b.Move(board.Left)
	}
	if input.Has(core.ActionRight) {
		b.Move(board.Right)
	}
	if input.Has(core.ActionRotate) {
		b.Rotate()
	}
	if input.Has(core.ActionDown) {
		b.Move(board.Down)
	}
	if input.Has(core.ActionDrop) {
		b.Move(board.Drop)
	}
}

func (g *Game) pendingSaves() []core.Progress {
	saves := g.layer.drainSaves()
	if len(saves) == 0 {
		return nil
	}
	out := make([]core.Progress, len(saves))
	for i, p := range saves {
		out[i] = core.Progress{Run: p.Run, Score: p.Score, Level: p.Level, Lines: p.Lines}
	}
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{}
	}
	st := g.board.State()
	return core.GameState{
		Score:    g.board.Score(),
		Level:    g.board.Level(),
		Lines:    g.board.Lines(),
		Started:  st != board.NotStarted,
		GameOver: st == board.GameOver,
		Paused:   st == board.Paused,
	}
}

// Progress returns the live run as a save snapshot.
func (g *Game) Progress() core.Progress {
	if g.board == nil {
		return core.Progress{}
	}
	p := g.board.Progress()
	return core.Progress{Run: p.Run, Score: p.Score, Level: p.Level, Lines: p.Lines}
}
