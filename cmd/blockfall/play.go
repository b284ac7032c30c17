package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/savegame"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing. The mode defaults to "blocks".

Controls:
  Left/Right, h/l   - Shift the piece
  Up, k, x          - Rotate
  Down, j           - Step down
  Space             - Fast fall
  Enter             - Start
  P/Esc             - Pause
  R                 - Restart
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a text screenshot

Difficulty options:
  easy   - Slower descent and longer spawn delay
  normal - Config as written
  hard   - Faster descent, starts at level 3
  fixed  - Descent speed never changes

Examples:
  blockfall play
  blockfall play blocks_bag
  blockfall play --difficulty hard
  blockfall play --config ./my-blocks.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := "blocks"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'blockfall list' to see available modes", gameID)
	}

	// The TUI owns the terminal, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	blocks.SetConfigPath(flagConfig)
	blocks.SetDifficultyPreset(flagDifficulty)
	blocks.SetLogger(logger)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Persistence is optional; the game still works without it.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	records, err := savegame.Open(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress record: %v\n", err)
		records = nil
	}

	persister := tui.NewPersister(store, records, logger, game.ID())
	defer persister.Close()

	logger.Info("starting", "mode", gameID, "width", width, "height", height, "fps", flagFPS)
	if err := tui.Run(game, persister, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
