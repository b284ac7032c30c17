package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/savegame"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores for a game mode (default "blocks"),
followed by the local progress record.

Examples:
  blockfall scores
  blockfall scores blocks_bag --limit 20
  blockfall scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := "blocks"
	if len(args) == 1 {
		gameID = args[0]
	}

	info, ok := registry.Info(gameID)
	if !ok {
		return fmt.Errorf("unknown mode %q, run 'blockfall list' to see available modes", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Scores for %s cleared.\n", info.Title)
		return nil
	}

	entries, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Print(tui.RenderScoreTable("High Scores - "+info.Title, entries))

	if len(entries) > 0 {
		stats, err := store.GetGameStats(gameID)
		if err == nil {
			fmt.Printf("\nGames: %d  Best: %d  Best level: %d  Lines: %d  Avg: %.0f\n",
				stats.GamesCount, stats.HighScore, stats.BestLevel, stats.TotalLines, stats.AvgScore)
		}
	} else {
		fmt.Printf("\nPlay 'blockfall play %s' to set the first high score!\n", gameID)
	}

	records, err := savegame.Open(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress record: %v\n", err)
		return nil
	}
	record, err := records.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read progress record: %v\n", err)
		return nil
	}
	fmt.Println()
	fmt.Print(tui.RenderRecord(record))
	return nil
}
