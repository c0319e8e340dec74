package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/diamond-dash/internal/games/dash"
	"github.com/vovakirdan/diamond-dash/internal/platform/tui"
	"github.com/vovakirdan/diamond-dash/internal/registry"
	"github.com/vovakirdan/diamond-dash/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresInteractive bool
	flagScoresClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs for a mode",
	Long: `Display the best runs and totals for the specified mode (default: dash).

Examples:
  dash scores
  dash scores dash_endless --limit 20
  dash scores --interactive
  dash scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Open the scoreboard screen")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := dash.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		logger.Error("unknown mode", "mode", gameID)
		logger.Print("Run 'dash list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		logger.Fatal("cannot create game", "error", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("cannot open run ledger", "path", flagDBPath, "error", err)
	}
	defer store.Close()

	if flagScoresInteractive {
		width, height := terminalSize()
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			logger.Error("scoreboard failed", "error", err)
		}
		return
	}

	if flagScoresClear {
		if err := store.ClearRuns(gameID); err != nil {
			logger.Error("cannot clear runs", "mode", gameID, "error", err)
			return
		}
		logger.Info("runs cleared", "mode", gameID)
		return
	}

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		logger.Error("cannot retrieve runs", "error", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dash play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-28s  %s\n", "Rank", "Score", "Result", "Reward", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-28s  %s\n", "----", "-----", "------", "------", "----")

	for i, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-6d  %-6s  %-28s  %s\n",
			i+1, r.Score, result, r.Reward, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Printf("Runs: %d  Wins: %d  Best: %d  Average: %.1f\n",
			stats.GamesCount, stats.Wins, stats.HighScore, stats.AvgScore)
	}
}
