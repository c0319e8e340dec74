package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/diamond-dash/internal/core"
	"github.com/vovakirdan/diamond-dash/internal/games/dash"
	"github.com/vovakirdan/diamond-dash/internal/platform/tui"
	"github.com/vovakirdan/diamond-dash/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start a run of the specified mode (default: dash).

Modes:
  dash          - Reach 100 points to win
  dash_endless  - No win condition, play until you crash

Controls:
  Space/Up/W   - Start, then jump
  P            - Pause
  R            - New run (after the run ends)
  B/Esc        - Back (after the run ends or while paused)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  dash play
  dash play dash_endless
  dash play --seed 42
  dash play --config ./my-dash.toml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := dash.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		logger.Error("unknown mode", "mode", gameID)
		logger.Print("Run 'dash list' to see available modes.")
		os.Exit(1)
	}

	rewards, err := loadRewards()
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		logger.Fatal("cannot create game", "error", err)
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore()

	_, runErr := tui.Run(game, store, cfg,
		tui.WithLogger(sessionLogger()),
		tui.WithRewards(rewards),
	)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Fatal("run failed", "error", runErr)
	}
}
