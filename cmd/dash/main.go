// dash is Diamond Dash, an endless runner for the terminal.
//
// Usage:
//
//	dash                     - Start menu to pick a mode interactively
//	dash play [mode]         - Play a mode directly (default: dash)
//	dash list                - List available modes
//	dash sim                 - Run seeded games headless with the autopilot
//	dash scores [mode]       - Show the best runs for a mode
//	dash serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible runs
//	--db <path>        - Set run ledger path (default: ~/.dash/runs.db)
//	--config <path>    - Use a custom YAML or TOML config
//	--log-file <path>  - Write logs to a file
//
// DASH_DB, DASH_FPS and DASH_CONFIG override the defaults; a .env file in the
// working directory is loaded first.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/diamond-dash/internal/config"
	"github.com/vovakirdan/diamond-dash/internal/games/dash"
	"github.com/vovakirdan/diamond-dash/internal/reward"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
)

// logger is the CLI logger. It writes to stderr, or to --log-file when set.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "dash",
})

// logCloser closes the log file opened for --log-file.
var logCloser io.Closer

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dash",
	Short: "Diamond Dash - guide a diamond through the columns",
	Long: `Diamond Dash is a terminal endless runner. Tap to flap the diamond
through the gaps between scrolling columns. The game gets harder at 7
points (Normal) and again at 37 (Hard), and a run is won at 100.

Available commands:
  play     - Play a mode directly
  list     - Show all available modes
  sim      - Run seeded games headless with the autopilot
  scores   - View the best runs
  serve    - Start SSH server for remote play

Examples:
  dash
  dash play
  dash play dash_endless --fps 30
  dash sim --runs 20 --seed 7 --codec msgpack
  dash serve --ssh :2222
  dash scores`,
	PersistentPreRunE: setup,
	Run:               runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dash/runs.db", "Path to run ledger database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup loads .env, applies DASH_* overrides to flags left at their defaults
// and opens the log file.
func setup(cmd *cobra.Command, _ []string) error {
	// A missing .env is normal
	_ = godotenv.Load()

	flags := cmd.Flags()
	if v, ok := os.LookupEnv("DASH_DB"); ok && !flags.Changed("db") {
		flagDBPath = v
	}
	if v, ok := os.LookupEnv("DASH_CONFIG"); ok && !flags.Changed("config") {
		flagConfig = v
	}
	if v, ok := os.LookupEnv("DASH_FPS"); ok && !flags.Changed("fps") {
		fps, err := strconv.Atoi(v)
		if err != nil || fps <= 0 {
			return fmt.Errorf("invalid DASH_FPS %q", v)
		}
		flagFPS = fps
	}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logCloser = f
		logger.SetOutput(f)
	}

	dash.SetConfigPath(flagConfig)
	return nil
}

// sessionLogger returns the logger for full-screen sessions. Logging to
// stderr would draw over the alt screen, so it is only set with --log-file.
func sessionLogger() *log.Logger {
	if flagLogFile == "" {
		return nil
	}
	return logger
}

// loadRewards returns the reward breakpoints from the active config.
func loadRewards() (*reward.Classifier, error) {
	cfg, err := config.LoadDash(flagConfig)
	if err != nil {
		return nil, err
	}
	return reward.NewClassifier(cfg.Rewards), nil
}
