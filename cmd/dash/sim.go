package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/diamond-dash/internal/bridge"
	"github.com/vovakirdan/diamond-dash/internal/config"
	"github.com/vovakirdan/diamond-dash/internal/games/dash"
	"github.com/vovakirdan/diamond-dash/internal/reward"
	"github.com/vovakirdan/diamond-dash/internal/storage"
)

var (
	flagSimRuns     int
	flagSimCodec    string
	flagSimRecord   bool
	flagSimEndless  bool
	flagSimMaxTicks int
	flagSimWidth    float64
	flagSimHeight   float64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run seeded games headless with the autopilot",
	Long: `Run games without a terminal UI. The autopilot plays each run, the
terminal event goes through the selected wire codec, and the score is
classified into a reward. Run i uses seed --seed + i.

Examples:
  dash sim
  dash sim --runs 50 --seed 7
  dash sim --codec msgpack --record
  dash sim --endless --max-ticks 100000`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of runs")
	simCmd.Flags().StringVar(&flagSimCodec, "codec", "json", "Terminal event codec: json or msgpack")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save every run to the ledger")
	simCmd.Flags().BoolVar(&flagSimEndless, "endless", false, "Disable the win condition")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 50000, "Abandon a run after this many ticks")
	simCmd.Flags().Float64Var(&flagSimWidth, "width", 480, "World width in pixels")
	simCmd.Flags().Float64Var(&flagSimHeight, "height", 640, "World height in pixels")
}

// simOutcome is the host-side view of one headless run.
type simOutcome struct {
	Seed      int64
	Score     int
	Won       bool
	Ticks     int
	Reward    reward.Reward
	Abandoned bool // Hit the tick limit before the terminal event
}

// headless plays runs with the autopilot and reports them over the bridge.
type headless struct {
	cfg      config.DashConfig
	width    float64
	height   float64
	maxTicks int
	codec    bridge.Codec
	inbox    *bridge.Inbox
	rewards  *reward.Classifier
	logger   *log.Logger
}

// play runs one seeded game to its terminal event or the tick limit.
func (h *headless) play(seed int64) simOutcome {
	sim := dash.NewSim(h.cfg, h.width, h.height, rand.New(rand.NewSource(seed)))
	outbox := bridge.NewOutbox(h.codec)
	sim.OnEnd(func(ev dash.TerminalEvent) {
		if err := outbox.Post(bridge.GameOver(ev.Score)); err != nil {
			h.logger.Error("could not post terminal event",
				"seed", seed,
				"codec", h.codec.Name(),
				"score", ev.Score,
				"error", err,
			)
		}
	})
	pilot := dash.NewAutopilot()

	for sim.Ticks() < h.maxTicks && sim.Phase() != dash.PhaseEnded {
		if pilot.ShouldActivate(sim) {
			sim.Activate()
		}
		sim.Tick(1)
	}

	out := simOutcome{Seed: seed, Score: sim.Score(), Ticks: sim.Ticks(), Abandoned: true}
	for _, payload := range outbox.Drain() {
		msg, ok := h.inbox.Receive(payload)
		if !ok {
			continue
		}
		ev, _ := sim.Event()
		out.Score = msg.Score
		out.Won = ev.Won
		out.Abandoned = false
	}
	out.Reward = h.rewards.Classify(out.Score)
	return out
}

// validateWorld rejects world sizes a run cannot be played in.
func validateWorld(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("world size must be positive, got %gx%g", width, height)
	}
	return nil
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagSimRuns < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}
	if err := validateWorld(flagSimWidth, flagSimHeight); err != nil {
		return err
	}

	codec, err := bridge.CodecByName(flagSimCodec)
	if err != nil {
		return err
	}

	cfg, err := config.LoadDash(flagConfig)
	if err != nil {
		return err
	}
	gameID := dash.GameID
	if flagSimEndless {
		cfg.Gameplay.WinScore = 0
		gameID = dash.EndlessGameID
	}

	var store *storage.Store
	if flagSimRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	h := &headless{
		cfg:      cfg,
		width:    flagSimWidth,
		height:   flagSimHeight,
		maxTicks: flagSimMaxTicks,
		codec:    codec,
		inbox:    bridge.NewInbox(codec, logger),
		rewards:  reward.NewClassifier(cfg.Rewards),
		logger:   logger,
	}

	var total, best, wins int
	for i := range flagSimRuns {
		out := h.play(seed + int64(i))

		logger.Debug("run finished",
			"seed", out.Seed,
			"score", out.Score,
			"won", out.Won,
			"ticks", out.Ticks,
			"reward", out.Reward.Label,
		)
		if out.Abandoned {
			logger.Warn("tick limit reached", "seed", out.Seed, "score", out.Score)
		}

		total += out.Score
		best = max(best, out.Score)
		if out.Won {
			wins++
		}

		if store != nil {
			_, err := store.SaveRun(storage.RunRecord{
				GameID: gameID,
				Score:  out.Score,
				Won:    out.Won,
				Reward: out.Reward.Label,
				Ticks:  out.Ticks,
				Seed:   out.Seed,
			})
			if err != nil {
				logger.Warn("could not save run", "seed", out.Seed, "error", err)
			}
		}
	}

	logger.Info("simulation complete",
		"runs", flagSimRuns,
		"codec", codec.Name(),
		"wins", wins,
		"best", best,
		"avg", fmt.Sprintf("%.1f", float64(total)/float64(flagSimRuns)),
	)
	return nil
}
