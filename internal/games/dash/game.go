// Package dash implements Diamond Dash, an endless runner where a diamond
// flaps through gaps in scrolling columns. Difficulty steps up at fixed score
// thresholds and the run is won at the configured win score.
package dash

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/diamond-dash/internal/bridge"
	"github.com/vovakirdan/diamond-dash/internal/config"
	"github.com/vovakirdan/diamond-dash/internal/core"
	"github.com/vovakirdan/diamond-dash/internal/registry"
)

// Registry IDs.
const (
	GameID        = "dash"
	EndlessGameID = "dash_endless"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path used by subsequent Resets.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts a Sim to the platform's registry.Game interface.
// Screen cells are mapped to world pixels using the display config.
type Game struct {
	id      string
	title   string
	endless bool

	cfg     config.DashConfig
	runtime core.RuntimeConfig
	sim     *Sim
	outbox  *bridge.Outbox
	codec   bridge.Codec
	logger  *log.Logger
}

// New creates a Diamond Dash game that is won at the configured win score.
func New() *Game {
	return &Game{id: GameID, title: "Diamond Dash", codec: bridge.JSONCodec{}, logger: log.New(io.Discard)}
}

// NewEndless creates a variant with the win condition disabled.
func NewEndless() *Game {
	return &Game{id: EndlessGameID, title: "Diamond Dash (Endless)", endless: true, codec: bridge.JSONCodec{}, logger: log.New(io.Discard)}
}

// NewWithConfig creates a game with an explicit configuration instead of
// loading one on Reset.
func NewWithConfig(cfg config.DashConfig) *Game {
	g := New()
	g.cfg = cfg
	return g
}

// SetCodec selects the wire codec for terminal messages. Takes effect on the next Reset.
func (g *Game) SetCodec(c bridge.Codec) {
	g.codec = c
}

// SetLogger sets the host logger that reports terminal events the codec could not encode.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset builds a fresh run in the Ready phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.cfg.Tiers == nil {
		cfg, err := config.LoadDash(configPath)
		if err != nil {
			cfg = config.DefaultDashConfig()
		}
		g.cfg = cfg
	}
	if g.endless {
		g.cfg.Gameplay.WinScore = 0
	}

	w, h := g.worldSize(runtime.ScreenW, runtime.ScreenH)
	g.sim = NewSim(g.cfg, w, h, rand.New(rand.NewSource(runtime.Seed)))
	g.outbox = bridge.NewOutbox(g.codec)
	g.sim.OnEnd(g.postTerminal)
}

// postTerminal forwards the terminal event to the host over the bridge.
func (g *Game) postTerminal(ev TerminalEvent) {
	if err := g.outbox.Post(bridge.GameOver(ev.Score)); err != nil {
		g.logger.Error("could not post terminal event",
			"game", g.id,
			"codec", g.codec.Name(),
			"score", ev.Score,
			"error", err,
		)
	}
}

// Sim exposes the underlying simulation.
func (g *Game) Sim() *Sim {
	return g.sim
}

// Config returns the configuration in use.
func (g *Game) Config() config.DashConfig {
	return g.cfg
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionActivate) {
		g.sim.Activate()
	}
	res := g.sim.Tick(1)
	return core.StepResult{State: g.State(), Ended: res.Event != nil}
}

// Resize maps the new screen size to world bounds and applies it to the run.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	w, h := g.worldSize(screenW, screenH)
	g.sim.Resize(w, h)
}

// TakeMessages returns encoded terminal messages posted since the last call.
func (g *Game) TakeMessages() [][]byte {
	if g.outbox == nil {
		return nil
	}
	return g.outbox.Drain()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	ev, ended := g.sim.Event()
	return core.GameState{
		Score:    g.sim.Score(),
		Started:  g.sim.Phase() != PhaseReady,
		GameOver: ended,
		Won:      ended && ev.Won,
		Stage:    g.sim.TierName(),
	}
}

// worldSize converts terminal cells to world pixels.
func (g *Game) worldSize(screenW, screenH int) (float64, float64) {
	cw, ch := g.cfg.Display.CellWidth, g.cfg.Display.CellHeight
	if cw <= 0 || ch <= 0 {
		cw, ch = 1, 1
	}
	return float64(core.Max(screenW, 1)) * cw, float64(core.Max(screenH, 1)) * ch
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(EndlessGameID, func() registry.Game {
		return NewEndless()
	})
}
