package dash

import (
	"github.com/vovakirdan/diamond-dash/internal/config"
)

// Phase is the lifecycle stage of a run.
type Phase int

const (
	PhaseReady   Phase = iota // Waiting for the first activation
	PhaseRunning              // Simulation advancing every tick
	PhaseEnded                // Terminal; only external reinitialization starts a new run
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "Ready"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// TerminalEvent is emitted exactly once, when a run ends.
type TerminalEvent struct {
	Score int
	Won   bool
}

// TickResult reports what a call to Tick did.
type TickResult struct {
	Phase Phase
	Steps int            // Simulation steps actually taken
	Event *TerminalEvent // Set only by the call during which the run ended
}

// Sim is one Diamond Dash run. It owns all mutable game state and is driven
// by a single host goroutine through Activate, Tick and Resize.
type Sim struct {
	cfg        config.DashConfig
	world      World
	player     PlayerBody
	field      *ObstacleField
	difficulty *DifficultyController
	score      ScoreTracker
	phase      Phase
	ticks      int
	event      *TerminalEvent
	listener   func(TerminalEvent)
}

// NewSim creates a run in the Ready phase for a world of the given size.
// cfg must be valid (see config.DashConfig.Validate) and both sizes positive.
func NewSim(cfg config.DashConfig, width, height float64, rng Rand) *Sim {
	s := &Sim{
		cfg:        cfg,
		world:      World{Width: width, Height: height},
		field:      NewObstacleField(rng, cfg.Obstacles.MarginFraction),
		difficulty: NewDifficultyController(cfg.Tiers),
		player: PlayerBody{
			Width:  cfg.Player.Width,
			Height: cfg.Player.Height,
		},
	}
	s.deriveGeometry()
	s.prepareRun()
	return s
}

// OnEnd registers a listener for the terminal event.
func (s *Sim) OnEnd(fn func(TerminalEvent)) {
	s.listener = fn
}

// Activate handles the single input signal: it starts the run from Ready and
// jumps while Running. Once the run has ended it does nothing.
func (s *Sim) Activate() {
	switch s.phase {
	case PhaseReady:
		s.prepareRun()
		s.phase = PhaseRunning
	case PhaseRunning:
		s.player.Jump()
	case PhaseEnded:
		// Game over means game over.
	}
}

// Tick advances the run by up to n steps, stopping early if it ends.
// n below 1 is treated as 1. Ticks outside the Running phase are no-ops.
func (s *Sim) Tick(n int) TickResult {
	if n < 1 {
		n = 1
	}

	res := TickResult{}
	for i := 0; i < n && s.phase == PhaseRunning; i++ {
		s.step()
		res.Steps++
		if s.phase == PhaseEnded {
			res.Event = s.event
		}
	}
	res.Phase = s.phase
	return res
}

// Resize applies new world bounds between ticks. The player's x position and
// the obstacle width are re-derived; obstacle positions and gaps are kept.
func (s *Sim) Resize(width, height float64) {
	w := World{Width: width, Height: height}
	if !w.valid() {
		return
	}
	s.world = w
	s.deriveGeometry()
}

// step runs one simulation tick. Order: physics, motion, scoring (with tier
// and win checks per point), cleanup, spawning, collision.
func (s *Sim) step() {
	s.ticks++

	s.player.Step()
	s.field.Advance()

	for i := range s.field.obstacles {
		o := &s.field.obstacles[i]
		if o.Passed || o.X+s.field.Width >= s.player.X {
			continue
		}
		o.Passed = true
		score := s.score.Increment()
		s.difficulty.Update(score, &s.player, s.field)

		if win := s.cfg.Gameplay.WinScore; win > 0 && score >= win {
			s.end(true)
			return
		}
	}

	s.field.Compact()
	s.field.TickSpawn(s.world)

	if Collides(s.player, s.world, s.field) {
		s.end(false)
	}
}

// end moves to the terminal phase and emits the event once.
func (s *Sim) end(won bool) {
	if s.phase == PhaseEnded {
		return
	}
	s.phase = PhaseEnded
	ev := TerminalEvent{Score: s.score.Value(), Won: won}
	s.event = &ev
	if s.listener != nil {
		s.listener(ev)
	}
}

// prepareRun puts every entity into its start-of-run state.
func (s *Sim) prepareRun() {
	s.player.Y = s.world.Height / 2
	s.player.Velocity = 0
	s.field.Reset()
	s.score.Reset()
	s.difficulty.Reset(&s.player, s.field)
	s.ticks = 0
	s.event = nil
}

// deriveGeometry recomputes everything that scales with the world size.
func (s *Sim) deriveGeometry() {
	s.player.X = s.world.Width * s.cfg.Player.XFraction
	s.field.Width = obstacleWidth(s.world.Width, s.cfg.Obstacles.MinWidth, s.cfg.Obstacles.WidthFraction)
}

// Phase returns the current lifecycle phase.
func (s *Sim) Phase() Phase {
	return s.phase
}

// Score returns the current score.
func (s *Sim) Score() int {
	return s.score.Value()
}

// Ticks returns the number of steps taken in the current run.
func (s *Sim) Ticks() int {
	return s.ticks
}

// World returns the current playfield bounds.
func (s *Sim) World() World {
	return s.world
}

// Player returns a copy of the player state.
func (s *Sim) Player() PlayerBody {
	return s.player
}

// Obstacles returns the live obstacles. Callers must not modify them.
func (s *Sim) Obstacles() []Obstacle {
	return s.field.Obstacles()
}

// ObstacleWidth returns the current obstacle width.
func (s *Sim) ObstacleWidth() float64 {
	return s.field.Width
}

// Tier returns the active difficulty tier.
func (s *Sim) Tier() Tier {
	return s.difficulty.Current()
}

// TierName returns the configured name of the active tier.
func (s *Sim) TierName() string {
	return s.difficulty.Name()
}

// Params returns the parameters of the active tier.
func (s *Sim) Params() config.TierConfig {
	return s.difficulty.Params()
}

// Event returns the terminal event once the run has ended.
func (s *Sim) Event() (TerminalEvent, bool) {
	if s.event == nil {
		return TerminalEvent{}, false
	}
	return *s.event, true
}
