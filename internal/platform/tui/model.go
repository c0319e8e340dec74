package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/diamond-dash/internal/bridge"
	"github.com/vovakirdan/diamond-dash/internal/core"
	"github.com/vovakirdan/diamond-dash/internal/registry"
	"github.com/vovakirdan/diamond-dash/internal/reward"
	"github.com/vovakirdan/diamond-dash/internal/storage"
)

// statusBarHeight is the number of terminal rows reserved below the playfield.
const statusBarHeight = 1

// RunResult is what the host knows about a finished run.
type RunResult struct {
	Score   int
	Won     bool
	Reward  reward.Reward
	Best    int  // Best score in the ledger before this run
	NewBest bool // Whether this run beat it
	Ticks   int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for run events and dropped messages.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithCodec sets the codec the game uses for terminal messages.
func WithCodec(c bridge.Codec) Option {
	return func(m *Model) {
		if c != nil {
			m.codec = c
		}
	}
}

// WithRewards sets the reward breakpoints shown on the result screen.
func WithRewards(c *reward.Classifier) Option {
	return func(m *Model) {
		if c != nil {
			m.rewards = c
		}
	}
}

// Model is the Bubble Tea model hosting a single game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	codec      bridge.Codec
	inbox      *bridge.Inbox
	rewards    *reward.Classifier
	logger     *log.Logger
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	result     *RunResult
	runTicks   int
	width      int // Terminal width
	height     int // Terminal height, including the status bar
	paused     bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg carries the full terminal size; one row is kept for the status bar.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	width, height := cfg.ScreenW, cfg.ScreenH
	cfg.ScreenW, cfg.ScreenH = playfieldSize(width, height)

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		codec:      bridge.JSONCodec{},
		rewards:    reward.Default(),
		logger:     log.New(io.Discard),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		width:      width,
		height:     height,
	}
	for _, opt := range opts {
		opt(&m)
	}

	if cs, ok := game.(interface{ SetCodec(bridge.Codec) }); ok {
		cs.SetCodec(m.codec)
	}
	if ls, ok := game.(interface{ SetLogger(*log.Logger) }); ok {
		ls.SetLogger(m.logger)
	}
	m.inbox = bridge.NewInbox(m.codec, m.logger)
	m.help.Width = width

	return m
}

// playfieldSize returns the screen area left for the game.
func playfieldSize(width, height int) (int, int) {
	return core.Max(width, 1), core.Max(height-statusBarHeight, 1)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()
	if key.Matches(msg, keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionActivate:
		if !m.paused && m.result == nil {
			m.inputFrame.Set(core.ActionActivate)
		}
	case core.ActionPause:
		if m.result == nil && m.gameState.Started {
			m.paused = !m.paused
		}
	case core.ActionRestart:
		if m.result != nil {
			m.restart()
		}
	case core.ActionBack:
		if m.result != nil || m.paused || !m.gameState.Started {
			m.backToMenu = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize applies the new terminal size to the screen and the running game.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	w, h := playfieldSize(msg.Width, msg.Height)
	m.config.ScreenW = w
	m.config.ScreenH = h
	m.screen.Resize(w, h)
	m.game.Resize(w, h)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused || m.result != nil {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if m.gameState.Started {
		m.runTicks++
	}
	m.inputFrame.Clear()

	for _, payload := range m.game.TakeMessages() {
		msg, ok := m.inbox.Receive(payload)
		if !ok {
			continue
		}
		m.finishRun(msg.Score)
	}

	return m, tickCmd(m.config.TickRate)
}

// finishRun classifies and records the terminal score and opens the result screen.
func (m *Model) finishRun(score int) {
	res := &RunResult{
		Score:  score,
		Won:    m.gameState.Won,
		Reward: m.rewards.Classify(score),
		Ticks:  m.runTicks,
	}

	if m.store != nil {
		best, err := m.store.HighScore(m.game.ID())
		if err != nil {
			m.logger.Warn("could not read high score", "game", m.game.ID(), "error", err)
		}
		res.Best = best
		res.NewBest = score > best

		_, err = m.store.SaveRun(storage.RunRecord{
			GameID: m.game.ID(),
			Score:  score,
			Won:    res.Won,
			Reward: res.Reward.Label,
			Ticks:  res.Ticks,
			Seed:   m.config.Seed,
		})
		if err != nil {
			m.logger.Warn("could not save run", "game", m.game.ID(), "error", err)
		}
	}

	m.logger.Info("run ended",
		"game", m.game.ID(),
		"score", score,
		"won", res.Won,
		"reward", res.Reward.Label,
		"ticks", res.Ticks,
	)
	m.result = res
}

// restart starts a new run with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.result = nil
	m.paused = false
	m.runTicks = 0
	m.inputFrame.Clear()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".dash", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.result != nil {
		return m.resultView()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusBar()
}

// statusBar renders the row under the playfield.
func (m Model) statusBar() string {
	keys := m.keyMapper.Keys()
	if m.paused {
		paused := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Render("PAUSED")
		return paused + "  " + m.help.ShortHelpView([]key.Binding{keys.Pause, keys.Back, keys.Quit})
	}
	return m.help.View(keys)
}

// resultView renders the result card shown after a run ends.
func (m Model) resultView() string {
	r := m.result

	title := "GAME OVER"
	titleColor := lipgloss.Color("203")
	if r.Won {
		title = "YOU WON!"
		titleColor = lipgloss.Color("220")
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor)
	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	rewardStyle := lipgloss.NewStyle().Bold(true).Foreground(rewardColor(r.Reward.Rank))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	best := dimStyle.Render(fmt.Sprintf("Best: %d", r.Best))
	if m.store == nil {
		best = ""
	} else if r.NewBest {
		best = lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Render("New best!")
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(title),
		"",
		scoreStyle.Render(fmt.Sprintf("Score: %d", r.Score)),
		rewardStyle.Render(r.Reward.Label),
		best,
		"",
		m.help.ShortHelpView(m.keyMapper.Keys().ResultHelp()),
	)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(titleColor).
		Padding(1, 4).
		Render(body)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Result returns the finished run, or nil while a run is in progress.
func (m Model) Result() *RunResult {
	return m.result
}

// Paused reports whether the host has paused ticking.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
// Returns true if the user asked to go back rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) (goBack bool, err error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
