package dash

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/diamond-dash/internal/bridge"
	"github.com/vovakirdan/diamond-dash/internal/config"
	"github.com/vovakirdan/diamond-dash/internal/core"
	"github.com/vovakirdan/diamond-dash/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  50,
		ScreenH:  25,
		TickRate: 60,
		Seed:     seed,
	}
}

func TestGameMapsCellsToWorld(t *testing.T) {
	g := NewWithConfig(config.DefaultDashConfig())
	g.Reset(testRuntime(1))

	if w := g.Sim().World(); w.Width != 400 || w.Height != 800 {
		t.Errorf("world = %+v, want 400x800 for 50x25 cells", w)
	}

	g.Resize(100, 20)
	if w := g.Sim().World(); w.Width != 800 || w.Height != 640 {
		t.Errorf("world after resize = %+v, want 800x640", w)
	}
}

func TestGameRunEmitsOneMessage(t *testing.T) {
	g := NewWithConfig(config.DefaultDashConfig())
	g.Reset(testRuntime(1))

	if g.State().Started {
		t.Fatal("game started before the first activation")
	}

	in := core.NewInputFrame()
	in.Set(core.ActionActivate)
	res := g.Step(in)
	if !res.State.Started || res.Ended {
		t.Fatalf("after first activation: %+v", res)
	}

	ended := 0
	idle := core.NewInputFrame()
	for i := 0; i < 200; i++ {
		if g.Step(idle).Ended {
			ended++
		}
	}
	if ended != 1 {
		t.Fatalf("Ended reported %d times, want 1", ended)
	}

	st := g.State()
	if !st.GameOver || st.Won || st.Score != 0 {
		t.Errorf("final state = %+v, want loss with score 0", st)
	}

	msgs := g.TakeMessages()
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if string(msgs[0]) != `{"type":"gameOver","score":0}` {
		t.Errorf("payload = %s", msgs[0])
	}
	if again := g.TakeMessages(); len(again) != 0 {
		t.Errorf("second drain returned %d messages", len(again))
	}
}

func TestGameMsgpackCodec(t *testing.T) {
	g := NewWithConfig(config.DefaultDashConfig())
	g.SetCodec(bridge.MsgpackCodec{})
	g.Reset(testRuntime(1))

	in := core.NewInputFrame()
	in.Set(core.ActionActivate)
	g.Step(in)
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	msgs := g.TakeMessages()
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	m, err := bridge.MsgpackCodec{}.Decode(msgs[0])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Type != bridge.TypeGameOver || m.Score != 0 {
		t.Errorf("message = %+v", m)
	}
}

// brokenCodec fails every encode.
type brokenCodec struct{ bridge.JSONCodec }

func (brokenCodec) Name() string { return "broken" }

func (brokenCodec) Encode(bridge.Message) ([]byte, error) {
	return nil, errors.New("encoder unavailable")
}

func TestGameLogsUnpostableEvent(t *testing.T) {
	var buf bytes.Buffer
	g := NewWithConfig(config.DefaultDashConfig())
	g.SetCodec(brokenCodec{})
	g.SetLogger(log.New(&buf))
	g.Reset(testRuntime(1))

	in := core.NewInputFrame()
	in.Set(core.ActionActivate)
	g.Step(in)
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	if !g.State().GameOver {
		t.Fatal("run did not end")
	}
	if msgs := g.TakeMessages(); len(msgs) != 0 {
		t.Errorf("messages = %d, want 0", len(msgs))
	}
	out := buf.String()
	for _, want := range []string{"could not post terminal event", "codec=broken", "encoder unavailable"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestGameResetStartsFreshRun(t *testing.T) {
	g := NewWithConfig(config.DefaultDashConfig())
	g.Reset(testRuntime(42))

	in := core.NewInputFrame()
	in.Set(core.ActionActivate)
	g.Step(in)
	for i := 0; i < 100; i++ {
		g.Step(core.NewInputFrame())
	}

	g.Reset(testRuntime(42))

	st := g.State()
	if st.Started || st.GameOver || st.Score != 0 {
		t.Errorf("state after reset = %+v", st)
	}
	if g.Sim().Phase() != PhaseReady || g.Sim().Ticks() != 0 {
		t.Errorf("sim after reset: phase %v ticks %d", g.Sim().Phase(), g.Sim().Ticks())
	}
	if len(g.TakeMessages()) != 0 {
		t.Error("reset kept messages from the previous run")
	}
}

func TestEndlessVariantDisablesWin(t *testing.T) {
	g := NewEndless()
	g.cfg = config.DefaultDashConfig()
	g.Reset(testRuntime(1))

	if g.Config().Gameplay.WinScore != 0 {
		t.Errorf("WinScore = %d, want 0", g.Config().Gameplay.WinScore)
	}
	if g.ID() != EndlessGameID {
		t.Errorf("ID = %q", g.ID())
	}
}

func TestGamesRegistered(t *testing.T) {
	for _, id := range []string{GameID, EndlessGameID} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Diamond Dash" {
		t.Errorf("Title = %q", g.Title())
	}
}

func TestRenderStates(t *testing.T) {
	g := NewWithConfig(config.DefaultDashConfig())
	g.Reset(testRuntime(1))
	screen := core.NewScreen(50, 25)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Press SPACE to start") {
		t.Error("ready screen missing start prompt")
	}

	in := core.NewInputFrame()
	in.Set(core.ActionActivate)
	g.Step(in)
	g.Render(screen)
	out := screen.String()
	if !strings.ContainsRune(out, DiamondChar) {
		t.Error("diamond not drawn")
	}
	if !strings.Contains(screen.Row(0), "Score: 0") || !strings.Contains(screen.Row(0), "Easy") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}

	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}

func TestRenderColumns(t *testing.T) {
	g := NewWithConfig(config.DefaultDashConfig())
	g.Reset(testRuntime(1))
	g.sim.Activate()
	g.sim.field.obstacles = append(g.sim.field.obstacles,
		Obstacle{X: 240, GapTop: 320, GapBottom: 576},
	)
	screen := core.NewScreen(50, 25)

	g.Render(screen)

	// Columns cover cells 30..37 and the gap rows 10..17.
	if got := screen.GetCell(32, 5); got.Rune != ColumnChar || got.Color != core.ColorGreen {
		t.Errorf("upper column cell = %+v", got)
	}
	if got := screen.Get(32, 9); got != ColumnCapTop {
		t.Errorf("upper cap = %q", got)
	}
	if got := screen.Get(32, 12); got != ' ' {
		t.Errorf("gap cell = %q, want blank", got)
	}
	if got := screen.Get(32, 18); got != ColumnCapBase {
		t.Errorf("lower cap = %q", got)
	}
	if got := screen.Get(32, 22); got != ColumnChar {
		t.Errorf("lower column cell = %q", got)
	}
}
