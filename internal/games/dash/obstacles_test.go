package dash

import (
	"fmt"
	"testing"

	"github.com/vovakirdan/diamond-dash/internal/config"
	"github.com/vovakirdan/diamond-dash/internal/core"
)

func newTestField(r float64) *ObstacleField {
	f := NewObstacleField(fixedRand(r), 0.1)
	f.Width = 60
	f.GapSize = 250
	f.SpawnCadence = 120
	f.Speed = 1.5
	return f
}

func TestSpawnCadence(t *testing.T) {
	f := newTestField(0.5)
	world := World{Width: 400, Height: 800}

	for i := 1; i <= 120; i++ {
		if f.TickSpawn(world) {
			t.Fatalf("spawned on tick %d, before the timer exceeded the cadence", i)
		}
	}
	if !f.TickSpawn(world) {
		t.Fatal("expected a spawn on tick 121")
	}
	if len(f.Obstacles()) != 1 {
		t.Fatalf("obstacles = %d, want 1", len(f.Obstacles()))
	}
	if f.timer != 0 {
		t.Errorf("timer = %d after spawn, want 0", f.timer)
	}

	o := f.Obstacles()[0]
	if o.X != 400 || o.Passed {
		t.Errorf("spawned obstacle = %+v, want x 400 and not passed", o)
	}
	if o.GapSize() != 250 {
		t.Errorf("gap size = %.1f, want 250", o.GapSize())
	}
}

func TestSpawnGapBand(t *testing.T) {
	world := World{Width: 400, Height: 800}

	tests := []struct {
		name    string
		r       float64
		wantTop float64
	}{
		{"lowest draw", 0, 80},
		{"middle draw", 0.5, 80 + 0.5*(470-80)},
		{"highest draw", 1, 470},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(tt.r)
			f.Spawn(world)
			o := f.Obstacles()[0]
			if o.GapTop != tt.wantTop {
				t.Errorf("GapTop = %.2f, want %.2f", o.GapTop, tt.wantTop)
			}
			if o.GapBottom != tt.wantTop+250 {
				t.Errorf("GapBottom = %.2f, want %.2f", o.GapBottom, tt.wantTop+250)
			}
		})
	}
}

// On worlds too short for the gap the band collapses instead of inverting.
func TestSpawnGapBandClamped(t *testing.T) {
	world := World{Width: 400, Height: 200}

	for _, r := range []float64{0, 0.5, 1} {
		f := newTestField(r)
		f.Spawn(world)
		if top := f.Obstacles()[0].GapTop; top != 20 {
			t.Errorf("r=%.1f: GapTop = %.2f, want 20", r, top)
		}
	}
}

func TestAdvanceUsesCurrentSpeed(t *testing.T) {
	f := newTestField(0.5)
	f.obstacles = append(f.obstacles, Obstacle{X: 100}, Obstacle{X: 300})

	f.Advance()
	f.Speed = 2.5
	f.Advance()

	if got := f.Obstacles()[0].X; got != 96.0 {
		t.Errorf("first x = %.2f, want %.2f", got, 96.0)
	}
	if got := f.Obstacles()[1].X; got != 296.0 {
		t.Errorf("second x = %.2f, want %.2f", got, 296.0)
	}
}

func TestCompact(t *testing.T) {
	f := newTestField(0.5)
	f.obstacles = append(f.obstacles,
		Obstacle{X: -61, GapTop: 1},
		Obstacle{X: -60, GapTop: 2},
		Obstacle{X: -100, GapTop: 3},
		Obstacle{X: 50, GapTop: 4},
	)
	backing := f.obstacles[:4]

	f.Compact()

	got := f.Obstacles()
	if len(got) != 2 {
		t.Fatalf("kept %d obstacles, want 2", len(got))
	}
	if got[0].GapTop != 2 || got[1].GapTop != 4 {
		t.Errorf("kept %+v, want the edge-touching and on-screen obstacles in order", got)
	}
	for i := 2; i < 4; i++ {
		if backing[i] != (Obstacle{}) {
			t.Errorf("tail slot %d not cleared: %+v", i, backing[i])
		}
	}
}

func TestSpawnWaitsForPreviousColumn(t *testing.T) {
	// 1280 px world: 192 px columns but only 181.5 px between Easy spawns
	f := newTestField(0.5)
	f.Width = obstacleWidth(1280, 60, 0.15)
	world := World{Width: 1280, Height: 800}

	var spawnTicks []int
	for tick := 1; tick <= 260; tick++ {
		f.Advance()
		f.Compact()
		if f.TickSpawn(world) {
			spawnTicks = append(spawnTicks, tick)
		}
	}

	if len(spawnTicks) != 2 || spawnTicks[0] != 121 || spawnTicks[1] != 249 {
		t.Fatalf("spawn ticks = %v, want [121 249]", spawnTicks)
	}
	obs := f.Obstacles()
	if obs[1].X < obs[0].X+f.Width {
		t.Errorf("second column at %.1f overlaps first ending at %.1f", obs[1].X, obs[0].X+f.Width)
	}
}

func TestSpawnKeepsColumnsApart(t *testing.T) {
	tiers := config.DefaultDashConfig().Tiers

	for _, worldW := range []float64{640, 1280, 1600} {
		for _, tier := range tiers {
			t.Run(fmt.Sprintf("%.0f/%s", worldW, tier.Name), func(t *testing.T) {
				world := World{Width: worldW, Height: 800}
				f := newTestField(0.5)
				f.Width = obstacleWidth(worldW, 60, 0.15)
				f.GapSize = tier.GapSize
				f.SpawnCadence = tier.SpawnCadence
				f.Speed = tier.Speed

				spawned := 0
				for range 1500 {
					f.Advance()
					f.Compact()
					if f.TickSpawn(world) {
						spawned++
					}

					obs := f.Obstacles()
					for j := 1; j < len(obs); j++ {
						if obs[j].X < obs[j-1].X+f.Width {
							t.Fatalf("obstacle %d at x=%.1f overlaps previous right edge %.1f (width %.1f)",
								j, obs[j].X, obs[j-1].X+f.Width, f.Width)
						}
					}
				}
				if spawned < 3 {
					t.Errorf("spawned %d obstacles, want at least 3", spawned)
				}
			})
		}
	}
}

func TestFieldReset(t *testing.T) {
	f := newTestField(0.5)
	world := World{Width: 400, Height: 800}
	for i := 0; i < 130; i++ {
		f.TickSpawn(world)
	}

	f.Reset()

	if len(f.Obstacles()) != 0 || f.timer != 0 {
		t.Errorf("after reset: %d obstacles, timer %d", len(f.Obstacles()), f.timer)
	}
}

func TestObstacleWidth(t *testing.T) {
	tests := []struct {
		worldW float64
		want   float64
	}{
		{200, 60},
		{400, 60},
		{1000, 150},
	}
	for _, tt := range tests {
		if got := obstacleWidth(tt.worldW, 60, 0.15); got != tt.want {
			t.Errorf("obstacleWidth(%.0f) = %.1f, want %.1f", tt.worldW, got, tt.want)
		}
	}
}

func TestHitsBounds(t *testing.T) {
	world := World{Width: 400, Height: 800}

	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"top edge at zero", 0, true},
		{"above top", -3, true},
		{"just inside top", 0.5, false},
		{"mid-air", 400, false},
		{"just inside floor", 759.5, false},
		{"bottom edge on floor", 760, true},
		{"below floor", 790, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := core.NewBox(80, tt.y, 40, 40)
			if got := HitsBounds(box, world); got != tt.want {
				t.Errorf("HitsBounds(y=%.1f) = %v, want %v", tt.y, got, tt.want)
			}
		})
	}
}

// A player fully inside the gap passes; one unit outside it collides.
func TestHitsObstacle(t *testing.T) {
	o := Obstacle{X: 100, GapTop: 300, GapBottom: 500}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside gap", 110, 350, false},
		{"flush with gap top", 110, 300, false},
		{"flush with gap bottom", 110, 460, false},
		{"one above gap", 110, 299, true},
		{"one below gap", 110, 461, true},
		{"right edge touches column", 60, 299, true},
		{"left of column", 59, 299, false},
		{"left edge touches column right", 160, 100, true},
		{"right of column", 161, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := core.NewBox(tt.x, tt.y, 40, 40)
			if got := HitsObstacle(box, o, 60); got != tt.want {
				t.Errorf("HitsObstacle(x=%.0f, y=%.0f) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCollidesChecksEveryObstacle(t *testing.T) {
	f := newTestField(0.5)
	f.obstacles = append(f.obstacles,
		Obstacle{X: 300, GapTop: 0, GapBottom: 100},
		Obstacle{X: 70, GapTop: 0, GapBottom: 100},
	)
	world := World{Width: 400, Height: 800}
	player := PlayerBody{X: 80, Y: 400, Width: 40, Height: 40}

	if !Collides(player, world, f) {
		t.Error("expected collision with the second obstacle")
	}

	f.obstacles[1].GapTop, f.obstacles[1].GapBottom = 350, 600
	if Collides(player, world, f) {
		t.Error("expected no collision inside the gap")
	}
}
