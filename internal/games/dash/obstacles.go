package dash

import (
	"math"

	"github.com/vovakirdan/diamond-dash/internal/core"
)

// Rand is the randomness the obstacle field needs. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Obstacle is a full-height column with a passable gap.
type Obstacle struct {
	X         float64 // Left edge
	GapTop    float64 // Top of the passable band
	GapBottom float64 // Bottom of the passable band
	Passed    bool    // Whether the player has already scored this obstacle
}

// GapSize returns the height of the passable band.
func (o Obstacle) GapSize() float64 {
	return o.GapBottom - o.GapTop
}

// Box returns the obstacle's full column for the given obstacle width and world height.
func (o Obstacle) Box(width, worldH float64) core.Box {
	return core.NewBox(o.X, 0, width, worldH)
}

// ObstacleField owns the live obstacles and the spawn timer.
// GapSize, SpawnCadence and Speed are overwritten in place on tier changes;
// Width follows the world width.
type ObstacleField struct {
	obstacles []Obstacle
	rng       Rand
	timer     int

	Width        float64 // Obstacle width in pixels
	GapSize      float64 // Gap height for the next spawn
	SpawnCadence int     // Ticks that must elapse before a spawn
	Speed        float64 // Leftward movement per tick

	margin float64 // Keep-out fraction above and below each gap
}

// NewObstacleField creates an empty field drawing gap positions from rng.
func NewObstacleField(rng Rand, marginFraction float64) *ObstacleField {
	return &ObstacleField{
		obstacles: make([]Obstacle, 0, 8),
		rng:       rng,
		margin:    marginFraction,
	}
}

// Reset removes every obstacle and restarts the spawn timer.
func (f *ObstacleField) Reset() {
	f.obstacles = f.obstacles[:0]
	f.timer = 0
}

// Obstacles returns the live obstacles in spawn order.
func (f *ObstacleField) Obstacles() []Obstacle {
	return f.obstacles
}

// Advance moves every obstacle left by the current speed.
func (f *ObstacleField) Advance() {
	for i := range f.obstacles {
		f.obstacles[i].X -= f.Speed
	}
}

// Compact drops obstacles whose right edge has left the screen.
func (f *ObstacleField) Compact() {
	kept := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.X+f.Width >= 0 {
			kept = append(kept, o)
		}
	}
	// Clear the tail so dropped obstacles do not linger in the backing array.
	for i := len(kept); i < len(f.obstacles); i++ {
		f.obstacles[i] = Obstacle{}
	}
	f.obstacles = kept
}

// TickSpawn advances the spawn timer and spawns when it exceeds the cadence.
// A due spawn waits until the newest obstacle has fully entered the world, so
// neighbouring columns never overlap in x. Returns true if an obstacle was created.
func (f *ObstacleField) TickSpawn(world World) bool {
	f.timer++
	if f.timer <= f.SpawnCadence || !f.edgeClear(world) {
		return false
	}
	f.Spawn(world)
	f.timer = 0
	return true
}

// edgeClear reports whether the newest obstacle's right edge is inside the world.
func (f *ObstacleField) edgeClear(world World) bool {
	if len(f.obstacles) == 0 {
		return true
	}
	last := f.obstacles[len(f.obstacles)-1]
	return last.X+f.Width <= world.Width
}

// Spawn creates an obstacle at the right edge of the world with the current gap size.
func (f *ObstacleField) Spawn(world World) {
	minTop, maxTop := f.gapBand(world)
	top := minTop + f.rng.Float64()*(maxTop-minTop)

	f.obstacles = append(f.obstacles, Obstacle{
		X:         world.Width,
		GapTop:    top,
		GapBottom: top + f.GapSize,
	})
}

// gapBand returns the range the gap's top edge may be drawn from.
// A band that would invert on small worlds collapses to its lower bound.
func (f *ObstacleField) gapBand(world World) (float64, float64) {
	margin := world.Height * f.margin
	minTop := margin
	maxTop := world.Height - f.GapSize - margin
	return minTop, math.Max(minTop, maxTop)
}

// obstacleWidth derives the obstacle width from the world width.
func obstacleWidth(worldW, minWidth, fraction float64) float64 {
	return math.Max(minWidth, worldW*fraction)
}
