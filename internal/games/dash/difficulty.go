package dash

import "github.com/vovakirdan/diamond-dash/internal/config"

// Tier indexes the default difficulty table.
type Tier int

const (
	TierEasy Tier = iota
	TierNormal
	TierHard
)

// String returns the tier name used by the default table.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierNormal:
		return "Normal"
	case TierHard:
		return "Hard"
	default:
		return "Tier"
	}
}

// DifficultyController selects the tier for the current score and pushes its
// parameters into the player and the obstacle field. It only ever moves forward.
type DifficultyController struct {
	tiers   config.TierTable
	current Tier
}

// NewDifficultyController creates a controller over a validated tier table.
func NewDifficultyController(tiers config.TierTable) *DifficultyController {
	return &DifficultyController{tiers: tiers}
}

// Reset returns to the first tier and applies it.
func (d *DifficultyController) Reset(player *PlayerBody, field *ObstacleField) {
	d.current = 0
	d.apply(player, field)
}

// Update re-evaluates the tier for score. Returns true if a new tier was applied.
func (d *DifficultyController) Update(score int, player *PlayerBody, field *ObstacleField) bool {
	next := Tier(d.tiers.Index(score))
	if next <= d.current {
		return false
	}
	d.current = next
	d.apply(player, field)
	return true
}

// Current returns the active tier.
func (d *DifficultyController) Current() Tier {
	return d.current
}

// Params returns the active tier's parameters.
func (d *DifficultyController) Params() config.TierConfig {
	return d.tiers[d.current]
}

// Name returns the configured name of the active tier.
func (d *DifficultyController) Name() string {
	if name := d.tiers[d.current].Name; name != "" {
		return name
	}
	return d.current.String()
}

// apply overwrites the tunable fields. Obstacles already spawned keep their gaps.
func (d *DifficultyController) apply(player *PlayerBody, field *ObstacleField) {
	p := d.tiers[d.current]
	player.Gravity = p.Gravity
	player.JumpImpulse = p.JumpImpulse
	field.GapSize = p.GapSize
	field.SpawnCadence = p.SpawnCadence
	field.Speed = p.Speed
}
