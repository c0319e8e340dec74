// Package config provides YAML/TOML game configuration loading and the
// difficulty tier table for Diamond Dash.
package config

// DashConfig contains all configuration for Diamond Dash.
type DashConfig struct {
	Player    DashPlayer     `yaml:"player" toml:"player"`
	Obstacles DashObstacles  `yaml:"obstacles" toml:"obstacles"`
	Tiers     TierTable      `yaml:"tiers" toml:"tiers"`
	Gameplay  DashGameplay   `yaml:"gameplay" toml:"gameplay"`
	Rewards   []RewardConfig `yaml:"rewards" toml:"rewards"`
	Display   DashDisplay    `yaml:"display" toml:"display"`
}

// DashPlayer defines the diamond's hitbox and horizontal placement.
type DashPlayer struct {
	XFraction float64 `yaml:"x_fraction" toml:"x_fraction"` // Player x as a fraction of world width
	Width     float64 `yaml:"width" toml:"width"`
	Height    float64 `yaml:"height" toml:"height"`
}

// DashObstacles defines how obstacle geometry follows the viewport.
type DashObstacles struct {
	MinWidth       float64 `yaml:"min_width" toml:"min_width"`             // Lower bound for obstacle width in pixels
	WidthFraction  float64 `yaml:"width_fraction" toml:"width_fraction"`   // Obstacle width as a fraction of world width
	MarginFraction float64 `yaml:"margin_fraction" toml:"margin_fraction"` // Keep-out band above and below every gap
}

// TierConfig is one row of the difficulty table.
type TierConfig struct {
	Name         string  `yaml:"name" toml:"name"`
	Threshold    int     `yaml:"threshold" toml:"threshold"` // Score at which the tier starts
	Gravity      float64 `yaml:"gravity" toml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse" toml:"jump_impulse"`
	GapSize      float64 `yaml:"gap_size" toml:"gap_size"`
	SpawnCadence int     `yaml:"spawn_cadence" toml:"spawn_cadence"` // Ticks between spawns
	Speed        float64 `yaml:"speed" toml:"speed"`
}

// DashGameplay holds run-level rules.
type DashGameplay struct {
	WinScore int `yaml:"win_score" toml:"win_score"` // 0 disables the win condition
}

// RewardConfig maps a minimum final score to a reward label.
type RewardConfig struct {
	MinScore int    `yaml:"min_score" toml:"min_score"`
	Label    string `yaml:"label" toml:"label"`
}

// DashDisplay maps terminal cells to world pixels.
type DashDisplay struct {
	CellWidth  float64 `yaml:"cell_width" toml:"cell_width"`
	CellHeight float64 `yaml:"cell_height" toml:"cell_height"`
}
