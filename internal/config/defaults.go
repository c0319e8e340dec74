package config

import (
	_ "embed"
)

//go:embed defaults/dash.yaml
var defaultDashYAML []byte

// DefaultDashConfig returns the built-in Diamond Dash configuration.
// It mirrors defaults/dash.yaml and is used when the embedded file cannot be parsed.
func DefaultDashConfig() DashConfig {
	return DashConfig{
		Player: DashPlayer{
			XFraction: 0.2,
			Width:     40,
			Height:    40,
		},
		Obstacles: DashObstacles{
			MinWidth:       60,
			WidthFraction:  0.15,
			MarginFraction: 0.1,
		},
		Tiers: TierTable{
			{Name: "Easy", Threshold: 0, Gravity: 0.4, JumpImpulse: -8, GapSize: 250, SpawnCadence: 120, Speed: 1.5},
			{Name: "Normal", Threshold: 7, Gravity: 0.6, JumpImpulse: -10, GapSize: 200, SpawnCadence: 90, Speed: 2.0},
			{Name: "Hard", Threshold: 37, Gravity: 0.7, JumpImpulse: -10, GapSize: 180, SpawnCadence: 80, Speed: 2.4},
		},
		Gameplay: DashGameplay{
			WinScore: 100,
		},
		Rewards: []RewardConfig{
			{MinScore: 100, Label: "LEGENDARY! Amazing Skills!"},
			{MinScore: 40, Label: "EPIC! Great Performance!"},
			{MinScore: 15, Label: "NICE! Good Job!"},
			{MinScore: 0, Label: "Keep Practicing!"},
		},
		Display: DashDisplay{
			CellWidth:  8,
			CellHeight: 32,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDashYAML
}
