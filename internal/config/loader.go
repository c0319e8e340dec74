package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadDash loads the Diamond Dash configuration.
// Search order: customPath -> ~/.dash/configs/dash.yaml -> ./configs/dash.yaml -> embedded default.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func LoadDash(customPath string) (DashConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DashConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data)
		if err != nil {
			return DashConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return DashConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Broken files in the implicit locations fall through to the next candidate.
	for _, path := range []string{userConfigPath("dash.yaml"), filepath.Join("configs", "dash.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(path, data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg, err := decode("dash.yaml", defaultDashYAML)
	if err != nil {
		return DefaultDashConfig(), nil
	}
	return cfg, nil
}

// decode parses data starting from the defaults, so partial files only
// override what they mention.
func decode(path string, data []byte) (DashConfig, error) {
	cfg := DefaultDashConfig()

	// Lists replace the defaults wholesale instead of merging by index.
	cfg.Tiers = nil
	cfg.Rewards = nil

	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err = toml.Decode(string(data), &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return DashConfig{}, err
	}

	defaults := DefaultDashConfig()
	if len(cfg.Tiers) == 0 {
		cfg.Tiers = defaults.Tiers
	}
	if len(cfg.Rewards) == 0 {
		cfg.Rewards = defaults.Rewards
	}
	return cfg, nil
}

// Validate checks the whole configuration.
func (c DashConfig) Validate() error {
	if err := c.Tiers.Validate(); err != nil {
		return err
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		return fmt.Errorf("config: player size must be positive, got %vx%v", c.Player.Width, c.Player.Height)
	}
	if c.Player.XFraction <= 0 || c.Player.XFraction >= 1 {
		return fmt.Errorf("config: player x_fraction must be in (0, 1), got %v", c.Player.XFraction)
	}
	if c.Obstacles.MarginFraction < 0 || c.Obstacles.MarginFraction >= 0.5 {
		return fmt.Errorf("config: obstacle margin_fraction must be in [0, 0.5), got %v", c.Obstacles.MarginFraction)
	}
	if c.Gameplay.WinScore < 0 {
		return fmt.Errorf("config: win_score must not be negative, got %d", c.Gameplay.WinScore)
	}
	if c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0 {
		return fmt.Errorf("config: display cell size must be positive")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dash", "configs", filename)
}
