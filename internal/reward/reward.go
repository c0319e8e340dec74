// Package reward maps a finished run's score to the label the host shows.
// It is a presentation concern layered over the raw score.
package reward

import (
	"sort"

	"github.com/vovakirdan/diamond-dash/internal/config"
)

// Reward is the classification of a final score.
type Reward struct {
	Label    string
	MinScore int // Breakpoint that was reached
	Rank     int // 0 is the top tier
}

// Classifier holds reward breakpoints ordered from highest to lowest.
type Classifier struct {
	tiers []config.RewardConfig
}

// NewClassifier creates a classifier from breakpoints in any order.
func NewClassifier(tiers []config.RewardConfig) *Classifier {
	sorted := make([]config.RewardConfig, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinScore > sorted[j].MinScore
	})
	return &Classifier{tiers: sorted}
}

// Classify returns the highest reward whose breakpoint the score reaches.
// Scores below every breakpoint fall into the lowest tier.
func (c *Classifier) Classify(score int) Reward {
	if len(c.tiers) == 0 {
		return Reward{}
	}
	for i, t := range c.tiers {
		if score >= t.MinScore {
			return Reward{Label: t.Label, MinScore: t.MinScore, Rank: i}
		}
	}
	last := len(c.tiers) - 1
	return Reward{Label: c.tiers[last].Label, MinScore: c.tiers[last].MinScore, Rank: last}
}

// Tiers returns the breakpoints from highest to lowest.
func (c *Classifier) Tiers() []config.RewardConfig {
	return c.tiers
}

var defaultClassifier = NewClassifier(config.DefaultDashConfig().Rewards)

// Default returns the classifier for the built-in breakpoints.
func Default() *Classifier {
	return defaultClassifier
}

// Classify uses the built-in breakpoints.
func Classify(score int) Reward {
	return defaultClassifier.Classify(score)
}
