package config

import (
	"errors"
	"fmt"
)

// ErrInvalidTiers is returned when the tier table cannot drive a run.
var ErrInvalidTiers = errors.New("config: invalid tier table")

// TierTable is the ordered list of difficulty tiers, lowest threshold first.
type TierTable []TierConfig

// Validate checks that the table starts at score 0, has strictly ascending
// thresholds and usable physics values.
func (t TierTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no tiers", ErrInvalidTiers)
	}
	if t[0].Threshold != 0 {
		return fmt.Errorf("%w: first tier must start at 0, got %d", ErrInvalidTiers, t[0].Threshold)
	}

	for i, tier := range t {
		if i > 0 && tier.Threshold <= t[i-1].Threshold {
			return fmt.Errorf("%w: tier %q threshold %d is not above %d",
				ErrInvalidTiers, tier.Name, tier.Threshold, t[i-1].Threshold)
		}
		if tier.GapSize <= 0 || tier.Speed <= 0 || tier.SpawnCadence <= 0 {
			return fmt.Errorf("%w: tier %q needs positive gap, speed and cadence", ErrInvalidTiers, tier.Name)
		}
	}
	return nil
}

// Index returns the index of the highest tier whose threshold has been reached.
func (t TierTable) Index(score int) int {
	idx := 0
	for i, tier := range t {
		if score >= tier.Threshold {
			idx = i
		}
	}
	return idx
}
