package reward

import (
	"testing"

	"github.com/vovakirdan/diamond-dash/internal/config"
)

func TestClassifyBreakpoints(t *testing.T) {
	tests := []struct {
		score int
		label string
		rank  int
	}{
		{250, "LEGENDARY! Amazing Skills!", 0},
		{100, "LEGENDARY! Amazing Skills!", 0},
		{99, "EPIC! Great Performance!", 1},
		{40, "EPIC! Great Performance!", 1},
		{39, "NICE! Good Job!", 2},
		{15, "NICE! Good Job!", 2},
		{14, "Keep Practicing!", 3},
		{0, "Keep Practicing!", 3},
	}

	for _, tt := range tests {
		got := Classify(tt.score)
		if got.Label != tt.label || got.Rank != tt.rank {
			t.Errorf("Classify(%d) = %+v, want %q rank %d", tt.score, got, tt.label, tt.rank)
		}
	}
}

func TestClassifierSortsBreakpoints(t *testing.T) {
	c := NewClassifier([]config.RewardConfig{
		{MinScore: 10, Label: "bronze"},
		{MinScore: 50, Label: "gold"},
		{MinScore: 25, Label: "silver"},
	})

	tests := []struct {
		score int
		want  string
	}{
		{60, "gold"},
		{30, "silver"},
		{10, "bronze"},
		{3, "bronze"}, // below every breakpoint
	}
	for _, tt := range tests {
		if got := c.Classify(tt.score).Label; got != tt.want {
			t.Errorf("Classify(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}

	if first := c.Tiers()[0].Label; first != "gold" {
		t.Errorf("first tier = %q, want gold", first)
	}
}

func TestClassifierEmpty(t *testing.T) {
	if got := NewClassifier(nil).Classify(10); got != (Reward{}) {
		t.Errorf("Classify on empty table = %+v", got)
	}
}
