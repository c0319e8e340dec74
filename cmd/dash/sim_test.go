package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/diamond-dash/internal/bridge"
	"github.com/vovakirdan/diamond-dash/internal/config"
	"github.com/vovakirdan/diamond-dash/internal/reward"
)

func newTestHeadless(codec bridge.Codec) *headless {
	cfg := config.DefaultDashConfig()
	return &headless{
		cfg:      cfg,
		width:    480,
		height:   640,
		maxTicks: 50000,
		codec:    codec,
		inbox:    bridge.NewInbox(codec, log.New(io.Discard)),
		rewards:  reward.NewClassifier(cfg.Rewards),
		logger:   log.New(io.Discard),
	}
}

func TestHeadlessPlay(t *testing.T) {
	for _, codec := range []bridge.Codec{bridge.JSONCodec{}, bridge.MsgpackCodec{}} {
		t.Run(codec.Name(), func(t *testing.T) {
			h := newTestHeadless(codec)
			out := h.play(7)

			if out.Abandoned {
				t.Fatalf("run hit the tick limit: %+v", out)
			}
			if out.Ticks == 0 {
				t.Error("run should tick")
			}
			if out.Won != (out.Score >= 100) {
				t.Errorf("won = %v with score %d", out.Won, out.Score)
			}
			if want := h.rewards.Classify(out.Score); out.Reward != want {
				t.Errorf("reward = %+v, want %+v", out.Reward, want)
			}
		})
	}
}

func TestHeadlessDeterministic(t *testing.T) {
	h := newTestHeadless(bridge.JSONCodec{})

	a := h.play(2024)
	b := h.play(2024)
	if a != b {
		t.Errorf("same seed gave %+v and %+v", a, b)
	}
}

func TestHeadlessTickLimit(t *testing.T) {
	h := newTestHeadless(bridge.JSONCodec{})
	h.cfg.Gameplay.WinScore = 0
	h.maxTicks = 30

	out := h.play(1)
	if !out.Abandoned {
		t.Fatalf("expected abandoned run, got %+v", out)
	}
	if out.Ticks != 30 {
		t.Errorf("ticks = %d, want 30", out.Ticks)
	}
}

// brokenCodec fails every encode.
type brokenCodec struct{ bridge.JSONCodec }

func (brokenCodec) Name() string { return "broken" }

func (brokenCodec) Encode(bridge.Message) ([]byte, error) {
	return nil, errors.New("encoder unavailable")
}

func TestHeadlessLogsUnpostableEvent(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHeadless(brokenCodec{})
	h.logger = log.New(&buf)

	out := h.play(7)

	if !out.Abandoned {
		t.Errorf("run without a delivered event should be abandoned: %+v", out)
	}
	if !strings.Contains(buf.String(), "could not post terminal event") {
		t.Errorf("log = %q, want the post failure", buf.String())
	}
}

func TestValidateWorld(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"default", 480, 640, false},
		{"zero width", 0, 640, true},
		{"negative height", 480, -1, true},
		{"both zero", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWorld(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateWorld(%g, %g) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}
