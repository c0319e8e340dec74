package bridge

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestJSONWireFormat(t *testing.T) {
	data, err := JSONCodec{}.Encode(GameOver(42))
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if string(data) != `{"type":"gameOver","score":42}` {
		t.Errorf("unexpected wire format: %s", data)
	}
}

func TestCodecsRoundTrip(t *testing.T) {
	for _, codec := range []Codec{JSONCodec{}, MsgpackCodec{}} {
		t.Run(codec.Name(), func(t *testing.T) {
			data, err := codec.Encode(GameOver(100))
			if err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}
			m, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if m.Type != TypeGameOver || m.Score != 100 {
				t.Errorf("Decode() = %+v, expected gameOver/100", m)
			}
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"unknown type", `{"type":"hello","score":3}`, ErrUnknownType},
		{"negative score", `{"type":"gameOver","score":-1}`, ErrInvalidScore},
		{"missing type", `{"score":3}`, ErrUnknownType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := JSONCodec{}.Decode([]byte(tc.payload))
			if !errors.Is(err, tc.want) {
				t.Errorf("Decode(%s) error = %v, expected %v", tc.payload, err, tc.want)
			}
		})
	}

	if _, err := (JSONCodec{}).Decode([]byte("{not json")); err == nil {
		t.Error("expected syntax error for malformed JSON")
	}
}

func TestInboxDiscardsMalformed(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	inbox := NewInbox(JSONCodec{}, logger)

	if _, ok := inbox.Receive([]byte("garbage")); ok {
		t.Error("malformed payload should be discarded")
	}
	if !strings.Contains(buf.String(), "discarding terminal event") {
		t.Errorf("expected warning to be logged, got %q", buf.String())
	}

	m, ok := inbox.Receive([]byte(`{"type":"gameOver","score":7}`))
	if !ok || m.Score != 7 {
		t.Errorf("Receive() = %+v, %v; expected score 7", m, ok)
	}
}

func TestOutboxDrain(t *testing.T) {
	out := NewOutbox(MsgpackCodec{})
	if err := out.Post(GameOver(5)); err != nil {
		t.Fatalf("Post() failed: %v", err)
	}

	payloads := out.Drain()
	if len(payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(payloads))
	}
	if len(out.Drain()) != 0 {
		t.Error("Drain should empty the outbox")
	}

	m, ok := NewInbox(MsgpackCodec{}, log.New(&bytes.Buffer{})).Receive(payloads[0])
	if !ok || m.Score != 5 {
		t.Errorf("Receive() = %+v, %v; expected score 5", m, ok)
	}
}

func TestCodecByName(t *testing.T) {
	for _, name := range []string{"", "json", "JSON", "msgpack"} {
		if _, err := CodecByName(name); err != nil {
			t.Errorf("CodecByName(%q) failed: %v", name, err)
		}
	}
	if _, err := CodecByName("xml"); err == nil {
		t.Error("expected error for unknown codec")
	}
}
