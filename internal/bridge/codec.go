// Package bridge carries the terminal event from a running game to its host.
// The game posts an encoded message when a run ends; the host decodes it,
// logging and discarding anything malformed.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// TypeGameOver is the only message type the host accepts.
const TypeGameOver = "gameOver"

var (
	// ErrUnknownType is returned for messages that are not game-over notifications.
	ErrUnknownType = errors.New("bridge: unknown message type")
	// ErrInvalidScore is returned for negative scores.
	ErrInvalidScore = errors.New("bridge: invalid score")
)

// Message is the wire form of a terminal event.
type Message struct {
	Type  string `json:"type" msgpack:"type"`
	Score int    `json:"score" msgpack:"score"`
}

// GameOver builds the message for a finished run.
func GameOver(score int) Message {
	return Message{Type: TypeGameOver, Score: score}
}

// Validate checks the message type and score.
func (m Message) Validate() error {
	if m.Type != TypeGameOver {
		return fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
	if m.Score < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidScore, m.Score)
	}
	return nil
}

// Codec encodes and decodes messages.
type Codec interface {
	Name() string
	Encode(Message) ([]byte, error)
	Decode([]byte) (Message, error)
}

// JSONCodec encodes messages as {"type":"gameOver","score":N}.
type JSONCodec struct{}

// Name returns "json".
func (JSONCodec) Name() string { return "json" }

// Encode marshals m as JSON.
func (JSONCodec) Encode(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("bridge: encode json: %w", err)
	}
	return data, nil
}

// Decode unmarshals and validates a JSON payload.
func (JSONCodec) Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("bridge: decode json: %w", err)
	}
	return m, m.Validate()
}

// MsgpackCodec encodes messages as MessagePack maps.
type MsgpackCodec struct{}

// Name returns "msgpack".
func (MsgpackCodec) Name() string { return "msgpack" }

// Encode marshals m as MessagePack.
func (MsgpackCodec) Encode(m Message) ([]byte, error) {
	data, err := msgpack.Marshal(&m)
	if err != nil {
		return nil, fmt.Errorf("bridge: encode msgpack: %w", err)
	}
	return data, nil
}

// Decode unmarshals and validates a MessagePack payload.
func (MsgpackCodec) Decode(data []byte) (Message, error) {
	var m Message
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("bridge: decode msgpack: %w", err)
	}
	return m, m.Validate()
}

// CodecByName returns the codec registered under name ("json" or "msgpack").
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("bridge: unknown codec %q", name)
	}
}
