package bridge

import (
	"github.com/charmbracelet/log"
)

// Outbox queues encoded messages posted by a game until the host drains them.
type Outbox struct {
	codec   Codec
	pending [][]byte
}

// NewOutbox creates an outbox using codec.
func NewOutbox(codec Codec) *Outbox {
	return &Outbox{codec: codec}
}

// Post encodes m and queues it.
func (o *Outbox) Post(m Message) error {
	data, err := o.codec.Encode(m)
	if err != nil {
		return err
	}
	o.pending = append(o.pending, data)
	return nil
}

// Drain returns all queued payloads and empties the queue.
func (o *Outbox) Drain() [][]byte {
	out := o.pending
	o.pending = nil
	return out
}

// Inbox is the host side: it decodes payloads and drops bad ones.
type Inbox struct {
	codec  Codec
	logger *log.Logger
}

// NewInbox creates an inbox. A nil logger uses the package default.
func NewInbox(codec Codec, logger *log.Logger) *Inbox {
	if logger == nil {
		logger = log.Default()
	}
	return &Inbox{codec: codec, logger: logger}
}

// Receive decodes payload. Malformed payloads are logged and discarded,
// in which case ok is false.
func (in *Inbox) Receive(payload []byte) (m Message, ok bool) {
	m, err := in.codec.Decode(payload)
	if err != nil {
		in.logger.Warn("discarding terminal event",
			"codec", in.codec.Name(),
			"bytes", len(payload),
			"error", err,
		)
		return Message{}, false
	}
	return m, true
}
