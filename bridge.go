package ringchat

import (
	"errors"
	"fmt"
	"log/slog"
)

// Bridge connects a Store to a Transport. Outgoing text goes through the
// Store first, so the optimistic message exists before delivery starts, and
// transport events are applied back to the Store.
type Bridge struct {
	store     *Store
	transport Transport
	log       *slog.Logger
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithBridgeLogger sets the logger. If nil or not set, nothing is logged.
func WithBridgeLogger(l *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.log = l
	}
}

// NewBridge creates a Bridge between store and transport.
func NewBridge(store *Store, transport Transport, opts ...BridgeOption) *Bridge {
	b := &Bridge{store: store, transport: transport}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = slog.New(slog.DiscardHandler)
	}
	b.log = b.log.WithGroup("bridge")
	return b
}

// Store returns the underlying Store.
func (b *Bridge) Store() *Store { return b.store }

// Send records text as an outgoing message and hands it to the transport.
func (b *Bridge) Send(text string) Message {
	msg := b.store.Send(text)
	b.transport.Send(text, msg.ClientID)
	return msg
}

// Retry sends the text of the failed outgoing message id again under a new
// client id. The failed message stays in place; the retry is a new message.
func (b *Bridge) Retry(id string) (Message, error) {
	msg, ok := b.store.Message(id)
	if !ok {
		return Message{}, fmt.Errorf("retry %q: %w", id, ErrNotFound)
	}
	if msg.Side != SideSelf || msg.Status != StatusFailed {
		return Message{}, fmt.Errorf("retry %q (%s %s): %w", id, msg.Side, msg.Status, ErrNotRetryable)
	}
	b.log.Info("retry", "id", id)
	return b.Send(msg.Text), nil
}

// Dispatch applies a transport event to the Store. Acks and failures for
// unknown or already settled client ids are expected under duplicate or late
// delivery; they are logged and dropped.
func (b *Bridge) Dispatch(evt TransportEvent) {
	var err error
	switch e := evt.(type) {
	case TransportReceive:
		b.store.Receive(e.Text)
	case TransportAck:
		_, err = b.store.Ack(e.ClientID, e.ServerID, e.Timestamp)
	case TransportFail:
		_, err = b.store.Fail(e.ClientID)
		if err == nil {
			b.log.Warn("delivery failed", "client_id", e.ClientID)
		}
	default:
		b.log.Error("unknown transport event", "type", fmt.Sprintf("%T", evt))
		return
	}
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrTerminalStatus):
		b.log.Debug("dropped transport event", "error", err)
	default:
		b.log.Error("apply transport event", "error", err)
	}
}

// Bind subscribes Dispatch to the transport directly. Use it only when the
// transport delivers events on the goroutine that owns the Store; otherwise
// forward events to that goroutine and call Dispatch there.
func (b *Bridge) Bind() (unbind func()) {
	return b.transport.Subscribe(b.Dispatch)
}
