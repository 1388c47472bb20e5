package ringchat

// Event is a sealed interface representing a Store mutation.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
	// Type returns the wire name of the event.
	Type() string
}

// Event type names.
const (
	EventTypeAdded   = "message:added"
	EventTypeUpdated = "message:updated"
)

// EventMessageAdded signals that a message was appended to the Store.
type EventMessageAdded struct {
	Message Message
}

func (EventMessageAdded) event() {}

// Type returns EventTypeAdded.
func (EventMessageAdded) Type() string { return EventTypeAdded }

// EventMessageUpdated signals that a message changed identity or status.
type EventMessageUpdated struct {
	Message Message
}

func (EventMessageUpdated) event() {}

// Type returns EventTypeUpdated.
func (EventMessageUpdated) Type() string { return EventTypeUpdated }

// Listener receives every Store event together with a snapshot of the full
// message list taken after the mutation.
type Listener func(evt Event, messages []Message)

// Interface compliance checks.
var (
	_ Event = EventMessageAdded{}
	_ Event = EventMessageUpdated{}
)
