package ringchat

import "time"

// Transport is a bidirectional channel to the peer.
//
// Every Send with a non-empty clientID eventually produces exactly one
// TransportAck or TransportFail for that clientID, after an arbitrary delay
// and in no particular order relative to other sends. A Send with an empty
// clientID is dropped and produces nothing.
//
// Handlers may be invoked on any goroutine.
type Transport interface {
	// Start begins inbound delivery. Calling Start on a started transport
	// is a no-op.
	Start()
	// Stop halts inbound delivery. Outcomes of earlier sends are still
	// reported. Calling Stop on a stopped transport is a no-op.
	Stop()
	// Send attempts delivery of text, correlated by clientID.
	Send(text, clientID string)
	// Subscribe registers fn for transport events and returns a function
	// that removes it.
	Subscribe(fn func(TransportEvent)) (unsubscribe func())
}

// TransportEvent is a sealed interface representing an event emitted by a
// Transport. The unexported marker method prevents external implementations.
type TransportEvent interface {
	transportEvent()
}

// TransportReceive carries an inbound message from the peer.
type TransportReceive struct {
	Text string
}

func (TransportReceive) transportEvent() {}

// TransportAck confirms delivery of the message sent under ClientID.
type TransportAck struct {
	ClientID  string
	ServerID  string
	Timestamp time.Time
}

func (TransportAck) transportEvent() {}

// TransportFail reports that the message sent under ClientID was not
// delivered.
type TransportFail struct {
	ClientID string
}

func (TransportFail) transportEvent() {}

// Interface compliance checks.
var (
	_ TransportEvent = TransportReceive{}
	_ TransportEvent = TransportAck{}
	_ TransportEvent = TransportFail{}
)
