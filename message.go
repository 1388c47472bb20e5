package ringchat

import "time"

// Side identifies which of the two participants authored a message.
// It selects the layout lane and the bubble treatment.
type Side string

const (
	SideSelf Side = "self"
	SidePeer Side = "peer"
)

// Author ids used for the two participants.
const (
	AuthorSelf = "me"
	AuthorPeer = "friend"
)

// Status is the delivery state of a message.
//
//	sending -> sent    (ack correlated by ClientID)
//	sending -> failed  (fail correlated by ClientID)
//
// Sent and failed are terminal.
type Status string

const (
	StatusSending Status = "sending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusFailed
}

// Message is a single chat message.
//
// ID equals ClientID while the message is unconfirmed and is replaced by the
// server-issued id on acknowledgement. ClientID is empty for messages
// received from the peer.
type Message struct {
	ID        string
	ClientID  string
	AuthorID  string
	Side      Side
	Text      string
	Timestamp time.Time
	Status    Status
}
