package ringchat

import (
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Store owns the ordered message list and the delivery state machine.
// Every mutation is announced to subscribers synchronously, in registration
// order.
//
// A Store is not safe for concurrent use. It is meant to be driven from a
// single goroutine; transport events arriving elsewhere must be handed over
// to that goroutine before calling Ack, Fail or Receive.
type Store struct {
	ids   IDSource
	nowFn func() time.Time
	log   *slog.Logger

	messages []Message
	byClient map[string]int // ClientID -> index into messages

	listeners  []subscription
	nextListen int
}

type subscription struct {
	id int
	fn Listener
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDSource sets the identifier generator. Defaults to CounterIDs on the
// Store's clock.
func WithIDSource(ids IDSource) StoreOption {
	return func(s *Store) {
		s.ids = ids
	}
}

// WithClock sets the clock used for message timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowFn = now
	}
}

// WithLogger sets the logger for mutation tracing. If nil or not set,
// nothing is logged.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{byClient: make(map[string]int)}
	for _, opt := range opts {
		opt(s)
	}
	if s.nowFn == nil {
		s.nowFn = time.Now
	}
	if s.ids == nil {
		s.ids = NewCounterIDs(s.nowFn)
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	s.log = s.log.WithGroup("store")
	return s
}

// Send appends an outgoing message in the sending state and returns it.
// The returned ClientID is the key the transport must use to report the
// delivery outcome. Empty text is accepted.
func (s *Store) Send(text string) Message {
	id := s.ids.NewID(PrefixClient)
	msg := Message{
		ID:        id,
		ClientID:  id,
		AuthorID:  AuthorSelf,
		Side:      SideSelf,
		Text:      text,
		Timestamp: s.nowFn(),
		Status:    StatusSending,
	}
	s.byClient[id] = len(s.messages)
	s.messages = append(s.messages, msg)
	s.log.Debug("send", "id", id)
	s.emit(EventMessageAdded{Message: msg})
	return msg
}

// Receive appends a message from the peer. Remote messages start out sent.
func (s *Store) Receive(text string) Message {
	msg := Message{
		ID:        s.ids.NewID(PrefixServer),
		AuthorID:  AuthorPeer,
		Side:      SidePeer,
		Text:      text,
		Timestamp: s.nowFn(),
		Status:    StatusSent,
	}
	s.messages = append(s.messages, msg)
	s.log.Debug("receive", "id", msg.ID)
	s.emit(EventMessageAdded{Message: msg})
	return msg
}

// Ack confirms delivery of the message holding clientID. The message id
// becomes serverID and its timestamp ts; an empty serverID or zero ts keeps
// the existing value.
//
// Ack returns ErrNotFound when no message holds clientID and
// ErrTerminalStatus, together with the unchanged message, when the message is
// already sent or failed. Neither case emits an event.
func (s *Store) Ack(clientID, serverID string, ts time.Time) (Message, error) {
	i, err := s.pending(clientID)
	if err != nil {
		return s.at(i), err
	}
	msg := &s.messages[i]
	if serverID != "" {
		msg.ID = serverID
	}
	if !ts.IsZero() {
		msg.Timestamp = ts
	}
	msg.Status = StatusSent
	s.log.Debug("ack", "client_id", clientID, "id", msg.ID)
	s.emit(EventMessageUpdated{Message: *msg})
	return *msg, nil
}

// Fail marks the message holding clientID as failed. Lookup and terminal
// state are handled as in Ack.
func (s *Store) Fail(clientID string) (Message, error) {
	i, err := s.pending(clientID)
	if err != nil {
		return s.at(i), err
	}
	msg := &s.messages[i]
	msg.Status = StatusFailed
	s.log.Debug("fail", "client_id", clientID)
	s.emit(EventMessageUpdated{Message: *msg})
	return *msg, nil
}

// pending returns the index of the message holding clientID if it can still
// transition. The index is -1 when no message matched.
func (s *Store) pending(clientID string) (int, error) {
	i, ok := s.byClient[clientID]
	if !ok || clientID == "" {
		return -1, fmt.Errorf("client id %q: %w", clientID, ErrNotFound)
	}
	if st := s.messages[i].Status; st.Terminal() {
		return i, fmt.Errorf("client id %q is %s: %w", clientID, st, ErrTerminalStatus)
	}
	return i, nil
}

func (s *Store) at(i int) Message {
	if i < 0 {
		return Message{}
	}
	return s.messages[i]
}

// Messages returns a copy of the message list in insertion order.
func (s *Store) Messages() []Message {
	return slices.Clone(s.messages)
}

// Len returns the number of messages.
func (s *Store) Len() int { return len(s.messages) }

// Message returns the message whose current id is id.
func (s *Store) Message(id string) (Message, bool) {
	for _, m := range s.messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// Subscribe registers fn for every subsequent mutation and returns a function
// that removes it. Calling the returned function more than once is a no-op.
// A listener removed while an event is being dispatched still receives that
// event; the removal applies from the next mutation on.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextListen++
	id := s.nextListen
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

func (s *Store) emit(evt Event) {
	if len(s.listeners) == 0 {
		return
	}
	listeners := slices.Clone(s.listeners)
	snapshot := slices.Clone(s.messages)
	for _, sub := range listeners {
		sub.fn(evt, snapshot)
	}
}
