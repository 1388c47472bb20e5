// Package json implements the JSON wire format for ringchat Store events and
// a line-delimited event trace.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fwojciec/ringchat"
)

// eventDTO is the wire form of a ringchat.Event with a type discriminator.
type eventDTO struct {
	Type    string     `json:"type"`
	Message messageDTO `json:"message"`
}

// messageDTO is the wire form of a ringchat.Message.
type messageDTO struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id,omitempty"`
	AuthorID  string    `json:"author_id"`
	Side      string    `json:"side"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// MarshalMessage serializes a Message.
func MarshalMessage(m ringchat.Message) ([]byte, error) {
	return json.Marshal(marshalMessage(m))
}

// UnmarshalMessage deserializes a Message.
func UnmarshalMessage(data []byte) (ringchat.Message, error) {
	var dto messageDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return ringchat.Message{}, fmt.Errorf("unmarshal message: %w", err)
	}
	return unmarshalMessage(dto)
}

// MarshalEvent serializes a Store event.
func MarshalEvent(evt ringchat.Event) ([]byte, error) {
	dto, err := marshalEvent(evt)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dto)
}

// UnmarshalEvent deserializes a Store event.
func UnmarshalEvent(data []byte) (ringchat.Event, error) {
	var dto eventDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return unmarshalEvent(dto)
}

func marshalEvent(evt ringchat.Event) (eventDTO, error) {
	switch e := evt.(type) {
	case ringchat.EventMessageAdded:
		return eventDTO{Type: e.Type(), Message: marshalMessage(e.Message)}, nil
	case ringchat.EventMessageUpdated:
		return eventDTO{Type: e.Type(), Message: marshalMessage(e.Message)}, nil
	default:
		return eventDTO{}, fmt.Errorf("unknown event type: %T", evt)
	}
}

func unmarshalEvent(dto eventDTO) (ringchat.Event, error) {
	msg, err := unmarshalMessage(dto.Message)
	if err != nil {
		return nil, err
	}
	switch dto.Type {
	case ringchat.EventTypeAdded:
		return ringchat.EventMessageAdded{Message: msg}, nil
	case ringchat.EventTypeUpdated:
		return ringchat.EventMessageUpdated{Message: msg}, nil
	default:
		return nil, fmt.Errorf("unknown event type: %q", dto.Type)
	}
}

func marshalMessage(m ringchat.Message) messageDTO {
	return messageDTO{
		ID:        m.ID,
		ClientID:  m.ClientID,
		AuthorID:  m.AuthorID,
		Side:      string(m.Side),
		Text:      m.Text,
		Timestamp: m.Timestamp,
		Status:    string(m.Status),
	}
}

func unmarshalMessage(dto messageDTO) (ringchat.Message, error) {
	side := ringchat.Side(dto.Side)
	switch side {
	case ringchat.SideSelf, ringchat.SidePeer:
	default:
		return ringchat.Message{}, fmt.Errorf("unknown side: %q", dto.Side)
	}
	status := ringchat.Status(dto.Status)
	switch status {
	case ringchat.StatusSending, ringchat.StatusSent, ringchat.StatusFailed:
	default:
		return ringchat.Message{}, fmt.Errorf("unknown status: %q", dto.Status)
	}
	return ringchat.Message{
		ID:        dto.ID,
		ClientID:  dto.ClientID,
		AuthorID:  dto.AuthorID,
		Side:      side,
		Text:      dto.Text,
		Timestamp: dto.Timestamp,
		Status:    status,
	}, nil
}

// Trace writes every Store event it receives as one JSON object per line.
// The first write error is kept and stops further output.
type Trace struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

// NewTrace creates a Trace writing to w. Register its Listen method with
// Store.Subscribe.
func NewTrace(w io.Writer) *Trace {
	return &Trace{enc: json.NewEncoder(w)}
}

// Listen is a ringchat.Listener. The message snapshot is not recorded.
func (t *Trace) Listen(evt ringchat.Event, _ []ringchat.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	dto, err := marshalEvent(evt)
	if err != nil {
		t.err = err
		return
	}
	if err := t.enc.Encode(dto); err != nil {
		t.err = fmt.Errorf("write trace: %w", err)
	}
}

// Err returns the first error encountered while writing.
func (t *Trace) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// ReadTrace decodes a trace written by Trace.
func ReadTrace(r io.Reader) ([]ringchat.Event, error) {
	dec := json.NewDecoder(r)
	var events []ringchat.Event
	for {
		var dto eventDTO
		err := dec.Decode(&dto)
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", len(events), err)
		}
		evt, err := unmarshalEvent(dto)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", len(events), err)
		}
		events = append(events, evt)
	}
}
