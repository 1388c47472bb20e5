// Package mock provides test doubles for ringchat interfaces using function
// fields.
package mock

import "github.com/fwojciec/ringchat"

// Interface compliance checks.
var (
	_ ringchat.Transport = (*Transport)(nil)
	_ ringchat.IDSource  = (*IDSource)(nil)
)

// Transport is a test double for ringchat.Transport.
// Set SendFn before calling Send. StartFn, StopFn and SubscribeFn are
// nil-safe: Start and Stop become no-ops, and Subscribe records handlers so
// tests can push events with Emit.
type Transport struct {
	StartFn     func()
	StopFn      func()
	SendFn      func(text, clientID string)
	SubscribeFn func(fn func(ringchat.TransportEvent)) func()

	handlers []func(ringchat.TransportEvent)
}

// Start delegates to StartFn.
func (t *Transport) Start() {
	if t.StartFn != nil {
		t.StartFn()
	}
}

// Stop delegates to StopFn.
func (t *Transport) Stop() {
	if t.StopFn != nil {
		t.StopFn()
	}
}

// Send delegates to SendFn.
func (t *Transport) Send(text, clientID string) {
	t.SendFn(text, clientID)
}

// Subscribe delegates to SubscribeFn, or records fn for Emit when
// SubscribeFn is nil.
func (t *Transport) Subscribe(fn func(ringchat.TransportEvent)) func() {
	if t.SubscribeFn != nil {
		return t.SubscribeFn(fn)
	}
	t.handlers = append(t.handlers, fn)
	i := len(t.handlers) - 1
	return func() { t.handlers[i] = nil }
}

// Emit delivers evt to every handler recorded by Subscribe.
func (t *Transport) Emit(evt ringchat.TransportEvent) {
	for _, h := range t.handlers {
		if h != nil {
			h(evt)
		}
	}
}

// IDSource is a test double for ringchat.IDSource.
// Set NewIDFn before calling NewID.
type IDSource struct {
	NewIDFn func(prefix string) string
}

// NewID delegates to NewIDFn.
func (s *IDSource) NewID(prefix string) string {
	return s.NewIDFn(prefix)
}
