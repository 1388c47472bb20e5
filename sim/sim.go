// Package sim provides a simulated ringchat.Transport.
//
// Outgoing messages are acknowledged or failed after a random delay, and a
// scripted peer sends a line at a fixed interval while the transport runs.
// All scheduling goes through a Clock so tests can drive time by hand.
package sim

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/fwojciec/ringchat"
)

// Defaults for zero Config fields.
const (
	DefaultMinDelay     = 700 * time.Millisecond
	DefaultMaxDelay     = 1600 * time.Millisecond
	DefaultFailRate     = 0.15
	DefaultPeerInterval = 4200 * time.Millisecond
)

// DefaultPeerLines are the canned lines the simulated peer picks from.
var DefaultPeerLines = []string{
	"Hey! Can you see this?",
	"That's awesome! How does it look?",
	"Got it. I'll send another message...",
	"Sure thing!",
	"And here's another message to the left.",
	"Looks super cool!",
}

// Config configures a Transport.
type Config struct {
	// MinDelay and MaxDelay bound the delivery delay of each Send.
	MinDelay time.Duration
	MaxDelay time.Duration

	// FailRate is the probability in [0, 1] that a Send fails.
	FailRate float64

	// PeerInterval is the time between two peer lines.
	PeerInterval time.Duration

	// PeerLines is what the peer says. Defaults to DefaultPeerLines.
	PeerLines []string

	// Clock schedules deliveries. Defaults to RealClock.
	Clock Clock

	// Rand drives delays, failures and peer line selection. Defaults to a
	// randomly seeded source.
	Rand *rand.Rand

	// Logger for transport events. If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultConfig returns the standard delays, failure rate and peer lines.
func DefaultConfig() Config {
	return Config{
		MinDelay:     DefaultMinDelay,
		MaxDelay:     DefaultMaxDelay,
		FailRate:     DefaultFailRate,
		PeerInterval: DefaultPeerInterval,
		PeerLines:    DefaultPeerLines,
	}
}

// Transport is a simulated ringchat.Transport. It is safe for concurrent use.
type Transport struct {
	cfg Config
	log *slog.Logger

	mu       sync.Mutex
	rng      *rand.Rand
	running  bool
	peer     Timer
	gen      uint64 // bumped by Stop so a late peer tick does not re-arm
	serverN  uint64
	handlers []handler
	nextH    int
}

type handler struct {
	id int
	fn func(ringchat.TransportEvent)
}

// New creates a stopped Transport.
func New(cfg Config) *Transport {
	if cfg.MinDelay <= 0 {
		cfg.MinDelay = DefaultMinDelay
	}
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = max(cfg.MinDelay, DefaultMaxDelay)
	}
	if cfg.PeerInterval <= 0 {
		cfg.PeerInterval = DefaultPeerInterval
	}
	if len(cfg.PeerLines) == 0 {
		cfg.PeerLines = DefaultPeerLines
	}
	cfg.FailRate = min(max(cfg.FailRate, 0), 1)
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Transport{
		cfg: cfg,
		log: logger.WithGroup("sim"),
		rng: rng,
	}
}

// Start arms the peer. It is a no-op when already running.
func (t *Transport) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.armPeer()
	t.log.Debug("started", "peer_interval", t.cfg.PeerInterval)
}

// Stop disarms the peer. Deliveries already scheduled by Send still
// complete. It is a no-op when not running.
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	t.gen++
	if t.peer != nil {
		t.peer.Stop()
		t.peer = nil
	}
	t.log.Debug("stopped")
}

// Running reports whether the peer is armed.
func (t *Transport) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// armPeer schedules the next peer line. Callers hold t.mu.
func (t *Transport) armPeer() {
	gen := t.gen
	t.peer = t.cfg.Clock.AfterFunc(t.cfg.PeerInterval, func() {
		t.mu.Lock()
		if !t.running || t.gen != gen {
			t.mu.Unlock()
			return
		}
		line := t.cfg.PeerLines[t.rng.IntN(len(t.cfg.PeerLines))]
		t.armPeer()
		t.mu.Unlock()

		t.log.Debug("peer line", "text", line)
		t.emit(ringchat.TransportReceive{Text: line})
	})
}

// Send schedules exactly one ack or fail for clientID. An empty clientID is
// dropped.
func (t *Transport) Send(text, clientID string) {
	if clientID == "" {
		t.log.Warn("send without client id dropped")
		return
	}
	t.mu.Lock()
	span := t.cfg.MaxDelay - t.cfg.MinDelay
	delay := t.cfg.MinDelay + time.Duration(t.rng.Float64()*float64(span))
	t.mu.Unlock()

	t.log.Debug("send", "client_id", clientID, "delay", delay)
	t.cfg.Clock.AfterFunc(delay, func() { t.deliver(clientID) })
}

func (t *Transport) deliver(clientID string) {
	t.mu.Lock()
	failed := t.rng.Float64() < t.cfg.FailRate
	t.serverN++
	n := t.serverN
	t.mu.Unlock()

	if failed {
		t.log.Debug("fail", "client_id", clientID)
		t.emit(ringchat.TransportFail{ClientID: clientID})
		return
	}
	now := t.cfg.Clock.Now()
	serverID := ringchat.PrefixServer + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + strconv.FormatUint(n, 10)
	t.log.Debug("ack", "client_id", clientID, "server_id", serverID)
	t.emit(ringchat.TransportAck{ClientID: clientID, ServerID: serverID, Timestamp: now})
}

// Subscribe registers fn for transport events.
func (t *Transport) Subscribe(fn func(ringchat.TransportEvent)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextH++
	id := t.nextH
	t.handlers = append(t.handlers, handler{id: id, fn: fn})
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.handlers = slices.DeleteFunc(t.handlers, func(h handler) bool { return h.id == id })
	}
}

// emit calls the handlers outside the lock.
func (t *Transport) emit(evt ringchat.TransportEvent) {
	t.mu.Lock()
	hs := slices.Clone(t.handlers)
	t.mu.Unlock()
	for _, h := range hs {
		h.fn(evt)
	}
}

var _ ringchat.Transport = (*Transport)(nil)
