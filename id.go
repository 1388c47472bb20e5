package ringchat

import (
	"strconv"
	"sync"
	"time"
)

// Identifier prefixes used by the Store.
const (
	PrefixClient = "client"
	PrefixServer = "server"
)

// IDSource generates message identifiers. Implementations must never return
// the same value twice within a process lifetime.
type IDSource interface {
	NewID(prefix string) string
}

// CounterIDs generates identifiers of the form "<prefix>-<millis>-<n>" where
// millis is the current clock reading and n a strictly increasing counter.
// Two calls within the same millisecond differ by n.
type CounterIDs struct {
	mu    sync.Mutex
	next  uint64
	nowFn func() time.Time
}

// NewCounterIDs creates a CounterIDs reading the given clock. A nil clock
// uses time.Now.
func NewCounterIDs(now func() time.Time) *CounterIDs {
	if now == nil {
		now = time.Now
	}
	return &CounterIDs{next: 1, nowFn: now}
}

// NewID returns a fresh identifier.
func (c *CounterIDs) NewID(prefix string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.next
	c.next++
	ms := c.nowFn().UnixMilli()
	return prefix + "-" + strconv.FormatInt(ms, 10) + "-" + strconv.FormatUint(n, 10)
}

var _ IDSource = (*CounterIDs)(nil)
