package sim_test

import (
	"math/rand/v2"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/fwojciec/ringchat"
	"github.com/fwojciec/ringchat/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransport(t *testing.T, clock *sim.ManualClock, mutate func(*sim.Config)) (*sim.Transport, *[]ringchat.TransportEvent) {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Clock = clock
	cfg.Rand = rand.New(rand.NewPCG(1, 2))
	if mutate != nil {
		mutate(&cfg)
	}
	tr := sim.New(cfg)
	var got []ringchat.TransportEvent
	unsub := tr.Subscribe(func(evt ringchat.TransportEvent) { got = append(got, evt) })
	t.Cleanup(unsub)
	return tr, &got
}

func TestTransport_Send(t *testing.T) {
	t.Parallel()

	t.Run("acks after the delay when fail rate is zero", func(t *testing.T) {
		t.Parallel()
		clock := sim.NewManualClock(epoch)
		tr, got := newTestTransport(t, clock, func(c *sim.Config) { c.FailRate = 0 })

		tr.Send("hi", "client-1")
		clock.Advance(sim.DefaultMinDelay - time.Millisecond)
		assert.Empty(t, *got)

		clock.Advance(sim.DefaultMaxDelay)
		require.Len(t, *got, 1)
		ack, ok := (*got)[0].(ringchat.TransportAck)
		require.True(t, ok)
		assert.Equal(t, "client-1", ack.ClientID)
		assert.True(t, strings.HasPrefix(ack.ServerID, ringchat.PrefixServer+"-"))
		assert.False(t, ack.Timestamp.Before(epoch.Add(sim.DefaultMinDelay)))
		assert.False(t, ack.Timestamp.After(epoch.Add(sim.DefaultMaxDelay)))
	})

	t.Run("fails when fail rate is one", func(t *testing.T) {
		t.Parallel()
		clock := sim.NewManualClock(epoch)
		tr, got := newTestTransport(t, clock, func(c *sim.Config) { c.FailRate = 1 })

		tr.Send("hi", "client-1")
		clock.Advance(sim.DefaultMaxDelay)
		assert.Equal(t, []ringchat.TransportEvent{ringchat.TransportFail{ClientID: "client-1"}}, *got)
	})

	t.Run("exactly one outcome per send", func(t *testing.T) {
		t.Parallel()
		clock := sim.NewManualClock(epoch)
		tr, got := newTestTransport(t, clock, func(c *sim.Config) { c.FailRate = 0.5 })

		ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		for _, id := range ids {
			tr.Send("x", id)
		}
		clock.Advance(time.Minute)

		seen := map[string]int{}
		serverIDs := map[string]bool{}
		for _, evt := range *got {
			switch e := evt.(type) {
			case ringchat.TransportAck:
				seen[e.ClientID]++
				assert.False(t, serverIDs[e.ServerID], "duplicate server id %s", e.ServerID)
				serverIDs[e.ServerID] = true
			case ringchat.TransportFail:
				seen[e.ClientID]++
			default:
				t.Fatalf("unexpected event %T", evt)
			}
		}
		for _, id := range ids {
			assert.Equal(t, 1, seen[id], id)
		}
		assert.Zero(t, clock.Pending())
	})

	t.Run("drops empty client id", func(t *testing.T) {
		t.Parallel()
		clock := sim.NewManualClock(epoch)
		tr, got := newTestTransport(t, clock, nil)

		tr.Send("hi", "")
		assert.Zero(t, clock.Pending())
		clock.Advance(time.Minute)
		assert.Empty(t, *got)
	})

	t.Run("pending sends deliver after stop", func(t *testing.T) {
		t.Parallel()
		clock := sim.NewManualClock(epoch)
		tr, got := newTestTransport(t, clock, func(c *sim.Config) { c.FailRate = 0 })

		tr.Start()
		tr.Send("hi", "client-1")
		tr.Stop()
		clock.Advance(sim.DefaultMaxDelay)

		require.Len(t, *got, 1)
		assert.IsType(t, ringchat.TransportAck{}, (*got)[0])
	})

	t.Run("unsubscribed handlers are not called", func(t *testing.T) {
		t.Parallel()
		clock := sim.NewManualClock(epoch)
		tr, got := newTestTransport(t, clock, nil)
		calls := 0
		unsub := tr.Subscribe(func(ringchat.TransportEvent) { calls++ })
		unsub()

		tr.Send("hi", "client-1")
		clock.Advance(time.Minute)
		assert.Len(t, *got, 1)
		assert.Zero(t, calls)
	})
}

func TestTransport_Peer(t *testing.T) {
	t.Parallel()

	t.Run("speaks every interval while running", func(t *testing.T) {
		t.Parallel()
		clock := sim.NewManualClock(epoch)
		tr, got := newTestTransport(t, clock, func(c *sim.Config) {
			c.PeerInterval = time.Second
			c.PeerLines = []string{"only line"}
		})

		tr.Start()
		clock.Advance(999 * time.Millisecond)
		assert.Empty(t, *got)

		clock.Advance(2 * time.Second)
		want := ringchat.TransportReceive{Text: "only line"}
		assert.Equal(t, []ringchat.TransportEvent{want, want}, *got)
	})

	t.Run("silent when never started", func(t *testing.T) {
		t.Parallel()
		clock := sim.NewManualClock(epoch)
		_, got := newTestTransport(t, clock, nil)

		clock.Advance(time.Minute)
		assert.Empty(t, *got)
	})

	t.Run("start and stop are idempotent", func(t *testing.T) {
		t.Parallel()
		clock := sim.NewManualClock(epoch)
		tr, got := newTestTransport(t, clock, func(c *sim.Config) { c.PeerInterval = time.Second })

		tr.Start()
		tr.Start()
		assert.True(t, tr.Running())
		assert.Equal(t, 1, clock.Pending())

		tr.Stop()
		tr.Stop()
		assert.False(t, tr.Running())
		assert.Zero(t, clock.Pending())

		clock.Advance(time.Minute)
		assert.Empty(t, *got)
	})

	t.Run("restarts after stop", func(t *testing.T) {
		t.Parallel()
		clock := sim.NewManualClock(epoch)
		tr, got := newTestTransport(t, clock, func(c *sim.Config) { c.PeerInterval = time.Second })

		tr.Start()
		tr.Stop()
		tr.Start()
		clock.Advance(time.Second)
		assert.Len(t, *got, 1)
	})
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	clock := sim.NewManualClock(epoch)
	tr := sim.New(sim.Config{Clock: clock, FailRate: -3})
	var got []ringchat.TransportEvent
	tr.Subscribe(func(evt ringchat.TransportEvent) { got = append(got, evt) })

	tr.Send("hi", "client-1")
	clock.Advance(sim.DefaultMaxDelay)
	require.Len(t, got, 1)
	assert.IsType(t, ringchat.TransportAck{}, got[0])
}

func TestLoadLines(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"peers/b.txt":        {Data: []byte("second file\n")},
		"peers/a.txt":        {Data: []byte("  first line  \n\n\tsecond line\n")},
		"peers/deep/c.txt":   {Data: []byte("nested\n")},
		"peers/notes.md":     {Data: []byte("ignored\n")},
		"peers/blank/e.txt":  {Data: []byte("\n   \n")},
		"other/elsewhere.md": {Data: []byte("nope")},
	}

	t.Run("reads matches in lexical order", func(t *testing.T) {
		t.Parallel()
		lines, err := sim.LoadLines(fsys, "peers/*.txt")
		require.NoError(t, err)
		assert.Equal(t, []string{"first line", "second line", "second file"}, lines)
	})

	t.Run("double star recurses", func(t *testing.T) {
		t.Parallel()
		lines, err := sim.LoadLines(fsys, "peers/**/*.txt")
		require.NoError(t, err)
		assert.Equal(t, []string{"first line", "second line", "second file", "nested"}, lines)
	})

	t.Run("no lines", func(t *testing.T) {
		t.Parallel()
		_, err := sim.LoadLines(fsys, "peers/blank/*.txt")
		assert.ErrorIs(t, err, sim.ErrNoLines)

		_, err = sim.LoadLines(fsys, "missing/*.txt")
		assert.ErrorIs(t, err, sim.ErrNoLines)
	})

	t.Run("bad pattern", func(t *testing.T) {
		t.Parallel()
		_, err := sim.LoadLines(fsys, "peers/[.txt")
		assert.Error(t, err)
	})
}
