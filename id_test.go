package ringchat_test

import (
	"testing"
	"time"

	"github.com/fwojciec/ringchat"
	"github.com/stretchr/testify/assert"
)

func TestCounterIDs_NewID(t *testing.T) {
	t.Parallel()

	t.Run("same millisecond never collides", func(t *testing.T) {
		t.Parallel()
		ids := ringchat.NewCounterIDs(func() time.Time { return epoch })
		a := ids.NewID(ringchat.PrefixClient)
		b := ids.NewID(ringchat.PrefixClient)
		assert.NotEqual(t, a, b)
		assert.Equal(t, "client-1772366400000-1", a)
		assert.Equal(t, "client-1772366400000-2", b)
	})

	t.Run("prefix is kept", func(t *testing.T) {
		t.Parallel()
		ids := ringchat.NewCounterIDs(nil)
		assert.Regexp(t, `^server-\d+-1$`, ids.NewID(ringchat.PrefixServer))
	})
}

func TestStatus_Terminal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		status ringchat.Status
		want   bool
	}{
		{ringchat.StatusSending, false},
		{ringchat.StatusSent, true},
		{ringchat.StatusFailed, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.status.Terminal())
		})
	}
}

func TestEvent_Type(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "message:added", ringchat.EventMessageAdded{}.Type())
	assert.Equal(t, "message:updated", ringchat.EventMessageUpdated{}.Type())
}

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	theme := ringchat.DefaultTheme()

	assert.Equal(t, 4, theme.SelfBubble)
	assert.Equal(t, 5, theme.PeerBubble)
	assert.Equal(t, 3, theme.Sending)
	assert.Equal(t, 1, theme.Failed)
	assert.Equal(t, 8, theme.Muted)
	assert.Equal(t, 6, theme.Accent)
}
