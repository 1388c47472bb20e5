package bubbletea_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ringchat"
	bt "github.com/fwojciec/ringchat/bubbletea"
	"github.com/fwojciec/ringchat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type sent struct{ text, clientID string }

// harness wires a Store with sequential ids to a recording mock transport.
type harness struct {
	transport *mock.Transport
	store     *ringchat.Store
	bridge    *ringchat.Bridge
	sent      []sent
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{}
	n := 0
	ids := &mock.IDSource{NewIDFn: func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}}
	h.store = ringchat.NewStore(
		ringchat.WithIDSource(ids),
		ringchat.WithClock(func() time.Time { return epoch }),
	)
	h.transport = &mock.Transport{SendFn: func(text, clientID string) {
		h.sent = append(h.sent, sent{text, clientID})
	}}
	h.bridge = ringchat.NewBridge(h.store, h.transport)
	return h
}

// initModel creates a model and sends a WindowSizeMsg to lay it out.
func initModel(t *testing.T, h *harness, width, height int) bt.Model {
	t.Helper()
	m := bt.New(h.bridge, nil, ringchat.DefaultTheme())
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// submit types text into the input and presses Enter.
func submit(t *testing.T, m bt.Model, text string) bt.Model {
	t.Helper()
	m.Input.SetValue(text)
	return updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

// findLine returns the row and cell column of the first occurrence of s in
// the frame.
func findLine(t *testing.T, frame, s string) (row, col int) {
	t.Helper()
	for i, line := range strings.Split(frame, "\n") {
		if idx := strings.Index(line, s); idx >= 0 {
			return i, lipgloss.Width(line[:idx])
		}
	}
	t.Fatalf("%q not found in frame:\n%s", s, frame)
	return -1, -1
}

func TestForward(t *testing.T) {
	t.Parallel()

	tr := &mock.Transport{}
	events, stop := bt.Forward(tr, 4)

	tr.Emit(ringchat.TransportReceive{Text: "hi"})
	require.Len(t, events, 1)
	assert.Equal(t, ringchat.TransportReceive{Text: "hi"}, <-events)

	stop()
	stop()
	tr.Emit(ringchat.TransportReceive{Text: "late"})
	assert.Empty(t, events)
}
