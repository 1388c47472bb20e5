package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ringchat"
	"github.com/fwojciec/ringchat/layout"
	"github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

const (
	// maxPasses bounds the measure and relayout loop of one update.
	maxPasses = 3

	wheelStep = 3

	// chromeHeight is the status line plus the input line.
	chromeHeight = 2

	retryCommand = "/retry"
)

// Model is the Bubble Tea model for the ringchat TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model

	bridge *ringchat.Bridge
	store  *ringchat.Store
	events <-chan ringchat.TransportEvent
	view   *layout.Viewport
	theme  ringchat.Theme
	styles Styles

	width  int
	rows   int
	frame  string
	notice string
	err    error
	ready  bool
}

// New creates a TUI Model. Transport events read from events are applied to
// the bridge's Store on the Bubble Tea goroutine; see Forward. events may be
// nil when nothing arrives asynchronously.
func New(bridge *ringchat.Bridge, events <-chan ringchat.TransportEvent, theme ringchat.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = "› "
	ti.Focus()
	ti.CharLimit = 0

	view := layout.NewViewport(CellConfig(80), 1)
	store := bridge.Store()
	store.Subscribe(func(ringchat.Event, []ringchat.Message) {
		view.Invalidate()
	})

	return Model{
		Input:  ti,
		bridge: bridge,
		store:  store,
		events: events,
		view:   view,
		theme:  theme,
		styles: NewStyles(theme),
	}
}

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenForEvent(m.events))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.rows = max(msg.Height-chromeHeight, 1)
		m.view.Resize(CellConfig(msg.Width), float64(m.rows))
		m.Input.Width = max(msg.Width-lipgloss.Width(m.Input.Prompt)-1, 1)
		m.ready = true
		return m.relayout(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.scroll(wheelStep), nil
		case tea.MouseButtonWheelDown:
			return m.scroll(-wheelStep), nil
		}
		return m, nil

	case TransportEventMsg:
		m.bridge.Dispatch(msg.Event)
		return m.relayout(), listenForEvent(m.events)
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		m.Input.SetValue("")
		m.err = nil
		m.notice = ""
		if text == retryCommand {
			m = m.retryLast()
		} else {
			m.bridge.Send(text)
		}
		return m.relayout(), nil

	case tea.KeyPgUp:
		return m.scroll(max(m.rows/2, 1)), nil
	case tea.KeyPgDown:
		return m.scroll(-max(m.rows/2, 1)), nil
	case tea.KeyUp:
		return m.scroll(1), nil
	case tea.KeyDown:
		return m.scroll(-1), nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// retryLast re-sends the most recent failed outgoing message.
func (m Model) retryLast() Model {
	msgs := m.store.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Side != ringchat.SideSelf || msgs[i].Status != ringchat.StatusFailed {
			continue
		}
		if _, err := m.bridge.Retry(msgs[i].ID); err != nil {
			m.err = err
		}
		return m
	}
	m.notice = "nothing to retry"
	return m
}

// scroll moves the view by delta rows, positive towards older messages.
func (m Model) scroll(delta int) Model {
	if !m.ready {
		return m
	}
	m.view.ScrollBy(m.store.Messages(), float64(delta))
	return m.relayout()
}

// relayout lays out the visible messages, renders them and feeds the
// rendered heights back until the layout settles.
func (m Model) relayout() Model {
	if !m.ready {
		return m
	}
	msgs := m.store.Messages()
	for range maxPasses {
		items := m.view.Items(msgs)
		bubbles := make([]string, len(items))
		for i, it := range items {
			bubbles[i] = renderBubble(it, m.theme, m.styles)
			m.view.Measure(it.ID, float64(lipgloss.Height(bubbles[i])))
		}
		m.frame = compose(items, bubbles, m.width, m.rows)
		if !m.view.Dirty() {
			break
		}
	}
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Failed.Render(runewidth.Truncate(fmt.Sprintf("Error: %v", m.err), m.width, "…"))
	}

	var sending, failed int
	msgs := m.store.Messages()
	for _, msg := range msgs {
		switch msg.Status {
		case ringchat.StatusSending:
			sending++
		case ringchat.StatusFailed:
			failed++
		}
	}

	parts := []string{fmt.Sprintf("%d messages", len(msgs))}
	if sending > 0 {
		parts = append(parts, fmt.Sprintf("%d sending", sending))
	}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	if !m.view.StickToBottom() {
		parts = append(parts, "scrolled ↑")
	}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	parts = append(parts, "Enter to send, /retry, PgUp/PgDn to scroll, Ctrl+C to quit")
	return m.styles.Muted.Render(runewidth.Truncate(strings.Join(parts, " · "), m.width, "…"))
}
