package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ringchat"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	SelfBubble lipgloss.Style
	PeerBubble lipgloss.Style
	Sending    lipgloss.Style
	Failed     lipgloss.Style
	Muted      lipgloss.Style
	Accent     lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t ringchat.Theme) Styles {
	bubble := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return Styles{
		SelfBubble: bubble.BorderForeground(ansiColor(t.SelfBubble)),
		PeerBubble: bubble.BorderForeground(ansiColor(t.PeerBubble)),
		Sending:    lipgloss.NewStyle().Foreground(ansiColor(t.Sending)).Italic(true),
		Failed:     lipgloss.NewStyle().Foreground(ansiColor(t.Failed)).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:     lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
