// Package bubbletea provides the Bubble Tea TUI for ringchat. It draws the
// visible part of the conversation as bubbles in two lanes and feeds the
// rendered bubble heights back into the layout.
package bubbletea

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ringchat"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// TransportEventMsg wraps a transport event for delivery to the Bubble Tea
// model.
type TransportEventMsg struct {
	Event ringchat.TransportEvent
}

// Forward subscribes to t and hands its events over a channel of the given
// capacity, so they can be applied on the Bubble Tea goroutine. Handlers
// block while the channel is full. stop unsubscribes and releases blocked
// handlers; it is safe to call more than once.
func Forward(t ringchat.Transport, capacity int) (events <-chan ringchat.TransportEvent, stop func()) {
	ch := make(chan ringchat.TransportEvent, capacity)
	done := make(chan struct{})
	unsubscribe := t.Subscribe(func(evt ringchat.TransportEvent) {
		select {
		case ch <- evt:
		case <-done:
		}
	})
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			unsubscribe()
			close(done)
		})
	}
}

// listenForEvent waits for the next transport event. A closed or nil
// channel ends listening.
func listenForEvent(ch <-chan ringchat.TransportEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return nil
		}
		return TransportEventMsg{Event: evt}
	}
}
