package bubbletea

import "github.com/fwojciec/ringchat/layout"

// Frame exports the rendered conversation area for testing.
func Frame(m Model) string {
	return m.frame
}

// Viewport exports the scroll controller for testing.
func Viewport(m Model) *layout.Viewport {
	return m.view
}

// Compose exports compose for testing.
func Compose(items []layout.Item, bubbles []string, width, rows int) string {
	return compose(items, bubbles, width, rows)
}
