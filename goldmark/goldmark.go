// Package goldmark renders the markdown of a chat bubble to ANSI-styled
// terminal text using goldmark for parsing and lipgloss for styling.
//
// Chat text is short and mostly inline, so block structure is flattened:
// headings render as bold paragraphs, lists get a bullet or number prefix
// and code blocks keep their lines behind a gutter.
package goldmark

import (
	"strings"

	"github.com/fwojciec/ringchat"
)

// Render parses markdown source and returns styled text wrapped to width
// cells. Blank source renders as the empty string.
func Render(source string, width int, theme ringchat.Theme) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	if width <= 0 {
		width = 1
	}
	return newRenderer(theme).render([]byte(source), width)
}
