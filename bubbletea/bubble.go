package bubbletea

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/ringchat"
	"github.com/fwojciec/ringchat/goldmark"
	"github.com/fwojciec/ringchat/layout"
)

// Terminal geometry. Layout units are cells: one row per line, one column
// per cell.
const (
	laneGap      = 2
	maxLaneWidth = 44
	minLaneWidth = 8

	// bubbleFrameX is the border plus padding on each side of a bubble.
	bubbleFrameX = 2
)

// CellConfig returns the layout configuration for a terminal width columns
// wide. The border accounts for one row above and below the text; status
// footers are not estimated and come in through measurement.
func CellConfig(width int) layout.Config {
	lane := max(min(maxLaneWidth, (width-laneGap)/2), minLaneWidth)
	return layout.Config{
		LaneWidth:       float64(lane),
		LaneGap:         laneGap,
		BubblePaddingX:  1,
		BubblePaddingY:  1,
		LineHeight:      1,
		MaxCharsPerLine: lane - 2*bubbleFrameX,
		ItemSpacing:     1,
		Buffer:          2,
	}
}

// renderBubble draws one layout item. Outgoing bubbles carry a delivery
// footer.
func renderBubble(it layout.Item, theme ringchat.Theme, styles Styles) string {
	inner := max(int(it.W)-2*bubbleFrameX, 1)
	body := goldmark.Render(it.Text, inner, theme)
	style := styles.PeerBubble
	if it.Side == ringchat.SideSelf {
		style = styles.SelfBubble
		body += "\n" + lipgloss.PlaceHorizontal(inner, lipgloss.Right, statusMarker(it.Status, styles))
	}
	return style.Width(int(it.W) - 2).Render(body)
}

func statusMarker(s ringchat.Status, styles Styles) string {
	switch s {
	case ringchat.StatusSending:
		return styles.Sending.Render("sending…")
	case ringchat.StatusFailed:
		return styles.Failed.Render("failed · /retry")
	default:
		return styles.Muted.Render("sent")
	}
}

type segment struct {
	col  int
	text string
}

// compose places rendered bubbles on a canvas of rows×width cells. Layout y
// grows upwards from the bottom edge; canvas rows grow downwards. Where
// bubbles collide on a row, the earlier one wins.
func compose(items []layout.Item, bubbles []string, width, rows int) string {
	canvas := make([][]segment, rows)
	center := float64(width) / 2
	for i, it := range items {
		top := rows - int(math.Round(it.Y+it.H/2))
		col := max(int(math.Round(center+it.X-it.W/2)), 0)
		for j, line := range strings.Split(bubbles[i], "\n") {
			r := top + j
			if r < 0 || r >= rows {
				continue
			}
			canvas[r] = append(canvas[r], segment{col: col, text: line})
		}
	}

	out := make([]string, rows)
	for r, segs := range canvas {
		slices.SortStableFunc(segs, func(a, b segment) int { return a.col - b.col })
		var b strings.Builder
		cur := 0
		for _, s := range segs {
			if s.col < cur || s.col >= width {
				continue
			}
			text := s.text
			if lipgloss.Width(text) > width-s.col {
				text = ansi.Truncate(text, width-s.col, "")
			}
			w := lipgloss.Width(text)
			b.WriteString(strings.Repeat(" ", s.col-cur))
			b.WriteString(text)
			cur = s.col + w
		}
		out[r] = b.String()
	}
	return strings.Join(out, "\n")
}
