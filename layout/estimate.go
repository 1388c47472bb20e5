package layout

import (
	"strings"

	"github.com/fwojciec/ringchat"
	"github.com/rivo/uniseg"
)

// LineCount estimates how many lines text occupies when word-wrapped at
// maxChars cells. A word joins the current line when the line plus one
// separator plus the word still fits; otherwise it opens a new line. A word
// wider than maxChars starts on its own line and is hard-broken every
// maxChars cells. Empty or blank text is one line.
func LineCount(text string, maxChars int) int {
	maxChars = max(maxChars, 1)
	lines, lineLen := 1, 0
	for _, word := range strings.Fields(text) {
		w := uniseg.StringWidth(word)
		switch {
		case w > maxChars:
			if lineLen > 0 {
				lines++
			}
			lines += (w - 1) / maxChars
			lineLen = w - (w-1)/maxChars*maxChars
		case lineLen == 0:
			lineLen = w
		case lineLen+1+w <= maxChars:
			lineLen += 1 + w
		default:
			lines++
			lineLen = w
		}
	}
	return lines
}

// EstimateHeight returns the estimated bubble height for text.
func EstimateHeight(text string, cfg Config) float64 {
	lines := LineCount(text, cfg.MaxCharsPerLine)
	return max(0, 2*cfg.BubblePaddingY+float64(lines)*cfg.LineHeight)
}

// heights returns the height of every message, preferring measured values.
func heights(messages []ringchat.Message, cfg Config, overrides Heights) []float64 {
	hs := make([]float64, len(messages))
	for i, m := range messages {
		if h, ok := lookup(overrides, m.ID); ok {
			hs[i] = h
			continue
		}
		hs[i] = EstimateHeight(m.Text, cfg)
	}
	return hs
}

func lookup(overrides Heights, id string) (float64, bool) {
	if overrides == nil {
		return 0, false
	}
	h, ok := overrides.Height(id)
	if !ok || h <= 0 {
		return 0, false
	}
	return h, true
}

func total(hs []float64, spacing float64) float64 {
	var sum float64
	for i, h := range hs {
		sum += h
		if i < len(hs)-1 {
			sum += spacing
		}
	}
	return sum
}

// TotalHeight returns the height of the whole message stack, including the
// spacing between consecutive items.
func TotalHeight(messages []ringchat.Message, cfg Config, overrides Heights) float64 {
	return total(heights(messages, cfg, overrides), max(0, cfg.ItemSpacing))
}

// MaxScroll returns the largest scroll offset that keeps the oldest message
// reachable: max(0, TotalHeight - viewportHeight).
func MaxScroll(messages []ringchat.Message, cfg Config, viewportHeight float64, overrides Heights) float64 {
	return max(0, TotalHeight(messages, cfg, overrides)-viewportHeight)
}
