package layout

import "github.com/fwojciec/ringchat"

// Item is the placement of one visible message. X and Y are the bubble
// center, W and H its footprint.
type Item struct {
	ID     string
	Side   ringchat.Side
	X, Y   float64
	W, H   float64
	Text   string
	Status ringchat.Status
}

// Heights supplies measured bubble heights by message id.
type Heights interface {
	Height(id string) (float64, bool)
}

// HeightMap is a plain Heights.
type HeightMap map[string]float64

// Height implements Heights.
func (m HeightMap) Height(id string) (float64, bool) {
	h, ok := m[id]
	return h, ok
}

// LaneX returns the horizontal center of the lane for side.
func LaneX(side ringchat.Side, cfg Config) float64 {
	x := cfg.LaneGap/2 + cfg.LaneWidth/2
	if side == ringchat.SidePeer {
		return -x
	}
	return x
}

// Layout returns the placements of the messages visible at scroll within a
// viewport of the given height, in message order. overrides may be nil.
//
// Layout is pure: equal inputs yield equal outputs.
func Layout(messages []ringchat.Message, cfg Config, scroll, viewportHeight float64, overrides Heights) []Item {
	hs := heights(messages, cfg, overrides)
	spacing := max(0, cfg.ItemSpacing)
	buffer := max(0, cfg.Buffer)

	const bottomEdge = 0.0
	cursor := bottomEdge + total(hs, spacing)

	var items []Item
	for i, m := range messages {
		h := hs[i]
		cursor -= h / 2
		center := cursor
		cursor -= h / 2
		if i < len(messages)-1 {
			cursor -= spacing
		}

		y := center - scroll
		top, bottom := y+h/2, y-h/2
		if top < -buffer || bottom > viewportHeight+buffer {
			continue
		}
		items = append(items, Item{
			ID:     m.ID,
			Side:   m.Side,
			X:      LaneX(m.Side, cfg),
			Y:      y,
			W:      cfg.LaneWidth,
			H:      h,
			Text:   m.Text,
			Status: m.Status,
		})
	}
	return items
}
