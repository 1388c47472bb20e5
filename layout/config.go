// Package layout places chat messages as bubbles in a scrolling viewport.
//
// Messages stack bottom-to-top: the last message sits on the bottom edge of
// the viewport and earlier ones stack above it. Coordinates are viewport
// local, with y = 0 at the bottom edge and y = viewportHeight at the top; x is
// measured from the horizontal center. Only items intersecting the viewport,
// extended by Config.Buffer on both sides, are returned.
//
// Heights are estimated from text by word wrapping and can be corrected with
// measured values through HeightOverrides.
package layout

import (
	"fmt"

	"github.com/fwojciec/ringchat"
)

// Config holds the geometry of the chat panel. Units are arbitrary but must
// agree with the viewport height passed to Layout.
type Config struct {
	LaneWidth       float64 // Width of every bubble
	LaneGap         float64 // Horizontal gap between the two lanes
	BubblePaddingX  float64 // Horizontal text inset; informational for renderers
	BubblePaddingY  float64 // Vertical text inset, counted twice per bubble
	LineHeight      float64
	MaxCharsPerLine int
	ItemSpacing     float64 // Vertical gap between consecutive bubbles
	Buffer          float64 // Virtualization margin above and below the viewport
}

// DefaultConfig returns the geometry of the 3D chat panel, in scene units.
func DefaultConfig() Config {
	return Config{
		LaneWidth:       2.8,
		LaneGap:         0.4,
		BubblePaddingX:  0.3,
		BubblePaddingY:  0.2,
		LineHeight:      0.27,
		MaxCharsPerLine: 24,
		ItemSpacing:     0.18,
		Buffer:          1.0,
	}
}

// Validate reports values that make the layout degenerate. Layout itself
// never fails on such values; it clamps them.
func (c Config) Validate() error {
	switch {
	case c.LaneWidth <= 0:
		return fmt.Errorf("lane width must be positive, got %g: %w", c.LaneWidth, ringchat.ErrValidation)
	case c.LaneGap < 0:
		return fmt.Errorf("lane gap must be non-negative, got %g: %w", c.LaneGap, ringchat.ErrValidation)
	case c.BubblePaddingX < 0 || c.BubblePaddingY < 0:
		return fmt.Errorf("bubble padding must be non-negative, got (%g, %g): %w", c.BubblePaddingX, c.BubblePaddingY, ringchat.ErrValidation)
	case c.LineHeight <= 0:
		return fmt.Errorf("line height must be positive, got %g: %w", c.LineHeight, ringchat.ErrValidation)
	case c.MaxCharsPerLine < 1:
		return fmt.Errorf("max chars per line must be at least 1, got %d: %w", c.MaxCharsPerLine, ringchat.ErrValidation)
	case c.ItemSpacing < 0:
		return fmt.Errorf("item spacing must be non-negative, got %g: %w", c.ItemSpacing, ringchat.ErrValidation)
	case c.Buffer < 0:
		return fmt.Errorf("buffer must be non-negative, got %g: %w", c.Buffer, ringchat.ErrValidation)
	}
	return nil
}
