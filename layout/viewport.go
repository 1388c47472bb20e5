package layout

import "github.com/fwojciec/ringchat"

// stickEpsilon is the scroll offset under which the view counts as resting
// on the bottom.
const stickEpsilon = 0.001

// Viewport tracks scroll state for a chat panel and decides when a new
// layout pass is needed. While the view rests on the bottom it follows new
// content; once scrolled up it stays where the user left it.
//
// Viewport is not safe for concurrent use.
type Viewport struct {
	cfg       Config
	height    float64
	overrides *HeightOverrides

	scroll    float64
	maxScroll float64
	stick     bool
	dirty     bool
}

// NewViewport creates a Viewport of the given height resting on the bottom.
func NewViewport(cfg Config, height float64) *Viewport {
	return &Viewport{
		cfg:       cfg,
		height:    height,
		overrides: NewHeightOverrides(DefaultTolerance),
		stick:     true,
		dirty:     true,
	}
}

// Config returns the layout configuration.
func (v *Viewport) Config() Config { return v.cfg }

// Height returns the viewport height.
func (v *Viewport) Height() float64 { return v.height }

// Scroll returns the current scroll offset.
func (v *Viewport) Scroll() float64 { return v.scroll }

// MaxScroll returns the scroll bound computed by the last ScrollBy or Items.
func (v *Viewport) MaxScroll() float64 { return v.maxScroll }

// StickToBottom reports whether the view follows new content.
func (v *Viewport) StickToBottom() bool { return v.stick }

// Dirty reports whether Items must be called again.
func (v *Viewport) Dirty() bool { return v.dirty }

// Overrides returns the measured heights.
func (v *Viewport) Overrides() *HeightOverrides { return v.overrides }

// Resize changes the viewport height and configuration. Measurements are
// dropped when the configuration changes, since bubble geometry does too.
func (v *Viewport) Resize(cfg Config, height float64) {
	if cfg != v.cfg {
		v.overrides.Reset()
	}
	v.cfg = cfg
	v.height = height
	v.dirty = true
}

// Invalidate marks the layout stale after the message list changed. The
// view keeps following the bottom only if it was resting there.
func (v *Viewport) Invalidate() {
	v.stick = v.scroll <= stickEpsilon
	v.dirty = true
}

// Measure records the rendered height of message id.
func (v *Viewport) Measure(id string, h float64) {
	if v.overrides.Set(id, h) {
		v.dirty = true
	}
}

// ScrollBy moves the view by delta, positive towards older messages, and
// clamps the offset into [0, MaxScroll].
func (v *Viewport) ScrollBy(messages []ringchat.Message, delta float64) {
	v.maxScroll = MaxScroll(messages, v.cfg, v.height, v.overrides)
	v.scroll = min(max(0, v.scroll+delta), v.maxScroll)
	v.stick = v.scroll <= stickEpsilon
	v.dirty = true
}

// Items runs a layout pass and clears the dirty flag.
func (v *Viewport) Items(messages []ringchat.Message) []Item {
	if v.stick {
		v.scroll = 0
	}
	v.maxScroll = MaxScroll(messages, v.cfg, v.height, v.overrides)
	if !v.stick {
		v.scroll = min(max(0, v.scroll), v.maxScroll)
	}
	v.dirty = false
	return Layout(messages, v.cfg, v.scroll, v.height, v.overrides)
}
