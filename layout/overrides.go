package layout

// DefaultTolerance is the smallest height change HeightOverrides accepts for
// an already measured message.
const DefaultTolerance = 0.02

// HeightOverrides caches measured bubble heights by message id. Entries stay
// until Reset. A new measurement replaces the cached one only when it
// differs by more than the tolerance, so measurement noise does not trigger
// relayout.
type HeightOverrides struct {
	tolerance float64
	heights   map[string]float64
}

// NewHeightOverrides creates an empty cache. A non-positive tolerance uses
// DefaultTolerance.
func NewHeightOverrides(tolerance float64) *HeightOverrides {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &HeightOverrides{tolerance: tolerance, heights: make(map[string]float64)}
}

// Set records a measurement and reports whether the cache changed. Empty ids
// and non-positive heights are ignored.
func (o *HeightOverrides) Set(id string, h float64) bool {
	if id == "" || h <= 0 {
		return false
	}
	if cur, ok := o.heights[id]; ok && abs(cur-h) <= o.tolerance {
		return false
	}
	o.heights[id] = h
	return true
}

// Height implements Heights.
func (o *HeightOverrides) Height(id string) (float64, bool) {
	h, ok := o.heights[id]
	return h, ok
}

// Reset drops every measurement.
func (o *HeightOverrides) Reset() {
	clear(o.heights)
}

// Len returns the number of measured messages.
func (o *HeightOverrides) Len() int { return len(o.heights) }

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

var _ Heights = (*HeightOverrides)(nil)
