package ringchat

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	SelfBubble int // Border of self-side bubbles
	PeerBubble int // Border of peer-side bubbles
	Sending    int // Pending delivery marker
	Failed     int // Failed delivery marker
	Muted      int // Status bar, placeholders, timestamps
	Accent     int // Links, inline code
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		SelfBubble: 4,
		PeerBubble: 5,
		Sending:    3,
		Failed:     1,
		Muted:      8,
		Accent:     6,
	}
}
