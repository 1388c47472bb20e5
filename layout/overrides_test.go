package layout_test

import (
	"testing"

	"github.com/fwojciec/ringchat"
	"github.com/fwojciec/ringchat/layout"
	"github.com/stretchr/testify/assert"
)

func TestHeightOverrides_Set(t *testing.T) {
	t.Parallel()

	t.Run("first measurement is stored", func(t *testing.T) {
		t.Parallel()
		o := layout.NewHeightOverrides(0)
		assert.True(t, o.Set("a", 1.2))
		h, ok := o.Height("a")
		assert.True(t, ok)
		assert.Equal(t, 1.2, h)
		assert.Equal(t, 1, o.Len())
	})

	t.Run("changes within tolerance are ignored", func(t *testing.T) {
		t.Parallel()
		o := layout.NewHeightOverrides(layout.DefaultTolerance)
		o.Set("a", 1.2)
		assert.False(t, o.Set("a", 1.21))
		h, _ := o.Height("a")
		assert.Equal(t, 1.2, h)
	})

	t.Run("changes beyond tolerance replace", func(t *testing.T) {
		t.Parallel()
		o := layout.NewHeightOverrides(layout.DefaultTolerance)
		o.Set("a", 1.2)
		assert.True(t, o.Set("a", 1.5))
		h, _ := o.Height("a")
		assert.Equal(t, 1.5, h)
	})

	t.Run("invalid measurements are ignored", func(t *testing.T) {
		t.Parallel()
		o := layout.NewHeightOverrides(0)
		assert.False(t, o.Set("", 1))
		assert.False(t, o.Set("a", 0))
		assert.False(t, o.Set("a", -3))
		assert.Zero(t, o.Len())
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, layout.DefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(*layout.Config)
	}{
		{"zero lane width", func(c *layout.Config) { c.LaneWidth = 0 }},
		{"negative gap", func(c *layout.Config) { c.LaneGap = -1 }},
		{"negative padding", func(c *layout.Config) { c.BubblePaddingY = -0.1 }},
		{"zero line height", func(c *layout.Config) { c.LineHeight = 0 }},
		{"zero max chars", func(c *layout.Config) { c.MaxCharsPerLine = 0 }},
		{"negative spacing", func(c *layout.Config) { c.ItemSpacing = -0.1 }},
		{"negative buffer", func(c *layout.Config) { c.Buffer = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := layout.DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ringchat.ErrValidation)
		})
	}
}
