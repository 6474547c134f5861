package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMixMidpoint(t *testing.T) {
	red, _ := ParseColor("#f00")
	blue, _ := ParseColor("#00f")
	mixed := red.Mix(blue, 0.5)
	assert.Equal(t, "#7f007f", mixed.String())
}

func TestColorRoundTrip(t *testing.T) {
	c, err := ParseColor("rgb(10, 20, 30)")
	assert.NoError(t, err)
	assert.InDelta(t, 10, c.R, 0.001)
	assert.InDelta(t, 20, c.G, 0.001)
	assert.InDelta(t, 30, c.B, 0.001)

	h, s, l := c.ToHSL()
	round := NewHSL(h, s, l)
	assert.InDelta(t, c.R, round.R, 1.0)
	assert.InDelta(t, c.G, round.G, 1.0)
	assert.InDelta(t, c.B, round.B, 1.0)
}

func TestHexShorthandPreserved(t *testing.T) {
	c, err := ParseColor("#333")
	assert.NoError(t, err)
	assert.Equal(t, "#333", c.String())
}

func TestNamedColor(t *testing.T) {
	c, err := ParseColor("red")
	assert.NoError(t, err)
	assert.InDelta(t, 255, c.R, 0.001)
}
