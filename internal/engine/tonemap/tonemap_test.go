package tonemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{None, Linear, Reinhard, ACESFilmic} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode(" ACES ")
	require.NoError(t, err)
	assert.Equal(t, ACESFilmic, got)

	_, err = ParseMode("filmic")
	assert.Error(t, err)
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestApplyNoneIsIdentity(t *testing.T) {
	c := [3]float32{2, 0.5, -1}
	assert.Equal(t, c, Apply(None, c, 3))
}

func TestApplyLinearAndReinhard(t *testing.T) {
	assert.Equal(t, [3]float32{0.5, 1, 0}, Apply(Linear, [3]float32{0.25, 4, -1}, 2))

	got := Apply(Reinhard, [3]float32{1, 3, 0}, 1)
	assert.InDelta(t, 0.5, got[0], 1e-6)
	assert.InDelta(t, 0.75, got[1], 1e-6)
	assert.InDelta(t, 0, got[2], 1e-6)
}

func TestACESFilmic(t *testing.T) {
	black := Apply(ACESFilmic, [3]float32{}, 1)
	for _, v := range black {
		assert.InDelta(t, 0, v, 1e-3)
	}

	white := Apply(ACESFilmic, [3]float32{100, 100, 100}, 1)
	for _, v := range white {
		assert.InDelta(t, 1, v, 1e-6, "saturates")
	}

	// Mid grey lands in the lower-middle of the curve and stays neutral.
	grey := Apply(ACESFilmic, [3]float32{0.18, 0.18, 0.18}, 1)
	assert.Greater(t, grey[0], float32(0.15))
	assert.Less(t, grey[0], float32(0.4))
	assert.InDelta(t, grey[0], grey[1], 1e-3)
	assert.InDelta(t, grey[1], grey[2], 1e-3)

	// Monotonic in exposure.
	var prev float32
	for _, e := range []float32{0.25, 0.5, 1, 2, 4} {
		v := Apply(ACESFilmic, [3]float32{0.18, 0.18, 0.18}, e)[0]
		assert.Greater(t, v, prev)
		prev = v
	}
}

func TestLinearToSRGB(t *testing.T) {
	assert.InDelta(t, 0, LinearToSRGB(0), 1e-7)
	assert.InDelta(t, 1, LinearToSRGB(1), 1e-5)
	assert.InDelta(t, 0.0031308*12.92, LinearToSRGB(0.0031308), 1e-6)
	assert.InDelta(t, 0.7354, LinearToSRGB(0.5), 1e-3)
}
