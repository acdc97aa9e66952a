package ledlayers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	strip := NewMemStrip(12)
	buf, err := New(strip, DefaultLayers)
	require.Nil(t, err)

	assert.Equal(t, 12, buf.Pixels())
	assert.Equal(t, DefaultLayers, buf.Layers())
	assert.Equal(t, DefaultLayers-1, buf.CurrentLayer(), "cursor starts on the bottom-most layer")
	assert.Equal(t, 0, strip.Writes(), "construction performs no I/O")
}

func TestNewRejectsZeroLayers(t *testing.T) {
	_, err := New(NewMemStrip(4), 0)
	assert.NotNil(t, err)

	_, err = New(NewMemStrip(4), -2)
	assert.NotNil(t, err)
}

func TestSetLayer(t *testing.T) {
	buf, err := New(NewMemStrip(4), 4)
	require.Nil(t, err)

	require.Nil(t, buf.SetLayer(0))
	assert.Equal(t, 0, buf.CurrentLayer())

	for _, layer := range []int{-1, 4, 99} {
		assert.NotNil(t, buf.SetLayer(layer), "layer %d", layer)
		assert.Equal(t, 0, buf.CurrentLayer(), "cursor untouched after a failed select")
	}
}

func TestSetTargetsCursor(t *testing.T) {
	strip := NewMemStrip(4)
	buf, err := New(strip, 4)
	require.Nil(t, err)

	// Bottom layer by default, then a translucent green on top of it
	require.Nil(t, buf.Set(0, Color{R: 255}, 1.0))
	require.Nil(t, buf.SetLayer(0))
	require.Nil(t, buf.Set(0, Color{G: 255}, 0.5))
	require.Nil(t, buf.Write())

	assert.Equal(t, Color{R: 127, G: 127}, strip.Pixel(0))
}

func TestSetOverwrites(t *testing.T) {
	strip := NewMemStrip(2)
	buf, err := New(strip, 2)
	require.Nil(t, err)

	require.Nil(t, buf.SetOn(0, 1, Color{R: 10}, 0.2))
	require.Nil(t, buf.SetOn(0, 1, Color{B: 42}, 1.0))
	require.Nil(t, buf.Write())

	assert.Equal(t, Color{B: 42}, strip.Pixel(1))
}

func TestSetValidation(t *testing.T) {
	strip := NewMemStrip(4)
	buf, err := New(strip, 2)
	require.Nil(t, err)

	tests := []struct {
		name  string
		layer int
		pixel int
	}{
		{"layer too high", 2, 0},
		{"layer negative", -1, 0},
		{"pixel too high", 0, 4},
		{"pixel negative", 0, -1},
	}

	for _, tt := range tests {
		assert.NotNil(t, buf.SetOn(tt.layer, tt.pixel, Color{R: 1}, 1.0), tt.name)
	}

	assert.NotNil(t, buf.Set(4, Color{R: 1}, 1.0), "cursor writes validate the pixel too")

	// Nothing above may have touched the grid
	require.Nil(t, buf.Write())
	for i := 0; i != strip.Len(); i++ {
		assert.Equal(t, Color{}, strip.Pixel(i))
	}
}

func TestClearLayer(t *testing.T) {
	strip := NewMemStrip(4)
	buf, err := New(strip, 2)
	require.Nil(t, err)

	require.Nil(t, buf.SetOn(1, 0, Color{G: 77}, 1.0))
	require.Nil(t, buf.SetOn(0, 0, Color{R: 200}, 1.0))
	require.Nil(t, buf.Clear(0))
	require.Nil(t, buf.Write())

	assert.Equal(t, Color{G: 77}, strip.Pixel(0), "clearing one layer leaves the others alone")

	assert.NotNil(t, buf.Clear(2))
	assert.NotNil(t, buf.Clear(-1))
}

func TestClearTo(t *testing.T) {
	strip := NewMemStrip(1)
	buf, err := New(strip, 4)
	require.Nil(t, err)

	colors := []Color{{R: 255}, {G: 255}, {B: 255}, {R: 255, G: 255, B: 255}}
	for layer, c := range colors {
		require.Nil(t, buf.SetOn(layer, 0, c, 1.0))
	}

	require.Nil(t, buf.ClearTo(2))
	require.Nil(t, buf.Write())
	assert.Equal(t, Color{B: 255}, strip.Pixel(0), "layers 0 and 1 cleared, layer 2 now in front")

	require.Nil(t, buf.Clear(2))
	require.Nil(t, buf.Write())
	assert.Equal(t, Color{R: 255, G: 255, B: 255}, strip.Pixel(0), "layer 3 was never touched")

	assert.NotNil(t, buf.ClearTo(4))
}

func TestFade(t *testing.T) {
	buf, err := New(NewMemStrip(3), 2)
	require.Nil(t, err)

	require.Nil(t, buf.SetOn(0, 0, Color{R: 100}, 0.8))
	require.Nil(t, buf.SetOn(0, 2, Color{G: 100}, 0.4))
	require.Nil(t, buf.SetOn(1, 0, Color{B: 100}, 0.6))

	require.Nil(t, buf.Fade(0, 0.5))

	assert.InDelta(t, 0.4, buf.at(0, 0).Alpha, 1e-9)
	assert.InDelta(t, 0.2, buf.at(2, 0).Alpha, 1e-9)
	assert.Equal(t, Color{R: 100}, buf.at(0, 0).Color, "fade never touches color channels")
	assert.InDelta(t, 0.6, buf.at(0, 1).Alpha, 1e-9, "other layers are untouched")
	assert.False(t, buf.at(1, 0).on, "untouched cells stay empty")
}

func TestFadeClampsAtFull(t *testing.T) {
	buf, err := New(NewMemStrip(2), 1)
	require.Nil(t, err)

	require.Nil(t, buf.SetOn(0, 0, Color{R: 9}, 0.9))
	require.Nil(t, buf.SetOn(0, 1, Color{G: 9}, 0.1))

	for _, scale := range []float64{1.0, 1.5} {
		require.Nil(t, buf.Fade(0, scale))
		assert.Equal(t, 0.0, buf.at(0, 0).Alpha, "scale %v", scale)
		assert.Equal(t, 0.0, buf.at(1, 0).Alpha, "scale %v", scale)
	}

	assert.NotNil(t, buf.Fade(1, 0.5))
}

func TestRoundTripToEmpty(t *testing.T) {
	strip := NewMemStrip(6)
	buf, err := New(strip, 3)
	require.Nil(t, err)

	require.Nil(t, buf.SetOn(1, 2, Color{R: 50, G: 60, B: 70}, 0.3))
	require.Nil(t, buf.SetOn(1, 2, Color{R: 50, G: 60, B: 70}, 0.3))
	require.Nil(t, buf.Clear(1))
	require.Nil(t, buf.Write())

	fresh := NewMemStrip(6)
	freshBuf, err := New(fresh, 3)
	require.Nil(t, err)
	require.Nil(t, freshBuf.Write())

	assert.Equal(t, fresh.Snapshot(), strip.Snapshot(), "cleared state is indistinguishable from never written")
}

func TestWriteThroughVariantsFlushOnce(t *testing.T) {
	strip := NewMemStrip(4)
	buf, err := New(strip, 4)
	require.Nil(t, err)

	require.Nil(t, buf.SetW(0, Color{R: 1}, 1.0))
	assert.Equal(t, 1, strip.Writes())

	require.Nil(t, buf.SetOnW(0, 1, Color{G: 1}, 1.0))
	assert.Equal(t, 2, strip.Writes())

	require.Nil(t, buf.FadeW(0, 0.5))
	assert.Equal(t, 3, strip.Writes())

	require.Nil(t, buf.ClearToW(2))
	assert.Equal(t, 4, strip.Writes())

	require.Nil(t, buf.ClearW(3))
	assert.Equal(t, 5, strip.Writes())
}

func TestWriteThroughSkipsFlushOnError(t *testing.T) {
	strip := NewMemStrip(4)
	buf, err := New(strip, 2)
	require.Nil(t, err)

	assert.NotNil(t, buf.SetW(9, Color{R: 1}, 1.0))
	assert.NotNil(t, buf.SetOnW(5, 0, Color{R: 1}, 1.0))
	assert.NotNil(t, buf.ClearW(5))
	assert.NotNil(t, buf.ClearToW(-1))
	assert.NotNil(t, buf.FadeW(5, 0.5))

	assert.Equal(t, 0, strip.Writes())
}
