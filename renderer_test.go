package ledlayers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererPaintsAttachedEffects(t *testing.T) {
	strip := NewMemStrip(4)
	buf, err := New(strip, 2)
	require.Nil(t, err)

	r := NewRenderer(buf, DefaultRefresh)
	require.Nil(t, r.Attach(1, NewSolid(Color{G: 128}, 1.0)))

	hash, err := r.step(time.Now(), []byte{})
	require.Nil(t, err)
	require.NotEmpty(t, hash)

	assert.Equal(t, 1, strip.Writes())
	for i := 0; i != strip.Len(); i++ {
		assert.Equal(t, Color{G: 128}, strip.Pixel(i))
	}
}

func TestRendererSkipsUnchangedFrames(t *testing.T) {
	strip := NewMemStrip(4)
	buf, err := New(strip, 2)
	require.Nil(t, err)

	r := NewRenderer(buf, DefaultRefresh)
	require.Nil(t, r.Attach(0, NewSolid(Color{R: 200}, 1.0)))

	hash, err := r.step(time.Now(), []byte{})
	require.Nil(t, err)
	assert.Equal(t, 1, strip.Writes())

	// The solid settled during the first pass, so the second produces an
	// identical frame and never touches the strip
	hash2, err := r.step(time.Now(), hash)
	require.Nil(t, err)
	assert.Equal(t, hash, hash2)
	assert.Equal(t, 1, strip.Writes())
}

func TestRendererRepaintsChangingFrames(t *testing.T) {
	strip := NewMemStrip(8)
	buf, err := New(strip, 1)
	require.Nil(t, err)

	r := NewRenderer(buf, DefaultRefresh)
	require.Nil(t, r.Attach(0, &Chase{Color: Color{B: 255}, Width: 1, Period: time.Second}))

	start := time.Now()
	hash, err := r.step(start, []byte{})
	require.Nil(t, err)
	assert.Equal(t, 1, strip.Writes())

	hash2, err := r.step(start.Add(500*time.Millisecond), hash)
	require.Nil(t, err)
	assert.NotEqual(t, hash, hash2, "the chase moved so the frame hash changed")
	assert.Equal(t, 2, strip.Writes())
}

func TestRendererSettledEffectKeepsItsFrame(t *testing.T) {
	strip := NewMemStrip(2)
	buf, err := New(strip, 1)
	require.Nil(t, err)

	r := NewRenderer(buf, DefaultRefresh)
	require.Nil(t, r.Attach(0, NewSolid(Color{B: 40}, 1.0)))

	_, err = r.step(time.Now(), []byte{})
	require.Nil(t, err)

	// The effect detached itself, the cells it painted remain
	require.Nil(t, buf.Write())
	assert.Equal(t, Color{B: 40}, strip.Pixel(0))
}

func TestRendererAttachValidation(t *testing.T) {
	buf, err := New(NewMemStrip(2), 2)
	require.Nil(t, err)

	r := NewRenderer(buf, DefaultRefresh)
	assert.NotNil(t, r.Attach(2, NewSolid(Color{}, 1.0)))
	assert.NotNil(t, r.Attach(-1, NewSolid(Color{}, 1.0)))
	assert.NotNil(t, r.Detach(2))
	assert.Nil(t, r.Detach(1))
}

func TestRendererRunStopsOnQuit(t *testing.T) {
	strip := NewMemStrip(2)
	buf, err := New(strip, 1)
	require.Nil(t, err)

	r := NewRenderer(buf, time.Millisecond)
	require.Nil(t, r.Attach(0, NewSolid(Color{R: 1}, 1.0)))

	quitC := make(chan struct{})
	doneC := make(chan struct{})
	go func() {
		r.Run(nil, quitC)
		close(doneC)
	}()

	time.Sleep(20 * time.Millisecond)
	close(quitC)

	select {
	case <-doneC:
	case <-time.After(time.Second):
		t.Fatal("renderer did not stop after quitC closed")
	}

	assert.True(t, strip.Writes() >= 1, "at least one repaint happened while running")
}
