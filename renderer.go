package ledlayers

// This file contains the refresh loop that drives attached effects and
// composites their output onto the strip at a fixed cadence

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cnf/structhash"
	"github.com/karlmutch/errors"
)

// DefaultRefresh is the repaint interval used when a Renderer is created
// without one
const DefaultRefresh = 50 * time.Millisecond

// Renderer binds effects to the layers of a Buffer and repaints the strip
// on a fixed refresh interval. Frames that hash identically to the last
// transmitted frame skip the hardware write, so an idle scene generates no
// strip traffic.
//
// The renderer assumes it is the buffer's only writer while running.
type Renderer struct {
	buf     *Buffer
	refresh time.Duration

	// Indexed by layer, nil where no effect is attached
	effects []Effect
	frames  [][]*Cell

	sync.Mutex
}

// NewRenderer creates a renderer over a buffer. A refresh of zero or less
// selects DefaultRefresh.
func NewRenderer(buf *Buffer, refresh time.Duration) (r *Renderer) {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}

	frames := make([][]*Cell, buf.Layers())
	for i := range frames {
		frames[i] = make([]*Cell, buf.Pixels())
	}

	return &Renderer{
		buf:     buf,
		refresh: refresh,
		effects: make([]Effect, buf.Layers()),
		frames:  frames,
	}
}

// Attach binds an effect to a layer, replacing any effect already there.
// Effects can be attached and detached while the renderer is running.
func (r *Renderer) Attach(layer int, effect Effect) (err errors.Error) {
	if err = r.buf.checkLayer(layer); err != nil {
		return err
	}
	r.Lock()
	r.effects[layer] = effect
	r.Unlock()
	return nil
}

// Detach removes a layer's effect. The layer keeps whatever cells the
// effect last painted; Clear the layer on the buffer to black it out.
func (r *Renderer) Detach(layer int) (err errors.Error) {
	if err = r.buf.checkLayer(layer); err != nil {
		return err
	}
	r.Lock()
	r.effects[layer] = nil
	r.Unlock()
	return nil
}

// step runs a single refresh pass. The hash of the frame that reached the
// strip is returned so the next pass can detect an unchanged scene; when
// nothing changed relative to last the hardware write is skipped.
func (r *Renderer) step(frameTime time.Time, last []byte) (hash []byte, err errors.Error) {
	r.Lock()
	for layer, effect := range r.effects {
		if effect == nil {
			continue
		}

		done := effect.Frame(r.frames[layer], frameTime)

		if err = r.buf.Clear(layer); err != nil {
			r.Unlock()
			return last, err
		}
		for pixel, c := range r.frames[layer] {
			if c == nil {
				continue
			}
			if err = r.buf.SetOn(layer, pixel, c.Color, c.Alpha); err != nil {
				r.Unlock()
				return last, err
			}
		}

		// A settled effect stops producing new frames, its last frame
		// stays on the layer
		if done {
			r.effects[layer] = nil
		}
	}
	hash = structhash.Md5(r.frames, 1)
	r.Unlock()

	if bytes.Compare(hash, last) == 0 {
		return hash, nil
	}

	if err = r.buf.Write(); err != nil {
		return last, err
	}
	return hash, nil
}

// Run drives the refresh loop until quitC is closed. Failures are reported
// to errorC, falling back to stderr when nobody is listening.
func (r *Renderer) Run(errorC chan<- errors.Error, quitC <-chan struct{}) {
	last := []byte{}

	for {
		select {
		case <-time.After(r.refresh):
			hash, err := r.step(time.Now(), last)
			if err != nil {
				select {
				case errorC <- err:
				case <-time.After(100 * time.Millisecond):
					fmt.Fprintln(os.Stderr, err.Error())
				}
				continue
			}
			last = hash

		case <-quitC:
			return
		}
	}
}
