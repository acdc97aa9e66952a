package ledlayers

// This file contains the per-pixel alpha compositing pass that folds the
// layer stack down onto the implied black backdrop and pushes the result to
// the strip

import (
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

// blend composites one pixel's stack of cells down onto the implied opaque
// black backdrop using the standard alpha over operator, bottom-most
// present layer first
func (buf *Buffer) blend(pixel int) Color {
	//
	// The backdrop is solid black
	//
	r0, g0, b0, a0 := 0.0, 0.0, 0.0, 1.0

	//
	// One at a time, lay the next present cell on top of the color
	// accumulated so far.  That starts out as the backdrop color and
	// changes as layers further up the stack are blended in.
	//
	base := pixel * buf.layers
	for layer := buf.layers - 1; layer >= 0; layer-- {
		c := buf.cells[base+layer]
		if !c.on {
			continue
		}

		r1 := float64(c.Color.R)
		g1 := float64(c.Color.G)
		b1 := float64(c.Color.B)

		// A stored alpha of exactly zero renders fully opaque.  An
		// invisible contribution is an absent cell, which is what
		// Clear produces.
		a1 := c.Alpha
		if a1 == 0 {
			a1 = 1.0
		}

		// The combined alpha of the new cell over the accumulator,
		// kept separate as the old alpha is still needed for the
		// channel calculations
		a01 := (1.0-a1)*a0 + a1

		r0 = ((1.0-a1)*a0*r0 + a1*r1) / a01
		g0 = ((1.0-a1)*a0*g0 + a1*g1) / a01
		b0 = ((1.0-a1)*a0*b0 + a1*b1) / a01

		a0 = a01
	}

	return Color{R: uint8(r0), G: uint8(g0), B: uint8(b0)}
}

// Write recomputes every pixel's composite from the layer grid and
// transmits the whole strip to hardware in a single update. The grid is
// only read, never modified, so when several pixels change together the
// cheap Set calls can be batched and the transmit cost paid once here.
func (buf *Buffer) Write() (err errors.Error) {
	for pixel := 0; pixel != buf.pixels; pixel++ {
		buf.strip.Set(pixel, buf.blend(pixel))
	}
	if errGo := buf.strip.Write(); errGo != nil {
		return errors.Wrap(errGo).With("pixels", buf.pixels).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}
