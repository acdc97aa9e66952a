/*
Package ledlayers maintains a stack of transparent color layers over a
one-dimensional strip of addressable LEDs and composites them into a single
set of physical color values on demand.

Independent producers such as an animation, a status indicator, or a user
interaction effect each own a layer and write colors into it without needing
to coordinate with any other producer. Layer 0 is the top of the stack, and
beneath the last layer sits an implied, permanently opaque black backdrop.

No hardware I/O happens until Write recomputes every pixel's composite and
pushes the whole strip out in one update, so any number of writes across any
number of layers can be batched ahead of the expensive transmit step.
*/
package ledlayers

import (
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

// DefaultLayers is the layer count used when a caller has no reason to pick
// another
const DefaultLayers = 4

// Color is a single RGB pixel value as sent to hardware
type Color struct {
	R, G, B uint8
}

// Cell is one layer's contribution at one pixel position. Alpha is an
// opacity fraction in [0.0, 1.0] where 1.0 is fully opaque.
type Cell struct {
	Color Color
	Alpha float64
}

// cell adds the presence flag that distinguishes a pixel a producer has
// written, at any opacity, from one it has never touched
type cell struct {
	Cell
	on bool
}

// Buffer owns the layer grid for one strip. All operations are synchronous
// and there is no internal locking; callers sharing a Buffer across
// goroutines must serialize access themselves.
type Buffer struct {
	strip   Strip
	pixels  int
	layers  int
	current int

	// Row-major by pixel so one pixel's layer stack is contiguous during
	// the compositing pass
	cells []cell
}

// New creates a layered buffer over a strip. The strip's pixel count is
// queried once here and the grid dimensions never change afterwards. The
// current layer starts at the bottom-most layer, layers-1. No hardware I/O
// is performed.
func New(strip Strip, layers int) (buf *Buffer, err errors.Error) {
	if layers < 1 {
		return nil, errors.New("at least one layer is required").With("layers", layers).With("stack", stack.Trace().TrimRuntime())
	}

	pixels := strip.Len()
	return &Buffer{
		strip:   strip,
		pixels:  pixels,
		layers:  layers,
		current: layers - 1,
		cells:   make([]cell, pixels*layers),
	}, nil
}

// Pixels returns the fixed pixel count of the underlying strip
func (buf *Buffer) Pixels() int { return buf.pixels }

// Layers returns the fixed layer count
func (buf *Buffer) Layers() int { return buf.layers }

// CurrentLayer returns the layer that Set and SetW currently target
func (buf *Buffer) CurrentLayer() int { return buf.current }

func (buf *Buffer) checkLayer(layer int) errors.Error {
	if layer < 0 || layer >= buf.layers {
		return errors.New("no such layer").With("layer", layer).With("layers", buf.layers).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

func (buf *Buffer) checkPixel(pixel int) errors.Error {
	if pixel < 0 || pixel >= buf.pixels {
		return errors.New("no such pixel").With("pixel", pixel).With("pixels", buf.pixels).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

func (buf *Buffer) at(pixel int, layer int) *cell {
	return &buf.cells[pixel*buf.layers+layer]
}

// SetLayer selects the layer that subsequent Set calls target
func (buf *Buffer) SetLayer(layer int) (err errors.Error) {
	if err = buf.checkLayer(layer); err != nil {
		return err
	}
	buf.current = layer
	return nil
}

// Set writes a pixel on the current layer, overwriting any prior value
// there. Purely an in-memory write, nothing reaches hardware until Write.
func (buf *Buffer) Set(pixel int, c Color, alpha float64) (err errors.Error) {
	return buf.SetOn(buf.current, pixel, c, alpha)
}

// SetOn writes a pixel on an explicit layer. A failed write leaves the grid
// completely unmodified.
func (buf *Buffer) SetOn(layer int, pixel int, c Color, alpha float64) (err errors.Error) {
	if err = buf.checkLayer(layer); err != nil {
		return err
	}
	if err = buf.checkPixel(pixel); err != nil {
		return err
	}
	*buf.at(pixel, layer) = cell{Cell: Cell{Color: c, Alpha: alpha}, on: true}
	return nil
}

// SetW writes a pixel on the current layer then refreshes the strip
func (buf *Buffer) SetW(pixel int, c Color, alpha float64) (err errors.Error) {
	if err = buf.Set(pixel, c, alpha); err != nil {
		return err
	}
	return buf.Write()
}

// SetOnW writes a pixel on an explicit layer then refreshes the strip
func (buf *Buffer) SetOnW(layer int, pixel int, c Color, alpha float64) (err errors.Error) {
	if err = buf.SetOn(layer, pixel, c, alpha); err != nil {
		return err
	}
	return buf.Write()
}

// Clear empties every pixel on the given layer, returning it to the state
// it had before any producer wrote to it
func (buf *Buffer) Clear(layer int) (err errors.Error) {
	if err = buf.checkLayer(layer); err != nil {
		return err
	}
	for pixel := 0; pixel != buf.pixels; pixel++ {
		*buf.at(pixel, layer) = cell{}
	}
	return nil
}

// ClearW empties a layer then refreshes the strip
func (buf *Buffer) ClearW(layer int) (err errors.Error) {
	if err = buf.Clear(layer); err != nil {
		return err
	}
	return buf.Write()
}

// ClearTo empties every layer in front of the given one, layers 0 through
// layer-1. The named layer and the layers behind it are untouched.
func (buf *Buffer) ClearTo(layer int) (err errors.Error) {
	if err = buf.checkLayer(layer); err != nil {
		return err
	}
	for l := 0; l != layer; l++ {
		buf.Clear(l)
	}
	return nil
}

// ClearToW empties every layer in front of the given one then refreshes
// the strip
func (buf *Buffer) ClearToW(layer int) (err errors.Error) {
	if err = buf.ClearTo(layer); err != nil {
		return err
	}
	return buf.Write()
}

// Fade scales back the opacity of every lit pixel on a layer. A scale of
// 0.1 leaves each pixel 10% more transparent, and scales of 1.0 or more
// drive the layer fully transparent rather than negative. Colors are left
// untouched, this is a transparency fade not a brightness fade.
func (buf *Buffer) Fade(layer int, scale float64) (err errors.Error) {
	if err = buf.checkLayer(layer); err != nil {
		return err
	}

	scaleBy := 1.0 - scale
	if scaleBy < 0.0 {
		scaleBy = 0.0
	}

	for pixel := 0; pixel != buf.pixels; pixel++ {
		if c := buf.at(pixel, layer); c.on {
			c.Alpha *= scaleBy
		}
	}
	return nil
}

// FadeW fades a layer then refreshes the strip
func (buf *Buffer) FadeW(layer int, scale float64) (err errors.Error) {
	if err = buf.Fade(layer, scale); err != nil {
		return err
	}
	return buf.Write()
}
