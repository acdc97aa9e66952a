package ledlayers

// This file contains the animation effects that producers attach to the
// layers of a Buffer. Each effect renders frames of color and opacity for
// the single layer it owns; the Renderer drives them on a fixed cadence and
// composites the results.

import (
	"math"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Effect is an interface for types that generate animation frames for one
// layer
type Effect interface {
	// Frame fills buf with the effect's contribution for frameTime, one
	// element per pixel on the effect's layer. Elements left nil
	// contribute nothing at that pixel. Returns true once the effect has
	// settled, meaning further frames would be identical to this one.
	Frame(buf []*Cell, frameTime time.Time) (done bool)
}

// Solid fills an entire layer with one color at a fixed opacity
type Solid struct {
	frame Cell
}

// NewSolid creates a solid fill effect
func NewSolid(c Color, alpha float64) (effect *Solid) {
	return &Solid{frame: Cell{Color: c, Alpha: alpha}}
}

// Frame generates an animation frame
func (effect *Solid) Frame(buf []*Cell, frameTime time.Time) (done bool) {
	for i := range buf {
		buf[i] = &effect.frame
	}
	return true
}

// Pulse breathes a solid color by oscillating the opacity of its layer
// between fully transparent and fully opaque
type Pulse struct {
	Color  Color
	Period time.Duration

	start time.Time
	frame Cell
}

// Frame generates an animation frame
func (effect *Pulse) Frame(buf []*Cell, frameTime time.Time) (done bool) {
	period := effect.Period
	if period <= 0 {
		period = time.Second
	}
	if effect.start.IsZero() {
		effect.start = frameTime
	}

	phase := float64(frameTime.Sub(effect.start)) / float64(period)
	alpha := 0.5 - 0.5*math.Cos(2.0*math.Pi*phase)

	// At the bottom of the breath the layer contributes nothing at all.
	// A cell stored with alpha zero would render opaque, absence is what
	// invisible means here.
	if alpha <= 0.0 {
		for i := range buf {
			buf[i] = nil
		}
		return false
	}
	if alpha > 1.0 {
		alpha = 1.0
	}

	effect.frame = Cell{Color: effect.Color, Alpha: alpha}
	for i := range buf {
		buf[i] = &effect.frame
	}
	return false
}

// Chase sweeps a lit window of pixels along the strip, wrapping around at
// the end. Period is the time one full trip takes.
type Chase struct {
	Color  Color
	Alpha  float64
	Width  int
	Period time.Duration

	start time.Time
	frame Cell
}

// Frame generates an animation frame
func (effect *Chase) Frame(buf []*Cell, frameTime time.Time) (done bool) {
	n := len(buf)
	if n == 0 {
		return false
	}

	width := effect.Width
	if width < 1 {
		width = 1
	}
	period := effect.Period
	if period <= 0 {
		period = time.Second
	}
	if effect.start.IsZero() {
		effect.start = frameTime
	}

	alpha := effect.Alpha
	if alpha <= 0.0 || alpha > 1.0 {
		alpha = 1.0
	}

	progress := float64(frameTime.Sub(effect.start)%period) / float64(period)
	head := int(progress * float64(n))

	effect.frame = Cell{Color: effect.Color, Alpha: alpha}
	for i := range buf {
		buf[i] = nil
	}
	for k := 0; k != width && k != n; k++ {
		buf[(head-k+n)%n] = &effect.frame
	}
	return false
}

// InterpolateSolid transitions a whole layer from one solid color to
// another over a fixed duration, blending in LAB space so the sweep stays
// perceptually even
type InterpolateSolid struct {
	startColor, endColor colorful.Color
	alpha                float64
	duration             time.Duration

	startTime time.Time
	frame     Cell
}

// NewInterpolateSolid creates an InterpolateSolid effect. The transition
// clock starts on the first frame rendered, not at construction.
func NewInterpolateSolid(startColor, endColor Color, alpha float64, duration time.Duration) (effect *InterpolateSolid) {
	return &InterpolateSolid{
		startColor: toColorful(startColor),
		endColor:   toColorful(endColor),
		alpha:      alpha,
		duration:   duration,
	}
}

// Frame generates an animation frame
func (effect *InterpolateSolid) Frame(buf []*Cell, frameTime time.Time) (done bool) {
	if effect.startTime.IsZero() {
		effect.startTime = frameTime
	}

	t := 1.0
	if effect.duration > 0 {
		t = float64(frameTime.Sub(effect.startTime)) / float64(effect.duration)
	}
	if t >= 1.0 {
		t = 1.0
		done = true
	}

	r, g, b := effect.startColor.BlendLab(effect.endColor, t).Clamped().RGB255()
	effect.frame = Cell{Color: Color{R: r, G: g, B: b}, Alpha: effect.alpha}
	for i := range buf {
		buf[i] = &effect.frame
	}
	return done
}

// Gradient builds a lookup table of colors blended between two hex values,
// for callers mapping a quantity such as health or progress onto a color.
// The table's first entry is fromHex and its last entry is toHex.
func Gradient(fromHex string, toHex string, steps int) (table []Color, err errors.Error) {
	if steps < 2 {
		return nil, errors.New("a gradient needs at least two steps").With("steps", steps).With("stack", stack.Trace().TrimRuntime())
	}

	c1, errGo := colorful.Hex(fromHex)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("color", fromHex).With("stack", stack.Trace().TrimRuntime())
	}
	c2, errGo := colorful.Hex(toHex)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("color", toHex).With("stack", stack.Trace().TrimRuntime())
	}

	table = make([]Color, steps)
	for i := 0; i != steps; i++ {
		r, g, b := c1.BlendLab(c2, float64(i)/float64(steps-1)).Clamped().RGB255()
		table[i] = Color{R: r, G: g, B: b}
	}
	return table, nil
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
