package ledlayers

// This file contains the YAML scene description used by the daemon to wire
// effects onto layers without recompiling

import (
	"io/ioutil"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	colorful "github.com/lucasb-eyer/go-colorful"
	yaml "gopkg.in/yaml.v2"
)

// EffectSpec declares one effect bound to one layer
type EffectSpec struct {
	Layer  int     `yaml:"layer"`
	Type   string  `yaml:"type"`   // solid, pulse, chase, or interpolate
	Color  string  `yaml:"color"`  // hex, for example "#36FF1F"
	To     string  `yaml:"to"`     // interpolate target color
	Alpha  float64 `yaml:"alpha"`  // omitted or 0 renders opaque
	Period string  `yaml:"period"` // pulse/chase cadence, interpolate duration
	Width  int     `yaml:"width"`  // chase window size in pixels
}

// Scene describes a complete layered setup for one strip
type Scene struct {
	Layers  int          `yaml:"layers"`
	Refresh string       `yaml:"refresh"`
	Effects []EffectSpec `yaml:"effects"`
}

// LoadScene reads and parses a scene file
func LoadScene(path string) (scene *Scene, err errors.Error) {
	data, errGo := ioutil.ReadFile(path)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
	}
	if scene, err = ParseScene(data); err != nil {
		return nil, err.With("path", path)
	}
	return scene, nil
}

// ParseScene parses a YAML scene document. A missing layer count falls back
// to DefaultLayers.
func ParseScene(data []byte) (scene *Scene, err errors.Error) {
	scene = &Scene{}
	if errGo := yaml.Unmarshal(data, scene); errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	if scene.Layers < 1 {
		scene.Layers = DefaultLayers
	}
	return scene, nil
}

// RefreshInterval returns the scene's repaint cadence, or the supplied
// fallback when the scene does not name one
func (scene *Scene) RefreshInterval(fallback time.Duration) (interval time.Duration, err errors.Error) {
	if scene.Refresh == "" {
		return fallback, nil
	}
	interval, errGo := time.ParseDuration(scene.Refresh)
	if errGo != nil {
		return 0, errors.Wrap(errGo).With("refresh", scene.Refresh).With("stack", stack.Trace().TrimRuntime())
	}
	return interval, nil
}

// Apply constructs every effect the scene declares and attaches each to its
// layer on the renderer
func (scene *Scene) Apply(r *Renderer) (err errors.Error) {
	for _, spec := range scene.Effects {
		effect, err := spec.Build()
		if err != nil {
			return err
		}
		if err = r.Attach(spec.Layer, effect); err != nil {
			return err
		}
	}
	return nil
}

// Build constructs the effect an EffectSpec declares
func (spec *EffectSpec) Build() (effect Effect, err errors.Error) {
	c, err := parseHex(spec.Color)
	if err != nil {
		return nil, err
	}

	alpha := spec.Alpha
	if alpha == 0 {
		alpha = 1.0
	}

	period := time.Duration(0)
	if spec.Period != "" {
		p, errGo := time.ParseDuration(spec.Period)
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("period", spec.Period).With("stack", stack.Trace().TrimRuntime())
		}
		period = p
	}

	switch spec.Type {
	case "solid":
		return NewSolid(c, alpha), nil
	case "pulse":
		return &Pulse{Color: c, Period: period}, nil
	case "chase":
		return &Chase{Color: c, Alpha: alpha, Width: spec.Width, Period: period}, nil
	case "interpolate":
		to, err := parseHex(spec.To)
		if err != nil {
			return nil, err
		}
		return NewInterpolateSolid(c, to, alpha, period), nil
	}
	return nil, errors.New("unknown effect type").With("type", spec.Type).With("stack", stack.Trace().TrimRuntime())
}

func parseHex(hex string) (c Color, err errors.Error) {
	parsed, errGo := colorful.Hex(hex)
	if errGo != nil {
		return Color{}, errors.Wrap(errGo).With("color", hex).With("stack", stack.Trace().TrimRuntime())
	}
	r, g, b := parsed.RGB255()
	return Color{R: r, G: g, B: b}, nil
}
