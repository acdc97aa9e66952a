package ledlayers

// This file contains a Strip implementation backed by an Open Pixel Control
// (OPC) server, the protocol spoken by fadecandy boards and by simulators
// such as gl_server

import (
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/kellydunn/go-opc"
)

// OPCStrip transmits composited pixel values to an OPC server over TCP
type OPCStrip struct {
	oc      *opc.Client
	server  string
	channel uint8
	pixels  []Color
}

// NewOPCStrip connects to an OPC server. channel selects the OPC channel
// the strip is wired to, with 0 meaning broadcast to all channels.
func NewOPCStrip(server string, pixels int, channel uint8) (strip *OPCStrip, err errors.Error) {
	if pixels < 1 {
		return nil, errors.New("at least one pixel is required").With("pixels", pixels).With("stack", stack.Trace().TrimRuntime())
	}

	oc := opc.NewClient()
	if errGo := oc.Connect("tcp", server); errGo != nil {
		return nil, errors.Wrap(errGo).With("url", server).With("stack", stack.Trace().TrimRuntime())
	}

	return &OPCStrip{
		oc:      oc,
		server:  server,
		channel: channel,
		pixels:  make([]Color, pixels),
	}, nil
}

// Len returns the fixed number of pixels on the strip
func (strip *OPCStrip) Len() int { return len(strip.pixels) }

// Set assigns the in-memory value at a pixel position
func (strip *OPCStrip) Set(i int, c Color) { strip.pixels[i] = c }

// Write sends the entire strip to the OPC server as a single message
func (strip *OPCStrip) Write() error {
	m := opc.NewMessage(strip.channel)
	m.SetLength(uint16(len(strip.pixels) * 3))
	for i, c := range strip.pixels {
		m.SetPixelColor(i, c.R, c.G, c.B)
	}

	if errGo := strip.oc.Send(m); errGo != nil {
		return errors.Wrap(errGo).With("url", strip.server).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}
