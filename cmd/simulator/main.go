package main

// This command runs a built in demonstration scene against a strip painted
// into the terminal with truecolor escape codes, letting effects be tried
// without any OPC hardware attached

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	logxi "github.com/mgutz/logxi/v1"

	"github.com/karlmutch/errors"

	"github.com/wz2b/ledlayers"
)

var (
	logger = logxi.New("simulator")

	pixels  = flag.Int("pixels", 32, "Number of pixels on the simulated strip")
	layers  = flag.Int("layers", ledlayers.DefaultLayers, "Number of layers to composite")
	refresh = flag.Duration("refresh", ledlayers.DefaultRefresh, "Interval between repaints")
)

// termStrip paints pixel values as colored blocks on a single terminal row
type termStrip struct {
	pixels []ledlayers.Color
	out    *os.File
}

func (strip *termStrip) Len() int { return len(strip.pixels) }

func (strip *termStrip) Set(i int, c ledlayers.Color) { strip.pixels[i] = c }

func (strip *termStrip) Write() error {
	row := strings.Builder{}
	row.WriteString("\r")
	for _, c := range strip.pixels {
		row.WriteString(fmt.Sprintf("\x1b[48;2;%d;%d;%dm  ", c.R, c.G, c.B))
	}
	row.WriteString("\x1b[0m")

	_, errGo := fmt.Fprint(strip.out, row.String())
	return errGo
}

func main() {

	flag.Parse()

	strip := &termStrip{pixels: make([]ledlayers.Color, *pixels), out: os.Stdout}

	buf, err := ledlayers.New(strip, *layers)
	if err != nil {
		logger.Fatal(err.Error())
	}

	renderer := ledlayers.NewRenderer(buf, *refresh)
	if err = demo(renderer, buf.Layers()); err != nil {
		logger.Fatal(err.Error())
	}

	quitC := make(chan struct{})
	errorC := make(chan errors.Error, 1)

	go func() {
		for {
			select {
			case err := <-errorC:
				if err != nil {
					logger.Warn(err.Error())
				}
			case <-quitC:
				return
			}
		}
	}()

	go renderer.Run(errorC, quitC)

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)
	<-stopC
	close(quitC)

	fmt.Fprintln(os.Stdout, "")
}

// demo stacks a slow green wash on the bottom layer, a breathing blue
// accent in the middle, and a white chase on top
func demo(renderer *ledlayers.Renderer, layers int) (err errors.Error) {

	wash := ledlayers.NewInterpolateSolid(
		ledlayers.Color{R: 0x0A, G: 0x33, B: 0x06},
		ledlayers.Color{R: 0x36, G: 0xFF, B: 0x1F},
		1.0, 30*time.Second)
	if err = renderer.Attach(layers-1, wash); err != nil {
		return err
	}

	if layers > 2 {
		pulse := &ledlayers.Pulse{Color: ledlayers.Color{B: 0xFF}, Period: 4 * time.Second}
		if err = renderer.Attach(1, pulse); err != nil {
			return err
		}
	}

	if layers > 1 {
		chase := &ledlayers.Chase{
			Color:  ledlayers.Color{R: 0xFF, G: 0xFF, B: 0xFF},
			Alpha:  0.8,
			Width:  3,
			Period: 2 * time.Second,
		}
		if err = renderer.Attach(0, chase); err != nil {
			return err
		}
	}

	return nil
}
