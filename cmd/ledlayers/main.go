package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	logxi "github.com/mgutz/logxi/v1"

	"github.com/karlmutch/envflag" // Forked copy of https://github.com/GoBike/envflag
	"github.com/karlmutch/errors"

	"github.com/wz2b/ledlayers"
	"github.com/wz2b/ledlayers/version"
)

var (
	logger = logxi.New("ledlayers")

	server  = flag.String("server", "127.0.0.1:7890", "Address of the OPC server driving the strip")
	sceneFn = flag.String("scene", "scene.yml", "YAML scene file naming layers and effects")
	pixels  = flag.Int("pixels", 64, "Number of pixels on the strip")
	channel = flag.Int("channel", 0, "OPC channel the strip is wired to, 0 for broadcast")
	verbose = flag.Bool("v", false, "When enabled will print internal logging for this tool")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]       YAML scene ← layers → OPC strip      ", version.GitHash, "    ", version.BuildTime)
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "ledlayers drives layered, alpha blended effects onto OPC attached LED strips such as fadecandy boards")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment Variables:")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options can also be extracted from environment variables by changing dashes '-' to underscores and using upper case.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "log levels are handled by the LOGXI env variables, these are documented at https://github.com/mgutz/logxi")
}

func init() {
	flag.Usage = usage
}

func main() {

	// Parse the CLI flags
	if !flag.Parsed() {
		envflag.Parse()
	}

	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
	}

	logger.Debug(fmt.Sprintf("%s built at %s, against commit id %s", os.Args[0], version.BuildTime, version.GitHash))

	if err := run(); err != nil {
		logger.Error(err.Error())
		os.Exit(-1)
	}
}

func run() (err errors.Error) {

	scene, err := ledlayers.LoadScene(*sceneFn)
	if err != nil {
		return err
	}

	refresh, err := scene.RefreshInterval(ledlayers.DefaultRefresh)
	if err != nil {
		return err
	}

	strip, err := ledlayers.NewOPCStrip(*server, *pixels, uint8(*channel))
	if err != nil {
		return err
	}

	buf, err := ledlayers.New(strip, scene.Layers)
	if err != nil {
		return err
	}

	renderer := ledlayers.NewRenderer(buf, refresh)
	if err = scene.Apply(renderer); err != nil {
		return err
	}

	quitC := make(chan struct{})
	errorC := make(chan errors.Error, 1)

	go watchErrors(errorC, quitC)
	go renderer.Run(errorC, quitC)

	logger.Debug(fmt.Sprintf("driving %d pixels on %d layers via %s every %s", buf.Pixels(), buf.Layers(), *server, refresh))

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)
	<-stopC
	close(quitC)

	return nil
}

// watchErrors relays renderer failures to the logger
func watchErrors(errorC <-chan errors.Error, quitC <-chan struct{}) {
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
}
