// Command triangle renders a triangle and saves screenshots on demand.
//
// Keys: S writes the presented frame immediately, A schedules a readback
// that is written a few frames later off the render thread, and Q with
// either command key held quits.
package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/casey/glium-screenshot/capture"
	"github.com/casey/glium-screenshot/demo"
	"github.com/casey/glium-screenshot/glw"
)

const title = "triangle"

var (
	flagDelay   = flag.Uint64("delay", capture.DefaultDelay, "frames to wait before mapping an async readback")
	flagOut     = flag.String("o", "screenshot.png", "screenshot file path, overwritten on each capture")
	flagWorkers = flag.Int64("workers", 1, "max concurrent screenshot writes")
	flagWait    = flag.Bool("wait", false, "wait for pending screenshot writes before exiting")
	flagLogfile = flag.String("logfile", "", "specify a file path to write log output to")
	flagWidth   = flag.Int("width", 640, "window width")
	flagHeight  = flag.Int("height", 480, "window height")
)

func init() {
	// glfw and GL calls must come from the main thread.
	runtime.LockOSThread()
	log.SetPrefix(title + ": ")
	log.SetFlags(0)
}

func main() {
	flag.Parse()

	if *flagLogfile != "" {
		logfile, err := os.OpenFile(*flagLogfile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening logfile: %v", err)
		}
		defer logfile.Close()
		log.SetOutput(logfile)
		glw.SetOutput(log.New(logfile, "glw: ", 0))
		capture.SetOutput(log.New(logfile, "capture: ", 0))
	}

	window, terminate, err := surface(*flagWidth, *flagHeight, title)
	if err != nil {
		log.Fatal(err)
	}
	defer terminate()

	tri := &triangle{window: window}
	tri.create()
	defer tri.delete()

	writer := capture.NewWriter(*flagOut, *flagWorkers)
	loop := &demo.Loop{
		Renderer: tri,
		Events:   newEvents(window),
		Capturer: screen{window: window, path: *flagOut},
		Pipeline: capture.NewPipeline(*flagDelay, writer),
		Log:      log.Default(),
	}
	if err := loop.Run(); err != nil {
		log.Fatal(err)
	}
	if *flagWait {
		writer.Wait()
	}
}
