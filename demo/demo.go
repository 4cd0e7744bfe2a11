// Package demo drives one render, input and capture step per frame.
package demo

import (
	"fmt"
	"time"

	"github.com/casey/glium-screenshot/capture"
	"github.com/casey/glium-screenshot/frametime"
	"github.com/casey/glium-screenshot/input"
)

// Renderer clears, draws and presents a frame. Any error is fatal.
type Renderer interface {
	Render() error
}

// EventSource returns all events queued since the last call. Elements are
// input.Event or Close.
type EventSource interface {
	Poll() []interface{}
}

// Close is a request to close the window.
type Close struct{}

// Capturer reads the presented frame.
type Capturer interface {
	// Sync captures and writes the frame before returning.
	Sync() error
	// Begin starts a readback without waiting for it.
	Begin() capture.Transfer
}

// Loop holds all per-process state of the main loop.
type Loop struct {
	Renderer Renderer
	Events   EventSource
	Capturer Capturer
	Pipeline *capture.Pipeline
	Log      frametime.Printer

	// Now defaults to time.Now.
	Now func() time.Time

	frame uint64
	timer frametime.Timer
	input input.Tracker
}

// Frame returns the number of completed ticks.
func (l *Loop) Frame() uint64 { return l.frame }

// Timer returns frame time samples.
func (l *Loop) Timer() *frametime.Timer { return &l.timer }

func (l *Loop) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

// Tick runs one frame. It returns quit true on window close or a command
// modifier held with Q, skipping the remainder of the frame.
func (l *Loop) Tick() (quit bool, err error) {
	start := l.now()

	if err := l.Renderer.Render(); err != nil {
		return false, fmt.Errorf("frame %v: render: %w", l.frame, err)
	}

	for _, e := range l.Events.Poll() {
		switch e := e.(type) {
		case Close:
			return true, nil
		case input.Event:
			l.input.Update(e)
			switch {
			case e.Pressed(input.KeyQ):
				if l.input.Held() {
					return true, nil
				}
			case e.Pressed(input.KeyS):
				if err := l.Capturer.Sync(); err != nil {
					return false, fmt.Errorf("frame %v: screenshot: %w", l.frame, err)
				}
			case e.Pressed(input.KeyA):
				l.Pipeline.Begin(l.frame, l.Capturer.Begin())
			}
		}
	}

	l.Pipeline.Service(l.frame)

	l.timer.Record(l.frame, l.now().Sub(start))
	if l.Log != nil {
		l.timer.MaybeReport(l.frame, l.Log)
	}

	l.frame++
	return false, nil
}

// Run ticks until quit or error.
func (l *Loop) Run() error {
	for {
		quit, err := l.Tick()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}
