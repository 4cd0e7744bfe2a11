package main

import (
	"fmt"

	"github.com/casey/glium-screenshot/capture"
	"github.com/casey/glium-screenshot/demo"
	"github.com/casey/glium-screenshot/glw"
	"github.com/casey/glium-screenshot/input"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var keymap = map[glfw.Key]input.Key{
	glfw.KeyQ:          input.KeyQ,
	glfw.KeyS:          input.KeyS,
	glfw.KeyA:          input.KeyA,
	glfw.KeyLeftSuper:  input.KeyLeftSuper,
	glfw.KeyRightSuper: input.KeyRightSuper,
}

var actions = map[glfw.Action]input.Action{
	glfw.Press:   input.Press,
	glfw.Release: input.Release,
	glfw.Repeat:  input.Repeat,
}

// translate maps a glfw key transition to input vocabulary; unmapped keys
// become input.KeyUnknown.
func translate(key glfw.Key, action glfw.Action) input.Event {
	k, ok := keymap[key]
	if !ok {
		k = input.KeyUnknown
	}
	return input.Event{Key: k, Action: actions[action]}
}

func surface(width, height int, title string) (*glfw.Window, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("create window: %w", err)
	}

	window.MakeContextCurrent()
	if err := glw.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, nil, err
	}
	glw.Viewport(window.GetFramebufferSize())

	return window, glfw.Terminate, nil
}

// events queues glfw callbacks for demo.Loop.
type events struct {
	pending []interface{}
}

func newEvents(window *glfw.Window) *events {
	evs := &events{}
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		evs.pending = append(evs.pending, translate(key, action))
	})
	window.SetCloseCallback(func(*glfw.Window) {
		evs.pending = append(evs.pending, demo.Close{})
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		glw.Viewport(width, height)
	})
	return evs
}

func (evs *events) Poll() []interface{} {
	glfw.PollEvents()
	p := evs.pending
	evs.pending = nil
	return p
}

// screen captures the window's presented frame.
type screen struct {
	window *glfw.Window
	path   string
}

func (s screen) Sync() error {
	img, err := glw.ReadFront(s.window.GetFramebufferSize())
	if err != nil {
		return err
	}
	return capture.Save(s.path, img)
}

func (s screen) Begin() capture.Transfer {
	return glw.BeginTransfer(s.window.GetFramebufferSize())
}
