// Package glw wraps the handful of OpenGL calls the demo needs: shader
// programs, vertex buffers, and front buffer readback.
//
// All functions must be called on the goroutine owning the current context.
package glw

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var logger = log.New(os.Stderr, "glw: ", 0)

// SetOutput redirects package diagnostics.
func SetOutput(l *log.Logger) { logger = l }

// Init loads GL function pointers for the current context.
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("glw: init: %w", err)
	}
	return nil
}

func must(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

// RGBA converts c to normalized components.
func RGBA(c color.Color) (r, g, b, a float32) {
	ur, ug, ub, ua := c.RGBA()
	return float32(ur) / 0xffff, float32(ug) / 0xffff, float32(ub) / 0xffff, float32(ua) / 0xffff
}

// Error is a GL error code reported after op.
type Error struct {
	Op   string
	Code uint32
}

func (e Error) Error() string {
	var s string
	switch e.Code {
	case gl.INVALID_ENUM:
		s = "invalid enum"
	case gl.INVALID_VALUE:
		s = "invalid value"
	case gl.INVALID_OPERATION:
		s = "invalid operation"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		s = "invalid framebuffer operation"
	case gl.OUT_OF_MEMORY:
		s = "out of memory"
	default:
		s = fmt.Sprintf("0x%x", e.Code)
	}
	return fmt.Sprintf("glw: %s: %s", e.Op, s)
}

// CheckError drains the GL error queue, returning the first error as an Error for op.
func CheckError(op string) error {
	var first error
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == nil {
			first = Error{Op: op, Code: code}
		}
	}
	return first
}

// Clear clears the color buffer to c.
func Clear(c color.Color) error {
	gl.ClearColor(RGBA(c))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return CheckError("clear")
}

// Viewport sets the viewport to the given framebuffer size.
func Viewport(width, height int) { gl.Viewport(0, 0, int32(width), int32(height)) }
