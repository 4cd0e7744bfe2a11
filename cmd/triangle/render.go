package main

import (
	"image/color"

	"github.com/casey/glium-screenshot/glw"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/image/math/f32"
)

const vsrc = `#version 410 core
in vec2 position;

void main() {
	gl_Position = vec4(position, 0.0, 1.0);
}`

const fsrc = `#version 410 core
out vec4 color;

void main() {
	color = vec4(1.0, 0.0, 0.0, 1.0);
}`

var background = color.RGBA{0, 0, 0xff, 0xff}

var shape = []glw.Vertex{
	{Position: f32.Vec2{-0.5, -0.5}},
	{Position: f32.Vec2{+0.0, +0.5}},
	{Position: f32.Vec2{+0.5, -0.25}},
}

type triangle struct {
	window *glfw.Window
	prg    glw.Program
	vert   glw.VertexArray
}

func (tri *triangle) create() {
	tri.prg.MustBuild(vsrc, fsrc)
	tri.vert.Create(tri.prg.Attrib("position"), 2, glw.Floats(shape...))
}

func (tri *triangle) Render() error {
	if err := glw.Clear(background); err != nil {
		return err
	}
	tri.prg.Use()
	if err := tri.vert.Draw(gl.TRIANGLES); err != nil {
		return err
	}
	tri.window.SwapBuffers()
	return glw.CheckError("present")
}

func (tri *triangle) delete() {
	tri.vert.Delete()
	tri.prg.Delete()
}
