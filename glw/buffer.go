package glw

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/math/f32"
)

// Vertex is a single 2D position.
type Vertex struct {
	Position f32.Vec2
}

// Floats flattens vs for upload.
func Floats(vs ...Vertex) []float32 {
	p := make([]float32, 0, 2*len(vs))
	for _, v := range vs {
		p = append(p, v.Position[0], v.Position[1])
	}
	return p
}

// FloatBuffer is an array buffer of float32 data.
type FloatBuffer struct {
	Buffer uint32
	count  int
	usage  uint32
}

func (buf *FloatBuffer) Create(usage uint32, data []float32) {
	buf.usage = usage
	gl.GenBuffers(1, &buf.Buffer)
	buf.Bind()
	buf.Update(data)
}

func (buf *FloatBuffer) Delete() { gl.DeleteBuffers(1, &buf.Buffer) }
func (buf FloatBuffer) Bind()    { gl.BindBuffer(gl.ARRAY_BUFFER, buf.Buffer) }
func (buf FloatBuffer) Len() int { return buf.count }

func (buf *FloatBuffer) Update(data []float32) {
	buf.count = len(data)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, buf.usage)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), buf.usage)
}

// VertexArray binds a FloatBuffer to a single attribute of size components.
// Core profile contexts require a vertex array object for any draw.
type VertexArray struct {
	Floats FloatBuffer
	vao    uint32
	size   int32
}

// Create uploads data and points attribute attrib at it.
func (va *VertexArray) Create(attrib uint32, size int32, data []float32) {
	gl.GenVertexArrays(1, &va.vao)
	gl.BindVertexArray(va.vao)
	va.Floats.Create(gl.STATIC_DRAW, data)
	va.size = size
	gl.EnableVertexAttribArray(attrib)
	gl.VertexAttribPointer(attrib, size, gl.FLOAT, false, 0, nil)
	gl.BindVertexArray(0)
}

func (va VertexArray) Bind()   { gl.BindVertexArray(va.vao) }
func (va VertexArray) Unbind() { gl.BindVertexArray(0) }

// Draw submits every vertex with the given primitive mode and reports GL errors.
func (va VertexArray) Draw(mode uint32) error {
	va.Bind()
	gl.DrawArrays(mode, 0, int32(va.Floats.Len())/va.size)
	va.Unbind()
	return CheckError("draw")
}

func (va *VertexArray) Delete() {
	va.Floats.Delete()
	gl.DeleteVertexArrays(1, &va.vao)
}
