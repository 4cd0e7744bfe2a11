package glw

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var FilterNearest = TextureFilter(gl.NEAREST, gl.NEAREST)

func TextureFilter(min, mag int32) func(*Texture) {
	return func(tex *Texture) { tex.min, tex.mag = min, mag }
}

// Texture is a 2D RGBA8 texture.
type Texture struct {
	Texture  uint32
	min, mag int32
}

// Create allocates uninitialized width by height storage.
func (tex *Texture) Create(width, height int, options ...func(*Texture)) {
	tex.min, tex.mag = gl.LINEAR, gl.LINEAR
	for _, opt := range options {
		opt(tex)
	}
	gl.GenTextures(1, &tex.Texture)
	tex.Bind()
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, tex.min)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, tex.mag)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	tex.Unbind()
}

func (tex *Texture) Delete() { gl.DeleteTextures(1, &tex.Texture) }
func (tex Texture) Bind()    { gl.BindTexture(gl.TEXTURE_2D, tex.Texture) }
func (tex Texture) Unbind()  { gl.BindTexture(gl.TEXTURE_2D, 0) }

// FrameBuffer is an off-screen render target backed by a single Texture.
type FrameBuffer struct {
	Framebuffer uint32
	tex         Texture
}

// Create allocates a width by height color attachment.
func (buf *FrameBuffer) Create(width, height int, options ...func(*Texture)) error {
	buf.tex.Create(width, height, options...)
	gl.GenFramebuffers(1, &buf.Framebuffer)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, buf.Framebuffer)
	defer gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, buf.tex.Texture, 0)
	if status := gl.CheckFramebufferStatus(gl.DRAW_FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		buf.Delete()
		return fmt.Errorf("glw: framebuffer incomplete: 0x%x", status)
	}
	if err := CheckError("create framebuffer"); err != nil {
		buf.Delete()
		return err
	}
	return nil
}

func (buf *FrameBuffer) Delete() {
	gl.DeleteFramebuffers(1, &buf.Framebuffer)
	buf.tex.Delete()
}

// BlitFront copies the presented frame into buf with nearest filtering.
func (buf FrameBuffer) BlitFront(width, height int) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.FRONT)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, buf.Framebuffer)
	w, h := int32(width), int32(height)
	gl.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
}
