package glw

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// nrgba wraps tightly packed pixels read with PACK_ALIGNMENT 1. GL returns
// straight alpha, so the result is non-premultiplied.
func nrgba(width, height int, pix []byte) *image.NRGBA {
	return &image.NRGBA{Pix: pix, Stride: 4 * width, Rect: image.Rect(0, 0, width, height)}
}

// ReadFront blocks until the presented frame is copied into memory.
// Rows are bottom-up as GL stores them.
func ReadFront(width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("glw: empty framebuffer %vx%v", width, height)
	}
	pix := make([]byte, 4*width*height)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.FRONT)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.ReadBuffer(gl.BACK)
	if err := CheckError("read front buffer"); err != nil {
		return nil, err
	}
	return nrgba(width, height, pix), nil
}

// PixelTransfer is a readback of the presented frame into a pixel pack
// buffer.
type PixelTransfer struct {
	width, height int

	pbo   uint32
	fence uintptr
	err   error
	done  bool
}

// BeginTransfer blits the presented frame into a temporary texture and
// queues a read of that texture into a pixel pack buffer. It does not wait
// for the GPU.
func BeginTransfer(width, height int) *PixelTransfer {
	tr := &PixelTransfer{width: width, height: height}
	if width <= 0 || height <= 0 {
		tr.err = fmt.Errorf("glw: empty framebuffer %vx%v", width, height)
		return tr
	}

	var dst FrameBuffer
	if tr.err = dst.Create(width, height, FilterNearest); tr.err != nil {
		return tr
	}
	// deleting after the read is queued is safe; GL keeps both alive until it completes.
	defer dst.Delete()
	dst.BlitFront(width, height)

	gl.GenBuffers(1, &tr.pbo)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, tr.pbo)
	gl.BufferData(gl.PIXEL_PACK_BUFFER, tr.size(), nil, gl.STREAM_READ)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, dst.Framebuffer)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, nil)
	tr.fence = gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)

	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)

	tr.err = CheckError("begin transfer")
	return tr
}

func (tr *PixelTransfer) size() int { return 4 * tr.width * tr.height }

// Bounds returns the size of the frame being read.
func (tr *PixelTransfer) Bounds() image.Rectangle { return image.Rect(0, 0, tr.width, tr.height) }

// Ready reports whether the GPU has finished writing the buffer, without waiting.
func (tr *PixelTransfer) Ready() bool {
	if tr.fence == 0 {
		return true
	}
	switch gl.ClientWaitSync(tr.fence, 0, 0) {
	case gl.ALREADY_SIGNALED, gl.CONDITION_SATISFIED:
		return true
	}
	return false
}

// Finish maps the buffer and copies it out, blocking if the GPU is still
// writing. Buffer and fence are released whether or not it succeeds.
func (tr *PixelTransfer) Finish() (*image.NRGBA, error) {
	if tr.done {
		return nil, errors.New("glw: transfer already finished")
	}
	defer tr.release()
	if tr.err != nil {
		return nil, tr.err
	}
	if !tr.Ready() {
		logger.Printf("transfer %v not complete, map will block", tr.Bounds().Size())
	}

	n := tr.size()
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, tr.pbo)
	defer gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)

	ptr := gl.MapBufferRange(gl.PIXEL_PACK_BUFFER, 0, n, gl.MAP_READ_BIT)
	if ptr == nil {
		if err := CheckError("map pixel buffer"); err != nil {
			return nil, err
		}
		return nil, errors.New("glw: map pixel buffer: nil pointer")
	}
	pix := make([]byte, n)
	copy(pix, unsafe.Slice((*byte)(ptr), n))
	if !gl.UnmapBuffer(gl.PIXEL_PACK_BUFFER) {
		return nil, errors.New("glw: pixel buffer contents lost during map")
	}
	return nrgba(tr.width, tr.height, pix), nil
}

func (tr *PixelTransfer) release() {
	tr.done = true
	if tr.fence != 0 {
		gl.DeleteSync(tr.fence)
		tr.fence = 0
	}
	if tr.pbo != 0 {
		gl.DeleteBuffers(1, &tr.pbo)
		tr.pbo = 0
	}
}
