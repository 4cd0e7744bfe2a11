package demo

import (
	"errors"
	"fmt"
	"image"
	"testing"
	"time"

	"github.com/casey/glium-screenshot/capture"
	"github.com/casey/glium-screenshot/input"
)

type renderer struct {
	n   int
	err error
}

func (r *renderer) Render() error { r.n++; return r.err }

// script delivers events on the tick with the matching poll count.
type script struct {
	n      uint64
	events map[uint64][]interface{}
}

func (s *script) Poll() []interface{} {
	evs := s.events[s.n]
	s.n++
	return evs
}

type transfer struct {
	frame uint64
	img   *image.NRGBA
}

func (tr transfer) Finish() (*image.NRGBA, error) { return tr.img, nil }

type capturer struct {
	loop  *Loop
	size  image.Point
	syncs int
	began []uint64
	err   error
}

func (c *capturer) Sync() error { c.syncs++; return c.err }

func (c *capturer) Begin() capture.Transfer {
	f := c.loop.Frame()
	c.began = append(c.began, f)
	return transfer{frame: f, img: image.NewNRGBA(image.Rectangle{Max: c.size})}
}

type sink []*image.NRGBA

func (s *sink) Write(img *image.NRGBA) { *s = append(*s, img) }

type printer []string

func (p *printer) Println(v ...interface{}) { *p = append(*p, fmt.Sprint(v...)) }

func press(k input.Key) input.Event   { return input.Event{Key: k, Action: input.Press} }
func release(k input.Key) input.Event { return input.Event{Key: k, Action: input.Release} }

type fixture struct {
	loop *Loop
	r    *renderer
	c    *capturer
	s    *sink
	log  *printer
}

func newFixture(delay uint64, events map[uint64][]interface{}) fixture {
	f := fixture{r: &renderer{}, s: &sink{}, log: &printer{}}
	f.loop = &Loop{
		Renderer: f.r,
		Events:   &script{events: events},
		Pipeline: capture.NewPipeline(delay, f.s),
		Log:      f.log,
	}
	f.c = &capturer{loop: f.loop, size: image.Pt(64, 48)}
	f.loop.Capturer = f.c
	return f
}

func (f fixture) tickUntil(t *testing.T, frame uint64) {
	t.Helper()
	for f.loop.Frame() < frame {
		quit, err := f.loop.Tick()
		if err != nil {
			t.Fatal(err)
		}
		if quit {
			t.Fatalf("unexpected quit at frame %v", f.loop.Frame())
		}
	}
}

func TestQuitRequiresModifier(t *testing.T) {
	f := newFixture(5, map[uint64][]interface{}{
		0: {press(input.KeyQ), release(input.KeyQ)},
		1: {press(input.KeyLeftSuper), release(input.KeyLeftSuper), press(input.KeyQ)},
		2: {press(input.KeyLeftSuper), press(input.KeyQ), press(input.KeyS)},
	})
	f.tickUntil(t, 2)

	quit, err := f.loop.Tick()
	if err != nil {
		t.Fatal(err)
	}
	if !quit {
		t.Fatal("Q with left modifier held did not quit")
	}
	if want, have := uint64(2), f.loop.Frame(); want != have {
		t.Fatalf("Frame after quit\nwant: %+v\nhave: %+v\n", want, have)
	}
	if f.c.syncs != 0 {
		t.Fatal("events after quit were processed")
	}
}

func TestClose(t *testing.T) {
	f := newFixture(5, map[uint64][]interface{}{3: {Close{}}})
	if err := f.loop.Run(); err != nil {
		t.Fatal(err)
	}
	if want, have := uint64(3), f.loop.Frame(); want != have {
		t.Fatalf("Frame\nwant: %+v\nhave: %+v\n", want, have)
	}
	if want, have := 4, f.r.n; want != have {
		t.Fatalf("renders\nwant: %+v\nhave: %+v\n", want, have)
	}
}

func TestAsyncCapture(t *testing.T) {
	f := newFixture(5, map[uint64][]interface{}{10: {press(input.KeyA)}})
	f.tickUntil(t, 15)
	if len(f.c.began) != 1 || f.c.began[0] != 10 {
		t.Fatalf("began\nwant: [10]\nhave: %+v\n", f.c.began)
	}
	if len(*f.s) != 0 {
		t.Fatal("written before due frame")
	}
	if want, have := 1, f.loop.Pipeline.Pending(); want != have {
		t.Fatalf("Pending\nwant: %+v\nhave: %+v\n", want, have)
	}

	f.tickUntil(t, 16)
	if want, have := 1, len(*f.s); want != have {
		t.Fatalf("writes at frame 15\nwant: %+v\nhave: %+v\n", want, have)
	}
	if want, have := f.c.size, (*f.s)[0].Bounds().Size(); want != have {
		t.Fatalf("image size\nwant: %+v\nhave: %+v\n", want, have)
	}
	if want, have := f.c.size.X*f.c.size.Y, len((*f.s)[0].Pix)/4; want != have {
		t.Fatalf("pixel count\nwant: %+v\nhave: %+v\n", want, have)
	}
	if f.loop.Pipeline.Pending() != 0 {
		t.Fatal("task left in queue")
	}

	f.tickUntil(t, 30)
	if want, have := 1, len(*f.s); want != have {
		t.Fatalf("writes\nwant: %+v\nhave: %+v\n", want, have)
	}
}

func TestAsyncCaptureOrder(t *testing.T) {
	f := newFixture(3, map[uint64][]interface{}{
		4: {press(input.KeyA), release(input.KeyA)},
		5: {press(input.KeyA)},
	})
	f.tickUntil(t, 8)
	if want, have := 1, len(*f.s); want != have {
		t.Fatalf("writes at frame 7\nwant: %+v\nhave: %+v\n", want, have)
	}
	f.tickUntil(t, 9)
	if want, have := 2, len(*f.s); want != have {
		t.Fatalf("writes at frame 8\nwant: %+v\nhave: %+v\n", want, have)
	}
}

func TestSyncCapture(t *testing.T) {
	f := newFixture(5, map[uint64][]interface{}{1: {press(input.KeyS)}})
	f.tickUntil(t, 3)
	if want, have := 1, f.c.syncs; want != have {
		t.Fatalf("syncs\nwant: %+v\nhave: %+v\n", want, have)
	}

	f = newFixture(5, map[uint64][]interface{}{0: {press(input.KeyS)}})
	f.c.err = errors.New("create failed")
	if _, err := f.loop.Tick(); err == nil {
		t.Fatal("sync capture error not returned")
	}
}

func TestRenderError(t *testing.T) {
	f := newFixture(5, nil)
	f.r.err = errors.New("context lost")
	err := f.loop.Run()
	if err == nil || !errors.Is(err, f.r.err) {
		t.Fatalf("Run\nwant: %+v\nhave: %+v\n", f.r.err, err)
	}
	if f.loop.Frame() != 0 {
		t.Fatal("frame advanced after render error")
	}
}

func TestFrameTiming(t *testing.T) {
	f := newFixture(5, nil)
	var now time.Time
	f.loop.Now = func() time.Time {
		now = now.Add(12 * time.Millisecond)
		return now
	}
	f.tickUntil(t, 61)

	if want, have := uint64(12), f.loop.Timer().Sample(59); want != have {
		t.Fatalf("Sample\nwant: %+v\nhave: %+v\n", want, have)
	}
	if want, have := 2, len(*f.log); want != have {
		t.Fatalf("reports %q\nwant: %+v\nhave: %+v\n", *f.log, want, have)
	}
	if want, have := "12ms/12ms AVE/MAX", (*f.log)[1]; want != have {
		t.Fatalf("report\nwant: %+v\nhave: %+v\n", want, have)
	}
}
