package capture

import "image"

// DefaultDelay is the number of frames between issuing a readback and
// mapping its buffer.
const DefaultDelay = 5

// Sink consumes finished images. Write must not block the caller.
type Sink interface {
	Write(img *image.NRGBA)
}

// Pipeline defers transfers by Delay frames and hands finished images to a
// Sink. All methods are called from the render goroutine.
type Pipeline struct {
	Delay uint64

	queue Queue
	sink  Sink
}

// NewPipeline returns a Pipeline with delay clamped to at least one frame.
func NewPipeline(delay uint64, sink Sink) *Pipeline {
	if delay == 0 {
		delay = 1
	}
	return &Pipeline{Delay: delay, sink: sink}
}

// Begin schedules tr for pickup at frame+Delay.
func (p *Pipeline) Begin(frame uint64, tr Transfer) Task {
	t := Task{Due: frame + p.Delay, Transfer: tr}
	p.queue.Push(t)
	return t
}

// Pending returns the number of scheduled transfers.
func (p *Pipeline) Pending() int { return p.queue.Len() }

// Service finishes at most one due transfer and passes its image to the sink.
// A failed transfer is logged and dropped. Reports whether a task was taken.
func (p *Pipeline) Service(frame uint64) bool {
	t, ok := p.queue.PopDue(frame)
	if !ok {
		return false
	}
	img, err := t.Transfer.Finish()
	if err != nil {
		logger.Printf("frame %v: transfer due %v: %v", frame, t.Due, err)
		return true
	}
	p.sink.Write(img)
	return true
}
