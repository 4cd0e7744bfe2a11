// Package frametime keeps a ring of recent frame durations and reports
// their average and maximum at a fixed frame interval.
package frametime

import (
	"fmt"
	"time"
)

// N is the number of samples held and the report interval in frames.
const N = 60

// Timer is a fixed ring of millisecond samples indexed by frame number.
// The zero value is ready to use.
type Timer struct {
	samples [N]uint64
}

// Record stores d, truncated to whole milliseconds, at slot frame%N.
func (t *Timer) Record(frame uint64, d time.Duration) {
	t.samples[frame%N] = uint64(d / time.Millisecond)
}

// Sample returns the value held at slot frame%N.
func (t *Timer) Sample(frame uint64) uint64 { return t.samples[frame%N] }

// Stats summarizes all N slots.
type Stats struct {
	Average uint64
	Max     uint64
}

func (s Stats) String() string { return fmt.Sprintf("%vms/%vms AVE/MAX", s.Average, s.Max) }

// Stats computes the truncated mean and maximum over every slot,
// including slots not yet written.
func (t *Timer) Stats() Stats {
	var sum, max uint64
	for _, x := range t.samples {
		sum += x
		if x > max {
			max = x
		}
	}
	return Stats{Average: uint64(float64(sum) / float64(N)), Max: max}
}

// Report returns Stats and true only on frames that are a multiple of N.
func (t *Timer) Report(frame uint64) (Stats, bool) {
	if frame%N != 0 {
		return Stats{}, false
	}
	return t.Stats(), true
}

// Printer is satisfied by *log.Logger.
type Printer interface {
	Println(v ...interface{})
}

// MaybeReport prints Stats to p on report frames.
func (t *Timer) MaybeReport(frame uint64, p Printer) {
	if s, ok := t.Report(frame); ok {
		p.Println(s)
	}
}
