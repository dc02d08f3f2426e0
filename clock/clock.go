// Package clock provides the monotonic time sources polled by the PWM channels
// and LED drivers. Both counters are 32 bits wide and wrap around; consumers
// must compare timestamps by unsigned difference only.
package clock

import "time"

// Source supplies ever-increasing microsecond and millisecond counters.
type Source interface {
	Micros() uint32
	Millis() uint32
}

type system struct {
	start time.Time
}

// System returns a Source counting from the moment it is created. The
// monotonic reading of time.Now is used, so wall clock changes do not affect it.
func System() Source {
	return system{start: time.Now()}
}

func (s system) Micros() uint32 { return uint32(time.Since(s.start).Microseconds()) }
func (s system) Millis() uint32 { return uint32(time.Since(s.start).Milliseconds()) }

// Manual is a Source that only moves when told to. The zero value starts at 0.
type Manual struct {
	us uint64
}

// NewManual returns a Manual clock reading the given microsecond count.
func NewManual(us uint32) *Manual { return &Manual{us: uint64(us)} }

func (m *Manual) Micros() uint32 { return uint32(m.us) }

// Millis is derived from the same counter, truncated to 32 bits independently,
// so the two counters wrap at their own widths like a hardware tick source.
func (m *Manual) Millis() uint32 { return uint32(m.us / 1000) }

// Set moves the clock to an absolute microsecond reading.
func (m *Manual) Set(us uint64) { m.us = us }

// Advance moves the clock forward by d, rounded down to whole microseconds.
func (m *Manual) Advance(d time.Duration) { m.us += uint64(d / time.Microsecond) }

// AdvanceMicros moves the clock forward by us microseconds.
func (m *Manual) AdvanceMicros(us uint32) { m.us += uint64(us) }
