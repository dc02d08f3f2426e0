// Package led drives a software PWM channel from a brightness table, giving
// breathing, blinking and other time-varying effects.
package led

import (
	"runtime"

	"github.com/mastercactapus/pwmlights/clock"
	"github.com/mastercactapus/pwmlights/port"
	"github.com/mastercactapus/pwmlights/pwm"
	"github.com/mastercactapus/pwmlights/table"
)

// Table maps milliseconds within a period to a duty cycle out of the
// channel's FullDuty (100 unless configured otherwise).
type Table = table.Table[uint32, uint16]

// Point is one breakpoint of a Table.
type Point = table.Point[uint32, uint16]

const (
	// RefreshInterval is how often, in milliseconds, the duty cycle is looked
	// up again. Polls in between only service the PWM channel.
	RefreshInterval uint32 = 50

	// DefaultPWMPeriod is the channel period in microseconds (100 Hz).
	DefaultPWMPeriod uint32 = 10_000
)

// Driver sequences one PWM channel through a Table. The table is supplied on
// every poll and is not retained between calls.
type Driver struct {
	// Intensity scales the looked-up duty cycle.
	Intensity float32

	ch  pwm.Channel
	clk clock.Source

	anchor      uint32 // ms, start of the current period
	lastRefresh uint32 // ms
	refreshed   bool
	phase       uint32
}

// New returns a driver for pin with the default PWM period and a 0-100 duty
// scale.
func New(clk clock.Source, p port.Port, pin port.Pin, intensity float32) *Driver {
	return NewWithChannel(clk, p, pin, DefaultPWMPeriod, pwm.DefaultFullDuty, intensity)
}

// NewWithChannel is New with an explicit PWM period (µs) and duty scale.
func NewWithChannel(clk clock.Source, p port.Port, pin port.Pin, period uint32, fullDuty uint16, intensity float32) *Driver {
	d := &Driver{
		Intensity: intensity,
		clk:       clk,
		anchor:    clk.Millis(),
	}
	d.ch.Init(clk, p, pin, period, 0, fullDuty)
	return d
}

// Channel exposes the owned PWM channel, e.g. to change its period.
func (d *Driver) Channel() *pwm.Channel { return &d.ch }

// Phase returns the position within the table period at the last refresh.
func (d *Driver) Phase() uint32 { return d.phase }

// Poll services the PWM channel and, at most once per RefreshInterval, moves
// the duty cycle along t. It never blocks. An empty table leaves the duty
// cycle unchanged and returns table.ErrEmpty; the channel is still polled.
func (d *Driver) Poll(t *Table) error {
	var err error
	now := d.clk.Millis()
	if !d.refreshed || now-d.lastRefresh >= RefreshInterval {
		d.refreshed = true
		d.lastRefresh = now
		err = d.refresh(t, now)
	}
	d.ch.Poll()
	return err
}

func (d *Driver) refresh(t *Table, now uint32) error {
	period := t.Period()
	if period > 0 {
		// Advance in whole periods so a late poll catches up without drift.
		if elapsed := now - d.anchor; elapsed >= period {
			d.anchor += elapsed / period * period
		}
	}
	d.phase = now - d.anchor

	duty, err := t.Interp(d.phase)
	if err != nil {
		return err
	}
	if d.Intensity != 1 {
		duty = uint16(float32(duty) * d.Intensity)
	}
	if d.ch.FullDuty > 0 && duty > d.ch.FullDuty {
		duty = d.ch.FullDuty
	}
	d.ch.DutyCycle = duty
	return nil
}

// Rescale returns a copy of t with every duty moved from a 0..from scale onto
// 0..to, so a table drawn out of 100 can drive a channel of any FullDuty.
func Rescale(t *Table, from, to uint16) *Table {
	if from == 0 {
		return t.Clone()
	}
	out := table.New[uint32, uint16](t.Cap())
	for i := 0; i < t.Len(); i++ {
		p := t.At(i)
		y := uint64(p.Y) * uint64(to) / uint64(from)
		if y > uint64(to) {
			y = uint64(to)
		}
		p.Y = uint16(y)
		// same X order and count as t, cannot fail
		_ = out.PushBack(p)
	}
	return out
}

// Cycle polls for n full periods of t and then returns; n <= 0 returns at
// once. It busy-waits and blocks the caller for the whole duration, yielding
// the processor between polls.
func (d *Driver) Cycle(t *Table, n int) error {
	if t.Len() == 0 {
		return table.ErrEmpty
	}
	if n <= 0 {
		return nil
	}
	total := uint64(t.Period()) * uint64(n)
	start := d.clk.Millis()
	var elapsed uint64
	last := start
	for elapsed < total {
		if err := d.Poll(t); err != nil {
			return err
		}
		runtime.Gosched()
		now := d.clk.Millis()
		elapsed += uint64(now - last)
		last = now
	}
	return nil
}
