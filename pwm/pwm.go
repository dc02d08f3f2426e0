// Package pwm implements a non-blocking software PWM channel. A Channel owns
// one bit of an output port and flips it when polled, holding each level for
// its share of the period.
package pwm

import (
	"math"

	"github.com/mastercactapus/pwmlights/clock"
	"github.com/mastercactapus/pwmlights/port"
)

const (
	// Forever as a period means the channel never switches on its own.
	Forever uint32 = math.MaxUint32

	DefaultDuty     uint16 = 50
	DefaultFullDuty uint16 = 100
)

// Channel is a software PWM output. Pin, Period, DutyCycle and FullDuty may be
// changed at any time; the new values take effect at the next transition.
//
// DutyCycle must stay within [0, FullDuty]. Out of range values and a zero
// Period give meaningless timing but never panic.
type Channel struct {
	Pin       port.Pin
	Period    uint32 // microseconds
	DutyCycle uint16
	FullDuty  uint16

	clk  clock.Source
	port port.Port

	on         bool
	lastSwitch uint32
	hold       uint32
}

// New returns a channel that starts low and evaluates its state on the first
// Poll.
func New(clk clock.Source, p port.Port, pin port.Pin, period uint32, duty, fullDuty uint16) *Channel {
	c := &Channel{}
	c.init(clk, p, pin, period, duty, fullDuty)
	return c
}

// NewDefault returns an unassigned channel: no pin, never switching, 0 of 100.
func NewDefault(clk clock.Source, p port.Port) *Channel {
	return New(clk, p, 0, Forever, 0, DefaultFullDuty)
}

// Init prepares a Channel value in place, for owners that embed one.
func (c *Channel) Init(clk clock.Source, p port.Port, pin port.Pin, period uint32, duty, fullDuty uint16) {
	c.init(clk, p, pin, period, duty, fullDuty)
}

func (c *Channel) init(clk clock.Source, p port.Port, pin port.Pin, period uint32, duty, fullDuty uint16) {
	*c = Channel{
		Pin:        pin,
		Period:     period,
		DutyCycle:  duty,
		FullDuty:   fullDuty,
		clk:        clk,
		port:       p,
		lastSwitch: clk.Micros(),
	}
}

// On reports the level the channel last drove.
func (c *Channel) On() bool { return c.on }

// Hold returns how long the current level is held before the next check.
func (c *Channel) Hold() uint32 { return c.hold }

// LastSwitch returns the microsecond timestamp of the last evaluation.
func (c *Channel) LastSwitch() uint32 { return c.lastSwitch }

// Poll checks whether the current level has been held long enough and, if so,
// switches. It never blocks. Saturated duty cycles (0 or FullDuty) keep the
// output steady and just re-arm a full period. Poll reports whether the
// output changed.
func (c *Channel) Poll() bool {
	now := c.clk.Micros()
	if now-c.lastSwitch < c.hold {
		return false
	}

	changed := false
	c.hold = c.Period
	if c.on {
		if c.DutyCycle != c.FullDuty && c.FullDuty != 0 {
			c.on = false
			c.port.Clear(c.Pin)
			c.hold = scale(c.Period, c.FullDuty-c.DutyCycle, c.FullDuty)
			changed = true
		}
	} else {
		if c.DutyCycle != 0 {
			c.on = true
			c.port.Set(c.Pin)
			if c.FullDuty != 0 {
				c.hold = scale(c.Period, c.DutyCycle, c.FullDuty)
			}
			changed = true
		}
	}
	c.lastSwitch = now
	return changed
}

// HoldTimes returns the high and low hold durations a channel arms for the
// given settings. Truncation makes them sum to period or period-1.
func HoldTimes(period uint32, duty, fullDuty uint16) (on, off uint32) {
	if fullDuty == 0 {
		return period, 0
	}
	return scale(period, duty, fullDuty), scale(period, fullDuty-duty, fullDuty)
}

// scale computes period*num/den, multiplying first.
func scale(period uint32, num, den uint16) uint32 {
	return uint32(uint64(period) * uint64(num) / uint64(den))
}
