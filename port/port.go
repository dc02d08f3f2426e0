// Package port models the bit-addressable digital output register the PWM
// channels write to. Each channel owns one bit; the core only ever sets or
// clears bits and never reads the port back.
package port

import (
	"errors"
	"math/bits"
	"strconv"
)

// Pin selects bits of an output port. The named pins are one-hot.
type Pin uint8

// Output bits, named after the header pins they drive on the reference board.
const (
	P8 Pin = 1 << iota
	P9
	P10
	P11
	P12
	P13

	LED = P13 // on-board LED
)

// Pins lists the named output bits in port order.
var Pins = [...]Pin{P8, P9, P10, P11, P12, P13}

var (
	ErrNotOneHot  = errors.New("pin_not_one_hot")
	ErrUnknownPin = errors.New("unknown_pin")
)

// Port is the write-only view of an output register.
type Port interface {
	// Set drives every bit in mask high.
	Set(mask Pin)
	// Clear drives every bit in mask low.
	Clear(mask Pin)
}

// OneHot reports whether exactly one bit is selected.
func (p Pin) OneHot() bool { return bits.OnesCount8(uint8(p)) == 1 }

// Index returns the bit position of the lowest selected bit, or -1 for 0.
func (p Pin) Index() int {
	if p == 0 {
		return -1
	}
	return bits.TrailingZeros8(uint8(p))
}

func (p Pin) String() string {
	if p.OneHot() {
		return "P" + strconv.Itoa(p.Index()+8)
	}
	return "0x" + strconv.FormatUint(uint64(p), 16)
}

// ParsePin accepts the names produced by Pin.String for the named pins.
func ParsePin(s string) (Pin, error) {
	for _, p := range Pins {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, ErrUnknownPin
}

// Register is an in-memory output port. The zero value has every bit low.
type Register struct {
	bits Pin
}

func (r *Register) Set(mask Pin)   { r.bits |= mask }
func (r *Register) Clear(mask Pin) { r.bits &^= mask }

// Bits returns the current register value.
func (r *Register) Bits() Pin { return r.bits }

// IsSet reports whether every bit in mask is high.
func (r *Register) IsSet(mask Pin) bool { return r.bits&mask == mask }
