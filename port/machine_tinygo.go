//go:build tinygo

package port

import "machine"

// Machine is a Port over TinyGo machine pins, for running the channels
// directly on a microcontroller.
type Machine struct {
	pins   [8]machine.Pin
	mapped Pin
}

func NewMachine() *Machine { return &Machine{} }

// Map configures p as an output, drives it low and routes bit to it.
func (m *Machine) Map(bit Pin, p machine.Pin) error {
	if !bit.OneHot() {
		return ErrNotOneHot
	}
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	m.pins[bit.Index()] = p
	m.mapped |= bit
	return nil
}

func (m *Machine) Set(mask Pin) {
	mask &= m.mapped
	for mask != 0 {
		idx := mask.Index()
		mask &^= 1 << idx
		m.pins[idx].High()
	}
}

func (m *Machine) Clear(mask Pin) {
	mask &= m.mapped
	for mask != 0 {
		idx := mask.Index()
		mask &^= 1 << idx
		m.pins[idx].Low()
	}
}
