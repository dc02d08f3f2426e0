//go:build tinygo

// Command pwmlights-pico runs the light patterns on a Raspberry Pi Pico:
// the on-board LED breathes and GP15 gives a double heartbeat blink.
//
//	tinygo flash -target=pico ./cmd/pwmlights-pico
package main

import (
	"machine"
	"runtime"

	"github.com/mastercactapus/pwmlights/clock"
	"github.com/mastercactapus/pwmlights/led"
	"github.com/mastercactapus/pwmlights/port"
	"github.com/mastercactapus/pwmlights/preset"
)

func main() {
	out := port.NewMachine()
	if err := out.Map(port.LED, machine.LED); err != nil {
		println("map LED:", err.Error())
		return
	}
	if err := out.Map(port.P8, machine.GP15); err != nil {
		println("map GP15:", err.Error())
		return
	}

	clk := clock.System()
	breathe := led.New(clk, out, port.LED, 1)
	blink := led.New(clk, out, port.P8, 1)

	for {
		if err := breathe.Poll(preset.Breathing); err != nil {
			println("breathe:", err.Error())
		}
		if err := blink.Poll(preset.Heartbeat); err != nil {
			println("blink:", err.Error())
		}
		runtime.Gosched()
	}
}
