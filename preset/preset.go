// Package preset builds the stock brightness tables: constant levels,
// breathing and blinking. Every builder sizes its table exactly.
package preset

import (
	"errors"
	"sort"

	"github.com/mastercactapus/pwmlights/led"
	"github.com/mastercactapus/pwmlights/table"
)

// Full is the duty value of a fully lit LED in preset tables.
const Full uint16 = 100

var ErrUnknownPattern = errors.New("unknown_pattern")

// Premade tables, built once at startup. Treat them as read-only; Clone one
// before modifying it.
var (
	AlwaysOn  = On(1000)
	AlwaysOff = Off(1000)
	Breathing = Breathe(4000)
	Heartbeat = Blink(2, 100, 150, 1000)
)

// Constant holds duty for the whole period (ms).
func Constant(duty uint16, period uint32) *led.Table {
	if period == 0 {
		period = 1
	}
	t := table.New[uint32, uint16](2)
	must(t.PushBack(led.Point{X: 0, Y: duty}, led.Point{X: period, Y: duty}))
	return t
}

func On(period uint32) *led.Table  { return Constant(Full, period) }
func Off(period uint32) *led.Table { return Constant(0, period) }

// Breathe rises slowly, then quickly to full brightness at half the period and
// falls back symmetrically.
func Breathe(period uint32) *led.Table {
	t := table.New[uint32, uint16](7)
	must(t.PushBack(
		led.Point{X: 0, Y: 0},
		led.Point{X: period / 8, Y: 0},
		led.Point{X: period / 3, Y: 30},
		led.Point{X: period / 2, Y: Full},
	))
	must(t.Mirror())
	return t
}

// Blink flashes n times, on ms lit and off ms dark each, then stays dark for
// pause ms before the pattern repeats. n below 1 is treated as 1.
func Blink(n int, on, off, pause uint32) *led.Table {
	if n < 1 {
		n = 1
	}
	t := table.New[uint32, uint16](4 * n)
	must(t.PushBack(
		led.Point{X: 0, Y: Full},
		led.Point{X: on, Y: Full},
		led.Point{X: on, Y: 0},
		led.Point{X: on + off, Y: 0},
	))
	must(t.NPlicate(n - 1))

	last, _ := t.PopBack()
	last.X += pause
	must(t.PushBack(last))
	return t
}

// Params configures a pattern chosen by name. Fields a pattern does not use
// are ignored.
type Params struct {
	PeriodMs uint32
	Duty     uint16
	Repeat   int
	OnMs     uint32
	OffMs    uint32
	PauseMs  uint32
}

var builders = map[string]func(Params) *led.Table{
	"on":       func(p Params) *led.Table { return On(p.PeriodMs) },
	"off":      func(p Params) *led.Table { return Off(p.PeriodMs) },
	"constant": func(p Params) *led.Table { return Constant(p.Duty, p.PeriodMs) },
	"breathe":  func(p Params) *led.Table { return Breathe(p.PeriodMs) },
	"blink":    func(p Params) *led.Table { return Blink(p.Repeat, p.OnMs, p.OffMs, p.PauseMs) },
}

// ByName builds the named pattern.
func ByName(name string, p Params) (*led.Table, error) {
	b, ok := builders[name]
	if !ok {
		return nil, ErrUnknownPattern
	}
	return b(p), nil
}

// Names lists the pattern names ByName accepts, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func must(err error) {
	if err != nil {
		panic("preset: " + err.Error())
	}
}
