package port

import (
	"strconv"

	log "github.com/sirupsen/logrus"
)

const (
	LOW  = 0
	HIGH = 1
)

// DigitalWriter drives a physical pin by its header number. The gobot raspi
// adaptor satisfies it.
type DigitalWriter interface {
	DigitalWrite(pin string, val byte) error
}

// Line maps one port bit to a physical output.
type Line struct {
	Name   string
	Pin    int
	Invert bool
}

// GPIO is a Port whose bits are routed to physical pins through a
// DigitalWriter. Bits without a Line are ignored.
type GPIO struct {
	w      DigitalWriter
	lines  [8]Line
	mapped Pin
	err    error
}

func NewGPIO(w DigitalWriter) *GPIO {
	return &GPIO{w: w}
}

// Map routes bit to l. bit must select exactly one bit.
func (g *GPIO) Map(bit Pin, l Line) error {
	if !bit.OneHot() {
		return ErrNotOneHot
	}
	g.lines[bit.Index()] = l
	g.mapped |= bit
	return nil
}

// Mapped returns the bits that have a Line.
func (g *GPIO) Mapped() Pin { return g.mapped }

func (g *GPIO) Set(mask Pin)   { g.write(mask, true) }
func (g *GPIO) Clear(mask Pin) { g.write(mask, false) }

// Err returns the first write error seen, if any. Port has no error return, so
// failures are logged and kept here for the caller's loop to inspect.
func (g *GPIO) Err() error { return g.err }

func (g *GPIO) write(mask Pin, state bool) {
	mask &= g.mapped
	for mask != 0 {
		idx := mask.Index()
		mask &^= 1 << idx
		l := g.lines[idx]

		var val byte
		if l.Invert != state {
			val = HIGH
		} else {
			val = LOW
		}
		err := g.w.DigitalWrite(strconv.Itoa(l.Pin), val)
		if err != nil {
			log.WithFields(log.Fields{
				"ID":    l.Name,
				"Pin":   l.Pin,
				"State": state,
			}).Errorln("write pin:", err)
			if g.err == nil {
				g.err = err
			}
		}
	}
}
