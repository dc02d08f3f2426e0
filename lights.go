package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mastercactapus/pwmlights/clock"
	"github.com/mastercactapus/pwmlights/led"
	"github.com/mastercactapus/pwmlights/port"
)

type light struct {
	Light
	bit    port.Pin
	table  *led.Table
	driver *led.Driver
	on     bool
}

// Runner polls every configured light from a single goroutine.
type Runner struct {
	out      port.Port
	lights   []*light
	interval time.Duration
}

// NewRunner builds one LED driver per light. c must have been validated.
func (c *Config) NewRunner(clk clock.Source, out port.Port) (*Runner, error) {
	r := &Runner{
		out:      out,
		lights:   make([]*light, 0, len(c.Light)),
		interval: c.PollInterval(),
	}
	for i, l := range c.Light {
		t, err := l.Table()
		if err != nil {
			return nil, err
		}
		bit := port.Pins[i]
		d := led.NewWithChannel(clk, out, bit, c.PWMPeriodUs, l.FullDuty, l.Intensity)
		r.lights = append(r.lights, &light{Light: l, bit: bit, table: t, driver: d})

		log.WithFields(log.Fields{
			"ID":        l.Name,
			"Pin":       l.Pin,
			"Bit":       bit.String(),
			"Pattern":   l.Pattern,
			"Period":    (time.Duration(t.Period()) * time.Millisecond).String(),
			"Intensity": l.Intensity,
		}).Infoln("light configured")
	}
	out.Clear(r.mask())
	return r, nil
}

func (r *Runner) mask() port.Pin {
	var m port.Pin
	for _, l := range r.lights {
		m |= l.bit
	}
	return m
}

// PollOnce services every light once.
func (r *Runner) PollOnce() error {
	for _, l := range r.lights {
		if err := l.driver.Poll(l.table); err != nil {
			return err
		}
		on := l.driver.Channel().On()
		if on != l.on {
			l.on = on
			lg := log.WithFields(log.Fields{
				"ID":   l.Name,
				"Pin":  l.Pin,
				"Duty": l.driver.Channel().DutyCycle,
			})
			if on {
				lg.Traceln("light on")
			} else {
				lg.Traceln("light off")
			}
		}
	}
	if ep, ok := r.out.(interface{ Err() error }); ok {
		return ep.Err()
	}
	return nil
}

// Off drives every light low.
func (r *Runner) Off() {
	r.out.Clear(r.mask())
	for _, l := range r.lights {
		l.on = false
	}
}

// Run polls until ctx is cancelled or a write fails, then turns all lights off.
func (r *Runner) Run(ctx context.Context) error {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	defer r.Off()

	for {
		select {
		case <-ctx.Done():
			log.Infoln("stopping:", context.Cause(ctx))
			return nil
		case <-t.C:
			if err := r.PollOnce(); err != nil {
				return err
			}
		}
	}
}
