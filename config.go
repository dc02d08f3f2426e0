package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/mastercactapus/pwmlights/led"
	"github.com/mastercactapus/pwmlights/port"
	"github.com/mastercactapus/pwmlights/preset"
)

const (
	DefaultPollIntervalUs = 200
	DefaultPWMPeriodUs    = 10_000
	DefaultFullDuty       = 100

	DefaultPeriodMs = 4000
	DefaultRepeat   = 1
	DefaultOnMs     = 100
	DefaultOffMs    = 150
	DefaultPauseMs  = 1000
)

var (
	ErrInvalidName = errors.New("invalid name")
	ErrNoLights    = errors.New("no lights configured")
	ErrTooMany     = errors.New("too many lights")
)

type Config struct {
	Light          []Light
	PollIntervalUs int64
	PWMPeriodUs    uint32
}

type Light struct {
	Name   string
	Pin    int
	Invert bool

	Pattern   string
	PeriodMs  uint32
	Duty      uint16
	Repeat    int
	OnMs      uint32
	OffMs     uint32
	PauseMs   uint32
	Intensity float32
	FullDuty  uint16
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalUs) * time.Microsecond
}

func (l Light) Params() preset.Params {
	return preset.Params{
		PeriodMs: l.PeriodMs,
		Duty:     l.Duty,
		Repeat:   l.Repeat,
		OnMs:     l.OnMs,
		OffMs:    l.OffMs,
		PauseMs:  l.PauseMs,
	}
}

// Table builds the brightness table for the light's pattern, with duties on
// the light's FullDuty scale.
func (l Light) Table() (*led.Table, error) {
	t, err := preset.ByName(l.Pattern, l.Params())
	if err != nil {
		return nil, fmt.Errorf("light '%s' pattern '%s': %w", l.Name, l.Pattern, err)
	}
	if l.FullDuty != 0 && l.FullDuty != preset.Full {
		t = led.Rescale(t, preset.Full, l.FullDuty)
	}
	return t, nil
}

// Validate fills in defaults and checks that every light can be built. Lights
// take port bits P8..P13 in the order they are declared.
func (c *Config) Validate() error {
	if len(c.Light) == 0 {
		return ErrNoLights
	}
	if len(c.Light) > len(port.Pins) {
		return fmt.Errorf("%w: %d configured, at most %d", ErrTooMany, len(c.Light), len(port.Pins))
	}
	if c.PollIntervalUs <= 0 {
		c.PollIntervalUs = DefaultPollIntervalUs
	}
	if c.PWMPeriodUs == 0 {
		c.PWMPeriodUs = DefaultPWMPeriodUs
	}

	names := make(map[string]bool, len(c.Light))
	pins := make(map[int]string, len(c.Light))
	for i := range c.Light {
		l := &c.Light[i]
		if l.Name == "" {
			return fmt.Errorf("light #%d: %w", i, ErrInvalidName)
		}
		if names[l.Name] {
			return fmt.Errorf("duplicate light identifier '%s'", l.Name)
		}
		names[l.Name] = true

		if l.Pin <= 0 {
			return fmt.Errorf("light '%s': invalid pin %d", l.Name, l.Pin)
		}
		if other, ok := pins[l.Pin]; ok {
			return fmt.Errorf("light '%s': pin %d already used by '%s'", l.Name, l.Pin, other)
		}
		pins[l.Pin] = l.Name

		l.applyDefaults()
		if l.Intensity < 0 || l.Intensity > 1 {
			return fmt.Errorf("light '%s': intensity %g outside 0..1", l.Name, l.Intensity)
		}
		if l.Duty > preset.Full {
			return fmt.Errorf("light '%s': duty %d above %d", l.Name, l.Duty, preset.Full)
		}
		if _, err := l.Table(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Light) applyDefaults() {
	if l.Pattern == "" {
		l.Pattern = "on"
	}
	if l.PeriodMs == 0 {
		l.PeriodMs = DefaultPeriodMs
	}
	if l.Repeat == 0 {
		l.Repeat = DefaultRepeat
	}
	if l.OnMs == 0 {
		l.OnMs = DefaultOnMs
	}
	if l.OffMs == 0 {
		l.OffMs = DefaultOffMs
	}
	if l.PauseMs == 0 {
		l.PauseMs = DefaultPauseMs
	}
	if l.Intensity == 0 {
		l.Intensity = 1
	}
	if l.FullDuty == 0 {
		l.FullDuty = DefaultFullDuty
	}
}

// MapLines routes each light's port bit to its physical pin.
func (c *Config) MapLines(g *port.GPIO) error {
	for i, l := range c.Light {
		err := g.Map(port.Pins[i], port.Line{Name: l.Name, Pin: l.Pin, Invert: l.Invert})
		if err != nil {
			return fmt.Errorf("map light '%s': %w", l.Name, err)
		}
	}
	return nil
}
