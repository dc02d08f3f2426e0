package main

const configFile = `
# NOTE: Pins are in reference to physical pin numbers.
# Lights are assigned PWM channels P8..P13 in order; at most six lights.

# How often every light is polled, in microseconds. Keep it well below the
# shortest on/off time the PWM channels produce.
PollIntervalUs = 200

# Software PWM period in microseconds (10000 = 100Hz).
PWMPeriodUs = 10000

[[Light]]
	Name = "LED1"
	Pin = 8
	# breathe: slow rise to full brightness at half the period, then back down
	Pattern = "breathe"
	PeriodMs = 4000
	# Uncomment to output signal ` + "`LOW`" + ` when active instead of ` + "`HIGH`" + `
	# Invert = true

[[Light]]
	Name = "LED2"
	Pin = 10
	# blink: Repeat flashes of OnMs lit / OffMs dark, then PauseMs dark.
	# Zero values take the defaults (1 flash, 100ms, 150ms, 1000ms).
	Pattern = "blink"
	Repeat = 2
	OnMs = 100
	OffMs = 150
	PauseMs = 1000

[[Light]]
	Name = "LED3"
	Pin = 12
	# constant: hold Duty (0-100) steady
	Pattern = "constant"
	Duty = 30
	# Intensity scales the pattern, 0.0..1.0, 1.0 = as drawn
	Intensity = 0.5
	# Raise FullDuty for finer brightness steps (up to 65535)
	FullDuty = 1000
`
