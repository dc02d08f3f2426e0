package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mastercactapus/pwmlights/clock"
	"github.com/mastercactapus/pwmlights/led"
	"github.com/mastercactapus/pwmlights/port"
	"github.com/mastercactapus/pwmlights/preset"
	"github.com/mastercactapus/pwmlights/pwm"
)

// previewTickUs is the simulated poll interval used to measure the duty a
// driver actually produces.
const previewTickUs = 100

type previewOpts struct {
	preset.Params
	StepMs      uint32
	PWMPeriodUs uint32
}

func newPreviewCmd() *cobra.Command {
	var o previewOpts
	cmd := &cobra.Command{
		Use:       "preview <pattern>",
		Short:     "Print a pattern's breakpoints and simulated brightness",
		Args:      cobra.ExactArgs(1),
		ValidArgs: preset.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return preview(cmd.OutOrStdout(), args[0], o)
		},
	}
	f := cmd.Flags()
	f.Uint32Var(&o.PeriodMs, "period", DefaultPeriodMs, "Pattern period in milliseconds")
	f.Uint16Var(&o.Duty, "duty", 50, "Duty (0-100) for the constant pattern")
	f.IntVar(&o.Repeat, "repeat", DefaultRepeat, "Number of blink flashes")
	f.Uint32Var(&o.OnMs, "on", DefaultOnMs, "Blink on time in milliseconds")
	f.Uint32Var(&o.OffMs, "off", DefaultOffMs, "Blink off time in milliseconds")
	f.Uint32Var(&o.PauseMs, "pause", DefaultPauseMs, "Blink pause in milliseconds")
	f.Uint32Var(&o.StepMs, "step", 250, "Sample step in milliseconds")
	f.Uint32Var(&o.PWMPeriodUs, "pwm-period", DefaultPWMPeriodUs, "PWM period in microseconds")
	return cmd
}

func preview(w io.Writer, name string, o previewOpts) error {
	t, err := preset.ByName(name, o.Params)
	if err != nil {
		return fmt.Errorf("pattern '%s': %w", name, err)
	}
	if o.StepMs == 0 {
		o.StepMs = 1
	}
	if o.PWMPeriodUs == 0 {
		o.PWMPeriodUs = DefaultPWMPeriodUs
	}

	fmt.Fprintf(w, "%s: %d points, period %dms\n", name, t.Len(), t.Period())
	for _, p := range t.Points() {
		fmt.Fprintf(w, "  %6dms %4d\n", p.X, p.Y)
	}

	clk := clock.NewManual(0)
	var reg port.Register
	d := led.NewWithChannel(clk, &reg, port.LED, o.PWMPeriodUs, pwm.DefaultFullDuty, 1)

	fmt.Fprintln(w, "      time table  high    on/off us")
	for x := uint32(0); x < t.Period(); x += o.StepMs {
		want, err := t.Interp(x)
		if err != nil {
			return err
		}

		var high, ticks uint32
		for clk.Millis() < x+o.StepMs {
			if err := d.Poll(t); err != nil {
				return err
			}
			if reg.IsSet(port.LED) {
				high++
			}
			ticks++
			clk.AdvanceMicros(previewTickUs)
		}
		measured := uint32(0)
		if ticks > 0 {
			measured = high * 100 / ticks
		}
		on, off := pwm.HoldTimes(o.PWMPeriodUs, want, pwm.DefaultFullDuty)
		fmt.Fprintf(w, "  %6dms %4d%% %4d%% %6d/%-6d %s\n",
			x, want, measured, on, off, strings.Repeat("#", int(want)/5))
	}
	return nil
}
