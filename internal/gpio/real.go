//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/lift-controller/internal/lift"
)

// Real drives actual hardware through the Linux GPIO character device.
// Buttons are requested with pull-ups (active-low contacts), the tumbler
// starts on pull-down and is reconfigured by the mode decoder, and the
// hall sensor delivers falling-edge events to the controller's pulse
// handler on the gpiocdev event goroutine.
type Real struct {
	chip *gpiocdev.Chip

	up      *gpiocdev.Line
	down    *gpiocdev.Line
	program *gpiocdev.Line
	tumbler *gpiocdev.Line
	hall    *gpiocdev.Line

	leds     map[lift.Position]*gpiocdev.Line
	ledState map[lift.Position]int

	upSwitch    *gpiocdev.Line
	downSwitch  *gpiocdev.Line
	speedSelect *gpiocdev.Line
}

// NewReal requests all lines described by pins. onPulse is invoked for
// every hall-sensor falling edge.
func NewReal(pins Pins, onPulse func()) (*Real, error) {
	chip, err := gpiocdev.NewChip(pins.Chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", pins.Chip, err)
	}

	r := &Real{
		chip:     chip,
		leds:     make(map[lift.Position]*gpiocdev.Line, 3),
		ledState: make(map[lift.Position]int, 3),
	}

	input := func(dst **gpiocdev.Line, offset int, name string) error {
		line, err := chip.RequestLine(offset, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			return fmt.Errorf("request %s pin %d: %w", name, offset, err)
		}
		*dst = line
		return nil
	}
	output := func(dst **gpiocdev.Line, offset int, name string) error {
		line, err := chip.RequestLine(offset, gpiocdev.AsOutput(0))
		if err != nil {
			return fmt.Errorf("request %s pin %d: %w", name, offset, err)
		}
		*dst = line
		return nil
	}

	steps := []func() error{
		func() error { return input(&r.up, pins.Up, "up button") },
		func() error { return input(&r.down, pins.Down, "down button") },
		func() error { return input(&r.program, pins.Program, "program button") },
		func() error {
			line, err := chip.RequestLine(pins.Tumbler, gpiocdev.AsInput, gpiocdev.WithPullDown)
			if err != nil {
				return fmt.Errorf("request tumbler pin %d: %w", pins.Tumbler, err)
			}
			r.tumbler = line
			return nil
		},
		func() error {
			line, err := chip.RequestLine(pins.Hall,
				gpiocdev.AsInput,
				gpiocdev.WithPullUp,
				gpiocdev.WithFallingEdge,
				gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { onPulse() }))
			if err != nil {
				return fmt.Errorf("request hall pin %d: %w", pins.Hall, err)
			}
			r.hall = line
			return nil
		},
		func() error {
			for _, lp := range []struct {
				pos    lift.Position
				offset int
				name   string
			}{
				{lift.PositionBottom, pins.LEDBottom, "bottom LED"},
				{lift.PositionMiddle, pins.LEDMiddle, "middle LED"},
				{lift.PositionTop, pins.LEDTop, "top LED"},
			} {
				line, err := chip.RequestLine(lp.offset, gpiocdev.AsOutput(0))
				if err != nil {
					return fmt.Errorf("request %s pin %d: %w", lp.name, lp.offset, err)
				}
				r.leds[lp.pos] = line
				r.ledState[lp.pos] = 0
			}
			return nil
		},
		func() error { return output(&r.upSwitch, pins.UpSwitch, "up switch") },
		func() error { return output(&r.downSwitch, pins.DownSwitch, "down switch") },
		func() error { return output(&r.speedSelect, pins.SpeedSelect, "speed select") },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			r.Close()
			return nil, err
		}
	}

	return r, nil
}

// Sample reads the raw level of every debounced input.
func (r *Real) Sample() (lift.Sample, error) {
	var s lift.Sample

	for _, in := range []struct {
		line *gpiocdev.Line
		dst  *bool
		name string
	}{
		{r.up, &s.UpHigh, "up button"},
		{r.down, &s.DownHigh, "down button"},
		{r.program, &s.ProgramHigh, "program button"},
		{r.tumbler, &s.TumblerHigh, "tumbler"},
	} {
		v, err := in.line.Value()
		if err != nil {
			return lift.Sample{}, fmt.Errorf("read %s: %w", in.name, err)
		}
		*in.dst = v != 0
	}

	return s, nil
}

// LEDOn lights the LED for the given position.
func (r *Real) LEDOn(p lift.Position) { r.setLED(p, 1) }

// LEDOff extinguishes the LED for the given position.
func (r *Real) LEDOff(p lift.Position) { r.setLED(p, 0) }

// LEDToggle inverts the LED for the given position.
func (r *Real) LEDToggle(p lift.Position) { r.setLED(p, 1-r.ledState[p]) }

func (r *Real) setLED(p lift.Position, v int) {
	if line, ok := r.leds[p]; ok {
		r.ledState[p] = v
		line.SetValue(v)
	}
}

// EnergizeUp closes the actuator up control line.
func (r *Real) EnergizeUp() { r.upSwitch.SetValue(1) }

// ReleaseUp opens the actuator up control line.
func (r *Real) ReleaseUp() { r.upSwitch.SetValue(0) }

// EnergizeDown closes the actuator down control line.
func (r *Real) EnergizeDown() { r.downSwitch.SetValue(1) }

// ReleaseDown opens the actuator down control line.
func (r *Real) ReleaseDown() { r.downSwitch.SetValue(0) }

// SetSlowApproach selects reduced travel speed.
func (r *Real) SetSlowApproach(on bool) {
	v := 0
	if on {
		v = 1
	}
	r.speedSelect.SetValue(v)
}

// SetTumblerPull reconfigures the tumbler pin's pull resistor. The mode
// decoder alternates this between readings.
func (r *Real) SetTumblerPull(p lift.Pull) {
	if p == lift.PullUp {
		r.tumbler.Reconfigure(gpiocdev.WithPullUp)
	} else {
		r.tumbler.Reconfigure(gpiocdev.WithPullDown)
	}
}

// Close opens both actuator lines, extinguishes the LEDs and releases all
// GPIO resources. The actuator must never stay energized past the daemon.
func (r *Real) Close() error {
	var errs []error

	if r.upSwitch != nil {
		r.upSwitch.SetValue(0)
	}
	if r.downSwitch != nil {
		r.downSwitch.SetValue(0)
	}

	for _, line := range []*gpiocdev.Line{
		r.up, r.down, r.program, r.tumbler, r.hall,
		r.upSwitch, r.downSwitch, r.speedSelect,
	} {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for p, line := range r.leds {
		line.SetValue(0)
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s LED: %w", p, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
