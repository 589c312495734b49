// Package gpio drives the lift controller's physical I/O with hardware
// abstraction. The real implementation uses the Linux GPIO character
// device; the fake allows testing without hardware.
package gpio

import "github.com/sweeney/lift-controller/internal/lift"

// Device is the full hardware surface the controller needs: raw input
// sampling each tick, plus the output lines behind lift.Outputs.
type Device interface {
	lift.Outputs

	// Sample reads the raw levels of all debounced inputs.
	Sample() (lift.Sample, error)

	// Close releases GPIO resources.
	Close() error
}

// Pins maps logical lines to chip offsets (BCM numbering on a Pi).
type Pins struct {
	Chip string `yaml:"chip"`

	Up      int `yaml:"up"`      // up button, active-low
	Down    int `yaml:"down"`    // down button, active-low
	Program int `yaml:"program"` // program button, active-low
	Tumbler int `yaml:"tumbler"` // mode tumbler, pull multiplexed
	Hall    int `yaml:"hall"`    // magnetic position sensor, falling edge

	LEDBottom int `yaml:"led_bottom"`
	LEDMiddle int `yaml:"led_middle"`
	LEDTop    int `yaml:"led_top"`

	UpSwitch    int `yaml:"up_switch"`    // actuator up control line
	DownSwitch  int `yaml:"down_switch"`  // actuator down control line
	SpeedSelect int `yaml:"speed_select"` // slow-approach select line
}

// DefaultPins returns the production board wiring.
func DefaultPins() Pins {
	return Pins{
		Chip:        "gpiochip0",
		Up:          5,
		Down:        6,
		Program:     13,
		Tumbler:     19,
		Hall:        26,
		LEDBottom:   16,
		LEDMiddle:   20,
		LEDTop:      21,
		UpSwitch:    23,
		DownSwitch:  24,
		SpeedSelect: 25,
	}
}
