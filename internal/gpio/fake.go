package gpio

import (
	"errors"

	"github.com/sweeney/lift-controller/internal/lift"
)

// Fake is a test double that returns scripted input samples and records
// every output operation. Not safe for concurrent use — tests drive the
// controller from a single goroutine.
type Fake struct {
	// Samples contains scripted raw input levels. Each call to Sample()
	// consumes the next one; when exhausted, the last repeats.
	Samples []lift.Sample

	index int

	// SampleError, if set, is returned by Sample().
	SampleError error

	// LEDs holds the current LED levels.
	LEDs map[lift.Position]bool

	// UpClosed and DownClosed track the actuator control lines.
	UpClosed   bool
	DownClosed bool

	// SlowApproach tracks the speed select line.
	SlowApproach bool

	// TumblerPull is the last configured pull resistor.
	TumblerPull lift.Pull

	// Ops records every output operation in order, for sequence assertions.
	Ops []string

	// Closed tracks if Close was called.
	Closed bool
}

// NewFake creates a Fake with the given scripted samples.
func NewFake(samples ...lift.Sample) *Fake {
	return &Fake{
		Samples: samples,
		LEDs:    make(map[lift.Position]bool),
	}
}

// Sample returns the next scripted sample.
func (f *Fake) Sample() (lift.Sample, error) {
	if f.SampleError != nil {
		return lift.Sample{}, f.SampleError
	}
	if len(f.Samples) == 0 {
		return lift.Sample{}, errors.New("no samples configured")
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s, nil
}

func (f *Fake) record(op string) {
	f.Ops = append(f.Ops, op)
}

// LEDOn lights the LED for the given position.
func (f *Fake) LEDOn(p lift.Position) {
	f.LEDs[p] = true
	f.record("led_on:" + p.String())
}

// LEDOff extinguishes the LED for the given position.
func (f *Fake) LEDOff(p lift.Position) {
	f.LEDs[p] = false
	f.record("led_off:" + p.String())
}

// LEDToggle inverts the LED for the given position.
func (f *Fake) LEDToggle(p lift.Position) {
	f.LEDs[p] = !f.LEDs[p]
	f.record("led_toggle:" + p.String())
}

// EnergizeUp closes the up control line.
func (f *Fake) EnergizeUp() {
	f.UpClosed = true
	f.record("energize_up")
}

// ReleaseUp opens the up control line.
func (f *Fake) ReleaseUp() {
	f.UpClosed = false
	f.record("release_up")
}

// EnergizeDown closes the down control line.
func (f *Fake) EnergizeDown() {
	f.DownClosed = true
	f.record("energize_down")
}

// ReleaseDown opens the down control line.
func (f *Fake) ReleaseDown() {
	f.DownClosed = false
	f.record("release_down")
}

// SetSlowApproach records the speed select level.
func (f *Fake) SetSlowApproach(on bool) {
	f.SlowApproach = on
	if on {
		f.record("slow_approach_on")
	} else {
		f.record("slow_approach_off")
	}
}

// SetTumblerPull records the tumbler pull configuration.
func (f *Fake) SetTumblerPull(p lift.Pull) {
	f.TumblerPull = p
	if p == lift.PullUp {
		f.record("tumbler_pull_up")
	} else {
		f.record("tumbler_pull_down")
	}
}

// Close marks the device as closed.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the sample script and clears recorded operations.
func (f *Fake) Reset() {
	f.index = 0
	f.Ops = nil
	f.Closed = false
}
