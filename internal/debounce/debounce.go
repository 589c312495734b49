// Package debounce turns noisy digital sample streams into stable readings.
// A reading is reported only once every sample in the shift window agrees
// (all-high or all-low); anything in between reports no change.
// This package has NO external dependencies and no notion of wall-clock time:
// the caller decides the sample cadence.
package debounce

// DefaultWidth is the number of agreeing samples required for saturation.
const DefaultWidth = 8

// Accumulator is a fixed-width shift register of raw samples.
type Accumulator struct {
	width uint
	mask  uint32
	bits  uint32
}

// NewAccumulator creates an accumulator requiring width agreeing samples.
// Width must be between 1 and 32; out-of-range values fall back to
// DefaultWidth. The register starts saturated high (released, for
// active-low inputs).
func NewAccumulator(width int) Accumulator {
	if width < 1 || width > 32 {
		width = DefaultWidth
	}
	w := uint(width)
	var mask uint32
	if w == 32 {
		mask = ^uint32(0)
	} else {
		mask = (1 << w) - 1
	}
	return Accumulator{width: w, mask: mask, bits: mask}
}

// Shift pushes one raw sample into the register.
func (a *Accumulator) Shift(high bool) {
	a.bits <<= 1
	if high {
		a.bits |= 1
	}
	a.bits &= a.mask
}

// High reports whether every sample in the window is high.
func (a *Accumulator) High() bool {
	return a.bits == a.mask
}

// Low reports whether every sample in the window is low.
func (a *Accumulator) Low() bool {
	return a.bits == 0
}

// Saturated returns the stable level and true if all samples agree.
func (a *Accumulator) Saturated() (level bool, ok bool) {
	switch a.bits {
	case a.mask:
		return true, true
	case 0:
		return false, true
	}
	return false, false
}

// ResetNeutral loads the alternating pattern, the state farthest from both
// saturation points, so a full window of fresh agreeing samples is required
// before the next stable reading.
func (a *Accumulator) ResetNeutral() {
	a.bits = 0x55555555 & a.mask
}

// Switch is a debounced momentary input. Raw samples are active-low:
// a window of all-low samples means pressed, all-high means released.
type Switch struct {
	acc          Accumulator
	pressed      bool
	lastReported bool
}

// NewSwitch creates a released switch with the given sample width.
func NewSwitch(width int) Switch {
	return Switch{acc: NewAccumulator(width)}
}

// Sample pushes one raw pin level. The pressed state flips only on
// saturation; partial windows leave it unchanged.
func (s *Switch) Sample(rawHigh bool) {
	s.acc.Shift(rawHigh)
	if s.acc.Low() {
		s.pressed = true
	} else if s.acc.High() {
		s.pressed = false
	}
}

// Pressed returns the current debounced state.
func (s *Switch) Pressed() bool {
	return s.pressed
}

// Edge returns the new state and true once per debounced transition.
// The caller that consumes the edge owns the reaction to it.
func (s *Switch) Edge() (pressed bool, ok bool) {
	if s.pressed == s.lastReported {
		return false, false
	}
	s.lastReported = s.pressed
	return s.pressed, true
}

// Tumbler is a debounced input that exposes its raw saturated level rather
// than a pressed/released edge. The mode decoder reads it under alternating
// pull configurations and resets it between readings.
type Tumbler struct {
	acc Accumulator
}

// NewTumbler creates a tumbler with the given sample width, starting at the
// neutral pattern so no stale saturation is reported before real samples
// arrive.
func NewTumbler(width int) Tumbler {
	t := Tumbler{acc: NewAccumulator(width)}
	t.acc.ResetNeutral()
	return t
}

// Sample pushes one raw pin level.
func (t *Tumbler) Sample(rawHigh bool) {
	t.acc.Shift(rawHigh)
}

// Saturated returns the raw stable level and true once all samples agree.
func (t *Tumbler) Saturated() (level bool, ok bool) {
	return t.acc.Saturated()
}

// ResetNeutral discards the current window. Called after each recorded
// reading, before the pull configuration is swapped.
func (t *Tumbler) ResetNeutral() {
	t.acc.ResetNeutral()
}
