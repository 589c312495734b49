//go:build !linux

package gpio

import (
	"errors"

	"github.com/sweeney/lift-controller/internal/lift"
)

// Real is not available on non-Linux platforms.
type Real struct{}

// NewReal returns an error on non-Linux platforms.
func NewReal(Pins, func()) (*Real, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Sample is not implemented on non-Linux platforms.
func (r *Real) Sample() (lift.Sample, error) {
	return lift.Sample{}, errors.New("gpio: not supported")
}

func (r *Real) LEDOn(lift.Position)      {}
func (r *Real) LEDOff(lift.Position)     {}
func (r *Real) LEDToggle(lift.Position)  {}
func (r *Real) EnergizeUp()              {}
func (r *Real) ReleaseUp()               {}
func (r *Real) EnergizeDown()            {}
func (r *Real) ReleaseDown()             {}
func (r *Real) SetSlowApproach(bool)     {}
func (r *Real) SetTumblerPull(lift.Pull) {}

// Close is not implemented on non-Linux platforms.
func (r *Real) Close() error { return nil }
