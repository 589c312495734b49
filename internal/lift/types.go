// Package lift contains the controller state machine for a three-position
// motorized lift: mode decoding, pulse-count position tracking, movement
// arbitration, stop-point calibration and the shared one-shot timeout.
// This package has NO hardware dependencies: pin side effects go through
// the Outputs interface, the timer through Timer, persistence through
// ThresholdStore. Sample cadence is the caller's tick.
package lift

import "time"

// Position is one of the three physical stop points.
type Position uint8

const (
	PositionBottom Position = iota
	PositionMiddle
	PositionTop
)

// Positions lists all positions in cyclic order.
var Positions = []Position{PositionBottom, PositionMiddle, PositionTop}

// Next returns the cyclic successor: Bottom→Middle→Top→Bottom.
func (p Position) Next() Position {
	switch p {
	case PositionBottom:
		return PositionMiddle
	case PositionMiddle:
		return PositionTop
	default:
		return PositionBottom
	}
}

func (p Position) String() string {
	switch p {
	case PositionBottom:
		return "BOTTOM"
	case PositionMiddle:
		return "MIDDLE"
	case PositionTop:
		return "TOP"
	}
	return "UNKNOWN"
}

// Mode is the operating mode selected by the tumbler.
type Mode uint8

const (
	ModeRun Mode = iota
	ModeProgram
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "RUN"
	case ModeProgram:
		return "PROGRAM"
	case ModeManual:
		return "MANUAL"
	}
	return "UNKNOWN"
}

// Direction is the last commanded travel direction. It is command intent,
// not sensed motion: if the actuator stalls or reverses while a direction
// is active, the click count drifts until recalibration.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "UP"
	case DirectionDown:
		return "DOWN"
	}
	return "NONE"
}

// DeferredAction tags the purpose of the shared one-shot timer.
// At most one action is pending at a time; arming one cancels the other.
type DeferredAction uint8

const (
	DeferredNone DeferredAction = iota
	DeferredLockout
	DeferredSettleMiddle
)

func (a DeferredAction) String() string {
	switch a {
	case DeferredLockout:
		return "LOCKOUT"
	case DeferredSettleMiddle:
		return "SETTLE_MIDDLE"
	}
	return "NONE"
}

// Pull selects the tumbler pin's pull resistor.
type Pull uint8

const (
	PullDown Pull = iota
	PullUp
)

// Level is a recorded tumbler reading. Unknown until the first saturation
// under the matching pull configuration.
type Level uint8

const (
	LevelUnknown Level = iota
	LevelLow
	LevelHigh
)

func levelOf(high bool) Level {
	if high {
		return LevelHigh
	}
	return LevelLow
}

// Thresholds holds the calibrated stop points in sensor clicks.
// Bottom is the absolute reference and is always zero; it is not persisted.
type Thresholds struct {
	Middle int32
	Top    int32
}

// Bottom returns the bottom threshold. Always zero.
func (Thresholds) Bottom() int32 { return 0 }

// Sample carries the raw pin levels read on one tick.
// Buttons are active-low: a low level means the contact is closed.
type Sample struct {
	UpHigh      bool
	DownHigh    bool
	ProgramHigh bool
	TumblerHigh bool
}

// Outputs drives the physical output lines. Implementations must be safe to
// call from the controller's critical section, i.e. non-blocking.
type Outputs interface {
	LEDOn(p Position)
	LEDOff(p Position)
	LEDToggle(p Position)

	// EnergizeUp closes the up control line; ReleaseUp opens it.
	EnergizeUp()
	ReleaseUp()
	EnergizeDown()
	ReleaseDown()

	// SetSlowApproach selects reduced travel speed when on.
	SetSlowApproach(on bool)

	// SetTumblerPull reconfigures the tumbler pin's pull resistor.
	SetTumblerPull(p Pull)
}

// Timer is the shared one-shot timer. Arm schedules fire after d; Disarm
// cancels a pending completion. A completion fires at most once per Arm.
type Timer interface {
	Arm(d time.Duration, fire func())
	Disarm()
}

// ThresholdStore persists the two non-zero thresholds across power loss.
type ThresholdStore interface {
	LoadThresholds() (middle, top int32, err error)
	SaveMiddle(v int32) error
	SaveTop(v int32) error
}

// Config holds the controller's timing parameters.
type Config struct {
	// LockoutDuration is the short post-autostop overrun guard.
	LockoutDuration time.Duration
	// SettleDuration is the longer mechanical settle grace period for the
	// slow approach to Middle.
	SettleDuration time.Duration
	// BlinkFastTicks and BlinkSlowTicks are blink periods in tick counts.
	BlinkFastTicks int
	BlinkSlowTicks int
	// SettleWindow is how many clicks below the middle threshold the settle
	// timeout arms.
	SettleWindow int32
	// DebounceWidth is the number of agreeing samples for a stable reading.
	DebounceWidth int
}

// DefaultConfig returns the timing parameters used on the production unit.
func DefaultConfig() Config {
	return Config{
		LockoutDuration: 500 * time.Millisecond,
		SettleDuration:  2 * time.Second,
		BlinkFastTicks:  5,
		BlinkSlowTicks:  10,
		SettleWindow:    10,
		DebounceWidth:   8,
	}
}

// EventType identifies a controller event.
type EventType string

const (
	EventModeChanged         EventType = "MODE_CHANGED"
	EventPositionReached     EventType = "POSITION_REACHED"
	EventMovementStarted     EventType = "MOVEMENT_STARTED"
	EventMovementStopped     EventType = "MOVEMENT_STOPPED"
	EventLockoutEngaged      EventType = "LOCKOUT_ENGAGED"
	EventLockoutCleared      EventType = "LOCKOUT_CLEARED"
	EventThresholdSaved      EventType = "THRESHOLD_SAVED"
	EventThresholdSaveFailed EventType = "THRESHOLD_SAVE_FAILED"
)

// Event is a state change to be published. Events are buffered inside the
// controller and drained by the foreground loop.
type Event struct {
	Type      EventType
	Mode      Mode
	Position  Position
	Direction Direction
	Clicks    int32
	Threshold int32
	Err       string
}

// Snapshot is a point-in-time view of controller state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Mode          Mode
	Current       Position
	Next          Position
	Clicks        int32
	Thresholds    Thresholds
	CurrThreshold int32
	Direction     Direction
	Lockout       bool
	Pending       DeferredAction
	UpEnergized   bool
	DownEnergized bool
}
