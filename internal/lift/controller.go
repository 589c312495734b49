package lift

import (
	"fmt"
	"sync"

	"github.com/sweeney/lift-controller/internal/debounce"
)

// Controller owns all state shared between the tick, pulse and timeout
// domains and the foreground loop. Every entry point takes the mutex, the
// Go rendition of the interrupt-masking critical sections the hardware
// design requires: a threshold comparison and the position advance it
// triggers must not interleave with pulse counting. Sections are kept
// minimal — pulses arriving while the lock is held still land, they just
// wait on the mutex instead of being lost.
type Controller struct {
	mu  sync.Mutex
	cfg Config

	out   Outputs
	timer Timer
	store ThresholdStore

	upBtn   debounce.Switch
	downBtn debounce.Switch
	progBtn debounce.Switch
	tumbler debounce.Tumbler

	pull       Pull
	onPullUp   Level
	onPullDown Level

	mode       Mode
	clicks     int32
	direction  Direction
	curr       Position
	next       Position
	thresholds Thresholds
	// currThreshold mirrors the active destination's stop point; the
	// comparisons in autoStop read the threshold table directly.
	currThreshold int32

	lockout  bool
	pending  DeferredAction
	timerGen uint64

	blinkRate    int
	blinkCounter int

	// captured tracks which positions were committed in the current
	// Program session; the down-guard only protects captured stops.
	captured [3]bool

	upEnergized   bool
	downEnergized bool

	events []Event
}

// New creates a controller seeded from the persisted thresholds. The unit
// is assumed to physically rest at Top on power-up, so the click counter
// starts at the persisted top threshold. Persisted values are trusted
// unconditionally: a never-calibrated store reads zeros, which is the
// documented precondition, not an error.
func New(cfg Config, out Outputs, timer Timer, store ThresholdStore) (*Controller, error) {
	middle, top, err := store.LoadThresholds()
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}

	c := &Controller{
		cfg:     cfg,
		out:     out,
		timer:   timer,
		store:   store,
		upBtn:   debounce.NewSwitch(cfg.DebounceWidth),
		downBtn: debounce.NewSwitch(cfg.DebounceWidth),
		progBtn: debounce.NewSwitch(cfg.DebounceWidth),
		tumbler: debounce.NewTumbler(cfg.DebounceWidth),

		mode:       ModeRun,
		clicks:     top,
		curr:       PositionTop,
		next:       PositionBottom,
		thresholds: Thresholds{Middle: middle, Top: top},

		blinkRate:    cfg.BlinkSlowTicks,
		blinkCounter: cfg.BlinkSlowTicks,
	}
	c.currThreshold = c.thresholds.Bottom()

	out.SetTumblerPull(PullDown)
	out.LEDOn(c.curr)
	return c, nil
}

// Tick runs the periodic sampling domain: debounce shifting and the blink
// countdown. Up is only sampled while Down is released and vice versa, and
// the program button only while neither movement button is pressed, so a
// hand resting on two buttons cannot produce conflicting edges.
func (c *Controller) Tick(s Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tumbler.Sample(s.TumblerHigh)

	if !c.downBtn.Pressed() {
		c.upBtn.Sample(s.UpHigh)
	}
	if !c.upBtn.Pressed() {
		c.downBtn.Sample(s.DownHigh)
	}
	if !c.upBtn.Pressed() && !c.downBtn.Pressed() {
		c.progBtn.Sample(s.ProgramHigh)
	}

	if (c.mode == ModeProgram || c.mode == ModeRun) && !c.lockout {
		if c.blinkCounter == 0 {
			c.out.LEDToggle(c.next)
			c.blinkCounter = c.blinkRate
		} else {
			c.blinkCounter--
		}
	}
}

// Pulse runs the sensor-edge domain: one click of displacement, signed by
// the last commanded direction. Nothing else gates counting.
func (c *Controller) Pulse() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.direction {
	case DirectionUp:
		c.clicks++
	case DirectionDown:
		c.clicks--
	}
}

// Step runs one foreground iteration: mode decoding, calibration, movement
// arbitration and the threshold checks that start or stop timeouts.
func (c *Controller) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.decodeTumbler()

	if c.mode == ModeProgram {
		if pressed, ok := c.progBtn.Edge(); ok && pressed {
			c.calibrate()
		}
	}

	if c.lockout {
		// Force the lines open every iteration; edges are not consumed,
		// so a press held across the lockout is serviced once it clears.
		c.releaseUp()
		c.releaseDown()
		return
	}

	c.serviceMovementEdges()

	switch c.mode {
	case ModeRun:
		c.autoStop()
	case ModeProgram:
		c.programDownGuard()
	}
}

// armDeferred arms the shared one-shot timer for the given purpose,
// cancelling whatever was pending. The generation counter makes a
// completion that lost the race against a disarm a no-op, so a stale
// expiry can never act on the wrong destination.
func (c *Controller) armDeferred(a DeferredAction) {
	c.timer.Disarm()
	c.timerGen++
	c.pending = a

	gen := c.timerGen
	d := c.cfg.LockoutDuration
	if a == DeferredSettleMiddle {
		d = c.cfg.SettleDuration
	}
	c.timer.Arm(d, func() { c.timerFired(gen) })
}

// disarmSettle cancels a pending settle timeout. Called whenever the loop
// determines the settle condition no longer applies.
func (c *Controller) disarmSettle() {
	if c.pending != DeferredSettleMiddle {
		return
	}
	c.pending = DeferredNone
	c.timerGen++
	c.timer.Disarm()
}

// disarmPending cancels whatever deferred action is outstanding.
func (c *Controller) disarmPending() {
	if c.pending == DeferredNone {
		return
	}
	c.pending = DeferredNone
	c.timerGen++
	c.timer.Disarm()
}

func (c *Controller) timerFired(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.timerGen {
		return
	}

	switch c.pending {
	case DeferredLockout:
		c.pending = DeferredNone
		c.lockout = false
		c.emit(Event{Type: EventLockoutCleared})
	case DeferredSettleMiddle:
		c.pending = DeferredNone
		c.advancePosition()
	}
}

func (c *Controller) thresholdFor(p Position) int32 {
	switch p {
	case PositionMiddle:
		return c.thresholds.Middle
	case PositionTop:
		return c.thresholds.Top
	}
	return c.thresholds.Bottom()
}

func (c *Controller) emit(e Event) {
	e.Mode = c.mode
	e.Clicks = c.clicks
	c.events = append(c.events, e)
}

// DrainEvents returns buffered events and clears the buffer.
func (c *Controller) DrainEvents() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	ev := c.events
	c.events = nil
	return ev
}

// Snapshot returns a point-in-time copy of controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Mode:          c.mode,
		Current:       c.curr,
		Next:          c.next,
		Clicks:        c.clicks,
		Thresholds:    c.thresholds,
		CurrThreshold: c.currThreshold,
		Direction:     c.direction,
		Lockout:       c.lockout,
		Pending:       c.pending,
		UpEnergized:   c.upEnergized,
		DownEnergized: c.downEnergized,
	}
}
