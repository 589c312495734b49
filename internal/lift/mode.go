package lift

// DecodeMode maps a pair of tumbler readings to an operating mode.
// The tumbler is a 3-position switch multiplexed onto a single pin whose
// read value depends on the active pull resistor:
//
//	pull-up reads high, pull-down reads low  → pin floats       → Run
//	low under both pulls                     → switch grounds it → Program
//	high under both pulls                    → switch drives it  → Manual
//
// Any other pair (unknown or mixed-stale readings) decodes to nothing.
func DecodeMode(onPullUp, onPullDown Level) (Mode, bool) {
	switch {
	case onPullUp == LevelHigh && onPullDown == LevelLow:
		return ModeRun, true
	case onPullUp == LevelLow && onPullDown == LevelLow:
		return ModeProgram, true
	case onPullUp == LevelHigh && onPullDown == LevelHigh:
		return ModeManual, true
	}
	return ModeRun, false
}

// decodeTumbler records a saturated tumbler reading against the active pull
// configuration, flips the pull for the next window, and applies any mode
// the completed pair decodes to.
func (c *Controller) decodeTumbler() {
	level, ok := c.tumbler.Saturated()
	if !ok {
		return
	}

	switch c.pull {
	case PullDown:
		c.onPullDown = levelOf(level)
		c.tumbler.ResetNeutral()
		c.pull = PullUp
		c.out.SetTumblerPull(PullUp)
	case PullUp:
		c.onPullUp = levelOf(level)
		c.tumbler.ResetNeutral()
		c.pull = PullDown
		c.out.SetTumblerPull(PullDown)
	}

	if mode, ok := DecodeMode(c.onPullUp, c.onPullDown); ok && mode != c.mode {
		c.changeMode(mode)
	}
}

// changeMode performs the mode transition: all position LEDs off and any
// pending settle cancelled regardless of target mode, then the per-mode
// entry actions.
func (c *Controller) changeMode(mode Mode) {
	for _, p := range Positions {
		c.out.LEDOff(p)
	}
	c.disarmSettle()
	c.mode = mode

	switch mode {
	case ModeRun:
		c.out.LEDOn(c.curr)
		c.currThreshold = c.thresholds.Bottom()
		if c.lockout {
			c.lockout = false
			c.disarmPending()
			c.emit(Event{Type: EventLockoutCleared})
		}
	case ModeProgram:
		// Calibration always restarts at the bottom: if the pending
		// destination was Top, rewind the cycle so the first capture
		// commits Bottom.
		if c.next == PositionTop {
			c.curr = PositionTop
			c.next = PositionBottom
		}
		c.captured = [3]bool{}
	}

	c.emit(Event{Type: EventModeChanged, Position: c.curr})
}
