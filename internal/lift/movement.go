package lift

// canGoUp reports whether an up command is permitted. Manual and Program
// allow movement unconditionally; Run refuses to command past the top.
func (c *Controller) canGoUp() bool {
	if c.mode == ModeManual || c.mode == ModeProgram {
		return true
	}
	return c.curr == PositionMiddle || c.curr == PositionBottom
}

// canGoDown is the symmetric gate against the bottom.
func (c *Controller) canGoDown() bool {
	if c.mode == ModeManual || c.mode == ModeProgram {
		return true
	}
	return c.curr == PositionMiddle || c.curr == PositionTop
}

// serviceMovementEdges maps debounced button edges to actuator commands.
// A denied press is silently dropped: no energize, no error signal.
func (c *Controller) serviceMovementEdges() {
	if pressed, ok := c.upBtn.Edge(); ok {
		if pressed {
			if c.canGoUp() {
				c.direction = DirectionUp
				c.energizeUp()
				c.blinkRate = c.cfg.BlinkFastTicks
			}
		} else {
			c.releaseUp()
			c.blinkRate = c.cfg.BlinkSlowTicks
		}
	}

	if pressed, ok := c.downBtn.Edge(); ok {
		if pressed {
			if c.canGoDown() {
				c.direction = DirectionDown
				c.energizeDown()
				c.blinkRate = c.cfg.BlinkFastTicks
			}
		} else {
			c.releaseDown()
			c.blinkRate = c.cfg.BlinkSlowTicks
		}
	}
}

// autoStop is the Run-mode threshold check, executed once per iteration
// while not locked out. Crossing the destination threshold de-energizes
// the line, engages the lockout and advances the position cycle. When
// coasting near Middle with no button held, the settle timeout stands in
// for an exact crossing the sensor resolution cannot guarantee.
func (c *Controller) autoStop() {
	switch {
	case c.upBtn.Pressed():
		reached := (c.next == PositionMiddle && c.clicks >= c.thresholds.Middle) ||
			(c.next == PositionTop && c.clicks >= c.thresholds.Top)
		if reached {
			c.disarmSettle()
			c.engageLockout()
			c.blinkRate = c.cfg.BlinkSlowTicks
			c.releaseUp()
			c.advancePosition()
		} else {
			c.disarmSettle()
		}

	case c.downBtn.Pressed():
		if c.next == PositionBottom && c.clicks <= c.thresholds.Bottom() {
			c.disarmSettle()
			c.engageLockout()
			c.blinkRate = c.cfg.BlinkSlowTicks
			c.releaseDown()
			c.advancePosition()
		} else {
			c.disarmSettle()
		}

	default:
		if c.next == PositionMiddle && c.clicks >= c.thresholds.Middle-c.cfg.SettleWindow {
			if c.pending != DeferredSettleMiddle {
				c.armDeferred(DeferredSettleMiddle)
			}
		}
	}
}

// advancePosition commits the destination: the former nextPosition becomes
// currPosition, the new nextPosition is its cyclic successor, the active
// threshold follows the new destination, and travel speed drops for the
// slow approach to Middle.
func (c *Controller) advancePosition() {
	c.out.LEDOff(c.curr)
	c.curr = c.next
	c.out.LEDOn(c.curr)
	c.next = c.curr.Next()
	c.currThreshold = c.thresholdFor(c.next)
	c.out.SetSlowApproach(c.next == PositionMiddle)
	c.emit(Event{Type: EventPositionReached, Position: c.curr})
}

// engageLockout sets the system-wide lockout and arms its timed release.
func (c *Controller) engageLockout() {
	c.lockout = true
	c.armDeferred(DeferredLockout)
	c.emit(Event{Type: EventLockoutEngaged})
}

func (c *Controller) energizeUp() {
	c.out.EnergizeUp()
	if !c.upEnergized {
		c.upEnergized = true
		c.emit(Event{Type: EventMovementStarted, Direction: DirectionUp})
	}
}

func (c *Controller) releaseUp() {
	c.out.ReleaseUp()
	if c.upEnergized {
		c.upEnergized = false
		c.emit(Event{Type: EventMovementStopped, Direction: DirectionUp})
	}
}

func (c *Controller) energizeDown() {
	c.out.EnergizeDown()
	if !c.downEnergized {
		c.downEnergized = true
		c.emit(Event{Type: EventMovementStarted, Direction: DirectionDown})
	}
}

func (c *Controller) releaseDown() {
	c.out.ReleaseDown()
	if c.downEnergized {
		c.downEnergized = false
		c.emit(Event{Type: EventMovementStopped, Direction: DirectionDown})
	}
}
