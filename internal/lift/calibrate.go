package lift

// calibrate commits the pending destination as a stop point. Serviced only
// in Program mode, on a program-button press edge.
//
// Committing Bottom defines the absolute reference: the click counter is
// zeroed. Middle and Top capture the current count, clamped so each stage
// is never below its immediate predecessor — the guard does not validate a
// full ordered pass, only the stage before it. Capturing Top additionally
// engages the lockout so stale button state cannot restart motion before
// the operator leaves Program mode; that lockout has no timed release, it
// clears on entering Run.
func (c *Controller) calibrate() {
	c.out.LEDOff(c.next)
	committed := c.next

	switch committed {
	case PositionBottom:
		c.clicks = 0
		c.captured[PositionBottom] = true

	case PositionMiddle:
		c.thresholds.Middle = max(c.clicks, c.thresholds.Bottom())
		c.captured[PositionMiddle] = true
		if err := c.store.SaveMiddle(c.thresholds.Middle); err != nil {
			c.emit(Event{Type: EventThresholdSaveFailed, Position: committed, Threshold: c.thresholds.Middle, Err: err.Error()})
		} else {
			c.emit(Event{Type: EventThresholdSaved, Position: committed, Threshold: c.thresholds.Middle})
		}

	case PositionTop:
		c.thresholds.Top = max(c.clicks, c.thresholds.Middle)
		c.captured[PositionTop] = true
		if err := c.store.SaveTop(c.thresholds.Top); err != nil {
			c.emit(Event{Type: EventThresholdSaveFailed, Position: committed, Threshold: c.thresholds.Top, Err: err.Error()})
		} else {
			c.emit(Event{Type: EventThresholdSaved, Position: committed, Threshold: c.thresholds.Top})
		}
		c.lockout = true
		c.emit(Event{Type: EventLockoutEngaged})
	}

	c.curr = committed
	c.next = committed.Next()
}

// programDownGuard forces both control lines open while jogging down in
// Program mode would cross below a stop point already captured this
// session, so an operator cannot overshoot a just-calibrated threshold.
func (c *Controller) programDownGuard() {
	if !c.downBtn.Pressed() {
		return
	}
	if !c.captured[c.next] {
		return
	}
	if c.clicks <= c.thresholdFor(c.next) {
		c.releaseUp()
		c.releaseDown()
	}
}
