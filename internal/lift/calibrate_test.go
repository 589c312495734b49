package lift

import (
	"errors"
	"testing"
)

// Full calibration pass: Bottom zeroes the counter, Middle and Top capture
// and persist the current count, Top engages the exit lockout.
func TestProgramPassCalibratesAndPersists(t *testing.T) {
	r := newRig(t, 500, 1000)
	r.setSwitch(ModeProgram)
	r.drain()

	// Commit Bottom: absolute reference.
	r.tick(8, programHeld())
	snap := r.c.Snapshot()
	if snap.Clicks != 0 {
		t.Fatalf("committing Bottom must zero the counter, got %d", snap.Clicks)
	}
	if snap.Current != PositionBottom || snap.Next != PositionMiddle {
		t.Fatalf("expected Bottom/Middle, got %s/%s", snap.Current, snap.Next)
	}
	r.tick(8, released())

	// Jog up and commit Middle.
	r.tick(8, upHeld())
	if !r.out.upClosed {
		t.Fatal("Program mode must permit jogging")
	}
	r.pulse(300, upHeld())
	if !r.out.upClosed {
		t.Fatal("no auto-stop in Program mode")
	}
	r.tick(8, released())
	r.tick(8, programHeld())
	r.tick(8, released())

	if got := r.c.Snapshot().Thresholds.Middle; got != 300 {
		t.Errorf("expected middle threshold 300, got %d", got)
	}
	if len(r.store.savedMiddle) != 1 || r.store.savedMiddle[0] != 300 {
		t.Errorf("expected middle persisted once as 300, got %v", r.store.savedMiddle)
	}
	if !r.hasEvent(r.drain(), EventThresholdSaved) {
		t.Error("expected THRESHOLD_SAVED event")
	}

	// Jog up and commit Top.
	r.tick(8, upHeld())
	r.pulse(400, upHeld())
	r.tick(8, released())
	r.tick(8, programHeld())

	snap = r.c.Snapshot()
	if snap.Thresholds.Top != 700 {
		t.Errorf("expected top threshold 700, got %d", snap.Thresholds.Top)
	}
	if len(r.store.savedTop) != 1 || r.store.savedTop[0] != 700 {
		t.Errorf("expected top persisted once as 700, got %v", r.store.savedTop)
	}
	if !snap.Lockout {
		t.Error("committing Top must engage lockout")
	}
	if r.timer.arms != 0 {
		t.Error("the Top-capture lockout has no timed release")
	}
	if !(0 <= snap.Thresholds.Middle && snap.Thresholds.Middle <= snap.Thresholds.Top) {
		t.Errorf("thresholds must be monotone: 0 <= %d <= %d",
			snap.Thresholds.Middle, snap.Thresholds.Top)
	}

	// Leaving Program for Run clears the exit lockout.
	r.tick(8, released())
	r.setSwitch(ModeRun)
	snap = r.c.Snapshot()
	if snap.Lockout {
		t.Error("entering Run must clear the calibration lockout")
	}
	if snap.CurrThreshold != 0 {
		t.Errorf("entering Run resets the active threshold to bottom, got %d", snap.CurrThreshold)
	}
	if !r.out.leds[snap.Current] {
		t.Error("entering Run must light the current position LED")
	}
}

// Each capture is clamped against its immediate predecessor only: jogging
// back below the middle before committing Top yields top == middle.
func TestCalibrationClampsAgainstPredecessor(t *testing.T) {
	r := newRig(t, 500, 1000)
	r.setSwitch(ModeProgram)

	r.tick(8, programHeld()) // Bottom at 0
	r.tick(8, released())

	r.tick(8, upHeld())
	r.pulse(300, upHeld())
	r.tick(8, released())
	r.tick(8, programHeld()) // Middle at 300
	r.tick(8, released())

	r.tick(8, downHeld())
	r.pulse(100, downHeld()) // back down to 200
	r.tick(8, released())
	r.tick(8, programHeld()) // Top below Middle

	snap := r.c.Snapshot()
	if snap.Clicks != 200 {
		t.Fatalf("expected 200 clicks, got %d", snap.Clicks)
	}
	if snap.Thresholds.Top != 300 {
		t.Errorf("top must clamp to middle: expected 300, got %d", snap.Thresholds.Top)
	}
}

// A failed persist keeps the in-memory threshold and reports the error
// instead of aborting the calibration pass.
func TestCalibrationSaveFailureEmitsEvent(t *testing.T) {
	r := newRig(t, 0, 0)
	r.setSwitch(ModeProgram)
	r.store.saveErr = errors.New("write: device full")

	r.tick(8, programHeld()) // Bottom
	r.tick(8, released())
	r.tick(8, upHeld())
	r.pulse(100, upHeld())
	r.tick(8, released())
	r.drain()
	r.tick(8, programHeld()) // Middle, persist fails

	events := r.drain()
	var failed *Event
	for i := range events {
		if events[i].Type == EventThresholdSaveFailed {
			failed = &events[i]
		}
	}
	if failed == nil {
		t.Fatal("expected THRESHOLD_SAVE_FAILED event")
	}
	if failed.Err == "" {
		t.Error("save failure event must carry the error text")
	}
	if failed.Threshold != 100 {
		t.Errorf("expected threshold 100 on event, got %d", failed.Threshold)
	}
	if got := r.c.Snapshot().Thresholds.Middle; got != 100 {
		t.Errorf("in-memory threshold must still update, got %d", got)
	}
	if len(r.store.savedMiddle) != 0 {
		t.Errorf("nothing must be persisted, got %v", r.store.savedMiddle)
	}
}

// Entering Program with the cycle pointing at Top rewinds it so the first
// capture commits Bottom.
func TestProgramEntryRewindsCycleToBottom(t *testing.T) {
	r := newRig(t, 500, 1000)
	r.c.curr = PositionMiddle
	r.c.next = PositionTop

	r.setSwitch(ModeProgram)

	snap := r.c.Snapshot()
	if snap.Current != PositionTop || snap.Next != PositionBottom {
		t.Errorf("expected rewind to Top/Bottom, got %s/%s", snap.Current, snap.Next)
	}
	if r.c.captured != [3]bool{} {
		t.Error("entering Program must reset the captured set")
	}
}

// Jogging down across a stop point captured this session forces the lines
// open so the operator cannot overshoot it.
func TestProgramDownGuardForcesLinesOpen(t *testing.T) {
	r := newRig(t, 500, 1000)
	r.setSwitch(ModeProgram)

	r.tick(8, programHeld()) // Bottom
	r.tick(8, released())
	r.tick(8, upHeld())
	r.pulse(300, upHeld())
	r.tick(8, released())
	r.tick(8, programHeld()) // Middle at 300
	r.tick(8, released())

	// Emulate a session where the pending destination is already captured.
	r.c.next = PositionMiddle
	r.c.clicks = 350

	r.tick(8, downHeld())
	if !r.out.downClosed {
		t.Fatal("down line must close above the captured stop")
	}
	r.pulse(40, downHeld()) // 310: still above
	if !r.out.downClosed {
		t.Fatal("down line must stay closed at 310 clicks")
	}
	r.pulse(10, downHeld()) // 300: at the captured threshold
	if r.out.downClosed {
		t.Error("down line must be forced open at the captured stop")
	}
}
