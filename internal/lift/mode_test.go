package lift

import "testing"

func TestDecodeModeTable(t *testing.T) {
	cases := []struct {
		name     string
		onPullUp Level
		onPullDn Level
		want     Mode
		ok       bool
	}{
		{"floating pin follows the pulls", LevelHigh, LevelLow, ModeRun, true},
		{"grounded under both pulls", LevelLow, LevelLow, ModeProgram, true},
		{"driven high under both pulls", LevelHigh, LevelHigh, ModeManual, true},
		{"inverted pair is impossible", LevelLow, LevelHigh, ModeRun, false},
		{"both unknown", LevelUnknown, LevelUnknown, ModeRun, false},
		{"pull-up reading stale", LevelUnknown, LevelLow, ModeRun, false},
		{"pull-down reading stale", LevelHigh, LevelUnknown, ModeRun, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mode, ok := DecodeMode(tc.onPullUp, tc.onPullDn)
			if ok != tc.ok {
				t.Fatalf("ok: got %v, want %v", ok, tc.ok)
			}
			if ok && mode != tc.want {
				t.Errorf("mode: got %s, want %s", mode, tc.want)
			}
		})
	}
}

// Each saturated tumbler window records a reading and flips the pull for
// the next window, so the two multiplexed readings stay fresh.
func TestTumblerAlternatesPullConfiguration(t *testing.T) {
	r := newRig(t, 500, 1000)
	if r.c.pull != PullDown {
		t.Fatal("decoding starts under pull-down")
	}

	r.tick(8, released())
	if r.c.pull != PullUp {
		t.Error("expected flip to pull-up after the first saturation")
	}
	if r.out.pull != PullUp {
		t.Error("pull flip must reach the hardware")
	}

	r.tick(8, released())
	if r.c.pull != PullDown {
		t.Error("expected flip back to pull-down")
	}
	if r.c.mode != ModeRun {
		t.Errorf("floating tumbler must decode to RUN, got %s", r.c.mode)
	}
}

func TestModeChangeEmitsEvent(t *testing.T) {
	r := newRig(t, 500, 1000)
	r.drain()

	r.setSwitch(ModeManual)
	events := r.drain()
	var changed *Event
	for i := range events {
		if events[i].Type == EventModeChanged {
			changed = &events[i]
		}
	}
	if changed == nil {
		t.Fatal("expected MODE_CHANGED event")
	}
	if changed.Mode != ModeManual {
		t.Errorf("expected mode MANUAL on event, got %s", changed.Mode)
	}
}

// A mode change cancels a pending settle timeout: the operator moved the
// tumbler, so the coasting assumption no longer holds.
func TestModeChangeCancelsSettle(t *testing.T) {
	r := newRig(t, 500, 1000)
	r.c.curr = PositionBottom
	r.c.next = PositionMiddle
	r.c.clicks = 495
	r.tick(1, released())
	if r.c.Snapshot().Pending != DeferredSettleMiddle {
		t.Fatal("expected settle pending")
	}
	stale := r.timer.fire

	r.setSwitch(ModeManual)
	if got := r.c.Snapshot().Pending; got != DeferredNone {
		t.Errorf("mode change must disarm the settle timeout, got %s", got)
	}

	stale()
	if got := r.c.Snapshot().Current; got != PositionBottom {
		t.Errorf("stale settle completion must be a no-op, got %s", got)
	}
}

// Entering Run clears a timed lockout immediately; the orphaned timer
// completion must not clear anything twice or act on stale state.
func TestEnteringRunClearsTimedLockout(t *testing.T) {
	r := newRig(t, 500, 1000)
	r.setSwitch(ModeManual)

	// Engage a timed lockout, then flip to Run before it expires.
	r.c.engageLockout()
	stale := r.timer.fire
	r.drain()

	r.setSwitch(ModeRun)
	snap := r.c.Snapshot()
	if snap.Lockout {
		t.Error("entering Run must clear the lockout")
	}
	if snap.Pending != DeferredNone {
		t.Errorf("entering Run must disarm the pending release, got %s", snap.Pending)
	}
	events := r.drain()
	if !r.hasEvent(events, EventLockoutCleared) {
		t.Error("expected LOCKOUT_CLEARED event")
	}

	stale()
	cleared := 0
	for _, e := range r.c.DrainEvents() {
		if e.Type == EventLockoutCleared {
			cleared++
		}
	}
	if cleared != 0 {
		t.Error("stale lockout completion must be a no-op")
	}
}

// Mode changes are applied even while locked out: the tumbler outranks the
// movement interlock.
func TestModeDecodedDuringLockout(t *testing.T) {
	r := newRig(t, 500, 1000)
	r.c.engageLockout()

	r.setSwitch(ModeManual)
	if r.c.mode != ModeManual {
		t.Errorf("expected MANUAL decoded during lockout, got %s", r.c.mode)
	}
	// Manual entry does not clear the lockout; only Run does.
	if !r.c.Snapshot().Lockout {
		t.Error("entering Manual must not clear the lockout")
	}
}
