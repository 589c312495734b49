// Package status provides a thread-safe status tracker for the
// lift-controller daemon. It is read by the HTTP handlers and folded into
// system telemetry payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/lift-controller/internal/lift"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs    int64
	LockoutMs int64
	SettleMs  int64
	Broker    string
	HTTPPort  string
	StorePath string
}

// Counts tracks how many of each notable event occurred since startup.
type Counts struct {
	ModeChanges      int
	PositionsReached int
	Movements        int
	Lockouts         int
	Calibrations     int
	SaveFailures     int
}

// Count folds one controller event into the totals.
func (c *Counts) Count(e lift.Event) {
	switch e.Type {
	case lift.EventModeChanged:
		c.ModeChanges++
	case lift.EventPositionReached:
		c.PositionsReached++
	case lift.EventMovementStarted:
		c.Movements++
	case lift.EventLockoutEngaged:
		c.Lockouts++
	case lift.EventThresholdSaved:
		c.Calibrations++
	case lift.EventThresholdSaveFailed:
		c.SaveFailures++
	}
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Lift          lift.Snapshot
	Counts        Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the controller snapshot and event counts.
// Called from the run loop on every tick.
func (t *Tracker) Update(ls lift.Snapshot, counts Counts) {
	t.mu.Lock()
	t.snap.Lift = ls
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
