package lift

import (
	"sync"
	"time"
)

// OneShotTimer is the production Timer, backed by time.AfterFunc.
// A Disarm that loses the race against an in-flight completion is handled
// by the controller's generation check, so no extra synchronization with
// the firing goroutine is needed here.
type OneShotTimer struct {
	mu sync.Mutex
	t  *time.Timer
}

// Arm schedules fire after d, replacing any pending completion.
func (o *OneShotTimer) Arm(d time.Duration, fire func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.t != nil {
		o.t.Stop()
	}
	o.t = time.AfterFunc(d, fire)
}

// Disarm cancels the pending completion, if any.
func (o *OneShotTimer) Disarm() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.t != nil {
		o.t.Stop()
		o.t = nil
	}
}
