// Package debounce coalesces bursts of calls into one trailing call after a quiet period.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs only the most recently submitted function, once the caller has been
// quiet for the configured period.
type Debouncer struct {
	mu      sync.Mutex
	after   time.Duration
	timer   *time.Timer
	pending func()
	seq     uint64
	stopped bool
}

func New(after time.Duration) *Debouncer {
	return &Debouncer{after: after}
}

// Call schedules fn, replacing any pending function and restarting the quiet period.
// A non-positive period runs fn synchronously. Calls after Stop are dropped.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.after <= 0 {
		d.mu.Unlock()
		fn()
		return
	}

	d.seq++
	seq := d.seq
	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.after, func() { d.fire(seq) })
	d.mu.Unlock()
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	// A newer Call superseded this timer after it had already fired.
	if seq != d.seq || d.pending == nil || d.stopped {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

// Flush runs the pending function now, if any. It reports whether one ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Cancel drops the pending function without running it. It reports whether one was dropped.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	dropped := d.pending != nil
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	return dropped
}

// Pending reports whether a call is waiting for the quiet period to end.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Stop cancels any pending call and makes the debouncer inert.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
