package retouch

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls into a single invocation of the most
// recently supplied function once a quiet period elapses. It decouples
// high-frequency control input, such as a slider drag emitting dozens of
// changes per second, from full-buffer refiltering: the pipeline runs once
// per burst instead of once per event.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	deadline time.Time
	timer    *time.Timer
	fn       func()
}

// NewDebouncer creates a debouncer with the given quiet period.
// Non-positive delays fall back to the 150ms default.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = defaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Call schedules fn to run once the quiet period elapses with no further
// calls. Only the function from the latest call runs; earlier pending ones
// are dropped. fn executes on a timer goroutine.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fn = fn
	d.deadline = time.Now().Add(d.delay)
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.fire)
		return
	}
	d.timer.Reset(d.delay)
}

// fire runs on the timer goroutine. A Reset racing with an expired timer
// can deliver an early wakeup, so the deadline is rechecked and the timer
// rearmed for the remainder instead of firing stale.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.fn == nil {
		d.mu.Unlock()
		return
	}
	if remaining := time.Until(d.deadline); remaining > 0 {
		d.timer.Reset(remaining)
		d.mu.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()
	fn()
}

// Stop drops any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.fn = nil
}

// Flush runs any pending invocation immediately instead of waiting out the
// quiet period.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}
