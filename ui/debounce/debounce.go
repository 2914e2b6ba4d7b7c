package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered callback once triggers have
// been quiet for the delay.
type Debouncer struct {
	delay   time.Duration
	mutex   sync.Mutex
	timer   *time.Timer
	pending func()
	// generation invalidates timers that fire after being replaced or
	// cancelled
	generation uint64
}

// New creates a new debouncer with the specified delay
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules callback to run after the delay, replacing any callback
// that has not run yet
func (d *Debouncer) Trigger(callback func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	gen := d.generation
	d.pending = callback
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
}

func (d *Debouncer) fire(gen uint64) {
	d.mutex.Lock()
	if gen != d.generation || d.pending == nil {
		d.mutex.Unlock()
		return
	}
	callback := d.pending
	d.pending = nil
	d.timer = nil
	d.mutex.Unlock()

	callback()
}

// Cancel drops the pending callback, if any
func (d *Debouncer) Cancel() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
	d.pending = nil
}

// Flush runs the pending callback now instead of waiting for the delay
func (d *Debouncer) Flush() {
	d.mutex.Lock()
	callback := d.pending
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
	d.pending = nil
	d.mutex.Unlock()

	if callback != nil {
		callback()
	}
}

// IsActive returns true if a callback is waiting to run
func (d *Debouncer) IsActive() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.pending != nil
}
