package scratchoff

import "time"

// deadline is a one-shot timer owned by a component and advanced from its
// Update. Re-arming replaces the previous deadline, which gives debounce
// semantics for free.
type deadline struct {
	at    time.Time
	armed bool
}

// reset arms the timer to fire d after now.
func (d *deadline) reset(now time.Time, after time.Duration) {
	d.at = now.Add(after)
	d.armed = true
}

// stop disarms the timer.
func (d *deadline) stop() {
	d.armed = false
}

// pending reports whether the timer is armed.
func (d *deadline) pending() bool {
	return d.armed
}

// expired disarms the timer and returns true once now reaches the deadline.
func (d *deadline) expired(now time.Time) bool {
	if !d.armed || now.Before(d.at) {
		return false
	}
	d.armed = false
	return true
}
