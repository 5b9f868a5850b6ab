package timer

import (
	"time"
)

// Timer is a one-shot wall-clock deadline. The zero value is inactive.
// Used by the controller's stuck watchdog to track per-elevator progress
// deadlines; not safe for concurrent use without external locking.
type Timer struct {
	deadline time.Time
	active   bool
}

func New() Timer {
	return Timer{}
}

func (t *Timer) Start(d time.Duration) {
	t.deadline = time.Now().Add(d)
	t.active = true
}

func (t *Timer) Stop() {
	t.active = false
}

func (t *Timer) Active() bool {
	return t.active
}

func (t *Timer) TimedOut() bool {
	return t.active && time.Now().After(t.deadline)
}

// StartAt arms the timer with an explicit deadline. Tests use this to
// place the deadline in the past without sleeping.
func (t *Timer) StartAt(deadline time.Time) {
	t.deadline = deadline
	t.active = true
}
