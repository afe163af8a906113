package manager

import "time"

// TickManager is the session's single periodic tick source. It is polled from
// the frame loop, so ticks never overlap and stopping it cancels the next one.
type TickManager struct {
	period time.Duration
	next   time.Time
	active bool
}

func NewTickManager(period time.Duration) *TickManager {
	return &TickManager{period: period}
}

// Start (re)arms the ticker; the first tick is due one period after now.
func (tm *TickManager) Start(now time.Time) {
	tm.active = true
	tm.next = now.Add(tm.period)
}

func (tm *TickManager) Stop() {
	tm.active = false
}

func (tm *TickManager) Active() bool {
	return tm.active
}

func (tm *TickManager) Period() time.Duration {
	return tm.period
}

// Due reports whether a tick should run at now and schedules the following one.
// After a long stall it fires once and resynchronises instead of bursting.
func (tm *TickManager) Due(now time.Time) bool {
	if !tm.active || now.Before(tm.next) {
		return false
	}
	tm.next = tm.next.Add(tm.period)
	if !tm.next.After(now) {
		tm.next = now.Add(tm.period)
	}
	return true
}
