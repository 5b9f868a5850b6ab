package controller

import (
	"elevdispatch/elevator"
)

// checkStuck trips the fault path for any active elevator whose progress
// deadline has expired while it still holds pending stops. The deadline
// is re-armed by every observable step event (see tickOnce), so a
// healthy car never trips it. Runs once per sweep interval.
func (c *Controller) checkStuck() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range c.order {
		if !c.watchdogs[id].TimedOut() {
			continue
		}
		snap := c.elevators[id].Snapshot()
		if snap.Service != elevator.StatusActive || len(snap.PendingStops) == 0 {
			c.watchdogs[id].Stop()
			continue
		}
		c.log.Error().Str("elevator", id).Int("floor", snap.Floor).
			Msg("no progress before deadline, failing elevator")
		c.markOutOfServiceLocked(id)
	}
}
