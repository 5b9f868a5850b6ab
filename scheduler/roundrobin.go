package scheduler

import (
	"sync"

	"elevdispatch/elevator"
	"elevdispatch/request"
)

// RoundRobin rotates assignments over the eligible elevators. The
// eligible list is recomputed on every call since service status can
// change between calls; the rotation index is the strategy's own shared
// state and carries its own lock, independent of any elevator lock.
type RoundRobin struct {
	mu        sync.Mutex
	lastIndex int
}

func NewRoundRobin() *RoundRobin {
	return &RoundRobin{lastIndex: -1}
}

func (s *RoundRobin) Name() string {
	return "round_robin"
}

func (s *RoundRobin) SelectElevator(_ *request.Request, fleet []elevator.Snapshot) (string, bool) {
	candidates := eligible(fleet)
	if len(candidates) == 0 {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := (s.lastIndex + 1) % len(candidates)
	s.lastIndex = next
	return candidates[next].ID, true
}
