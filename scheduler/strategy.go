// Package scheduler contains the pluggable assignment strategies that map
// a pending pickup request onto one elevator of the fleet.
package scheduler

import (
	"elevdispatch/elevator"
	"elevdispatch/request"
)

// Strategy selects an elevator for a pickup request from a snapshot of
// the fleet. Only elevators in active service are candidates; the second
// return value is false when no eligible elevator exists.
type Strategy interface {
	Name() string
	SelectElevator(req *request.Request, fleet []elevator.Snapshot) (string, bool)
}

func eligible(fleet []elevator.Snapshot) []elevator.Snapshot {
	out := make([]elevator.Snapshot, 0, len(fleet))
	for _, car := range fleet {
		if car.Service == elevator.StatusActive {
			out = append(out, car)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
