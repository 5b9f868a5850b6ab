package scheduler

import (
	"elevdispatch/config"
	"elevdispatch/elevator"
	"elevdispatch/request"
)

// NearestCar picks the elevator with the lowest travel cost for the
// pickup: plain distance for an idle car, forward distance for a car
// already heading the right way with the pickup ahead of it, and
// distance plus a large penalty for a car that must finish its current
// trip first. Ties go to the first elevator in enumeration order.
type NearestCar struct {
	penalty int
}

func NewNearestCar() *NearestCar {
	return &NearestCar{penalty: config.NEAREST_CAR_PENALTY}
}

func NewNearestCarWithPenalty(penalty int) *NearestCar {
	return &NearestCar{penalty: penalty}
}

func (s *NearestCar) Name() string {
	return "nearest_car"
}

func (s *NearestCar) SelectElevator(req *request.Request, fleet []elevator.Snapshot) (string, bool) {
	candidates := eligible(fleet)
	if len(candidates) == 0 {
		return "", false
	}

	bestID := ""
	bestCost := 0
	for _, car := range candidates {
		cost := s.cost(req, car)
		if bestID == "" || cost < bestCost {
			bestID = car.ID
			bestCost = cost
		}
	}
	return bestID, true
}

func (s *NearestCar) cost(req *request.Request, car elevator.Snapshot) int {
	distance := abs(req.Floor - car.Floor)

	switch car.Direction {
	case elevator.DirectionIdle:
		return distance
	case elevator.DirectionUp:
		if req.Direction == elevator.DirectionUp && req.Floor >= car.Floor {
			return distance
		}
	case elevator.DirectionDown:
		if req.Direction == elevator.DirectionDown && req.Floor <= car.Floor {
			return distance
		}
	}
	return distance + s.penalty
}
