package scheduler

import (
	"elevdispatch/elevator"
	"elevdispatch/request"

	"github.com/tiendc/go-deepcopy"
)

// Zone is a contiguous floor range statically associated with one
// elevator for locality-based dispatch.
type Zone struct {
	Min int
	Max int
}

func (z Zone) contains(floor int) bool {
	return z.Min <= floor && floor <= z.Max
}

// ZoneBased filters the eligible elevators to those whose zone contains
// the pickup floor and picks the nearest of them by absolute distance.
// When the zone table is empty or no zoned elevator matches, it falls
// back to NearestCar over all eligible elevators.
type ZoneBased struct {
	zones    map[string]Zone
	fallback *NearestCar
}

// NewZoneBased copies the zone table so later caller mutations cannot
// leak into the strategy.
func NewZoneBased(zones map[string]Zone) *ZoneBased {
	owned := make(map[string]Zone, len(zones))
	if err := deepcopy.Copy(&owned, &zones); err != nil {
		owned = map[string]Zone{}
	}
	return &ZoneBased{
		zones:    owned,
		fallback: NewNearestCar(),
	}
}

func (s *ZoneBased) Name() string {
	return "zone_based"
}

func (s *ZoneBased) SelectElevator(req *request.Request, fleet []elevator.Snapshot) (string, bool) {
	candidates := eligible(fleet)
	if len(candidates) == 0 {
		return "", false
	}

	bestID := ""
	bestDistance := 0
	for _, car := range candidates {
		zone, ok := s.zones[car.ID]
		if !ok || !zone.contains(req.Floor) {
			continue
		}
		distance := abs(req.Floor - car.Floor)
		if bestID == "" || distance < bestDistance {
			bestID = car.ID
			bestDistance = distance
		}
	}
	if bestID != "" {
		return bestID, true
	}
	return s.fallback.SelectElevator(req, fleet)
}
