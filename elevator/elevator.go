// Package elevator implements the per-car state machine of the dispatch
// engine: a SCAN-variant movement algorithm over two directional stop-sets,
// advanced one discrete time-slice at a time.
package elevator

import (
	"sync"

	"elevdispatch/util/logger"

	"github.com/rs/zerolog"
)

type Direction int

const (
	DirectionDown Direction = iota - 1
	DirectionIdle
	DirectionUp
)

var directionToString = map[Direction]string{
	DirectionUp:   "up",
	DirectionDown: "down",
	DirectionIdle: "idle",
}

func (d Direction) String() string {
	if s, ok := directionToString[d]; ok {
		return s
	}
	return "undefined"
}

type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpen
)

func (d DoorState) String() string {
	if d == DoorOpen {
		return "open"
	}
	return "closed"
}

type ServiceStatus int

const (
	StatusActive ServiceStatus = iota
	StatusOutOfService
)

func (s ServiceStatus) String() string {
	if s == StatusOutOfService {
		return "out_of_service"
	}
	return "active"
}

// StepEvent classifies what a single Step invocation did.
type StepEvent int

const (
	EventNone StepEvent = iota
	EventMoved
	EventDoorOpened
	EventDoorClosed
	EventReversed
	EventWentIdle
)

// StepResult reports the outcome of one time-slice: the event and the
// floor the elevator was at when it happened.
type StepResult struct {
	Event StepEvent
	Floor int
}

// Elevator owns its own mutable state behind a single mutex. Movement
// ticks for different elevators therefore never contend with each other.
type Elevator struct {
	mu sync.Mutex

	id        string
	minFloor  int
	maxFloor  int
	floor     int
	direction Direction
	door      DoorState
	service   ServiceStatus
	upStops   *FloorSet
	downStops *FloorSet

	log zerolog.Logger
}

func New(id string, minFloor, maxFloor int) *Elevator {
	return &Elevator{
		id:        id,
		minFloor:  minFloor,
		maxFloor:  maxFloor,
		floor:     minFloor,
		direction: DirectionIdle,
		door:      DoorClosed,
		service:   StatusActive,
		upStops:   NewFloorSet(minFloor, maxFloor),
		downStops: NewFloorSet(minFloor, maxFloor),
		log:       logger.Component("elevator").With().Str("elevator", id).Logger(),
	}
}

func (e *Elevator) ID() string {
	return e.id
}

// AddStop queues a floor for a future visit. Floors above the current
// position land in the up-set, floors below in the down-set; an idle
// elevator picks up the matching direction. Duplicate calls never create
// duplicate stops. No-op while out of service or for the current floor.
func (e *Elevator) AddStop(floor int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.service == StatusOutOfService || floor == e.floor {
		return false
	}
	if floor < e.minFloor || floor > e.maxFloor {
		return false
	}

	if floor > e.floor {
		e.upStops.Add(floor)
	} else {
		e.downStops.Add(floor)
	}

	if e.direction == DirectionIdle {
		if floor > e.floor {
			e.direction = DirectionUp
		} else {
			e.direction = DirectionDown
		}
	}
	e.log.Debug().Int("floor", floor).Str("direction", e.direction.String()).Msg("stop queued")
	return true
}

// Step advances the elevator by one discrete time-slice:
// an open door closes; a stop at the current floor is consumed and opens
// the door; otherwise the elevator moves one floor toward remaining work
// in its direction, reverses when only the opposite set holds work, and
// goes idle when both sets are empty. Stops behind the elevator survive
// a reversal untouched. No-op while out of service.
func (e *Elevator) Step() StepResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.service == StatusOutOfService {
		return StepResult{Event: EventNone, Floor: e.floor}
	}

	if e.door == DoorOpen {
		e.door = DoorClosed
		e.log.Debug().Int("floor", e.floor).Msg("door closed")
		return StepResult{Event: EventDoorClosed, Floor: e.floor}
	}

	switch e.direction {
	case DirectionUp:
		if e.upStops.Remove(e.floor) {
			e.door = DoorOpen
			e.log.Info().Int("floor", e.floor).Msg("serving stop")
			return StepResult{Event: EventDoorOpened, Floor: e.floor}
		}
		if e.upStops.AnyAbove(e.floor) && e.floor < e.maxFloor {
			e.floor++
			return StepResult{Event: EventMoved, Floor: e.floor}
		}
		return e.reverseOrIdle(DirectionDown, !e.downStops.Empty())

	case DirectionDown:
		if e.downStops.Remove(e.floor) {
			e.door = DoorOpen
			e.log.Info().Int("floor", e.floor).Msg("serving stop")
			return StepResult{Event: EventDoorOpened, Floor: e.floor}
		}
		if e.downStops.AnyBelow(e.floor) && e.floor > e.minFloor {
			e.floor--
			return StepResult{Event: EventMoved, Floor: e.floor}
		}
		return e.reverseOrIdle(DirectionUp, !e.upStops.Empty())

	default:
		return StepResult{Event: EventNone, Floor: e.floor}
	}
}

// caller holds e.mu
func (e *Elevator) reverseOrIdle(opposite Direction, hasOppositeWork bool) StepResult {
	if hasOppositeWork {
		e.direction = opposite
		e.log.Debug().Int("floor", e.floor).Str("direction", opposite.String()).Msg("reversing")
		return StepResult{Event: EventReversed, Floor: e.floor}
	}
	e.direction = DirectionIdle
	return StepResult{Event: EventWentIdle, Floor: e.floor}
}

// MarkOutOfService empties both stop-sets and takes the elevator out of
// rotation, returning the floors that were still pending so the caller
// can redistribute them.
func (e *Elevator) MarkOutOfService() []int {
	e.mu.Lock()
	defer e.mu.Unlock()

	pending := e.upStops.Floors()
	pending = append(pending, e.downStops.Floors()...)
	e.upStops.Clear()
	e.downStops.Clear()
	e.direction = DirectionIdle
	e.door = DoorClosed
	e.service = StatusOutOfService
	e.log.Warn().Ints("pending", pending).Msg("taken out of service")
	return pending
}

// RestoreToService returns the elevator to rotation, idle and empty.
func (e *Elevator) RestoreToService() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.service = StatusActive
	e.direction = DirectionIdle
	e.log.Info().Int("floor", e.floor).Msg("restored to service")
}

// Snapshot is an immutable view of an elevator, safe to hand out across
// goroutines.
type Snapshot struct {
	ID           string
	Floor        int
	Direction    Direction
	Door         DoorState
	Service      ServiceStatus
	PendingStops []int
	MinFloor     int
	MaxFloor     int
}

func (e *Elevator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	stops := e.upStops.Floors()
	stops = append(stops, e.downStops.Floors()...)
	return Snapshot{
		ID:           e.id,
		Floor:        e.floor,
		Direction:    e.direction,
		Door:         e.door,
		Service:      e.service,
		PendingStops: stops,
		MinFloor:     e.minFloor,
		MaxFloor:     e.maxFloor,
	}
}
