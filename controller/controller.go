// Package controller drives the elevator fleet: it owns the pending
// pickup queue, runs the periodic assignment sweep and per-elevator
// movement ticks, and handles faults by redistributing the work of an
// elevator taken out of service.
package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"elevdispatch/config"
	"elevdispatch/elevator"
	"elevdispatch/request"
	"elevdispatch/scheduler"
	"elevdispatch/util/logger"
	"elevdispatch/util/timer"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"
	"github.com/tiendc/go-deepcopy"
)

// Controller coordinates a fixed fleet of elevators. Each elevator owns
// its state behind its own lock; the controller lock guards the queue,
// the strategy reference, request bookkeeping and the fault paths.
type Controller struct {
	cfg config.Config

	mu        sync.Mutex
	elevators map[string]*elevator.Elevator
	order     []string // enumeration order, fixed at construction
	queue     *requestQueue
	strategy  scheduler.Strategy
	nextID    uint64
	assigned  map[string]map[int][]*request.Request // elevator -> floor -> live requests
	journal   []*request.Request                    // terminal (completed/cancelled) requests
	watchdogs map[string]*timer.Timer

	lifecycle *fsm.FSM
	done      chan struct{}
	wg        sync.WaitGroup
	log       zerolog.Logger
}

func New(cfg config.Config, strategy scheduler.Strategy) *Controller {
	c := &Controller{
		cfg:       cfg,
		elevators: make(map[string]*elevator.Elevator, cfg.NumElevators),
		queue:     newRequestQueue(),
		strategy:  strategy,
		assigned:  make(map[string]map[int][]*request.Request),
		watchdogs: make(map[string]*timer.Timer),
		log:       logger.Component("controller"),
	}

	for i := 0; i < cfg.NumElevators; i++ {
		id := fmt.Sprintf("E%d", i+1)
		c.elevators[id] = elevator.New(id, cfg.MinFloor, cfg.MaxFloor)
		c.order = append(c.order, id)
		wd := timer.New()
		c.watchdogs[id] = &wd
	}

	c.lifecycle = fsm.NewFSM(
		"created",
		fsm.Events{
			{Name: "start", Src: []string{"created"}, Dst: "running"},
			{Name: "shutdown", Src: []string{"running"}, Dst: "stopped"},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.log.Info().Str("from", e.Src).Str("to", e.Dst).Msg("lifecycle transition")
			},
		},
	)
	return c
}

// Start launches the assignment sweep loop and one movement loop per
// elevator. It fails if the controller is not freshly created.
func (c *Controller) Start() error {
	if err := c.lifecycle.Event(context.Background(), "start"); err != nil {
		return err
	}
	c.done = make(chan struct{})

	c.wg.Add(1)
	go c.sweepLoop()
	for _, id := range c.order {
		c.wg.Add(1)
		go c.moveLoop(id)
	}
	return nil
}

// Shutdown stops both loop families and waits for in-flight sweep and
// step invocations to finish before returning.
func (c *Controller) Shutdown() error {
	if err := c.lifecycle.Event(context.Background(), "shutdown"); err != nil {
		return err
	}
	close(c.done)
	c.wg.Wait()
	return nil
}

func (c *Controller) sweepLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweepOnce()
			c.checkStuck()
		}
	}
}

func (c *Controller) moveLoop(id string) {
	defer c.wg.Done()
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.tickOnce(id)
		}
	}
}

// SubmitExternalRequest validates and enqueues a hall pickup. The
// request stays pending until an assignment sweep places it.
func (c *Controller) SubmitExternalRequest(floor int, dir elevator.Direction) error {
	if floor < c.cfg.MinFloor || floor > c.cfg.MaxFloor {
		return &ValidationError{Field: "floor", Value: floor, Reason: "outside served range"}
	}
	if dir != elevator.DirectionUp && dir != elevator.DirectionDown {
		return &ValidationError{Field: "direction", Value: int(dir), Reason: "must be up or down"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	req := c.enqueueExternalLocked(floor, dir)
	c.log.Info().Uint64("request", req.ID).Int("floor", floor).
		Str("direction", dir.String()).Msg("pickup submitted")
	return nil
}

// caller holds c.mu
func (c *Controller) enqueueExternalLocked(floor int, dir elevator.Direction) *request.Request {
	c.nextID++
	req := request.NewExternal(c.nextID, floor, dir)
	c.queue.Push(req)
	return req
}

// SubmitInternalRequest applies an in-car destination directly to its
// elevator, bypassing the queue. Unknown or out-of-service elevators and
// out-of-range destinations are logged and dropped, never fatal.
func (c *Controller) SubmitInternalRequest(elevatorID string, destination int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if destination < c.cfg.MinFloor || destination > c.cfg.MaxFloor {
		c.log.Warn().Str("elevator", elevatorID).Int("destination", destination).
			Msg("destination outside served range, dropping")
		return
	}
	car, ok := c.elevators[elevatorID]
	if !ok {
		c.log.Warn().Str("elevator", elevatorID).Msg("unknown elevator, dropping destination")
		return
	}
	snap := car.Snapshot()
	if snap.Service == elevator.StatusOutOfService {
		c.log.Warn().Str("elevator", elevatorID).Int("destination", destination).
			Msg("elevator out of service, dropping destination")
		return
	}

	c.nextID++
	req := request.NewInternal(c.nextID, elevatorID, destination)
	if !car.AddStop(destination) {
		// Already at the destination: served on the spot.
		req.Advance(request.Assigned)
		req.Advance(request.Completed)
		c.journal = append(c.journal, req)
		return
	}
	req.Advance(request.Assigned)
	c.recordAssignmentLocked(elevatorID, req)
	c.log.Info().Uint64("request", req.ID).Str("elevator", elevatorID).
		Int("destination", destination).Msg("destination accepted")
}

// sweepOnce performs one assignment sweep inside a single controller
// critical section. Pending requests are offered to the strategy oldest
// first; the sweep stops at the first request no elevator can take, and
// that request and everything behind it stay queued in submission order
// for the next sweep.
func (c *Controller) sweepOnce() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		req, ok := c.queue.Peek()
		if !ok {
			return
		}
		fleet := c.snapshotsLocked()
		id, ok := c.strategy.SelectElevator(req, fleet)
		if !ok {
			return
		}
		c.queue.Pop()
		car := c.elevators[id]
		if !car.AddStop(req.Floor) {
			// The chosen elevator already waits at this floor.
			req.Advance(request.Assigned)
			req.Advance(request.Completed)
			c.journal = append(c.journal, req)
			continue
		}
		req.Advance(request.Assigned)
		c.recordAssignmentLocked(id, req)
		c.log.Info().Uint64("request", req.ID).Str("elevator", id).
			Str("strategy", c.strategy.Name()).Int("floor", req.Floor).Msg("pickup assigned")
	}
}

// caller holds c.mu
func (c *Controller) recordAssignmentLocked(id string, req *request.Request) {
	byFloor := c.assigned[id]
	if byFloor == nil {
		byFloor = make(map[int][]*request.Request)
		c.assigned[id] = byFloor
	}
	byFloor[req.Floor] = append(byFloor[req.Floor], req)
	if !c.watchdogs[id].Active() {
		c.watchdogs[id].Start(c.cfg.StuckTimeout)
	}
}

// caller holds c.mu
func (c *Controller) snapshotsLocked() []elevator.Snapshot {
	fleet := make([]elevator.Snapshot, 0, len(c.order))
	for _, id := range c.order {
		fleet = append(fleet, c.elevators[id].Snapshot())
	}
	return fleet
}

// tickOnce advances one elevator by a single time-slice and keeps the
// request bookkeeping and the watchdog in step with what happened.
func (c *Controller) tickOnce(id string) {
	car := c.elevators[id]
	res := car.Step()

	c.mu.Lock()
	defer c.mu.Unlock()
	switch res.Event {
	case elevator.EventDoorOpened:
		c.completeAtLocked(id, res.Floor)
		c.watchdogs[id].Start(c.cfg.StuckTimeout)
	case elevator.EventMoved, elevator.EventDoorClosed, elevator.EventReversed:
		c.watchdogs[id].Start(c.cfg.StuckTimeout)
	case elevator.EventWentIdle:
		c.watchdogs[id].Stop()
	}
}

// caller holds c.mu
func (c *Controller) completeAtLocked(id string, floor int) {
	byFloor := c.assigned[id]
	for _, req := range byFloor[floor] {
		req.Advance(request.Completed)
		c.journal = append(c.journal, req)
		c.log.Info().Uint64("request", req.ID).Str("elevator", id).
			Int("floor", floor).Msg("request completed")
	}
	delete(byFloor, floor)
}

// MarkElevatorOutOfService takes an elevator out of rotation and
// redistributes its pending floors as fresh external requests. The
// original requester's direction is not retained by the stop-sets, so
// the resubmitted direction is inferred from floor versus the car's
// position at fault time; this reconstruction is best-effort.
func (c *Controller) MarkElevatorOutOfService(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.markOutOfServiceLocked(id)
}

// caller holds c.mu
func (c *Controller) markOutOfServiceLocked(id string) error {
	car, ok := c.elevators[id]
	if !ok {
		return ErrElevatorNotFound
	}
	pending := car.MarkOutOfService()
	here := car.Snapshot().Floor
	c.watchdogs[id].Stop()

	for _, reqs := range c.assigned[id] {
		for _, req := range reqs {
			req.Advance(request.Cancelled)
			c.journal = append(c.journal, req)
		}
	}
	delete(c.assigned, id)

	for _, floor := range pending {
		if floor == here {
			continue
		}
		dir := elevator.DirectionDown
		if floor > here {
			dir = elevator.DirectionUp
		}
		req := c.enqueueExternalLocked(floor, dir)
		c.log.Warn().Uint64("request", req.ID).Str("elevator", id).
			Int("floor", floor).Str("direction", dir.String()).Msg("pending stop resubmitted")
	}
	c.log.Warn().Str("elevator", id).Ints("redistributed", pending).Msg("elevator out of service")
	return nil
}

// RestoreElevatorToService returns an elevator to rotation; it becomes
// eligible again starting with the next sweep.
func (c *Controller) RestoreElevatorToService(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	car, ok := c.elevators[id]
	if !ok {
		return ErrElevatorNotFound
	}
	car.RestoreToService()
	return nil
}

// SetStrategy swaps the active strategy. Takes effect with the next
// sweep; already-assigned requests are unaffected.
func (c *Controller) SetStrategy(s scheduler.Strategy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strategy = s
	c.log.Info().Str("strategy", s.Name()).Msg("strategy changed")
}

// ElevatorStatus returns an immutable snapshot of one elevator.
func (c *Controller) ElevatorStatus(id string) (elevator.Snapshot, error) {
	car, ok := c.elevators[id]
	if !ok {
		return elevator.Snapshot{}, ErrElevatorNotFound
	}
	return car.Snapshot(), nil
}

// AllStatuses returns snapshots of the whole fleet in enumeration order.
// Safe to call concurrently with sweeps and ticks.
func (c *Controller) AllStatuses() []elevator.Snapshot {
	fleet := make([]elevator.Snapshot, 0, len(c.order))
	for _, id := range c.order {
		fleet = append(fleet, c.elevators[id].Snapshot())
	}
	return fleet
}

// PendingRequests reports how many pickups are still waiting for
// assignment.
func (c *Controller) PendingRequests() int {
	return c.queue.Len()
}

// RequestLog returns deep copies of the terminally settled requests, so
// callers can never alias controller-owned bookkeeping.
func (c *Controller) RequestLog() []request.Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]request.Request, 0, len(c.journal))
	for _, req := range c.journal {
		var cp request.Request
		if err := deepcopy.Copy(&cp, req); err != nil {
			continue
		}
		out = append(out, cp)
	}
	return out
}
