// Package request defines the immutable description of pickup and
// destination requests and their status lifecycle.
package request

import (
	"fmt"
	"time"

	"elevdispatch/elevator"
)

// Kind discriminates the request union: a hall pickup submitted at a
// floor, or an in-car destination bound to one elevator.
type Kind int

const (
	External Kind = iota
	Internal
)

func (k Kind) String() string {
	if k == Internal {
		return "internal"
	}
	return "external"
}

type Status int

const (
	Pending Status = iota
	Assigned
	Completed
	Cancelled
)

var statusToString = map[Status]string{
	Pending:   "pending",
	Assigned:  "assigned",
	Completed: "completed",
	Cancelled: "cancelled",
}

func (s Status) String() string {
	if str, ok := statusToString[s]; ok {
		return str
	}
	return "undefined"
}

// Request is created once on submission. Its status only advances
// forward; a completed or cancelled request never changes again.
type Request struct {
	ID          uint64
	Kind        Kind
	Floor       int
	Direction   elevator.Direction // external pickups only
	ElevatorID  string             // internal destinations only
	SubmittedAt time.Time
	Status      Status
}

func NewExternal(id uint64, floor int, dir elevator.Direction) *Request {
	return &Request{
		ID:          id,
		Kind:        External,
		Floor:       floor,
		Direction:   dir,
		SubmittedAt: time.Now(),
		Status:      Pending,
	}
}

func NewInternal(id uint64, elevatorID string, destination int) *Request {
	return &Request{
		ID:          id,
		Kind:        Internal,
		Floor:       destination,
		ElevatorID:  elevatorID,
		SubmittedAt: time.Now(),
		Status:      Pending,
	}
}

// Advance moves the status forward, rejecting any transition that would
// move backwards or out of a terminal state.
func (r *Request) Advance(next Status) bool {
	switch r.Status {
	case Pending:
		if next == Assigned || next == Cancelled {
			r.Status = next
			return true
		}
	case Assigned:
		if next == Completed || next == Cancelled {
			r.Status = next
			return true
		}
	}
	return false
}

func (r *Request) String() string {
	if r.Kind == Internal {
		return fmt.Sprintf("request %d (internal, elevator %s, destination %d, %s)",
			r.ID, r.ElevatorID, r.Floor, r.Status)
	}
	return fmt.Sprintf("request %d (external, floor %d, %s, %s)",
		r.ID, r.Floor, r.Direction, r.Status)
}
