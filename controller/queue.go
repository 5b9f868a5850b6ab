package controller

import (
	"sync"

	"elevdispatch/request"
)

// requestQueue is the FIFO of pending external pickups, shared by all
// submitters and the single assignment sweep.
type requestQueue struct {
	mu    sync.Mutex
	items []*request.Request
}

func newRequestQueue() *requestQueue {
	return &requestQueue{}
}

func (q *requestQueue) Push(r *request.Request) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, r)
}

// Peek returns the oldest request without removing it.
func (q *requestQueue) Peek() (*request.Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	return q.items[0], true
}

func (q *requestQueue) Pop() (*request.Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	r := q.items[0]
	q.items = q.items[1:]
	return r, true
}

func (q *requestQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
