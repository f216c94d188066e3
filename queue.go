package starfield

import "sync"

// RegenerationRequest asks the loop to rebuild Star with Seed.
type RegenerationRequest struct {
	Star int
	Seed int32
}

// RequestQueue hands regeneration requests from any goroutine to the loop.
//
// Thread-safety:
//   - Push: safe for concurrent producers
//   - Drain: single consumer (the loop), once per tick
//
// The queue is unbounded; requests are never dropped or overwritten, and
// Drain returns them in push order.
type RequestQueue struct {
	mu      sync.Mutex
	pending []RegenerationRequest
	spare   []RegenerationRequest
}

// Push appends req to the queue.
func (q *RequestQueue) Push(req RegenerationRequest) {
	q.mu.Lock()
	q.pending = append(q.pending, req)
	q.mu.Unlock()
}

// Drain removes and returns every queued request in FIFO order. The
// returned slice is only valid until the next Drain call.
func (q *RequestQueue) Drain() []RegenerationRequest {
	q.mu.Lock()
	out := q.pending
	q.pending = q.spare[:0]
	q.spare = out
	q.mu.Unlock()
	return out
}

// Len returns the number of queued requests.
func (q *RequestQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
