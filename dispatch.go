package starfield

import (
	"errors"
	"sync/atomic"
)

// ErrInvalidStar reports a request naming a star index outside [0, N).
var ErrInvalidStar = errors.New("starfield: invalid star index")

// Dispatcher validates regeneration requests arriving on arbitrary goroutines
// and hands the valid ones to the loop through a RequestQueue. It never
// touches star state itself.
type Dispatcher struct {
	queue    *RequestQueue
	stars    int
	accepted atomic.Uint64
	rejected atomic.Uint64
}

// NewDispatcher creates a dispatcher for stars 0..stars-1 feeding queue.
func NewDispatcher(queue *RequestQueue, stars int) *Dispatcher {
	return &Dispatcher{queue: queue, stars: stars}
}

// Submit validates star and queues a request for the loop. It is safe for
// concurrent use. An out-of-range index is logged and dropped and Submit
// returns ErrInvalidStar; nothing else changes.
func (d *Dispatcher) Submit(star int, seed int32) error {
	if star < 0 || star >= d.stars {
		d.rejected.Add(1)
		Logger().Warn("regeneration request rejected", "star", star, "seed", seed, "stars", d.stars)
		return ErrInvalidStar
	}
	d.queue.Push(RegenerationRequest{Star: star, Seed: seed})
	d.accepted.Add(1)
	Logger().Debug("regeneration request queued", "star", star, "seed", seed)
	return nil
}

// Stars returns the number of valid star indices.
func (d *Dispatcher) Stars() int { return d.stars }

// Accepted returns how many requests have been queued.
func (d *Dispatcher) Accepted() uint64 { return d.accepted.Load() }

// Rejected returns how many requests were dropped for an invalid index.
func (d *Dispatcher) Rejected() uint64 { return d.rejected.Load() }
