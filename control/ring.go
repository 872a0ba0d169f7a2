package control

import "sync/atomic"

type (
	// ring is a bounded single-producer single-consumer queue. The producer only
	// ever stores tail and the consumer only ever stores head, so neither side
	// needs a lock. Indices grow without wrapping; slot = index % len(buffer).
	ring[T any] struct {
		buffer []T
		_      [64]byte // keep head and tail on separate cache lines
		head   atomic.Uint64
		_      [56]byte
		tail   atomic.Uint64
	}

	// Producer is the writing end of a ring. Only one goroutine may use it.
	Producer[T any] struct {
		r          *ring[T]
		cachedHead uint64
	}

	// Consumer is the reading end of a ring. Only one goroutine may use it,
	// typically the audio thread.
	Consumer[T any] struct {
		r          *ring[T]
		cachedTail uint64
	}
)

// NewRing allocates a ring holding at most capacity items and returns its two
// ends.
func NewRing[T any](capacity int) (*Producer[T], *Consumer[T]) {
	if capacity < 1 {
		capacity = 1
	}
	r := &ring[T]{buffer: make([]T, capacity)}
	return &Producer[T]{r: r}, &Consumer[T]{r: r}
}

// Push appends v unless the ring is full. It never blocks; on a full ring it
// returns false and v is not enqueued.
func (p *Producer[T]) Push(v T) bool {
	r := p.r
	tail := r.tail.Load()
	size := uint64(len(r.buffer))
	if tail-p.cachedHead >= size {
		p.cachedHead = r.head.Load()
		if tail-p.cachedHead >= size {
			return false
		}
	}
	r.buffer[tail%size] = v
	r.tail.Store(tail + 1)
	return true
}

// Len returns the number of queued items as seen by the producer.
func (p *Producer[T]) Len() int {
	return int(p.r.tail.Load() - p.r.head.Load())
}

func (p *Producer[T]) Cap() int {
	return len(p.r.buffer)
}

// Pop removes the oldest item. ok is false if the ring is empty.
func (c *Consumer[T]) Pop() (v T, ok bool) {
	r := c.r
	head := r.head.Load()
	if head == c.cachedTail {
		c.cachedTail = r.tail.Load()
		if head == c.cachedTail {
			return v, false
		}
	}
	size := uint64(len(r.buffer))
	slot := &r.buffer[head%size]
	v = *slot
	var zero T
	*slot = zero
	r.head.Store(head + 1)
	return v, true
}

// Len returns the number of queued items as seen by the consumer.
func (c *Consumer[T]) Len() int {
	return int(c.r.tail.Load() - c.r.head.Load())
}

func (c *Consumer[T]) Cap() int {
	return len(c.r.buffer)
}
