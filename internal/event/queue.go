package event

// DefaultQueueSize is the capacity used when NewQueue gets a non-positive size.
const DefaultQueueSize = 256

// Queue is a bounded FIFO ring of events for a single producer/consumer
// (the simulation tick). When full, the oldest event is overwritten.
type Queue struct {
	events  []Event
	head    int // index of the oldest event
	count   int
	dropped uint64
}

// NewQueue creates a queue holding up to size events.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = DefaultQueueSize
	}
	return &Queue{events: make([]Event, size)}
}

// Push appends an event, dropping the oldest one if the queue is full.
func (q *Queue) Push(e Event) {
	if q.count == len(q.events) {
		q.head = (q.head + 1) % len(q.events)
		q.count--
		q.dropped++
	}
	q.events[(q.head+q.count)%len(q.events)] = e
	q.count++
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return q.count
}

// Dropped returns how many events were overwritten since creation.
func (q *Queue) Dropped() uint64 {
	return q.dropped
}

// Drain returns all pending events in FIFO order and empties the queue.
func (q *Queue) Drain() []Event {
	if q.count == 0 {
		return nil
	}
	out := make([]Event, q.count)
	for i := range out {
		out[i] = q.events[(q.head+i)%len(q.events)]
	}
	q.head = 0
	q.count = 0
	return out
}

// Reset discards pending events.
func (q *Queue) Reset() {
	q.head = 0
	q.count = 0
}
