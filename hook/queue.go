package hook

import (
	"errors"
	"sync"
)

// ErrQueueClosed is returned once the consumer has gone away.
var ErrQueueClosed = errors.New("event queue closed")

// Queue is an unbounded FIFO of events from the interceptor to the consumer.
// Send never blocks, so the hook callback can never stall system input on a
// slow consumer.
type Queue struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func NewQueue() *Queue {
	return &Queue{}
}

// Send appends an event. It fails only after Close.
func (q *Queue) Send(e Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	q.events = append(q.events, e)
	return nil
}

// TryReceive pops the oldest event without blocking. ok is false when the
// queue is empty. ErrQueueClosed is returned only once a closed queue has
// been drained.
func (q *Queue) TryReceive() (e Event, ok bool, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		if q.closed {
			return Event{}, false, ErrQueueClosed
		}
		return Event{}, false, nil
	}

	e = q.events[0]
	q.events[0] = Event{}
	q.events = q.events[1:]
	if len(q.events) == 0 {
		// drop the backing array once drained
		q.events = nil
	}
	return e, true, nil
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Close makes further sends fail. Pending events can still be received.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}
