// Package mailbox defines the Mailbox collaborator the server's main loop
// polls, plus Queue, a deque-backed reference implementation safe for one
// producer (the actor runtime delivering inbound messages) and one
// consumer (the server's main loop) running concurrently.
//
// The real mailbox — wired to the actor/transport runtime — is an external
// collaborator per the core's scope; Queue exists for tests and the
// single-process demo.
package mailbox

import (
	"sync"

	"github.com/gammazero/deque"

	"github.com/dongruiqing/multiverso/message"
)

// Mailbox is the collaborator the server's main loop drains.
type Mailbox interface {
	// TryPop removes and returns the oldest pending message, or reports
	// false if the mailbox is currently empty. It must never block.
	TryPop() (message.Message, bool)
}

// Queue is a FIFO Mailbox implementation. Push is safe to call from any
// goroutine (the "possible dispatcher thread" the spec allows for); TryPop
// is intended to be called from a single consumer goroutine, but is made
// safe for concurrent use with Push by the same mutex.
type Queue struct {
	mu sync.Mutex
	dq deque.Deque[message.Message]
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push enqueues msg at the back of the mailbox.
func (q *Queue) Push(msg message.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dq.PushBack(msg)
}

// TryPop implements Mailbox.
func (q *Queue) TryPop() (message.Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.dq.Len() == 0 {
		return message.Message{}, false
	}
	return q.dq.PopFront(), true
}

// Len reports the number of pending messages, for diagnostics and tests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dq.Len()
}
