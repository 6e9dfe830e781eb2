// Package cache implements the two FIFOs a synchronous server defers
// requests onto while it waits for the opposite-direction clock to
// advance: cache_get for deferred Get messages and cache_add for deferred
// Add messages.
//
// At rest (immediately after any server handler returns), the protocol in
// server.Sync guarantees at most one of the two is non-empty — see
// invariant 6 in spec.md §8 — but Cache itself only provides the FIFO
// mechanics; it does not enforce that invariant.
package cache

import (
	"sync"

	"github.com/gammazero/deque"

	"github.com/dongruiqing/multiverso/message"
)

// Cache holds the two deferred-message queues for one synchronous server
// shard. Each queue is its own deque guarded by its own mutex, since a
// drain of one never touches the other.
type Cache struct {
	getMu sync.Mutex
	get   deque.Deque[message.Message]

	addMu sync.Mutex
	add   deque.Deque[message.Message]
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{}
}

// PushGet defers msg onto cache_get.
func (c *Cache) PushGet(msg message.Message) {
	c.getMu.Lock()
	defer c.getMu.Unlock()
	c.get.PushBack(msg)
}

// PushAdd defers msg onto cache_add.
func (c *Cache) PushAdd(msg message.Message) {
	c.addMu.Lock()
	defer c.addMu.Unlock()
	c.add.PushBack(msg)
}

// PopGet removes and returns the oldest deferred Get, or false if
// cache_get is empty.
func (c *Cache) PopGet() (message.Message, bool) {
	c.getMu.Lock()
	defer c.getMu.Unlock()
	if c.get.Len() == 0 {
		return message.Message{}, false
	}
	return c.get.PopFront(), true
}

// PopAdd removes and returns the oldest deferred Add, or false if
// cache_add is empty.
func (c *Cache) PopAdd() (message.Message, bool) {
	c.addMu.Lock()
	defer c.addMu.Unlock()
	if c.add.Len() == 0 {
		return message.Message{}, false
	}
	return c.add.PopFront(), true
}

// GetLen reports the number of deferred Gets.
func (c *Cache) GetLen() int {
	c.getMu.Lock()
	defer c.getMu.Unlock()
	return c.get.Len()
}

// AddLen reports the number of deferred Adds.
func (c *Cache) AddLen() int {
	c.addMu.Lock()
	defer c.addMu.Unlock()
	return c.add.Len()
}

// GetEmpty reports whether cache_get currently holds no messages.
func (c *Cache) GetEmpty() bool {
	return c.GetLen() == 0
}

// AddEmpty reports whether cache_add currently holds no messages.
func (c *Cache) AddEmpty() bool {
	return c.AddLen() == 0
}
