package mailbox

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/dongruiqing/multiverso/message"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestQueue_FIFOOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 3; i++ {
		q.Push(message.Message{Kind: message.Get, SrcRank: i})
	}

	for i := 0; i < 3; i++ {
		msg, ok := q.TryPop()
		assert.True(t, ok)
		assert.Equal(t, i, msg.SrcRank)
	}

	_, ok := q.TryPop()
	assert.False(t, ok, "empty queue must report false, never block")
}

func TestQueue_ConcurrentProducerSingleConsumer(t *testing.T) {
	q := NewQueue()
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			q.Push(message.Message{SrcRank: i})
		}
	}()

	received := 0
	for received < n {
		if _, ok := q.TryPop(); ok {
			received++
		}
	}
	wg.Wait()

	assert.Equal(t, n, received)
	assert.Equal(t, 0, q.Len())
}
