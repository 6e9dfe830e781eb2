package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dongruiqing/multiverso/message"
)

func TestCache_FIFOOrderPerQueue(t *testing.T) {
	c := New()
	c.PushGet(message.Message{SrcRank: 1})
	c.PushAdd(message.Message{SrcRank: 10})
	c.PushGet(message.Message{SrcRank: 2})

	assert.Equal(t, 2, c.GetLen())
	assert.Equal(t, 1, c.AddLen())

	msg, ok := c.PopGet()
	assert.True(t, ok)
	assert.Equal(t, 1, msg.SrcRank)

	msg, ok = c.PopGet()
	assert.True(t, ok)
	assert.Equal(t, 2, msg.SrcRank)

	assert.True(t, c.GetEmpty())
	assert.False(t, c.AddEmpty())

	msg, ok = c.PopAdd()
	assert.True(t, ok)
	assert.Equal(t, 10, msg.SrcRank)
	assert.True(t, c.AddEmpty())
}

func TestCache_PopFromEmptyReturnsFalse(t *testing.T) {
	c := New()
	_, ok := c.PopGet()
	assert.False(t, ok)
	_, ok = c.PopAdd()
	assert.False(t, ok)
}
