package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RegisterIssuesDenseIDs(t *testing.T) {
	s := NewStore()
	ids := make([]int, 3)
	tables := make([]*MemTable, 3)
	for i := range ids {
		tables[i] = NewMemTable()
		ids[i] = s.Register(tables[i])
	}

	assert.Equal(t, []int{0, 1, 2}, ids)
	assert.Equal(t, 3, s.Len())
	for i, id := range ids {
		got, ok := s.Get(id)
		require.True(t, ok)
		assert.Same(t, tables[i], got)
	}
}

func TestStore_GetInvalidID(t *testing.T) {
	s := NewStore()
	s.Register(NewMemTable())

	_, ok := s.Get(-1)
	assert.False(t, ok)
	_, ok = s.Get(1)
	assert.False(t, ok)
}

func TestMemTable_AddThenGet(t *testing.T) {
	m := NewMemTable()
	m.ProcessAdd([]byte("v1"))

	var out []byte
	m.ProcessGet([]byte("read"), &out)
	assert.Equal(t, []byte("v1"), out)

	m.ProcessAdd([]byte("v2"))
	out = nil
	m.ProcessGet(nil, &out)
	assert.Equal(t, []byte("v2"), out)
}
