package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dongruiqing/multiverso/communicator"
	"github.com/dongruiqing/multiverso/message"
	"github.com/dongruiqing/multiverso/table"
)

func newTestAsync(t *testing.T) (*Async, *communicator.Recorder, *table.MemTable) {
	t.Helper()
	store := table.NewStore()
	comm := communicator.NewRecorder()
	a := NewAsync(store, comm)
	mt := table.NewMemTable()
	id := a.RegisterTable(mt)
	require.Equal(t, 0, id)
	return a, comm, mt
}

func TestAsync_RegisterTableIsDense(t *testing.T) {
	store := table.NewStore()
	a := NewAsync(store, communicator.NewRecorder())

	id0 := a.RegisterTable(table.NewMemTable())
	id1 := a.RegisterTable(table.NewMemTable())
	assert.Equal(t, 0, id0)
	assert.Equal(t, 1, id1)
	assert.Equal(t, 2, store.Len())
}

func TestAsync_ProcessAddAppliesAndAcks(t *testing.T) {
	a, comm, mt := newTestAsync(t)

	a.ProcessAdd(message.Message{Kind: message.Add, SrcRank: 3, TableID: 0, Payload: []byte("delta")})

	assert.Equal(t, []byte("delta"), mt.Value())
	sent := comm.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, message.Reply, sent[0].Kind)
	assert.Equal(t, 3, sent[0].SrcRank)
	assert.Empty(t, sent[0].Payload)
}

func TestAsync_ProcessGetReadsCurrentValue(t *testing.T) {
	a, comm, _ := newTestAsync(t)

	a.ProcessAdd(message.Message{Kind: message.Add, SrcRank: 0, TableID: 0, Payload: []byte("v1")})
	a.ProcessGet(message.Message{Kind: message.Get, SrcRank: 7, TableID: 0, Payload: []byte("read")})

	sent := comm.Sent()
	require.Len(t, sent, 2)
	reply := sent[1]
	assert.Equal(t, message.Reply, reply.Kind)
	assert.Equal(t, 7, reply.SrcRank)
	assert.Equal(t, []byte("v1"), reply.Payload)
}

func TestAsync_EmptyPayloadGetIsANoOp(t *testing.T) {
	a, comm, _ := newTestAsync(t)

	a.ProcessGet(message.Message{Kind: message.Get, SrcRank: 0, TableID: 0})

	assert.Empty(t, comm.Sent())
}

func TestAsync_EmptyPayloadAddIsANoOp(t *testing.T) {
	a, comm, mt := newTestAsync(t)

	a.ProcessAdd(message.Message{Kind: message.Add, SrcRank: 0, TableID: 0})

	assert.Empty(t, comm.Sent())
	assert.Nil(t, mt.Value())
}

func TestAsync_InvalidTableIDOnGetIsFatal(t *testing.T) {
	a, _, _ := newTestAsync(t)

	assert.Panics(t, func() {
		a.ProcessGet(message.Message{Kind: message.Get, SrcRank: 0, TableID: 99, Payload: []byte("read")})
	})
}

func TestAsync_InvalidTableIDOnAddIsFatal(t *testing.T) {
	a, _, _ := newTestAsync(t)

	assert.Panics(t, func() {
		a.ProcessAdd(message.Message{Kind: message.Add, SrcRank: 0, TableID: 99, Payload: []byte("x")})
	})
}
