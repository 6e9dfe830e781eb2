// Package server implements the asynchronous and synchronous parameter
// server cores: request dispatch to the local table store (Async), and
// the vector-clock-driven BSP coordination engine that wraps it (Sync).
package server

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/dongruiqing/multiverso/communicator"
	"github.com/dongruiqing/multiverso/message"
	"github.com/dongruiqing/multiverso/table"
)

// Async is the stateless request router: it dispatches a Get or Add to
// the indicated table and emits a reply. It is both the baseline server
// (when sync mode is disabled) and the "apply" step Sync delegates its
// final dispatch to.
type Async struct {
	store *table.Store
	comm  communicator.Communicator
	log   log.Logger
}

// NewAsync returns an Async server backed by store, sending replies
// through comm.
func NewAsync(store *table.Store, comm communicator.Communicator) *Async {
	return &Async{
		store: store,
		comm:  comm,
		log:   log.New("component", "async-server"),
	}
}

// RegisterTable appends t to the store and returns its new id.
func (a *Async) RegisterTable(t table.ServerTable) int {
	return a.store.Register(t)
}

// ProcessGet serves a read request: an empty payload is a no-op probe and
// is silently dropped (no reply); otherwise the table's current selection
// is read into a reply and handed to the communicator. An out-of-range
// table id is a fatal programmer error.
func (a *Async) ProcessGet(msg message.Message) {
	if len(msg.Payload) == 0 {
		return
	}
	t, ok := a.store.Get(msg.TableID)
	if !ok {
		Fatalf(a.log, "ProcessGet: invalid table id %d (have %d tables)", msg.TableID, a.store.Len())
	}

	reply := message.NewReply(msg)
	t.ProcessGet(msg.Payload, &reply.Payload)
	a.comm.Send(reply)
}

// ProcessAdd applies a delta request: an empty payload is dropped with no
// reply or mutation; otherwise the delta is applied and an empty
// acknowledgement reply is sent. An out-of-range table id is a fatal
// programmer error.
func (a *Async) ProcessAdd(msg message.Message) {
	if len(msg.Payload) == 0 {
		return
	}
	t, ok := a.store.Get(msg.TableID)
	if !ok {
		Fatalf(a.log, "ProcessAdd: invalid table id %d (have %d tables)", msg.TableID, a.store.Len())
	}

	t.ProcessAdd(msg.Payload)
	a.comm.Send(message.NewReply(msg))
}
