package server

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/dongruiqing/multiverso/communicator"
	"github.com/dongruiqing/multiverso/config"
	"github.com/dongruiqing/multiverso/membership"
	"github.com/dongruiqing/multiverso/message"
	"github.com/dongruiqing/multiverso/table"
)

// Handler is what the main loop (Run) dispatches Get/Add messages to. Both
// Async and Sync implement it; Sync additionally implements
// FinishTrainHandler.
type Handler interface {
	RegisterTable(t table.ServerTable) int
	ProcessGet(msg message.Message)
	ProcessAdd(msg message.Message)
}

// FinishTrainHandler is implemented by handlers that support the
// finish-train drain protocol. Only Sync does; an Async server that
// receives a FinishTrain message has no handler for it, per spec.md §4.2.
type FinishTrainHandler interface {
	ProcessFinishTrain(msg message.Message)
}

// New constructs an Async or Sync server according to cfg.Sync. This is
// the one place mode selection happens; there is no runtime mode switch.
func New(cfg config.Config, store *table.Store, comm communicator.Communicator, m membership.Membership) Handler {
	if cfg.Sync {
		log.Info("creating synchronous server", "server_id", m.ServerID(), "num_workers", m.NumWorkers())
		return NewSync(store, comm, m)
	}
	log.Info("creating asynchronous server", "server_id", m.ServerID())
	return NewAsync(store, comm)
}
