package server

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/dongruiqing/multiverso/cache"
	"github.com/dongruiqing/multiverso/clock"
	"github.com/dongruiqing/multiverso/communicator"
	"github.com/dongruiqing/multiverso/membership"
	"github.com/dongruiqing/multiverso/message"
	"github.com/dongruiqing/multiverso/table"
)

// Sync wraps Async with the BSP coordination protocol described in
// spec.md §4.3–§4.6: two vector clocks (one per direction) plus a
// per-worker pending-add counter gate admission of every Get and Add, so
// that every worker's i-th Get observes the state produced by every
// worker's i-th Add, without a central barrier.
//
// Sync composes Async rather than extending it — the idiomatic
// replacement for the original's C++ inheritance (see spec.md §9) — and
// delegates to it for the final "apply and reply" step of every admitted
// request.
type Sync struct {
	async *Async

	membership membership.Membership

	getClock *clock.Clock
	addClock *clock.Clock

	// pendingAdds[w] counts worker w's own Adds currently parked in
	// cache_add; it gates that worker's next Get, so a worker can never
	// race ahead of its own unapplied Add.
	pendingAdds []int64

	cache *cache.Cache

	log log.Logger
}

// NewSync returns a Sync server for the given membership, backed by store
// and with both clocks sized to membership.NumWorkers().
func NewSync(store *table.Store, comm communicator.Communicator, m membership.Membership) *Sync {
	n := m.NumWorkers()
	return &Sync{
		async:       NewAsync(store, comm),
		membership:  m,
		getClock:    clock.New(n),
		addClock:    clock.New(n),
		pendingAdds: make([]int64, n),
		cache:       cache.New(),
		log:         log.New("component", "sync-server", "server_id", m.ServerID()),
	}
}

// RegisterTable appends t to the underlying store and returns its new id.
func (s *Sync) RegisterTable(t table.ServerTable) int {
	return s.async.RegisterTable(t)
}

// ProcessAdd implements spec.md §4.4.
func (s *Sync) ProcessAdd(msg message.Message) {
	// An empty payload is dropped with no reply and no clock change.
	if len(msg.Payload) == 0 {
		return
	}
	worker := s.membership.RankToWorkerID(msg.SrcRank)

	// 1. Admission check: this worker is ahead on reads, so this Add
	// belongs to the next write phase.
	if s.getClock.Local(worker) > s.getClock.Global() {
		s.cache.PushAdd(msg)
		s.pendingAdds[worker]++
		return
	}

	// 2. Apply.
	s.async.ProcessAdd(msg)

	// 3. Post-advance: if the write phase just closed, drain cache_get.
	if s.addClock.Update(worker) {
		if !s.cache.AddEmpty() {
			Fatalf(s.log, "ProcessAdd: cache_add must be empty when the write phase closes")
		}
		for {
			getMsg, ok := s.cache.PopGet()
			if !ok {
				break
			}
			getWorker := s.membership.RankToWorkerID(getMsg.SrcRank)
			s.async.ProcessGet(getMsg)
			if s.getClock.Update(getWorker) {
				Fatalf(s.log, "ProcessAdd: draining cache_get must not close the read phase")
			}
		}
	}
}

// ProcessGet implements spec.md §4.5.
func (s *Sync) ProcessGet(msg message.Message) {
	// An empty payload is dropped with no reply and no clock change.
	if len(msg.Payload) == 0 {
		return
	}
	worker := s.membership.RankToWorkerID(msg.SrcRank)

	// 1. Admission check: ahead on writes, or has Adds still parked in
	// cache_add — either way this worker's own prior Add must land
	// first.
	if s.addClock.Local(worker) > s.addClock.Global() || s.pendingAdds[worker] > 0 {
		s.cache.PushGet(msg)
		return
	}

	// 2. Serve.
	s.async.ProcessGet(msg)

	// 3. Post-advance: if the read phase just closed, drain cache_add.
	if s.getClock.Update(worker) {
		for {
			addMsg, ok := s.cache.PopAdd()
			if !ok {
				break
			}
			addWorker := s.membership.RankToWorkerID(addMsg.SrcRank)
			s.async.ProcessAdd(addMsg)
			if s.addClock.Update(addWorker) {
				Fatalf(s.log, "ProcessGet: draining cache_add must not close the write phase")
			}
			s.pendingAdds[addWorker]--
			if s.pendingAdds[addWorker] < 0 {
				Fatalf(s.log, "ProcessGet: pending_adds[%d] went negative", addWorker)
			}
		}
	}
}

// ProcessFinishTrain implements spec.md §4.6. Unlike the normal-path
// drains in ProcessAdd/ProcessGet, the two drains here are allowed to
// close their opposite phase — a worker may finish exactly at a phase
// boundary — so neither asserts the opposite Update call returns false
// (see spec.md §9's resolution of this source ambiguity).
func (s *Sync) ProcessFinishTrain(msg message.Message) {
	worker := s.membership.RankToWorkerID(msg.SrcRank)
	s.log.Debug("worker finished training", "worker", worker)

	if s.getClock.FinishTrain(worker) {
		if !s.cache.GetEmpty() {
			Fatalf(s.log, "ProcessFinishTrain: cache_get must be empty when FinishTrain closes the read phase")
		}
		for {
			addMsg, ok := s.cache.PopAdd()
			if !ok {
				break
			}
			addWorker := s.membership.RankToWorkerID(addMsg.SrcRank)
			s.async.ProcessAdd(addMsg)
			s.addClock.Update(addWorker)
			s.pendingAdds[addWorker]--
		}
	}

	if s.addClock.FinishTrain(worker) {
		if !s.cache.AddEmpty() {
			Fatalf(s.log, "ProcessFinishTrain: cache_add must be empty when FinishTrain closes the write phase")
		}
		for {
			getMsg, ok := s.cache.PopGet()
			if !ok {
				break
			}
			getWorker := s.membership.RankToWorkerID(getMsg.SrcRank)
			s.async.ProcessGet(getMsg)
			s.getClock.Update(getWorker)
		}
	}
}

// GetClock returns the read-direction vector clock, for diagnostics and
// the shutdown debug dump.
func (s *Sync) GetClock() *clock.Clock { return s.getClock }

// AddClock returns the write-direction vector clock, for diagnostics and
// the shutdown debug dump.
func (s *Sync) AddClock() *clock.Clock { return s.addClock }

// Cache returns the deferred-message cache, for diagnostics and the
// shutdown debug dump.
func (s *Sync) Cache() *cache.Cache { return s.cache }
