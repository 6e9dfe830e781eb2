package server

import (
	"runtime"

	"github.com/ethereum/go-ethereum/log"

	"github.com/dongruiqing/multiverso/control"
	"github.com/dongruiqing/multiverso/mailbox"
	"github.com/dongruiqing/multiverso/message"
)

// Run drives the single-threaded main loop described in spec.md §4.7: pop
// one message at a time from mb, dispatch it to the handler registered for
// its kind, and repeat until ctl reports the process should stop. On
// shutdown it logs diagnostic state (both clocks, any residual cache
// contents, for a Sync handler) before returning — the "cleaner design"
// noted in spec.md §9, rather than exiting the process from inside the
// loop.
func Run(ctl control.Signal, mb mailbox.Mailbox, h Handler, logger log.Logger) {
	for ctl.Running() {
		msg, ok := mb.TryPop()
		if !ok {
			runtime.Gosched()
			continue
		}
		dispatch(h, msg, logger)
	}
	logShutdown(h, logger)
}

func dispatch(h Handler, msg message.Message, logger log.Logger) {
	switch msg.Kind {
	case message.Get:
		h.ProcessGet(msg)
	case message.Add:
		h.ProcessAdd(msg)
	case message.FinishTrain:
		ft, ok := h.(FinishTrainHandler)
		if !ok {
			Fatalf(logger, "unhandled message kind %s: no FinishTrain handler registered", msg.Kind)
		}
		ft.ProcessFinishTrain(msg)
	default:
		Fatalf(logger, "unhandled message kind %s", msg.Kind)
	}
}

// logShutdown writes both clocks' debug strings and any residual cache
// contents for a Sync handler, mirroring the original's shutdown
// diagnostics (spec.md §4.7). It is a no-op for a plain Async handler,
// which carries no clock or cache state.
func logShutdown(h Handler, logger log.Logger) {
	s, ok := h.(*Sync)
	if !ok {
		return
	}

	logger.Info("server shutting down",
		"get_clock", s.GetClock().String(),
		"add_clock", s.AddClock().String(),
		"get_cache_size", s.Cache().GetLen(),
		"add_cache_size", s.Cache().AddLen(),
	)
	for {
		msg, ok := s.Cache().PopGet()
		if !ok {
			break
		}
		logger.Info("residual cached get", "worker", s.membership.RankToWorkerID(msg.SrcRank))
	}
	for {
		msg, ok := s.Cache().PopAdd()
		if !ok {
			break
		}
		logger.Info("residual cached add", "worker", s.membership.RankToWorkerID(msg.SrcRank))
	}
}
