package server

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
)

// Fatalf reports a programmer error — an invalid table id, an unhandled
// message kind with no default handler, or a cache found non-empty where
// the protocol guarantees it must be empty. It logs at Error, then panics
// so the failure surfaces immediately instead of corrupting server state;
// cmd/multiverso-server recovers the panic at the top level and exits
// non-zero. It does not log at Crit, because Logger.Crit exits the process
// before a panic could be raised or recovered.
func Fatalf(logger log.Logger, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error(msg)
	panic(msg)
}
