// Package communicator defines the outbound-transport collaborator a
// server hands reply messages to, plus Recorder, an in-memory reference
// implementation that captures sent replies for assertions.
//
// The real communicator — wired to the wire transport — is an external
// collaborator per the core's scope; Recorder exists for tests and the
// single-process demo.
package communicator

import (
	"sync"

	"github.com/dongruiqing/multiverso/message"
)

// Communicator is the collaborator a server hands reply messages to for
// transmission.
type Communicator interface {
	Send(message.Message)
}

// Recorder is a Communicator that appends every sent message to an
// in-memory slice, in send order, so tests can assert on what a server
// replied with and in what order.
type Recorder struct {
	mu  sync.Mutex
	out []message.Message
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send implements Communicator.
func (r *Recorder) Send(msg message.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out = append(r.out, msg)
}

// Sent returns a copy of every message sent so far, in order.
func (r *Recorder) Sent() []message.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]message.Message, len(r.out))
	copy(out, r.out)
	return out
}
