// Package membership defines the cluster membership/rank collaborator: it
// tells a server shard how many workers exist and how to translate a
// transport-level sender rank into a dense worker id.
//
// The real membership service (backed by cluster discovery) is an
// external collaborator per the core's scope; Static is a fixed-mapping
// reference implementation for tests and the single-process demo.
package membership

// Membership is the collaborator a server shard consults for worker
// topology.
type Membership interface {
	// NumWorkers returns the fixed number of workers in the system.
	NumWorkers() int
	// RankToWorkerID maps a transport-level sender rank to a dense
	// worker id in [0, NumWorkers()).
	RankToWorkerID(rank int) int
	// ServerID returns this shard's own id, for logging.
	ServerID() int
}

// Static is a Membership where rank equals worker id, the simplest
// possible mapping and the one assumed throughout this module's tests.
type Static struct {
	numWorkers int
	serverID   int
}

// NewStatic returns a Static membership for numWorkers workers, reporting
// serverID as this shard's id.
func NewStatic(numWorkers, serverID int) *Static {
	return &Static{numWorkers: numWorkers, serverID: serverID}
}

func (s *Static) NumWorkers() int { return s.numWorkers }

func (s *Static) RankToWorkerID(rank int) int { return rank }

func (s *Static) ServerID() int { return s.serverID }
