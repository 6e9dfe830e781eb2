// Package clock implements the vector clock used by the synchronous server
// to detect when every worker has reached the same read or write tick
// without a central barrier.
package clock

import (
	"bytes"
	"fmt"
	"math"
)

// Finished is the sentinel local-clock value assigned by FinishTrain. It is
// larger than any tick reachable through Update, so a finished worker is
// ignored by the "all workers at the same tick" predicate.
const Finished = math.MaxInt64

// Clock tracks one direction (reads or writes) of progress across a fixed
// set of workers: a local counter per worker, and a global counter that
// lags behind the minimum of the local counters.
//
// The zero value is not usable; construct with New.
type Clock struct {
	local  []int64
	global int64
}

// New returns a Clock for n workers, all counters at zero.
func New(n int) *Clock {
	return &Clock{local: make([]int64, n)}
}

// Update advances worker i's local counter by one tick. If every worker's
// local counter is now strictly ahead of the global counter, the global
// counter is advanced by one (at most one tick per call — it is a lagging
// scalar, not a recomputed minimum). Update reports true only when this
// call advanced the global counter and the new global counter equals the
// maximum local counter among workers that have not finished, i.e. when
// every live worker just reached the same tick; a call that leaves the
// global counter unchanged reports false.
//
// A worker that already called FinishTrain is saturated at the sentinel:
// Update is a no-op on its local counter rather than incrementing past it.
// A FinishTrain drain can legitimately call Update for a worker whose
// opposite-direction clock already finished, and incrementing Finished
// would overflow.
func (c *Clock) Update(i int) bool {
	if c.local[i] != Finished {
		c.local[i]++
	}
	if c.global < c.min() {
		c.global++
		if c.global == c.maxExceptFinished() {
			return true
		}
	}
	return false
}

// FinishTrain marks worker i as done for this direction: its local counter
// is set to the Finished sentinel so it is excluded from future
// phase-closure checks. The global counter advances under the same rule as
// Update, and the same "all live workers caught up" predicate is returned.
func (c *Clock) FinishTrain(i int) bool {
	c.local[i] = Finished
	if c.global < c.min() {
		c.global++
		if c.global == c.maxExceptFinished() {
			return true
		}
	}
	return false
}

// Local returns worker i's local counter.
func (c *Clock) Local(i int) int64 {
	return c.local[i]
}

// Global returns the global counter.
func (c *Clock) Global() int64 {
	return c.global
}

// Len returns the number of workers tracked by the clock.
func (c *Clock) Len() int {
	return len(c.local)
}

func (c *Clock) min() int64 {
	m := c.local[0]
	for _, v := range c.local[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// maxExceptFinished returns the maximum local counter, ignoring any worker
// that has called FinishTrain, so the clock can still settle after some
// workers have finished. If every worker has finished, it returns the
// global counter so the predicate trivially holds.
func (c *Clock) maxExceptFinished() int64 {
	max := int64(-1)
	for _, v := range c.local {
		if v == Finished {
			continue
		}
		if v > max {
			max = v
		}
	}
	if max == -1 {
		return c.global
	}
	return max
}

// String renders the clock as "global <g> local: <l0> <l1> ...", matching
// the debug format the server logs on shutdown.
func (c *Clock) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "global %d local:", c.global)
	for _, v := range c.local {
		if v == Finished {
			buf.WriteString(" fin")
			continue
		}
		fmt.Fprintf(&buf, " %d", v)
	}
	return buf.String()
}
