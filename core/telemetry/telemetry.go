// Package telemetry provides the per-query counters the "Telemetry
// counters per query" row of §6's external-interface table calls for but
// leaves unspecified.
package telemetry

import (
	"fmt"
	"sync/atomic"
)

// Counters are safe for concurrent use from the WorkPool's worker
// goroutines; every field is incremented with sync/atomic.
type Counters struct {
	SegmentsProduced     int64
	StripsBuilt          int64
	StripsHarmonized     int64
	SeedsDroppedAmbiguous int64
	SeedsDroppedBridging  int64
	InvariantViolations   int64
}

func (c *Counters) AddSegmentsProduced(n int64)      { atomic.AddInt64(&c.SegmentsProduced, n) }
func (c *Counters) AddStripsBuilt(n int64)           { atomic.AddInt64(&c.StripsBuilt, n) }
func (c *Counters) AddStripsHarmonized(n int64)      { atomic.AddInt64(&c.StripsHarmonized, n) }
func (c *Counters) AddSeedsDroppedAmbiguous(n int64) { atomic.AddInt64(&c.SeedsDroppedAmbiguous, n) }
func (c *Counters) AddSeedsDroppedBridging(n int64)  { atomic.AddInt64(&c.SeedsDroppedBridging, n) }
func (c *Counters) AddInvariantViolation()           { atomic.AddInt64(&c.InvariantViolations, 1) }

// Snapshot returns a point-in-time copy safe to log or print.
func (c *Counters) Snapshot() Counters {
	return Counters{
		SegmentsProduced:      atomic.LoadInt64(&c.SegmentsProduced),
		StripsBuilt:           atomic.LoadInt64(&c.StripsBuilt),
		StripsHarmonized:      atomic.LoadInt64(&c.StripsHarmonized),
		SeedsDroppedAmbiguous: atomic.LoadInt64(&c.SeedsDroppedAmbiguous),
		SeedsDroppedBridging:  atomic.LoadInt64(&c.SeedsDroppedBridging),
		InvariantViolations:   atomic.LoadInt64(&c.InvariantViolations),
	}
}

func (c Counters) String() string {
	return fmt.Sprintf(
		"segments=%d strips=%d harmonized=%d dropped_ambiguous=%d dropped_bridging=%d invariant_violations=%d",
		c.SegmentsProduced, c.StripsBuilt, c.StripsHarmonized,
		c.SeedsDroppedAmbiguous, c.SeedsDroppedBridging, c.InvariantViolations,
	)
}
