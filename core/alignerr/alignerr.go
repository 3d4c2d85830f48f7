// Package alignerr defines the error kinds of §7: IoError, CorruptIndex,
// InvariantViolation, Cancelled and OutOfMemory. Each is a struct type
// discriminated with errors.As rather than sentinel values (only IoError
// wraps an underlying cause),
// matching the teacher's errors.Is(err, flag.ErrHelp) style of explicit,
// typed error handling.
package alignerr

import "fmt"

// IoError wraps a failure loading a persisted PackedReference or FMIndex.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string { return fmt.Sprintf("laus: io error during %s: %v", e.Op, e.Err) }
func (e *IoError) Unwrap() error { return e.Err }

// CorruptIndex signals a magic/version/checksum mismatch or a length
// inconsistency in a persisted index.
type CorruptIndex struct {
	Reason string
}

func (e *CorruptIndex) Error() string { return "laus: corrupt index: " + e.Reason }

// InvariantViolation is a programming bug: a bridging seed reached the
// harmonizer, SA-inversion diverged, or similar. It carries enough context
// for post-mortem analysis (§7): the query id, the component that detected
// it, and a short state summary.
type InvariantViolation struct {
	QueryID   string
	Component string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("laus: invariant violation in %s (query=%q): %s", e.Component, e.QueryID, e.Detail)
}

// NewInvariantViolation constructs an InvariantViolation with the calling
// component's name, for use at the point of detection.
func NewInvariantViolation(queryID, component, detail string) error {
	return &InvariantViolation{QueryID: queryID, Component: component, Detail: detail}
}

// Cancelled is returned when a query-scoped cancellation flag is observed
// at a task boundary (§5 Cancellation).
type Cancelled struct {
	QueryID string
}

func (e *Cancelled) Error() string { return fmt.Sprintf("laus: query %q cancelled", e.QueryID) }

// OutOfMemory reports an exhausted resource; the query is abandoned, not
// retried. No laus-core function returns it: segments whose SA-interval
// exceeds MaxAmbiguity are dropped by soc without an error.
type OutOfMemory struct {
	Detail string
}

func (e *OutOfMemory) Error() string { return "laus: out of memory: " + e.Detail }
