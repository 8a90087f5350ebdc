package simulator

import (
	"errors"
	"fmt"
)

// SimError is a custom error type for simulation errors
type SimError struct {
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("simulation error: %s", e.Message)
}

// ErrInvalidConfig creates an error for invalid configuration
func ErrInvalidConfig(msg string) error {
	return SimError{Message: fmt.Sprintf("invalid config: %s", msg)}
}

// ErrInvalidJob creates an error for a rejected job descriptor
func ErrInvalidJob(msg string) error {
	return SimError{Message: fmt.Sprintf("invalid job: %s", msg)}
}

// Recoverable error conditions. Callers match these with errors.Is; the
// simulation continues after reporting them.
var (
	// ErrOutOfBounds is returned when a logical address or page number falls
	// outside a job's address space. No fault is counted and no table mutates.
	ErrOutOfBounds = errors.New("logical address out of bounds")

	// ErrUnknownJob is returned when a job id has no entry in the job table.
	ErrUnknownJob = errors.New("unknown job id")

	// ErrJobCompleted is returned for accesses to a job that already finished.
	// A completed job's frames are released by its completion event; loading
	// pages for it afterwards would leave residency nothing ever reclaims.
	ErrJobCompleted = errors.New("job already completed")

	// ErrPoolExhausted is returned by the frame pool when an allocation is
	// requested and no free frame exists. Callers that can evict must consult
	// the replacement engine before retrying.
	ErrPoolExhausted = errors.New("frame pool exhausted")

	// ErrNoVictim is returned by a replacement policy when eviction is
	// requested but no frame is occupied.
	ErrNoVictim = errors.New("no victim available")

	// ErrNotResident is returned by frame pool lookups for pages that are not
	// currently loaded in any frame.
	ErrNotResident = errors.New("page not resident")
)

// invariantViolation aborts the run. Bookkeeping corruption is a programming
// defect; continuing would propagate bad mappings through every table.
func invariantViolation(format string, args ...interface{}) {
	panic(fmt.Sprintf("invariant violation: "+format, args...))
}
