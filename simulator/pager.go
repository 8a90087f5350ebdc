package simulator

import "fmt"

// AccessOutcome distinguishes the two results of a handled access.
type AccessOutcome int

const (
	AccessHit  AccessOutcome = iota // Page was resident
	AccessMiss                      // Page fault, page loaded on demand
)

// String returns the string representation of AccessOutcome
func (o AccessOutcome) String() string {
	switch o {
	case AccessHit:
		return "hit"
	case AccessMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// AccessResult reports how an access was resolved.
type AccessResult struct {
	Outcome AccessOutcome `json:"outcome"`
	FrameID int           `json:"frameID"`
	Evicted bool          `json:"evicted"` // A resident page was displaced to serve the load
}

// HandleAccess resolves a page access for a job under demand paging.
//
// A resident page is a hit: the replacement engine sees the access and the
// fault counter is untouched. A non-resident page is a miss: the fault
// counter increments, the logical clock advances, and the page loads into a
// free frame, evicting the policy's victim first when the pool is full. The
// evict-then-load sequence completes before HandleAccess returns, so no
// partially updated mapping is ever observable.
//
// Accessing a page outside the job's address space fails with ErrOutOfBounds
// and counts no fault. Accesses to a completed job fail with ErrJobCompleted:
// its frames were released at completion and nothing would ever release pages
// loaded after that. Waiting jobs may be accessed; pages they demand-load stay
// in place when admission later fires.
func (s *Simulator) HandleAccess(jobID, page int) (AccessResult, error) {
	job, ok := s.jobs[jobID]
	if !ok {
		return AccessResult{}, fmt.Errorf("%w: %d", ErrUnknownJob, jobID)
	}
	if job.State == JobCompleted {
		return AccessResult{}, fmt.Errorf("%w: %d", ErrJobCompleted, jobID)
	}
	if !job.HasPage(page) {
		return AccessResult{}, fmt.Errorf("%w: job %d has pages [0, %d), got page %d",
			ErrOutOfBounds, jobID, job.NumPages, page)
	}

	if frameID, resident := job.PageTable[page]; resident {
		s.clock++
		s.pool.Frame(frameID).LastAccess = s.clock
		s.replacer.OnAccess(frameID, s.clock)
		s.metrics.RecordHit()
		s.syncMetrics()
		return AccessResult{Outcome: AccessHit, FrameID: frameID}, nil
	}

	// Page fault
	job.Faults++
	evicted := false
	frameID, err := s.pool.FindFree()
	if err != nil {
		victim, verr := s.replacer.SelectVictim()
		if verr != nil {
			return AccessResult{}, verr
		}
		s.evict(victim)
		frameID = victim
		evicted = true
	}
	s.loadPage(job, page, frameID)
	s.metrics.RecordFault(evicted)
	s.syncMetrics()
	s.logEvent("[t=%d] FAULT: job %d page %d loaded into frame %d (faults=%d)",
		s.virtualTime, jobID, page, frameID, job.Faults)

	return AccessResult{Outcome: AccessMiss, FrameID: frameID, Evicted: evicted}, nil
}
