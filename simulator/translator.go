package simulator

import "fmt"

// Resolution is the outcome of a successful address translation.
type Resolution struct {
	PhysicalAddress int  `json:"physicalAddress"`
	FrameID         int  `json:"frameID"`
	Page            int  `json:"page"`
	Offset          int  `json:"offset"`
	Fault           bool `json:"fault"` // Resolution demanded a page load
}

func (r Resolution) String() string {
	return fmt.Sprintf("physical=%d (frame=%d, page=%d, offset=%d)",
		r.PhysicalAddress, r.FrameID, r.Page, r.Offset)
}

// ResolveAddress translates a job's logical address to a physical address.
//
// Addresses outside [0, job.size) fail with ErrOutOfBounds before any table
// is touched. The page and offset come from dividing by the run's page size;
// a non-resident page is a fault and is loaded on demand through
// HandleAccess before the physical address is formed. An offset at or past
// the frame capacity is unreachable under correct bookkeeping and aborts the
// run as an invariant violation.
func (s *Simulator) ResolveAddress(jobID, logicalAddress int) (Resolution, error) {
	job, ok := s.jobs[jobID]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %d", ErrUnknownJob, jobID)
	}
	if logicalAddress < 0 || logicalAddress >= job.SizeBytes {
		return Resolution{}, fmt.Errorf("%w: job %d valid addresses [0, %d), got %d",
			ErrOutOfBounds, jobID, job.SizeBytes, logicalAddress)
	}

	page := logicalAddress / job.PageSizeBytes
	offset := logicalAddress % job.PageSizeBytes
	wasFault := !job.IsResident(page)

	access, err := s.HandleAccess(jobID, page)
	if err != nil {
		return Resolution{}, err
	}

	frame := s.pool.Frame(access.FrameID)
	if offset >= frame.Capacity {
		invariantViolation("offset %d exceeds frame %d capacity %d", offset, frame.ID, frame.Capacity)
	}

	return Resolution{
		PhysicalAddress: access.FrameID*job.PageSizeBytes + offset,
		FrameID:         access.FrameID,
		Page:            page,
		Offset:          offset,
		Fault:           wasFault,
	}, nil
}
