package simulator

import "fmt"

// JobState represents a job's position in the admission lifecycle.
type JobState int

const (
	JobWaiting   JobState = iota // Created or queued, no frames held
	JobActive                    // All required frames acquired
	JobCompleted                 // Finished, frames released
)

// String returns the string representation of JobState
func (s JobState) String() string {
	switch s {
	case JobWaiting:
		return "waiting"
	case JobActive:
		return "active"
	case JobCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for JobState
func (s JobState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// JobSpec is an ingested job descriptor. The page size is not part of the
// descriptor; it is a run-wide constant carried by SimConfig.
type JobSpec struct {
	JobID       int   `json:"jobID"`
	SizeBytes   int   `json:"sizeBytes"`
	ArrivalTime int64 `json:"arrivalTime"`
	Duration    int64 `json:"duration"`
}

// Job tracks one job's address space and its residency in physical memory.
//
// Invariants maintained by the simulator:
//   - NumPages == ceil(SizeBytes / PageSizeBytes)
//   - 0 <= Fragmentation < PageSizeBytes, zero exactly when the size divides evenly
//   - the key set of PageTable equals Resident at all times
type Job struct {
	ID            int
	SizeBytes     int
	PageSizeBytes int
	NumPages      int
	Fragmentation int // Unused bytes in the last allocated page

	PageTable map[int]int      // page -> frame, resident pages only
	Resident  map[int]struct{} // resident page numbers

	Faults      int
	ArrivalTime int64
	Duration    int64
	StartTime   int64 // -1 until admitted
	State       JobState
}

// newJob divides a descriptor's address space into pages and computes the
// internal fragmentation of the final page. Nothing is resident yet.
func newJob(spec JobSpec, pageSize int) *Job {
	numPages := spec.SizeBytes / pageSize
	fragmentation := 0
	if remainder := spec.SizeBytes % pageSize; remainder > 0 {
		numPages++
		fragmentation = pageSize - remainder
	}

	return &Job{
		ID:            spec.JobID,
		SizeBytes:     spec.SizeBytes,
		PageSizeBytes: pageSize,
		NumPages:      numPages,
		Fragmentation: fragmentation,
		PageTable:     make(map[int]int),
		Resident:      make(map[int]struct{}),
		ArrivalTime:   spec.ArrivalTime,
		Duration:      spec.Duration,
		StartTime:     -1,
		State:         JobWaiting,
	}
}

// HasPage reports whether page is part of the job's address space.
func (j *Job) HasPage(page int) bool {
	return page >= 0 && page < j.NumPages
}

// IsResident reports whether page is currently loaded in a frame.
func (j *Job) IsResident(page int) bool {
	_, ok := j.Resident[page]
	return ok
}

// ResidentCount returns the number of pages currently loaded.
func (j *Job) ResidentCount() int {
	return len(j.Resident)
}

// mapPage records the residency of page in frame. The page table and resident
// set move together; diverging key sets are a bookkeeping defect.
func (j *Job) mapPage(page, frameID int) {
	if _, dup := j.PageTable[page]; dup {
		invariantViolation("job %d page %d mapped twice", j.ID, page)
	}
	j.PageTable[page] = frameID
	j.Resident[page] = struct{}{}
}

// unmapPage removes the residency of page.
func (j *Job) unmapPage(page int) {
	if _, ok := j.PageTable[page]; !ok {
		invariantViolation("job %d page %d unmapped but not in page table", j.ID, page)
	}
	delete(j.PageTable, page)
	delete(j.Resident, page)
}

func (j *Job) String() string {
	return fmt.Sprintf("Job(id=%d, size=%dB, pages=%d, resident=%d, faults=%d, %s)",
		j.ID, j.SizeBytes, j.NumPages, len(j.Resident), j.Faults, j.State)
}
