package simulator

// The three inspection tables mirror the classic presentation of a paging
// simulation: the job table, the page map table, and the memory map table.
// Rows are value snapshots; callers may hold them across timeline steps.

// JobRow is one job table entry.
type JobRow struct {
	JobID         int      `json:"jobID"`
	SizeBytes     int      `json:"sizeBytes"`
	PageCount     int      `json:"pageCount"`
	ResidentCount int      `json:"residentCount"`
	PageFaults    int      `json:"pageFaults"`
	Fragmentation int      `json:"fragmentation"`
	State         JobState `json:"state"`
	ArrivalTime   int64    `json:"arrivalTime"`
	Duration      int64    `json:"duration"`
	StartTime     int64    `json:"startTime"` // -1 until admitted
}

// PageMapRow is one page map table entry. FrameID is meaningful only when
// Resident is true.
type PageMapRow struct {
	JobID    int  `json:"jobID"`
	Page     int  `json:"page"`
	FrameID  int  `json:"frameID"`
	Resident bool `json:"resident"`
}

// MemoryMapRow is one memory map table entry. JobID and Page are meaningful
// only when Occupied is true; LastAccessTime keeps the stamp of the frame's
// most recent activity even after release.
type MemoryMapRow struct {
	FrameID        int   `json:"frameID"`
	Occupied       bool  `json:"occupied"`
	JobID          int   `json:"jobID"`
	Page           int   `json:"page"`
	LastAccessTime int64 `json:"lastAccessTime"`
}

// MemoryStats summarizes pool occupancy.
type MemoryStats struct {
	TotalFrames        int     `json:"totalFrames"`
	UsedFrames         int     `json:"usedFrames"`
	FreeFrames         int     `json:"freeFrames"`
	UtilizationPercent float64 `json:"utilizationPercent"`
}

// JobTable returns one row per ingested job, in ingestion order.
func (s *Simulator) JobTable() []JobRow {
	rows := make([]JobRow, 0, len(s.jobOrder))
	for _, jobID := range s.jobOrder {
		job := s.mustJob(jobID)
		rows = append(rows, JobRow{
			JobID:         job.ID,
			SizeBytes:     job.SizeBytes,
			PageCount:     job.NumPages,
			ResidentCount: job.ResidentCount(),
			PageFaults:    job.Faults,
			Fragmentation: job.Fragmentation,
			State:         job.State,
			ArrivalTime:   job.ArrivalTime,
			Duration:      job.Duration,
			StartTime:     job.StartTime,
		})
	}
	return rows
}

// PageMapTable returns one row per page of every ingested job, jobs in
// ingestion order and pages ascending.
func (s *Simulator) PageMapTable() []PageMapRow {
	var rows []PageMapRow
	for _, jobID := range s.jobOrder {
		job := s.mustJob(jobID)
		for page := 0; page < job.NumPages; page++ {
			row := PageMapRow{JobID: job.ID, Page: page, FrameID: -1}
			if frameID, ok := job.PageTable[page]; ok {
				row.FrameID = frameID
				row.Resident = true
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// MemoryMapTable returns one row per physical frame, in frame id order.
func (s *Simulator) MemoryMapTable() []MemoryMapRow {
	frames := s.pool.Frames()
	rows := make([]MemoryMapRow, 0, len(frames))
	for _, f := range frames {
		row := MemoryMapRow{
			FrameID:        f.ID,
			Occupied:       !f.Free(),
			JobID:          f.JobID,
			Page:           f.Page,
			LastAccessTime: f.LastAccess,
		}
		rows = append(rows, row)
	}
	return rows
}

// MemoryStats returns current pool occupancy figures.
func (s *Simulator) MemoryStats() MemoryStats {
	total := s.pool.TotalFrames()
	used := s.pool.OccupiedCount()
	stats := MemoryStats{
		TotalFrames: total,
		UsedFrames:  used,
		FreeFrames:  total - used,
	}
	if total > 0 {
		stats.UtilizationPercent = float64(used) / float64(total) * 100.0
	}
	return stats
}

// State bundles the inspection tables for UI consumers.
func (s *Simulator) State() map[string]interface{} {
	events := s.queue.Events()
	pending := make([]string, len(events))
	for i, e := range events {
		pending[i] = e.String()
	}

	return map[string]interface{}{
		"virtualTime":   s.virtualTime,
		"clock":         s.clock,
		"jobTable":      s.JobTable(),
		"pageMap":       s.PageMapTable(),
		"memoryMap":     s.MemoryMapTable(),
		"memoryStats":   s.MemoryStats(),
		"waitQueue":     s.WaitQueue(),
		"pendingEvents": pending,
	}
}
