package simulator

// Metrics tracks paging and scheduling statistics for the run.
type Metrics struct {
	Timestamp int64 `json:"timestamp"` // Virtual time of the last update

	// Access counters
	Accesses   int `json:"accesses"`   // Total handled accesses (hits + faults)
	Hits       int `json:"hits"`       // Accesses that found the page resident
	PageFaults int `json:"pageFaults"` // Accesses that required a load
	Evictions  int `json:"evictions"`  // Faults that displaced a resident page

	// Scheduler counters
	Admissions  int `json:"admissions"`  // Jobs that acquired all required frames
	Completions int `json:"completions"` // Jobs that finished and released frames
	QueuedJobs  int `json:"queuedJobs"`  // Admission attempts deferred to the wait queue

	// Gauges, recomputed after every state transition
	WaitQueueLength    int     `json:"waitQueueLength"`
	OccupiedFrames     int     `json:"occupiedFrames"`
	FreeFrames         int     `json:"freeFrames"`
	UtilizationPercent float64 `json:"utilizationPercent"` // occupied / total * 100
	FaultRate          float64 `json:"faultRate"`          // faults / accesses
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordHit counts an access that found its page resident.
func (m *Metrics) RecordHit() {
	m.Accesses++
	m.Hits++
}

// RecordFault counts an access that had to load its page. evicted indicates
// whether the load displaced another page.
func (m *Metrics) RecordFault(evicted bool) {
	m.Accesses++
	m.PageFaults++
	if evicted {
		m.Evictions++
	}
}

// RecordAdmission counts a successful bulk frame acquisition.
func (m *Metrics) RecordAdmission() {
	m.Admissions++
}

// RecordQueued counts an admission attempt deferred to the wait queue.
func (m *Metrics) RecordQueued() {
	m.QueuedJobs++
}

// RecordCompletion counts a finished job.
func (m *Metrics) RecordCompletion() {
	m.Completions++
}

// Update refreshes the gauges from current pool and queue state.
func (m *Metrics) Update(now int64, pool *FramePool, waitQueueLen int) {
	m.Timestamp = now
	m.WaitQueueLength = waitQueueLen
	m.OccupiedFrames = pool.OccupiedCount()
	m.FreeFrames = pool.FreeCount()
	if total := pool.TotalFrames(); total > 0 {
		m.UtilizationPercent = float64(m.OccupiedFrames) / float64(total) * 100.0
	}
	if m.Accesses > 0 {
		m.FaultRate = float64(m.PageFaults) / float64(m.Accesses)
	}
}

// Clone returns a copy safe to hand to callers outside the timeline.
func (m *Metrics) Clone() *Metrics {
	clone := *m
	return &clone
}
