package simulator

import (
	"fmt"
	"math/rand"
	"time"
)

// Simulator is a PURE discrete event simulator with NO concurrency primitives.
// All state is accessed single-threaded via Step(), Run(), and the access
// entry points. The caller (cmd/server) manages pacing, pause/resume, and
// threading.
//
// The simulator owns all shared mutable state: the frame pool, the job table,
// the replacement engine, the logical clock, and the event timeline. Every
// state transition (allocation, eviction, release, address resolution)
// completes before control returns, so no caller can observe a half-updated
// pool.
//
// Time advances by jumping to the next event's timestamp. Events due at the
// same timestamp are processed deterministically: completions before
// arrivals, then by ascending job id.
type Simulator struct {
	config    SimConfig
	pool      *FramePool
	jobs      map[int]*Job
	jobOrder  []int // ingestion order, for stable table rendering
	specs     []JobSpec
	replacer  Replacer
	queue     *EventQueue
	waitQueue []int // job ids awaiting admission, FIFO
	metrics   *Metrics

	virtualTime int64 // event timeline
	clock       int64 // logical access clock, advances on every load and hit
	rng         *rand.Rand

	// Event logging callback (optional, for UI/debugging)
	LogEvent func(msg string)
}

// NewSimulator creates a new simulator. Jobs are ingested separately via
// LoadJobs.
func NewSimulator(config SimConfig) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if config.RandomSeed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	} else {
		rng = rand.New(rand.NewSource(config.RandomSeed))
	}

	return &Simulator{
		config:   config,
		pool:     NewFramePool(config.TotalFrames, config.PageSizeBytes),
		jobs:     make(map[int]*Job),
		replacer: NewReplacer(config.Policy),
		queue:    NewEventQueue(),
		metrics:  NewMetrics(),
		rng:      rng,
	}, nil
}

// LoadJobs ingests job descriptors: pages are pre-computed, nothing is
// resident, and an arrival event is scheduled per job. Descriptors are
// validated as a batch; on any rejection no job is ingested.
func (s *Simulator) LoadJobs(specs []JobSpec) error {
	seen := make(map[int]struct{}, len(specs))
	for _, spec := range specs {
		if _, dup := s.jobs[spec.JobID]; dup {
			return ErrInvalidJob(fmt.Sprintf("duplicate job id %d", spec.JobID))
		}
		if _, dup := seen[spec.JobID]; dup {
			return ErrInvalidJob(fmt.Sprintf("duplicate job id %d", spec.JobID))
		}
		seen[spec.JobID] = struct{}{}
		if spec.SizeBytes <= 0 {
			return ErrInvalidJob(fmt.Sprintf("job %d: size must be > 0, got %d", spec.JobID, spec.SizeBytes))
		}
		if spec.ArrivalTime < 0 {
			return ErrInvalidJob(fmt.Sprintf("job %d: arrival time must be >= 0, got %d", spec.JobID, spec.ArrivalTime))
		}
		if spec.Duration <= 0 {
			return ErrInvalidJob(fmt.Sprintf("job %d: duration must be > 0, got %d", spec.JobID, spec.Duration))
		}
		pages := (spec.SizeBytes + s.config.PageSizeBytes - 1) / s.config.PageSizeBytes
		if pages > s.config.TotalFrames {
			return ErrInvalidJob(fmt.Sprintf("job %d: needs %d frames, pool has %d", spec.JobID, pages, s.config.TotalFrames))
		}
	}

	for _, spec := range specs {
		job := newJob(spec, s.config.PageSizeBytes)
		s.jobs[job.ID] = job
		s.jobOrder = append(s.jobOrder, job.ID)
		s.specs = append(s.specs, spec)
		s.queue.Push(NewArrivalEvent(job.ArrivalTime, job.ID))
	}
	return nil
}

// Step processes every event due at the next pending timestamp and advances
// virtual time to it. Returns false when no events remain or the next event
// lies beyond the configured MaxTime cap.
func (s *Simulator) Step() bool {
	next := s.queue.Peek()
	if next == nil {
		return false
	}
	if s.config.MaxTime > 0 && next.Timestamp() > s.config.MaxTime {
		s.logEvent("[t=%d] STOP: next event at t=%d exceeds maxTime=%d",
			s.virtualTime, next.Timestamp(), s.config.MaxTime)
		return false
	}

	// Virtual time never moves backwards; arrivals scheduled in the past
	// (arrival 0 after a manual access, say) are processed at the current time.
	if next.Timestamp() > s.virtualTime {
		s.virtualTime = next.Timestamp()
	}

	for !s.queue.IsEmpty() && s.queue.Peek().Timestamp() <= s.virtualTime {
		s.processEvent(s.queue.Pop())
	}
	s.syncMetrics()
	return true
}

// Run drives Step until the timeline is exhausted.
func (s *Simulator) Run() {
	for s.Step() {
	}
}

// Reset rebuilds the simulator from its configuration and re-ingests the same
// job descriptors, ready for a fresh run.
func (s *Simulator) Reset() error {
	newSim, err := NewSimulator(s.config)
	if err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	specs := s.specs
	logEvent := s.LogEvent
	*s = *newSim
	s.LogEvent = logEvent

	if len(specs) > 0 {
		if err := s.LoadJobs(specs); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
	}
	return nil
}

// UpdateConfig swaps the configuration and restarts the run: the pool,
// replacement engine, and timeline are rebuilt and the same job descriptors
// are re-ingested under the new parameters.
func (s *Simulator) UpdateConfig(config SimConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	s.config = config
	return s.Reset()
}

// processEvent processes a single event
func (s *Simulator) processEvent(event Event) {
	switch e := event.(type) {
	case *ArrivalEvent:
		s.processArrival(e)
	case *CompletionEvent:
		s.processCompletion(e)
	default:
		panic(fmt.Sprintf("unknown event type: %T", e))
	}
}

// processArrival attempts bulk admission for the arriving job; jobs that do
// not fit join the wait queue in arrival order.
func (s *Simulator) processArrival(event *ArrivalEvent) {
	job := s.mustJob(event.JobID())
	s.logEvent("[t=%d] ARRIVAL: job %d (%d pages)", s.virtualTime, job.ID, job.NumPages)

	if s.tryAdmit(job) {
		return
	}
	s.waitQueue = append(s.waitQueue, job.ID)
	s.metrics.RecordQueued()
	s.logEvent("[t=%d] QUEUED: job %d needs %d frames, %d free",
		s.virtualTime, job.ID, job.NumPages, s.pool.FreeCount())
}

// processCompletion releases every frame the job owns and gives waiting jobs
// one chance each, in FIFO order, to admit into the freed space.
func (s *Simulator) processCompletion(event *CompletionEvent) {
	job := s.mustJob(event.JobID())
	if job.State != JobActive {
		invariantViolation("completion for job %d in state %s", job.ID, job.State)
	}

	s.releaseJob(job)
	job.State = JobCompleted
	s.metrics.RecordCompletion()
	s.logEvent("[t=%d] COMPLETE: job %d released its frames (%d free)",
		s.virtualTime, job.ID, s.pool.FreeCount())

	s.drainWaitQueue()
}

// tryAdmit performs all-or-nothing bulk allocation: one frame per missing
// page, every page resident on success, nothing touched on failure. Pages
// demand-loaded before admission keep their frames. On success the job turns
// Active and its completion is scheduled.
func (s *Simulator) tryAdmit(job *Job) bool {
	needed := job.NumPages - job.ResidentCount()
	if needed > s.pool.FreeCount() {
		return false
	}

	frames := s.pool.FreeFrames()
	if s.config.Placement == PlacementRandom {
		s.rng.Shuffle(len(frames), func(i, j int) {
			frames[i], frames[j] = frames[j], frames[i]
		})
	}
	next := 0
	for page := 0; page < job.NumPages; page++ {
		if job.IsResident(page) {
			continue
		}
		s.loadPage(job, page, frames[next])
		next++
	}

	job.State = JobActive
	job.StartTime = s.virtualTime
	completionTime := s.virtualTime + job.Duration
	s.queue.Push(NewCompletionEvent(completionTime, job.ID))
	s.metrics.RecordAdmission()
	s.logEvent("[t=%d] ADMITTED: job %d holds %d frames (completes at t=%d)",
		s.virtualTime, job.ID, job.NumPages, completionTime)
	return true
}

// releaseJob clears every frame owned by the job along with the job's page
// table and resident set, as one indivisible step.
func (s *Simulator) releaseJob(job *Job) {
	owned := s.pool.OwnedBy(job.ID)
	if len(owned) != job.ResidentCount() {
		invariantViolation("job %d owns %d frames but has %d resident pages",
			job.ID, len(owned), job.ResidentCount())
	}
	for _, frameID := range owned {
		s.pool.Unbind(frameID)
		s.replacer.Remove(frameID)
	}
	job.PageTable = make(map[int]int)
	job.Resident = make(map[int]struct{})
}

// drainWaitQueue scans the wait queue once in FIFO order. Jobs that still do
// not fit are re-queued at the back in their original relative order; no job
// skips ahead of an earlier arrival.
func (s *Simulator) drainWaitQueue() {
	if len(s.waitQueue) == 0 {
		return
	}
	pending := s.waitQueue
	s.waitQueue = make([]int, 0, len(pending))
	for _, jobID := range pending {
		job := s.mustJob(jobID)
		if s.tryAdmit(job) {
			continue
		}
		s.waitQueue = append(s.waitQueue, jobID)
	}
}

// loadPage binds a free frame to (job, page) and notifies the replacement
// engine. Each load consumes one tick of the logical clock so insertion and
// access stamps are strictly ordered.
func (s *Simulator) loadPage(job *Job, page, frameID int) {
	s.clock++
	s.pool.Bind(frameID, job.ID, page, s.clock)
	job.mapPage(page, frameID)
	s.replacer.OnLoad(frameID, s.clock)
	s.replacer.OnAccess(frameID, s.clock)
}

// evict removes the victim frame's current page: the prior owner's mapping
// and resident-set entries go first, then the frame is freed. Runs to
// completion before the frame is reused, so no partial state is observable.
func (s *Simulator) evict(frameID int) {
	frame := s.pool.Frame(frameID)
	if frame.Free() {
		invariantViolation("evicting free frame %d", frameID)
	}
	owner := s.mustJob(frame.JobID)
	s.logEvent("[t=%d] EVICT: frame %d (job %d page %d)",
		s.virtualTime, frameID, frame.JobID, frame.Page)
	owner.unmapPage(frame.Page)
	s.pool.Unbind(frameID)
}

func (s *Simulator) mustJob(jobID int) *Job {
	job, ok := s.jobs[jobID]
	if !ok {
		invariantViolation("no job table entry for id %d", jobID)
	}
	return job
}

func (s *Simulator) syncMetrics() {
	s.metrics.Update(s.virtualTime, s.pool, len(s.waitQueue))
}

// logEvent sends a message to the LogEvent callback if set
func (s *Simulator) logEvent(format string, args ...interface{}) {
	if s.LogEvent != nil {
		s.LogEvent(fmt.Sprintf(format, args...))
	}
}

// Config returns a copy of the current configuration
func (s *Simulator) Config() SimConfig {
	return s.config
}

// VirtualTime returns the current virtual time
func (s *Simulator) VirtualTime() int64 {
	return s.virtualTime
}

// Clock returns the logical access clock used for LRU stamps and FIFO
// insertion sequencing.
func (s *Simulator) Clock() int64 {
	return s.clock
}

// Metrics returns a copy of current metrics
func (s *Simulator) Metrics() *Metrics {
	s.syncMetrics()
	return s.metrics.Clone()
}

// WaitQueue returns a copy of the queued job ids in FIFO order.
func (s *Simulator) WaitQueue() []int {
	return append([]int(nil), s.waitQueue...)
}

// IsQueueEmpty returns true if the event queue is empty
func (s *Simulator) IsQueueEmpty() bool {
	return s.queue.IsEmpty()
}
