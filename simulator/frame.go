package simulator

import "fmt"

// Frame is one fixed-size unit of physical memory. Frames are created once at
// pool initialization and persist for the run; only ownership mutates.
type Frame struct {
	ID         int
	Capacity   int   // Bytes, equal to the run's page size
	JobID      int   // -1 when free
	Page       int   // -1 when free
	LastAccess int64 // Logical clock of the most recent access
	LoadSeq    int64 // Logical clock when the current page was loaded
}

// Free reports whether the frame holds no page.
func (f *Frame) Free() bool {
	return f.JobID < 0
}

func (f *Frame) String() string {
	if f.Free() {
		return fmt.Sprintf("Frame(%d, free)", f.ID)
	}
	return fmt.Sprintf("Frame(%d, job=%d page=%d, loaded=%d, accessed=%d)",
		f.ID, f.JobID, f.Page, f.LoadSeq, f.LastAccess)
}

// FramePool owns the fixed set of physical frames. The pool tracks occupancy
// only; job-side page tables are kept consistent by the simulator, which
// performs bind/unbind and table updates as one indivisible step relative to
// the simulated timeline.
type FramePool struct {
	frames    []*Frame
	freeCount int
}

// NewFramePool creates numFrames empty frames of frameSize bytes each.
func NewFramePool(numFrames, frameSize int) *FramePool {
	frames := make([]*Frame, numFrames)
	for i := range frames {
		frames[i] = &Frame{ID: i, Capacity: frameSize, JobID: -1, Page: -1}
	}
	return &FramePool{frames: frames, freeCount: numFrames}
}

// Frames returns the pool's frames in id order. The slice is shared; callers
// must not mutate it.
func (p *FramePool) Frames() []*Frame {
	return p.frames
}

// Frame returns the frame with the given id.
func (p *FramePool) Frame(id int) *Frame {
	if id < 0 || id >= len(p.frames) {
		invariantViolation("frame id %d outside pool of %d frames", id, len(p.frames))
	}
	return p.frames[id]
}

// TotalFrames returns the fixed pool size.
func (p *FramePool) TotalFrames() int {
	return len(p.frames)
}

// FreeCount returns the number of unoccupied frames.
func (p *FramePool) FreeCount() int {
	return p.freeCount
}

// OccupiedCount returns the number of frames holding a page.
func (p *FramePool) OccupiedCount() int {
	return len(p.frames) - p.freeCount
}

// FindFree returns the lowest-numbered free frame, or ErrPoolExhausted when
// every frame is occupied. Callers needing eviction consult the replacement
// engine before retrying.
func (p *FramePool) FindFree() (int, error) {
	if p.freeCount == 0 {
		return 0, ErrPoolExhausted
	}
	for _, f := range p.frames {
		if f.Free() {
			return f.ID, nil
		}
	}
	invariantViolation("free count %d but no free frame found", p.freeCount)
	return 0, nil // unreachable
}

// FreeFrames returns the ids of all free frames in id order.
func (p *FramePool) FreeFrames() []int {
	ids := make([]int, 0, p.freeCount)
	for _, f := range p.frames {
		if f.Free() {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// Bind assigns (jobID, page) to a free frame at logical time now. Binding an
// occupied frame means the caller skipped eviction, which would leave two
// owners for one frame.
func (p *FramePool) Bind(frameID, jobID, page int, now int64) {
	f := p.Frame(frameID)
	if !f.Free() {
		invariantViolation("frame %d bound to job %d page %d while owned by job %d page %d",
			frameID, jobID, page, f.JobID, f.Page)
	}
	f.JobID = jobID
	f.Page = page
	f.LoadSeq = now
	f.LastAccess = now
	p.freeCount--
}

// Unbind releases a frame's ownership. The access and load stamps persist
// until the frame is reused, matching the memory map table's display of the
// last recorded activity.
func (p *FramePool) Unbind(frameID int) {
	f := p.Frame(frameID)
	if f.Free() {
		invariantViolation("frame %d unbound while already free", frameID)
	}
	f.JobID = -1
	f.Page = -1
	p.freeCount++
}

// Lookup returns the frame holding (jobID, page), or ErrNotResident.
func (p *FramePool) Lookup(jobID, page int) (int, error) {
	for _, f := range p.frames {
		if !f.Free() && f.JobID == jobID && f.Page == page {
			return f.ID, nil
		}
	}
	return 0, ErrNotResident
}

// OwnedBy returns the ids of all frames owned by jobID, in frame id order.
func (p *FramePool) OwnedBy(jobID int) []int {
	var ids []int
	for _, f := range p.frames {
		if !f.Free() && f.JobID == jobID {
			ids = append(ids, f.ID)
		}
	}
	return ids
}
