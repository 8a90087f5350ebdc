package simulator

import "container/list"

// FIFOReplacer evicts the occupied frame with the oldest load. Classic FIFO
// ignores recency entirely: a hit does not refresh a frame's position in the
// insertion order, so a heavily used frame is still evicted once it reaches
// the head of the queue. That semantics is deliberate and covered by tests.
type FIFOReplacer struct {
	order    *list.List            // frame ids, oldest load at the front
	elements map[int]*list.Element // frame id -> list element
}

// NewFIFOReplacer creates an empty FIFO replacement engine.
func NewFIFOReplacer() *FIFOReplacer {
	return &FIFOReplacer{
		order:    list.New(),
		elements: make(map[int]*list.Element),
	}
}

// SelectVictim pops and returns the earliest-loaded frame.
func (r *FIFOReplacer) SelectVictim() (int, error) {
	front := r.order.Front()
	if front == nil {
		return 0, ErrNoVictim
	}
	frameID := r.order.Remove(front).(int)
	delete(r.elements, frameID)
	return frameID, nil
}

// OnLoad appends the frame to the insertion order.
func (r *FIFOReplacer) OnLoad(frameID int, t int64) {
	if _, dup := r.elements[frameID]; dup {
		invariantViolation("frame %d loaded twice without eviction", frameID)
	}
	r.elements[frameID] = r.order.PushBack(frameID)
}

// OnAccess is a no-op: FIFO does not track recency.
func (r *FIFOReplacer) OnAccess(frameID int, t int64) {}

// Remove withdraws a frame released outside the eviction path.
func (r *FIFOReplacer) Remove(frameID int) {
	if elem, ok := r.elements[frameID]; ok {
		r.order.Remove(elem)
		delete(r.elements, frameID)
	}
}

// Size returns the number of tracked frames.
func (r *FIFOReplacer) Size() int {
	return len(r.elements)
}
