package simulator

// LRUReplacer evicts the occupied frame with the smallest last-access
// timestamp, breaking ties by lowest frame id so victim selection is
// deterministic under equal stamps.
type LRUReplacer struct {
	lastAccess map[int]int64 // frame id -> logical time of last access
}

// NewLRUReplacer creates an empty LRU replacement engine.
func NewLRUReplacer() *LRUReplacer {
	return &LRUReplacer{lastAccess: make(map[int]int64)}
}

// SelectVictim returns the least recently used frame and stops tracking it.
func (r *LRUReplacer) SelectVictim() (int, error) {
	if len(r.lastAccess) == 0 {
		return 0, ErrNoVictim
	}
	victim := -1
	var oldest int64
	for frameID, t := range r.lastAccess {
		if victim < 0 || t < oldest || (t == oldest && frameID < victim) {
			victim = frameID
			oldest = t
		}
	}
	delete(r.lastAccess, victim)
	return victim, nil
}

// OnLoad stamps the frame's access time at load.
func (r *LRUReplacer) OnLoad(frameID int, t int64) {
	if _, dup := r.lastAccess[frameID]; dup {
		invariantViolation("frame %d loaded twice without eviction", frameID)
	}
	r.lastAccess[frameID] = t
}

// OnAccess refreshes the frame's access time.
func (r *LRUReplacer) OnAccess(frameID int, t int64) {
	if _, ok := r.lastAccess[frameID]; !ok {
		invariantViolation("frame %d accessed but not tracked by LRU", frameID)
	}
	r.lastAccess[frameID] = t
}

// Remove withdraws a frame released outside the eviction path.
func (r *LRUReplacer) Remove(frameID int) {
	delete(r.lastAccess, frameID)
}

// Size returns the number of tracked frames.
func (r *LRUReplacer) Size() int {
	return len(r.lastAccess)
}
