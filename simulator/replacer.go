package simulator

// Replacer is the uniform victim-selection contract shared by every
// replacement policy. The fault handler is policy-agnostic: it never branches
// on which policy is active, only on this interface.
//
// The simulator calls OnLoad when a frame transitions free to occupied,
// OnAccess on every hit and on every fresh load, and Remove when a frame
// leaves the occupied set without an eviction (bulk release at job
// completion).
type Replacer interface {
	// SelectVictim returns the occupied frame the policy evicts next.
	// Fails with ErrNoVictim when no frame is occupied.
	SelectVictim() (int, error)

	// OnLoad records that frameID became occupied at logical time t.
	OnLoad(frameID int, t int64)

	// OnAccess records a hit or fresh load of frameID at logical time t.
	OnAccess(frameID int, t int64)

	// Remove withdraws frameID from the policy's bookkeeping.
	Remove(frameID int)

	// Size returns the number of frames the policy currently tracks.
	Size() int
}

// NewReplacer creates the replacement engine for the configured policy.
func NewReplacer(policy ReplacementPolicy) Replacer {
	switch policy {
	case PolicyLRU:
		return NewLRUReplacer()
	case PolicyFIFO:
		return NewFIFOReplacer()
	default:
		// Default to FIFO, the classic baseline policy
		return NewFIFOReplacer()
	}
}
