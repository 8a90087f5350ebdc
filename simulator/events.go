package simulator

import "fmt"

// EventType represents the type of simulation event
type EventType int

const (
	// EventTypeCompletion sorts before EventTypeArrival so that at equal
	// timestamps a finishing job frees its frames before a newcomer tries to
	// acquire them. The event queue relies on this ordering.
	EventTypeCompletion EventType = iota
	EventTypeArrival
)

func (et EventType) String() string {
	switch et {
	case EventTypeArrival:
		return "arrival"
	case EventTypeCompletion:
		return "completion"
	default:
		return "unknown"
	}
}

// Event is the base interface for all simulation events
type Event interface {
	Timestamp() int64 // Virtual time in ticks
	Type() EventType
	JobID() int
	String() string
}

// ArrivalEvent marks the moment a job's descriptor enters the system and the
// job attempts bulk admission.
type ArrivalEvent struct {
	timestamp int64
	jobID     int
}

func NewArrivalEvent(timestamp int64, jobID int) *ArrivalEvent {
	return &ArrivalEvent{timestamp: timestamp, jobID: jobID}
}

func (e *ArrivalEvent) Timestamp() int64 { return e.timestamp }
func (e *ArrivalEvent) Type() EventType  { return EventTypeArrival }
func (e *ArrivalEvent) JobID() int       { return e.jobID }
func (e *ArrivalEvent) String() string {
	return fmt.Sprintf("Arrival(t=%d, job=%d)", e.timestamp, e.jobID)
}

// CompletionEvent marks the moment an active job finishes and releases every
// frame it owns.
type CompletionEvent struct {
	timestamp int64
	jobID     int
}

func NewCompletionEvent(timestamp int64, jobID int) *CompletionEvent {
	return &CompletionEvent{timestamp: timestamp, jobID: jobID}
}

func (e *CompletionEvent) Timestamp() int64 { return e.timestamp }
func (e *CompletionEvent) Type() EventType  { return EventTypeCompletion }
func (e *CompletionEvent) JobID() int       { return e.jobID }
func (e *CompletionEvent) String() string {
	return fmt.Sprintf("Completion(t=%d, job=%d)", e.timestamp, e.jobID)
}
