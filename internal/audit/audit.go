package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event captures one user action on the admin panel. Events are append-only
// and strictly off the critical path: recording them must never fail or roll
// back the content save that produced them.
type Event struct {
	Action     string
	EntityType string
	EntityID   string
	ActorID    uuid.UUID
	OccurredAt time.Time
	Metadata   map[string]any
}

// Sink accepts audit events for persistence.
type Sink interface {
	Record(ctx context.Context, event Event) error
}

// Recorder extends Sink with read access for export tooling.
type Recorder interface {
	Sink
	List(ctx context.Context) ([]Event, error)
}

// Cleaner extends Recorder with the ability to drop recorded events.
type Cleaner interface {
	Recorder
	Clear(ctx context.Context) error
}

// MultiSink fans one event out to every sink, returning the first error
// encountered after all sinks were attempted.
func MultiSink(sinks ...Sink) Sink {
	actual := make([]Sink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			actual = append(actual, sink)
		}
	}
	return multiSink(actual)
}

type multiSink []Sink

func (m multiSink) Record(ctx context.Context, event Event) error {
	var firstErr error
	for _, sink := range m {
		if err := sink.Record(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// InMemoryRecorder accumulates audit events in-memory for tests and
// scaffolding.
type InMemoryRecorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

// NewInMemoryRecorder constructs an empty recorder.
func NewInMemoryRecorder() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Record stores the supplied event.
func (r *InMemoryRecorder) Record(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	copied := event
	if copied.Metadata != nil {
		metadata := make(map[string]any, len(copied.Metadata))
		for k, v := range copied.Metadata {
			metadata[k] = v
		}
		copied.Metadata = metadata
	}
	r.events = append(r.events, copied)
	return nil
}

// Events returns a snapshot of recorded audit entries.
func (r *InMemoryRecorder) Events() []Event {
	events, _ := r.List(context.Background())
	return events
}

// Fail configures the recorder to return the supplied error on subsequent
// Record calls.
func (r *InMemoryRecorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// List returns the audit events recorded so far.
func (r *InMemoryRecorder) List(context.Context) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out, nil
}

// Clear removes all recorded events.
func (r *InMemoryRecorder) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	return nil
}
