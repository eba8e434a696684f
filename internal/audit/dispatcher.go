package audit

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-panel/internal/logging"
	"github.com/goliatone/go-panel/pkg/interfaces"
)

const defaultDispatchTimeout = 10 * time.Second

// DispatcherOption configures the dispatcher at construction time.
type DispatcherOption func(*Dispatcher)

// WithDispatchTimeout bounds how long a single background record may take.
func WithDispatchTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithLogger injects the logger used to report dropped events.
func WithLogger(logger interfaces.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher delivers audit events to a sink off the caller's critical path.
// Dispatch returns immediately; delivery failures are logged and dropped,
// never surfaced to the save flow that produced the event.
type Dispatcher struct {
	sink    Sink
	logger  interfaces.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher constructs a dispatcher around the provided sink.
func NewDispatcher(sink Sink, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sink:    sink,
		logger:  logging.NoOp(),
		timeout: defaultDispatchTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch records the event in the background. The event is detached from
// the caller's context so navigation away from the save flow cannot cancel
// delivery.
func (d *Dispatcher) Dispatch(event Event) {
	if d == nil || d.sink == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sink.Record(ctx, event); err != nil {
			logging.WithFields(d.logger, map[string]any{
				"action":      event.Action,
				"entity_type": event.EntityType,
				"entity_id":   event.EntityID,
			}).Warn("audit.dispatch.failed", "error", err)
		}
	}()
}

// Flush blocks until every dispatched event has been attempted. Intended for
// shutdown paths and tests.
func (d *Dispatcher) Flush() {
	d.wg.Wait()
}
