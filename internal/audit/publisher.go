package audit

import (
	"context"
	"log/slog"
	"sync"
)

// Sink persists audit events. Implementations must be safe for concurrent use.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and uses the
// sink for persistence so tests can swap sinks easily.
type Publisher struct {
	sink   Sink
	logger *slog.Logger
}

// NewPublisher constructs a publisher over the given sink.
func NewPublisher(sink Sink, logger *slog.Logger) *Publisher {
	return &Publisher{sink: sink, logger: logger}
}

// Emit records an event. Audit failures are logged, never surfaced to the
// operator action that triggered them.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil || p.sink == nil {
		return
	}
	if err := p.sink.Append(ctx, event); err != nil && p.logger != nil {
		p.logger.ErrorContext(ctx, "failed to persist audit event",
			"error", err,
			"action", event.Action,
			"user_id", event.UserID,
		)
	}
}

// InMemorySink collects events for tests.
type InMemorySink struct {
	mu     sync.Mutex
	events []Event
}

// NewInMemorySink constructs an empty in-memory sink.
func NewInMemorySink() *InMemorySink {
	return &InMemorySink{}
}

func (s *InMemorySink) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of the collected events.
func (s *InMemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
