// Package audit captures an append-only trail of sensitive actions: logins,
// record changes, deactivations, credential resets. Events flow through a
// buffered channel to a background worker so request handling never blocks on
// the audit sink.
package audit

import (
	"context"
	"log/slog"

	"kader/pkg/requestcontext"
)

// Publisher enqueues audit events for the background worker. Emit never
// blocks: when the buffer is full the event is dropped and logged, trading
// completeness for request latency.
type Publisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewPublisher(inbox chan<- Event, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: inbox, logger: logger}
}

// Emit stamps the event with request metadata from the context and enqueues
// it.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("audit buffer full, dropping event",
			"action", event.Action,
			"employee_id", event.EmployeeID.String(),
		)
	}
}
