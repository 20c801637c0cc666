package audit

import (
	"context"
	"log/slog"

	id "kader/pkg/domain"
)

// Store is an append-only sink for audit events. It mirrors the interface in
// kader/internal/audit/store, which cannot be imported here without creating
// an import cycle.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]Event, error)
}

// Worker consumes audit events from the inbox channel and persists them.
// Persistence failures are logged and skipped so a flaky sink cannot stall
// the trail.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context is cancelled, then flushes whatever
// is still buffered before returning.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			w.persist(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case event := <-w.inbox:
			w.persist(context.Background(), event)
		default:
			return
		}
	}
}

func (w *Worker) persist(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.Error("persisting audit event",
			"action", event.Action,
			"employee_id", event.EmployeeID.String(),
			"error", err,
		)
	}
}
