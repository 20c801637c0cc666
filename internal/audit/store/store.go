// Package store persists the append-only audit trail.
package store

import (
	"context"

	"kader/internal/audit"
	id "kader/pkg/domain"
)

// Store is an append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event audit.Event) error

	// ListByEmployee returns events about the given employee, newest first.
	ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]audit.Event, error)
}
