// Package revocation tracks, per employee, a revoked-at watermark. Access
// tokens issued at or before the watermark are rejected by the auth
// middleware. Deactivation and password changes move the watermark forward.
//
// Entries carry a TTL equal to the access-token lifetime: once every token
// issued before the watermark has expired on its own, the entry is useless
// and may vanish.
package revocation

import (
	"context"
	"fmt"
	"time"

	id "kader/pkg/domain"
	"kader/pkg/platform/sentinel"
)

// List is the employee-level token revocation list.
type List interface {
	// RevokeAll invalidates every token issued to the employee at or before
	// the given time. ttl bounds how long the watermark must be retained.
	RevokeAll(ctx context.Context, employeeID id.EmployeeID, at time.Time, ttl time.Duration) error

	// IsRevoked reports whether a token with the given issue time has been
	// invalidated for the employee.
	IsRevoked(ctx context.Context, employeeID id.EmployeeID, issuedAt time.Time) (bool, error)
}

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	return nil
}
