// Package store persists employee records.
//
// Two implementations exist: an in-memory store for tests and local
// development, and a Postgres store for production. Both guarantee:
//   - phone_number1 and identity_number are unique across records, and
//     email is unique when set
//   - deactivation is soft: records stay queryable with IsActive=false
//   - returned records never alias store-internal state
//
// Infrastructure failures surface as sentinel errors; the service layer maps
// them to domain errors.
package store

import (
	"context"

	"kader/internal/employee/models"
	id "kader/pkg/domain"
)

// EmployeeStore is the persistence contract for employee records.
type EmployeeStore interface {
	// Create inserts a new record. Returns sentinel.ErrConflict when the
	// primary phone, identity number, or a non-empty email is already taken.
	Create(ctx context.Context, employee *models.Employee) error

	// Update replaces an existing record's profile fields. The password hash
	// is never touched here; use SetPasswordHash. Returns sentinel.ErrNotFound
	// when the ID is unknown and sentinel.ErrConflict on a uniqueness
	// collision with another record.
	Update(ctx context.Context, employee *models.Employee) error

	// FindByID fetches a record regardless of active state.
	FindByID(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error)

	// FindByPhone fetches a record by its primary phone number, the login
	// key.
	FindByPhone(ctx context.Context, phoneNumber string) (*models.Employee, error)

	// FindByIdentityNumber fetches a record by its government document number.
	FindByIdentityNumber(ctx context.Context, identityNumber string) (*models.Employee, error)

	// List returns all records ordered by creation time, newest first.
	List(ctx context.Context) ([]*models.Employee, error)

	// SetActive flips the soft-delete flag.
	SetActive(ctx context.Context, employeeID id.EmployeeID, active bool) error

	// SetPasswordHash replaces the stored credential.
	SetPasswordHash(ctx context.Context, employeeID id.EmployeeID, passwordHash string) error
}
