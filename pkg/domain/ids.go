// Package domain provides type-safe identifiers and value primitives so IDs
// and enums cannot be mixed up at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "kader/pkg/domain-errors"
)

// EmployeeID identifies an employee record.
type EmployeeID uuid.UUID

// NewEmployeeID returns a fresh random employee ID.
func NewEmployeeID() EmployeeID {
	return EmployeeID(uuid.New())
}

// ParseEmployeeID validates and returns an EmployeeID. Use at trust
// boundaries (handlers, API inputs).
//
// Note: the nil UUID is allowed here. Use IsNil() at the service layer for
// business validation, which lets store lookups return proper "not found"
// errors for consistency.
func ParseEmployeeID(s string) (EmployeeID, error) {
	if s == "" {
		return EmployeeID{}, dErrors.New(dErrors.CodeInvalidInput, "employee ID cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return EmployeeID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid employee ID format")
	}
	return EmployeeID(id), nil
}

// String returns the canonical UUID form, for logging and persistence.
func (id EmployeeID) String() string { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id EmployeeID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
