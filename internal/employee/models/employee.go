package models

import (
	"time"

	id "kader/pkg/domain"
)

// Employee is the single user-like entity of the system. The primary phone
// number doubles as the login key, so it is unique; the identity number is
// unique per government document.
//
// DateOfBirth and Gender are optional: when absent and the identity document
// is a national ID, the service derives them from the NID digits
// (fill-if-absent, never overwriting caller-supplied values).
type Employee struct {
	ID             id.EmployeeID
	PhoneNumber1   string
	PhoneNumber2   string
	FirstName      string
	RestOfName     string
	Email          string
	PasswordHash   string
	DateJoined     time.Time
	DateOfBirth    *time.Time
	Gender         id.Gender
	IdentityType   id.IdentityType
	IdentityNumber string
	Address        string
	Location       string
	Role           string
	ProfilePicture string
	FingerprintID  string
	IsActive       bool
	IsStaff        bool
	IsVerified     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Clone returns a deep copy so stores can hand out records without aliasing
// their internal state.
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	clone := *e
	if e.DateOfBirth != nil {
		dob := *e.DateOfBirth
		clone.DateOfBirth = &dob
	}
	return &clone
}
