package domain

import dErrors "kader/pkg/domain-errors"

// IdentityType classifies the government document backing an employee record.
// Only national IDs get structural validation and field derivation; the other
// document kinds are stored opaquely.
type IdentityType string

const (
	IdentityTypeNationalID     IdentityType = "nid"
	IdentityTypePassport       IdentityType = "passport"
	IdentityTypeDrivingLicense IdentityType = "driving_license"
	IdentityTypeOther          IdentityType = "other"
)

var validIdentityTypes = map[IdentityType]bool{
	IdentityTypeNationalID:     true,
	IdentityTypePassport:       true,
	IdentityTypeDrivingLicense: true,
	IdentityTypeOther:          true,
}

// ParseIdentityType constructs an IdentityType from external input.
func ParseIdentityType(s string) (IdentityType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity type cannot be empty")
	}
	t := IdentityType(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid identity type")
	}
	return t, nil
}

// IsValid checks membership in the allowlist.
func (t IdentityType) IsValid() bool {
	return validIdentityTypes[t]
}

// String returns the string representation of the identity type.
func (t IdentityType) String() string { return string(t) }
