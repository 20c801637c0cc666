package domain

import dErrors "kader/pkg/domain-errors"

// Gender is a domain value constrained to the two values the national
// numbering scheme encodes.
//
// Usage: construct via ParseGender at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var validGenders = map[Gender]bool{
	GenderMale:   true,
	GenderFemale: true,
}

// ParseGender constructs a Gender from external input. The empty string is an
// error here; callers treat an absent gender as nil, not as "".
func ParseGender(s string) (Gender, error) {
	g := Gender(s)
	if !g.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "gender must be 'male' or 'female'")
	}
	return g, nil
}

// IsValid checks membership in the allowlist.
func (g Gender) IsValid() bool {
	return validGenders[g]
}

// String returns the string representation of the gender.
func (g Gender) String() string { return string(g) }
