// Package identity implements the identity-document validation and
// field-derivation engine: Egyptian phone number validation and Egyptian
// national ID (NID) validation with date-of-birth and gender extraction.
//
// Every function here is pure and stateless; callers may invoke them
// concurrently without coordination. Uniqueness of phone or identity numbers
// is a storage concern and is not checked here.
package identity

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Egypt's country calling code in the E.164 numbering plan.
const egyptCountryCode = 20

var (
	// ErrNotEgyptianPrefix flags input that lacks the +20 prefix or parses to
	// a different country despite carrying it.
	ErrNotEgyptianPrefix = errors.New("phone number must be an Egyptian number starting with +20")

	// ErrMalformedNumber flags input that is not a parseable, valid phone
	// number at all.
	ErrMalformedNumber = errors.New("invalid phone number format")
)

// ValidatePhone confirms the candidate is a syntactically valid Egyptian
// phone number in international form.
//
// Empty input is accepted: the secondary phone field is optional, and an
// absent value means "no opinion", not a failure. The country-code check
// after parsing is deliberate even though the prefix was already inspected;
// the parser can accept interpretations of a digit string that resolve to a
// different country.
func ValidatePhone(candidate string) error {
	if candidate == "" {
		return nil
	}
	if !strings.HasPrefix(candidate, "+20") {
		return ErrNotEgyptianPrefix
	}
	parsed, err := phonenumbers.Parse(candidate, "")
	if err != nil {
		return ErrMalformedNumber
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return ErrMalformedNumber
	}
	if parsed.GetCountryCode() != egyptCountryCode {
		return ErrNotEgyptianPrefix
	}
	return nil
}
