package identity

import (
	"errors"
	"time"

	"kader/pkg/domain"
)

// An Egyptian NID is 14 digits: century, yy, mm, dd, governorate, serial,
// gender parity, checksum. Positions 8-13 carry no structural validation
// here; the source scheme's official checksum is not implemented.
const nationalIDLength = 14

var (
	// ErrWrongLength covers both wrong length and non-digit characters.
	ErrWrongLength = errors.New("national ID must be exactly 14 digits")

	// ErrInvalidCentury flags a first digit other than 2 (1900s) or 3 (2000s).
	ErrInvalidCentury = errors.New("national ID century digit must be 2 or 3")

	// ErrInvalidMonth flags an embedded month outside 1-12.
	ErrInvalidMonth = errors.New("national ID encodes an invalid month")

	// ErrInvalidDay flags an embedded day outside 1-31.
	ErrInvalidDay = errors.New("national ID encodes an invalid day")

	// ErrInvalidBirthDate flags a (year, month, day) triple that passes the
	// range checks but is not a real calendar date, e.g. Feb 30.
	ErrInvalidBirthDate = errors.New("national ID does not encode a real birth date")
)

// ValidateNationalID confirms the candidate is structurally a valid Egyptian
// national ID. Empty input is accepted (optional-field skip). The first
// failing condition is reported; conditions are checked in order: length and
// digits, century, month range, day range, real calendar date.
func ValidateNationalID(candidate string) error {
	if candidate == "" {
		return nil
	}
	if len(candidate) != nationalIDLength || !allDigits(candidate) {
		return ErrWrongLength
	}
	century := candidate[0]
	if century != '2' && century != '3' {
		return ErrInvalidCentury
	}

	month := twoDigits(candidate[3:5])
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	day := twoDigits(candidate[5:7])
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}

	year := fullYear(century, twoDigits(candidate[1:3]))
	if !isRealDate(year, month, day) {
		return ErrInvalidBirthDate
	}
	return nil
}

// DateOfBirth derives the birth date embedded in the candidate. It recomputes
// from raw digits and does not require a prior ValidateNationalID call.
//
// It never fails with an error: any structural problem (wrong length,
// non-digits, bad century, impossible date) degrades to ok=false. Callers
// needing hard validation use ValidateNationalID.
func DateOfBirth(candidate string) (time.Time, bool) {
	if len(candidate) != nationalIDLength || !allDigits(candidate) {
		return time.Time{}, false
	}
	century := candidate[0]
	if century != '2' && century != '3' {
		return time.Time{}, false
	}

	year := fullYear(century, twoDigits(candidate[1:3]))
	month := twoDigits(candidate[3:5])
	day := twoDigits(candidate[5:7])
	if !isRealDate(year, month, day) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// GenderFromNationalID derives gender from the designated gender-indicator
// digit (0-indexed position 12): odd means male, even means female. No other
// digit is inspected.
func GenderFromNationalID(candidate string) (domain.Gender, bool) {
	if len(candidate) != nationalIDLength {
		return "", false
	}
	d := candidate[12]
	if d < '0' || d > '9' {
		return "", false
	}
	if (d-'0')%2 == 1 {
		return domain.GenderMale, true
	}
	return domain.GenderFemale, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// twoDigits decodes a two-character digit slice; callers guarantee digits.
func twoDigits(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func fullYear(century byte, yy int) int {
	if century == '2' {
		return 1900 + yy
	}
	return 2000 + yy
}

// isRealDate rejects triples like Feb 30 that survive the per-field range
// checks. time.Date normalizes overflow, so a round-trip comparison detects
// impossible dates.
func isRealDate(year, month, day int) bool {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return y == year && int(m) == month && d == day
}
