package identity

import (
	"errors"
	"testing"
	"time"

	"kader/pkg/domain"
)

func TestValidatePhone(t *testing.T) {
	t.Run("empty input is accepted", func(t *testing.T) {
		if err := ValidatePhone(""); err != nil {
			t.Fatalf("expected nil for empty input, got %v", err)
		}
	})

	t.Run("valid Egyptian mobile numbers pass", func(t *testing.T) {
		for _, number := range []string{"+201012345678", "+201112345678", "+201501234567"} {
			if err := ValidatePhone(number); err != nil {
				t.Fatalf("expected %q to validate, got %v", number, err)
			}
		}
	})

	t.Run("missing +20 prefix is rejected", func(t *testing.T) {
		for _, number := range []string{"01012345678", "+14155552671", "+3361234567", "20101234567"} {
			if err := ValidatePhone(number); !errors.Is(err, ErrNotEgyptianPrefix) {
				t.Fatalf("expected ErrNotEgyptianPrefix for %q, got %v", number, err)
			}
		}
	})

	t.Run("unparseable or invalid numbers are malformed", func(t *testing.T) {
		for _, number := range []string{"+20", "+2012", "+20123456789012345", "+20abcdefghij"} {
			if err := ValidatePhone(number); !errors.Is(err, ErrMalformedNumber) {
				t.Fatalf("expected ErrMalformedNumber for %q, got %v", number, err)
			}
		}
	})
}

func TestValidateNationalID(t *testing.T) {
	t.Run("empty input is accepted", func(t *testing.T) {
		if err := ValidateNationalID(""); err != nil {
			t.Fatalf("expected nil for empty input, got %v", err)
		}
	})

	t.Run("structurally valid IDs pass", func(t *testing.T) {
		for _, nid := range []string{
			"29501151234517", // 1995-01-15
			"29501151234528",
			"30107212345678", // 2001-07-21
			"30002291234512", // 2000-02-29, leap year
		} {
			if err := ValidateNationalID(nid); err != nil {
				t.Fatalf("expected %q to validate, got %v", nid, err)
			}
		}
	})

	cases := []struct {
		name string
		nid  string
		want error
	}{
		{"too short", "12345", ErrWrongLength},
		{"too long", "295011512345178", ErrWrongLength},
		{"non-digit character", "2950115123451a", ErrWrongLength},
		{"century digit 9", "99501151234517", ErrInvalidCentury},
		{"century digit 1", "19501151234517", ErrInvalidCentury},
		{"month 13", "29513151234517", ErrInvalidMonth},
		{"month 00", "29500151234517", ErrInvalidMonth},
		{"day 32", "29501321234517", ErrInvalidDay},
		{"day 00", "29501001234517", ErrInvalidDay},
		{"february 30th", "29502301234517", ErrInvalidBirthDate},
		{"april 31st", "29504311234517", ErrInvalidBirthDate},
		{"non-leap february 29th", "29902291234517", ErrInvalidBirthDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateNationalID(tc.nid); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v for %q, got %v", tc.want, tc.nid, err)
			}
		})
	}
}

func TestDateOfBirth(t *testing.T) {
	t.Run("derives the embedded date", func(t *testing.T) {
		dob, ok := DateOfBirth("29501151234517")
		if !ok {
			t.Fatal("expected a derived date")
		}
		want := time.Date(1995, time.January, 15, 0, 0, 0, 0, time.UTC)
		if !dob.Equal(want) {
			t.Fatalf("expected %v, got %v", want, dob)
		}
	})

	t.Run("century 3 maps to the 2000s", func(t *testing.T) {
		dob, ok := DateOfBirth("30107212345678")
		if !ok {
			t.Fatal("expected a derived date")
		}
		want := time.Date(2001, time.July, 21, 0, 0, 0, 0, time.UTC)
		if !dob.Equal(want) {
			t.Fatalf("expected %v, got %v", want, dob)
		}
	})

	t.Run("structural problems degrade to absence", func(t *testing.T) {
		for _, nid := range []string{"", "12345", "99501151234517", "29502301234517", "2950115123451x"} {
			if _, ok := DateOfBirth(nid); ok {
				t.Fatalf("expected no date for %q", nid)
			}
		}
	})

	t.Run("derivation is idempotent", func(t *testing.T) {
		first, ok1 := DateOfBirth("29501151234517")
		second, ok2 := DateOfBirth("29501151234517")
		if !ok1 || !ok2 || !first.Equal(second) {
			t.Fatalf("expected identical results, got %v/%v and %v/%v", first, ok1, second, ok2)
		}
	})
}

func TestGenderFromNationalID(t *testing.T) {
	t.Run("odd indicator digit is male", func(t *testing.T) {
		gender, ok := GenderFromNationalID("29501151234517")
		if !ok || gender != domain.GenderMale {
			t.Fatalf("expected male, got %v (ok=%v)", gender, ok)
		}
	})

	t.Run("even indicator digit is female", func(t *testing.T) {
		gender, ok := GenderFromNationalID("29501151234528")
		if !ok || gender != domain.GenderFemale {
			t.Fatalf("expected female, got %v (ok=%v)", gender, ok)
		}
	})

	t.Run("wrong length yields absence", func(t *testing.T) {
		for _, nid := range []string{"", "12345", "295011512345178"} {
			if _, ok := GenderFromNationalID(nid); ok {
				t.Fatalf("expected no gender for %q", nid)
			}
		}
	})

	t.Run("derivation is idempotent", func(t *testing.T) {
		first, _ := GenderFromNationalID("29501151234528")
		second, _ := GenderFromNationalID("29501151234528")
		if first != second {
			t.Fatalf("expected identical results, got %v and %v", first, second)
		}
	})
}
