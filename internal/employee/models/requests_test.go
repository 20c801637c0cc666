package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	id "kader/pkg/domain"
	dErrors "kader/pkg/domain-errors"
)

func validCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		PhoneNumber1:   "+201012345678",
		Password:       "correct-horse",
		RePassword:     "correct-horse",
		FirstName:      "Nour",
		RestOfName:     "El Din Hassan",
		DateJoined:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		IdentityType:   "nid",
		IdentityNumber: "29501151234517",
	}
}

func TestCreateEmployeeRequestValidate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validCreateRequest()
		req.Normalize()
		require.NoError(t, req.Validate())
		require.Equal(t, id.IdentityTypeNationalID, req.ParsedIdentityType())
		require.Nil(t, req.ParsedDateOfBirth())
		require.True(t, req.Active())
	})

	t.Run("normalize trims and lowercases", func(t *testing.T) {
		req := validCreateRequest()
		req.Email = "  Nour@Example.COM "
		req.Gender = " Male "
		req.IdentityType = " NID "
		req.Normalize()
		require.NoError(t, req.Validate())
		require.Equal(t, "nour@example.com", req.Email)
		require.Equal(t, id.GenderMale, req.ParsedGender())
	})

	t.Run("dob is decoded when present", func(t *testing.T) {
		req := validCreateRequest()
		req.DateOfBirth = "1995-01-15"
		req.Normalize()
		require.NoError(t, req.Validate())
		require.NotNil(t, req.ParsedDateOfBirth())
		require.Equal(t, time.Date(1995, 1, 15, 0, 0, 0, 0, time.UTC), *req.ParsedDateOfBirth())
	})

	t.Run("explicit is_active false is honored", func(t *testing.T) {
		req := validCreateRequest()
		inactive := false
		req.IsActive = &inactive
		require.NoError(t, req.Validate())
		require.False(t, req.Active())
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			name    string
			mutate  func(r *CreateEmployeeRequest)
			message string
		}{
			{
				name:    "missing primary phone",
				mutate:  func(r *CreateEmployeeRequest) { r.PhoneNumber1 = "" },
				message: "phone_number1 is required",
			},
			{
				name:    "non-Egyptian phone",
				mutate:  func(r *CreateEmployeeRequest) { r.PhoneNumber1 = "+14155552671" },
				message: "phone_number1",
			},
			{
				name:    "malformed secondary phone",
				mutate:  func(r *CreateEmployeeRequest) { r.PhoneNumber2 = "+20123" },
				message: "phone_number2",
			},
			{
				name:    "missing first name",
				mutate:  func(r *CreateEmployeeRequest) { r.FirstName = "" },
				message: "first_name is required",
			},
			{
				name:    "oversized first name",
				mutate:  func(r *CreateEmployeeRequest) { r.FirstName = strings.Repeat("a", maxFirstNameLen+1) },
				message: "first_name must be 30 characters or less",
			},
			{
				name:    "missing date joined",
				mutate:  func(r *CreateEmployeeRequest) { r.DateJoined = time.Time{} },
				message: "date_joined is required",
			},
			{
				name:    "unknown identity type",
				mutate:  func(r *CreateEmployeeRequest) { r.IdentityType = "visa" },
				message: "identity_type must be one of",
			},
			{
				name:    "unknown gender",
				mutate:  func(r *CreateEmployeeRequest) { r.Gender = "other" },
				message: "gender must be",
			},
			{
				name:    "malformed dob",
				mutate:  func(r *CreateEmployeeRequest) { r.DateOfBirth = "15/01/1995" },
				message: "dob must be formatted as YYYY-MM-DD",
			},
			{
				name:    "short national ID",
				mutate:  func(r *CreateEmployeeRequest) { r.IdentityNumber = "12345" },
				message: "identity_number",
			},
			{
				name:    "impossible NID birth date",
				mutate:  func(r *CreateEmployeeRequest) { r.IdentityNumber = "29502301234517" },
				message: "identity_number",
			},
			{
				name:    "malformed email",
				mutate:  func(r *CreateEmployeeRequest) { r.Email = "not-an-email" },
				message: "email must be a valid email address",
			},
			{
				name:    "email with display name",
				mutate:  func(r *CreateEmployeeRequest) { r.Email = "Nour <nour@example.com>" },
				message: "email must be a valid email address",
			},
			{
				name:    "short password",
				mutate:  func(r *CreateEmployeeRequest) { r.Password, r.RePassword = "short", "short" },
				message: "password must be at least 8 characters",
			},
			{
				name:    "password mismatch",
				mutate:  func(r *CreateEmployeeRequest) { r.RePassword = "different-horse" },
				message: "passwords do not match",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validCreateRequest()
				tt.mutate(&req)
				req.Normalize()
				err := req.Validate()
				require.Error(t, err)
				require.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "expected validation code, got %v", err)
				require.Contains(t, err.Error(), tt.message)
			})
		}
	})

	t.Run("passport number skips NID structure checks", func(t *testing.T) {
		req := validCreateRequest()
		req.IdentityType = "passport"
		req.IdentityNumber = "A23456789"
		req.Normalize()
		require.NoError(t, req.Validate())
	})
}

func TestUpdateEmployeeRequestValidate(t *testing.T) {
	valid := func() UpdateEmployeeRequest {
		return UpdateEmployeeRequest{
			PhoneNumber1:   "+201112345678",
			FirstName:      "Salma",
			RestOfName:     "Ahmed",
			DateJoined:     time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC),
			IdentityType:   "nid",
			IdentityNumber: "29501151234528",
		}
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := valid()
		req.Normalize()
		require.NoError(t, req.Validate())
	})

	t.Run("invalid NID rejected", func(t *testing.T) {
		req := valid()
		req.IdentityNumber = "99501151234517"
		req.Normalize()
		err := req.Validate()
		require.Error(t, err)
		require.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("missing phone rejected", func(t *testing.T) {
		req := valid()
		req.PhoneNumber1 = ""
		req.Normalize()
		require.Error(t, req.Validate())
	})
}

func TestPatchEmployeeRequestMergeInto(t *testing.T) {
	dob := time.Date(1995, 1, 15, 0, 0, 0, 0, time.UTC)
	current := &Employee{
		PhoneNumber1:   "+201012345678",
		FirstName:      "Nour",
		RestOfName:     "El Din",
		Email:          "nour@example.com",
		DateJoined:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DateOfBirth:    &dob,
		Gender:         id.GenderMale,
		IdentityType:   id.IdentityTypeNationalID,
		IdentityNumber: "29501151234517",
		IsStaff:        true,
	}

	t.Run("absent fields carry the stored values", func(t *testing.T) {
		role := " Engineer "
		patch := PatchEmployeeRequest{Role: &role}
		patch.Normalize()
		require.NoError(t, patch.Validate())

		full := patch.MergeInto(current)
		full.Normalize()
		require.NoError(t, full.Validate())
		require.Equal(t, "Engineer", full.Role)
		require.Equal(t, "+201012345678", full.PhoneNumber1)
		require.Equal(t, "1995-01-15", full.DateOfBirth)
		require.Equal(t, "male", full.Gender)
		require.True(t, full.IsStaff)
		require.Nil(t, full.IsActive)
	})

	t.Run("set fields win", func(t *testing.T) {
		email := "salma@example.com"
		staff := false
		active := false
		patch := PatchEmployeeRequest{Email: &email, IsStaff: &staff, IsActive: &active}
		patch.Normalize()

		full := patch.MergeInto(current)
		require.Equal(t, "salma@example.com", full.Email)
		require.False(t, full.IsStaff)
		require.NotNil(t, full.IsActive)
		require.False(t, *full.IsActive)
	})
}

func TestSetPasswordRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := SetPasswordRequest{NewPassword: "correct-horse", ReNewPassword: "correct-horse"}
		require.NoError(t, req.Validate())
	})

	t.Run("too short", func(t *testing.T) {
		req := SetPasswordRequest{NewPassword: "short", ReNewPassword: "short"}
		err := req.Validate()
		require.Error(t, err)
		require.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("mismatch", func(t *testing.T) {
		req := SetPasswordRequest{NewPassword: "correct-horse", ReNewPassword: "wrong-horse"}
		require.Error(t, req.Validate())
	})
}
