package models

import (
	"strings"

	"kader/internal/identity"
	dErrors "kader/pkg/domain-errors"
)

const minPasswordLen = 8

// LoginRequest carries the phone-and-password credential pair.
type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	if r == nil {
		return
	}
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
}

// Follows validation order: Size -> Required -> Syntax -> Semantic.
func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.PhoneNumber) > 20 {
		return dErrors.New(dErrors.CodeValidation, "phone_number must be 20 characters or less")
	}
	if r.PhoneNumber == "" {
		return dErrors.New(dErrors.CodeValidation, "phone_number is required")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}
	if err := identity.ValidatePhone(r.PhoneNumber); err != nil {
		return dErrors.New(dErrors.CodeValidation, "phone_number: "+err.Error())
	}
	return nil
}

// ChangePasswordRequest is the self-service credential change; the caller
// must prove knowledge of the current password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ReNewPassword   string `json:"re_new_password"`
}

func (r *ChangePasswordRequest) Normalize() {}

func (r *ChangePasswordRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.CurrentPassword == "" {
		return dErrors.New(dErrors.CodeValidation, "current_password is required")
	}
	if r.NewPassword == "" {
		return dErrors.New(dErrors.CodeValidation, "new_password is required")
	}
	if len(r.NewPassword) < minPasswordLen {
		return dErrors.New(dErrors.CodeValidation, "new_password must be at least 8 characters")
	}
	if r.NewPassword != r.ReNewPassword {
		return dErrors.New(dErrors.CodeValidation, "passwords do not match")
	}
	if r.NewPassword == r.CurrentPassword {
		return dErrors.New(dErrors.CodeValidation, "new password must differ from the current password")
	}
	return nil
}
