package models

import (
	"net/mail"
	"strings"
	"time"

	"kader/internal/identity"
	id "kader/pkg/domain"
	dErrors "kader/pkg/domain-errors"
)

// Field length limits mirror the storage schema.
const (
	maxFirstNameLen      = 30
	maxRestOfNameLen     = 150
	maxPhoneLen          = 20
	maxIdentityNumberLen = 20
	maxEmailLen          = 254
	maxAddressLen        = 2000
	maxLocationLen       = 512
	maxRoleLen           = 50
	maxFingerprintLen    = 50
	minPasswordLen       = 8

	dateOnlyLayout = "2006-01-02"
)

// CreateEmployeeRequest is the staff-facing payload for creating an employee.
type CreateEmployeeRequest struct {
	PhoneNumber1   string    `json:"phone_number1"`
	PhoneNumber2   string    `json:"phone_number2,omitempty"`
	Password       string    `json:"password"`
	RePassword     string    `json:"re_password"`
	FirstName      string    `json:"first_name"`
	RestOfName     string    `json:"rest_of_name"`
	Email          string    `json:"email,omitempty"`
	DateJoined     time.Time `json:"date_joined"`
	DateOfBirth    string    `json:"dob,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	IdentityType   string    `json:"identity_type"`
	IdentityNumber string    `json:"identity_number"`
	Address        string    `json:"address,omitempty"`
	Location       string    `json:"location,omitempty"`
	Role           string    `json:"role,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	FingerprintID  string    `json:"fingerprint_id,omitempty"`
	IsActive       *bool     `json:"is_active,omitempty"`
	IsStaff        bool      `json:"is_staff,omitempty"`
	IsVerified     bool      `json:"is_verified,omitempty"`

	parsed parsedProfile
}

// UpdateEmployeeRequest is the staff-facing payload for replacing an
// employee's profile. Passwords are changed through the dedicated endpoint,
// never here.
type UpdateEmployeeRequest struct {
	PhoneNumber1   string    `json:"phone_number1"`
	PhoneNumber2   string    `json:"phone_number2,omitempty"`
	FirstName      string    `json:"first_name"`
	RestOfName     string    `json:"rest_of_name"`
	Email          string    `json:"email,omitempty"`
	DateJoined     time.Time `json:"date_joined"`
	DateOfBirth    string    `json:"dob,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	IdentityType   string    `json:"identity_type"`
	IdentityNumber string    `json:"identity_number"`
	Address        string    `json:"address,omitempty"`
	Location       string    `json:"location,omitempty"`
	Role           string    `json:"role,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	FingerprintID  string    `json:"fingerprint_id,omitempty"`
	IsActive       *bool     `json:"is_active,omitempty"`
	IsStaff        bool      `json:"is_staff,omitempty"`
	IsVerified     bool      `json:"is_verified,omitempty"`

	parsed parsedProfile
}

// PatchEmployeeRequest is the staff-facing payload for a partial profile
// update. Absent fields keep their stored values; a JSON null is treated the
// same as absent.
type PatchEmployeeRequest struct {
	PhoneNumber1   *string    `json:"phone_number1,omitempty"`
	PhoneNumber2   *string    `json:"phone_number2,omitempty"`
	FirstName      *string    `json:"first_name,omitempty"`
	RestOfName     *string    `json:"rest_of_name,omitempty"`
	Email          *string    `json:"email,omitempty"`
	DateJoined     *time.Time `json:"date_joined,omitempty"`
	DateOfBirth    *string    `json:"dob,omitempty"`
	Gender         *string    `json:"gender,omitempty"`
	IdentityType   *string    `json:"identity_type,omitempty"`
	IdentityNumber *string    `json:"identity_number,omitempty"`
	Address        *string    `json:"address,omitempty"`
	Location       *string    `json:"location,omitempty"`
	Role           *string    `json:"role,omitempty"`
	ProfilePicture *string    `json:"profile_picture,omitempty"`
	FingerprintID  *string    `json:"fingerprint_id,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
	IsStaff        *bool      `json:"is_staff,omitempty"`
	IsVerified     *bool      `json:"is_verified,omitempty"`
}

func (r *PatchEmployeeRequest) Normalize() {
	if r == nil {
		return
	}
	trim(r.PhoneNumber1)
	trim(r.PhoneNumber2)
	trim(r.FirstName)
	trim(r.RestOfName)
	lower(r.Email)
	trim(r.DateOfBirth)
	lower(r.Gender)
	lower(r.IdentityType)
	trim(r.IdentityNumber)
	trim(r.Address)
	trim(r.Location)
	trim(r.Role)
	trim(r.ProfilePicture)
	trim(r.FingerprintID)
}

// Validate only rejects an absent body. Field validation runs on the merged
// full-replace request once the stored record is known.
func (r *PatchEmployeeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return nil
}

// MergeInto builds a full-replace request from the stored record with the
// patched fields laid over it.
func (r *PatchEmployeeRequest) MergeInto(current *Employee) *UpdateEmployeeRequest {
	full := &UpdateEmployeeRequest{
		PhoneNumber1:   current.PhoneNumber1,
		PhoneNumber2:   current.PhoneNumber2,
		FirstName:      current.FirstName,
		RestOfName:     current.RestOfName,
		Email:          current.Email,
		DateJoined:     current.DateJoined,
		Gender:         current.Gender.String(),
		IdentityType:   current.IdentityType.String(),
		IdentityNumber: current.IdentityNumber,
		Address:        current.Address,
		Location:       current.Location,
		Role:           current.Role,
		ProfilePicture: current.ProfilePicture,
		FingerprintID:  current.FingerprintID,
		IsStaff:        current.IsStaff,
		IsVerified:     current.IsVerified,
	}
	if current.DateOfBirth != nil {
		full.DateOfBirth = current.DateOfBirth.Format(dateOnlyLayout)
	}

	override(&full.PhoneNumber1, r.PhoneNumber1)
	override(&full.PhoneNumber2, r.PhoneNumber2)
	override(&full.FirstName, r.FirstName)
	override(&full.RestOfName, r.RestOfName)
	override(&full.Email, r.Email)
	if r.DateJoined != nil {
		full.DateJoined = *r.DateJoined
	}
	override(&full.DateOfBirth, r.DateOfBirth)
	override(&full.Gender, r.Gender)
	override(&full.IdentityType, r.IdentityType)
	override(&full.IdentityNumber, r.IdentityNumber)
	override(&full.Address, r.Address)
	override(&full.Location, r.Location)
	override(&full.Role, r.Role)
	override(&full.ProfilePicture, r.ProfilePicture)
	override(&full.FingerprintID, r.FingerprintID)
	full.IsActive = r.IsActive
	if r.IsStaff != nil {
		full.IsStaff = *r.IsStaff
	}
	if r.IsVerified != nil {
		full.IsVerified = *r.IsVerified
	}
	return full
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func lower(s *string) {
	if s != nil {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

func override(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// SetPasswordRequest is the staff-facing payload for resetting an employee's
// password.
type SetPasswordRequest struct {
	NewPassword   string `json:"new_password"`
	ReNewPassword string `json:"re_new_password"`
}

// parsedProfile holds values decoded during Validate so handlers do not parse
// twice.
type parsedProfile struct {
	dateOfBirth  *time.Time
	gender       id.Gender
	identityType id.IdentityType
}

func (r *CreateEmployeeRequest) Normalize() {
	if r == nil {
		return
	}
	r.PhoneNumber1 = strings.TrimSpace(r.PhoneNumber1)
	r.PhoneNumber2 = strings.TrimSpace(r.PhoneNumber2)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.RestOfName = strings.TrimSpace(r.RestOfName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.Gender = strings.TrimSpace(strings.ToLower(r.Gender))
	r.IdentityType = strings.TrimSpace(strings.ToLower(r.IdentityType))
	r.IdentityNumber = strings.TrimSpace(r.IdentityNumber)
	r.Address = strings.TrimSpace(r.Address)
	r.Location = strings.TrimSpace(r.Location)
	r.Role = strings.TrimSpace(r.Role)
	r.ProfilePicture = strings.TrimSpace(r.ProfilePicture)
	r.FingerprintID = strings.TrimSpace(r.FingerprintID)
}

// Follows validation order: Size -> Required -> Syntax -> Semantic.
func (r *CreateEmployeeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if err := validateProfileSizes(r.FirstName, r.RestOfName, r.PhoneNumber1, r.PhoneNumber2, r.Email,
		r.IdentityNumber, r.Address, r.Location, r.Role, r.FingerprintID); err != nil {
		return err
	}

	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}
	if r.RePassword == "" {
		return dErrors.New(dErrors.CodeValidation, "re_password is required")
	}

	parsed, err := validateProfile(profileInput{
		phoneNumber1:   r.PhoneNumber1,
		phoneNumber2:   r.PhoneNumber2,
		firstName:      r.FirstName,
		restOfName:     r.RestOfName,
		email:          r.Email,
		dateJoined:     r.DateJoined,
		dateOfBirth:    r.DateOfBirth,
		gender:         r.Gender,
		identityType:   r.IdentityType,
		identityNumber: r.IdentityNumber,
	})
	if err != nil {
		return err
	}
	r.parsed = parsed

	if len(r.Password) < minPasswordLen {
		return dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}
	if r.Password != r.RePassword {
		return dErrors.New(dErrors.CodeValidation, "passwords do not match")
	}

	return nil
}

// ParsedDateOfBirth returns the decoded dob field; nil when the caller left
// it unset. Only meaningful after Validate.
func (r *CreateEmployeeRequest) ParsedDateOfBirth() *time.Time { return r.parsed.dateOfBirth }

// ParsedGender returns the decoded gender; empty when unset.
func (r *CreateEmployeeRequest) ParsedGender() id.Gender { return r.parsed.gender }

// ParsedIdentityType returns the decoded identity type.
func (r *CreateEmployeeRequest) ParsedIdentityType() id.IdentityType { return r.parsed.identityType }

// Active resolves the optional is_active flag; new employees default to
// active.
func (r *CreateEmployeeRequest) Active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}

func (r *UpdateEmployeeRequest) Normalize() {
	if r == nil {
		return
	}
	r.PhoneNumber1 = strings.TrimSpace(r.PhoneNumber1)
	r.PhoneNumber2 = strings.TrimSpace(r.PhoneNumber2)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.RestOfName = strings.TrimSpace(r.RestOfName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.Gender = strings.TrimSpace(strings.ToLower(r.Gender))
	r.IdentityType = strings.TrimSpace(strings.ToLower(r.IdentityType))
	r.IdentityNumber = strings.TrimSpace(r.IdentityNumber)
	r.Address = strings.TrimSpace(r.Address)
	r.Location = strings.TrimSpace(r.Location)
	r.Role = strings.TrimSpace(r.Role)
	r.ProfilePicture = strings.TrimSpace(r.ProfilePicture)
	r.FingerprintID = strings.TrimSpace(r.FingerprintID)
}

// Follows validation order: Size -> Required -> Syntax -> Semantic.
func (r *UpdateEmployeeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if err := validateProfileSizes(r.FirstName, r.RestOfName, r.PhoneNumber1, r.PhoneNumber2, r.Email,
		r.IdentityNumber, r.Address, r.Location, r.Role, r.FingerprintID); err != nil {
		return err
	}

	parsed, err := validateProfile(profileInput{
		phoneNumber1:   r.PhoneNumber1,
		phoneNumber2:   r.PhoneNumber2,
		firstName:      r.FirstName,
		restOfName:     r.RestOfName,
		email:          r.Email,
		dateJoined:     r.DateJoined,
		dateOfBirth:    r.DateOfBirth,
		gender:         r.Gender,
		identityType:   r.IdentityType,
		identityNumber: r.IdentityNumber,
	})
	if err != nil {
		return err
	}
	r.parsed = parsed
	return nil
}

// ParsedDateOfBirth returns the decoded dob field; nil when the caller left
// it unset. Only meaningful after Validate.
func (r *UpdateEmployeeRequest) ParsedDateOfBirth() *time.Time { return r.parsed.dateOfBirth }

// ParsedGender returns the decoded gender; empty when unset.
func (r *UpdateEmployeeRequest) ParsedGender() id.Gender { return r.parsed.gender }

// ParsedIdentityType returns the decoded identity type.
func (r *UpdateEmployeeRequest) ParsedIdentityType() id.IdentityType { return r.parsed.identityType }

func (r *SetPasswordRequest) Normalize() {}

func (r *SetPasswordRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
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
	return nil
}

type profileInput struct {
	phoneNumber1   string
	phoneNumber2   string
	firstName      string
	restOfName     string
	email          string
	dateJoined     time.Time
	dateOfBirth    string
	gender         string
	identityType   string
	identityNumber string
}

func validateProfileSizes(firstName, restOfName, phone1, phone2, email, identityNumber, address, location, role, fingerprint string) error {
	switch {
	case len(firstName) > maxFirstNameLen:
		return dErrors.New(dErrors.CodeValidation, "first_name must be 30 characters or less")
	case len(restOfName) > maxRestOfNameLen:
		return dErrors.New(dErrors.CodeValidation, "rest_of_name must be 150 characters or less")
	case len(phone1) > maxPhoneLen:
		return dErrors.New(dErrors.CodeValidation, "phone_number1 must be 20 characters or less")
	case len(phone2) > maxPhoneLen:
		return dErrors.New(dErrors.CodeValidation, "phone_number2 must be 20 characters or less")
	case len(email) > maxEmailLen:
		return dErrors.New(dErrors.CodeValidation, "email must be 254 characters or less")
	case len(identityNumber) > maxIdentityNumberLen:
		return dErrors.New(dErrors.CodeValidation, "identity_number must be 20 characters or less")
	case len(address) > maxAddressLen:
		return dErrors.New(dErrors.CodeValidation, "address must be 2000 characters or less")
	case len(location) > maxLocationLen:
		return dErrors.New(dErrors.CodeValidation, "location must be 512 characters or less")
	case len(role) > maxRoleLen:
		return dErrors.New(dErrors.CodeValidation, "role must be 50 characters or less")
	case len(fingerprint) > maxFingerprintLen:
		return dErrors.New(dErrors.CodeValidation, "fingerprint_id must be 50 characters or less")
	}
	return nil
}

func validateProfile(in profileInput) (parsedProfile, error) {
	var parsed parsedProfile

	if in.phoneNumber1 == "" {
		return parsed, dErrors.New(dErrors.CodeValidation, "phone_number1 is required")
	}
	if in.firstName == "" {
		return parsed, dErrors.New(dErrors.CodeValidation, "first_name is required")
	}
	if in.restOfName == "" {
		return parsed, dErrors.New(dErrors.CodeValidation, "rest_of_name is required")
	}
	if in.dateJoined.IsZero() {
		return parsed, dErrors.New(dErrors.CodeValidation, "date_joined is required")
	}
	if in.identityType == "" {
		return parsed, dErrors.New(dErrors.CodeValidation, "identity_type is required")
	}
	if in.identityNumber == "" {
		return parsed, dErrors.New(dErrors.CodeValidation, "identity_number is required")
	}

	identityType, err := id.ParseIdentityType(in.identityType)
	if err != nil {
		return parsed, dErrors.New(dErrors.CodeValidation, "identity_type must be one of 'nid', 'passport', 'driving_license', 'other'")
	}
	parsed.identityType = identityType

	if in.gender != "" {
		gender, err := id.ParseGender(in.gender)
		if err != nil {
			return parsed, dErrors.New(dErrors.CodeValidation, "gender must be 'male' or 'female'")
		}
		parsed.gender = gender
	}

	if in.dateOfBirth != "" {
		dob, err := time.Parse(dateOnlyLayout, in.dateOfBirth)
		if err != nil {
			return parsed, dErrors.New(dErrors.CodeValidation, "dob must be formatted as YYYY-MM-DD")
		}
		parsed.dateOfBirth = &dob
	}

	if in.email != "" {
		// ParseAddress accepts display-name forms like "Nour <a@b>"; requiring
		// the round-trip keeps only the bare address.
		addr, err := mail.ParseAddress(in.email)
		if err != nil || addr.Address != in.email {
			return parsed, dErrors.New(dErrors.CodeValidation, "email must be a valid email address")
		}
	}

	if err := identity.ValidatePhone(in.phoneNumber1); err != nil {
		return parsed, dErrors.New(dErrors.CodeValidation, "phone_number1: "+err.Error())
	}
	if err := identity.ValidatePhone(in.phoneNumber2); err != nil {
		return parsed, dErrors.New(dErrors.CodeValidation, "phone_number2: "+err.Error())
	}

	if identityType == id.IdentityTypeNationalID {
		if err := identity.ValidateNationalID(in.identityNumber); err != nil {
			return parsed, dErrors.New(dErrors.CodeValidation, "identity_number: "+err.Error())
		}
	}

	return parsed, nil
}
