package models

import "time"

// EmployeeResponse is the full representation returned to staff and to the
// employee viewing their own profile. The password hash never leaves the
// service layer.
type EmployeeResponse struct {
	ID             string     `json:"id"`
	PhoneNumber1   string     `json:"phone_number1"`
	PhoneNumber2   string     `json:"phone_number2,omitempty"`
	FirstName      string     `json:"first_name"`
	RestOfName     string     `json:"rest_of_name"`
	Email          string     `json:"email,omitempty"`
	DateJoined     time.Time  `json:"date_joined"`
	DateOfBirth    *string    `json:"dob"`
	Gender         string     `json:"gender,omitempty"`
	IdentityType   string     `json:"identity_type"`
	IdentityNumber string     `json:"identity_number"`
	Address        string     `json:"address,omitempty"`
	Location       string     `json:"location,omitempty"`
	Role           string     `json:"role,omitempty"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	FingerprintID  string     `json:"fingerprint_id,omitempty"`
	IsActive       bool       `json:"is_active"`
	IsStaff        bool       `json:"is_staff"`
	IsVerified     bool       `json:"is_verified"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// EmployeeListItem is the compact representation used by the listing
// endpoint.
type EmployeeListItem struct {
	ID           string    `json:"id"`
	PhoneNumber1 string    `json:"phone_number1"`
	FirstName    string    `json:"first_name"`
	RestOfName   string    `json:"rest_of_name"`
	Email        string    `json:"email,omitempty"`
	Role         string    `json:"role,omitempty"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	DateJoined   time.Time `json:"date_joined"`
}

// EmployeeListResponse wraps the listing with its total count.
type EmployeeListResponse struct {
	Employees []EmployeeListItem `json:"employees"`
	Count     int                `json:"count"`
}

// MessageResponse is used by operations whose only payload is an
// acknowledgement, e.g. deactivation.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewEmployeeResponse(e *Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID.String(),
		PhoneNumber1:   e.PhoneNumber1,
		PhoneNumber2:   e.PhoneNumber2,
		FirstName:      e.FirstName,
		RestOfName:     e.RestOfName,
		Email:          e.Email,
		DateJoined:     e.DateJoined,
		Gender:         e.Gender.String(),
		IdentityType:   e.IdentityType.String(),
		IdentityNumber: e.IdentityNumber,
		Address:        e.Address,
		Location:       e.Location,
		Role:           e.Role,
		ProfilePicture: e.ProfilePicture,
		FingerprintID:  e.FingerprintID,
		IsActive:       e.IsActive,
		IsStaff:        e.IsStaff,
		IsVerified:     e.IsVerified,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if e.DateOfBirth != nil {
		dob := e.DateOfBirth.Format(dateOnlyLayout)
		resp.DateOfBirth = &dob
	}
	return resp
}

func NewEmployeeListItem(e *Employee) EmployeeListItem {
	return EmployeeListItem{
		ID:           e.ID.String(),
		PhoneNumber1: e.PhoneNumber1,
		FirstName:    e.FirstName,
		RestOfName:   e.RestOfName,
		Email:        e.Email,
		Role:         e.Role,
		IsActive:     e.IsActive,
		IsStaff:      e.IsStaff,
		DateJoined:   e.DateJoined,
	}
}

func NewEmployeeListResponse(employees []*Employee) EmployeeListResponse {
	items := make([]EmployeeListItem, 0, len(employees))
	for _, e := range employees {
		items = append(items, NewEmployeeListItem(e))
	}
	return EmployeeListResponse{Employees: items, Count: len(items)}
}
