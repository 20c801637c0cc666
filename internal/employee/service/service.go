// Package service implements employee lifecycle operations: creation,
// profile reads, updates, soft deactivation, and credential resets.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kader/internal/audit"
	"kader/internal/auth/store/revocation"
	"kader/internal/employee/metrics"
	"kader/internal/employee/models"
	"kader/internal/employee/store"
	"kader/internal/identity"
	id "kader/pkg/domain"
	dErrors "kader/pkg/domain-errors"
	"kader/pkg/platform/sentinel"
	"kader/pkg/requestcontext"
)

type Service struct {
	store       store.EmployeeStore
	revocations revocation.List
	publisher   *audit.Publisher
	logger      *slog.Logger
	bcryptCost  int
	tokenTTL    time.Duration
}

func NewService(
	employees store.EmployeeStore,
	revocations revocation.List,
	publisher *audit.Publisher,
	logger *slog.Logger,
	bcryptCost int,
	tokenTTL time.Duration,
) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		store:       employees,
		revocations: revocations,
		publisher:   publisher,
		logger:      logger,
		bcryptCost:  bcryptCost,
		tokenTTL:    tokenTTL,
	}
}

// Create registers a new employee. The request must already be normalized and
// validated at the handler boundary.
func (s *Service) Create(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "hashing password")
	}

	employee := &models.Employee{
		ID:             id.NewEmployeeID(),
		PhoneNumber1:   req.PhoneNumber1,
		PhoneNumber2:   req.PhoneNumber2,
		FirstName:      req.FirstName,
		RestOfName:     req.RestOfName,
		Email:          req.Email,
		PasswordHash:   string(hash),
		DateJoined:     req.DateJoined,
		DateOfBirth:    req.ParsedDateOfBirth(),
		Gender:         req.ParsedGender(),
		IdentityType:   req.ParsedIdentityType(),
		IdentityNumber: req.IdentityNumber,
		Address:        req.Address,
		Location:       req.Location,
		Role:           req.Role,
		ProfilePicture: req.ProfilePicture,
		FingerprintID:  req.FingerprintID,
		IsActive:       req.Active(),
		IsStaff:        req.IsStaff,
		IsVerified:     req.IsVerified,
	}
	s.deriveBirthFields(employee)

	if err := s.store.Create(ctx, employee); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "phone number, email, or identity number already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "creating employee")
	}

	metrics.EmployeesCreated.Inc()
	s.publisher.Emit(ctx, audit.Event{
		EmployeeID: employee.ID,
		ActorID:    requestcontext.EmployeeID(ctx),
		Action:     audit.ActionCreated,
	})
	s.logger.Info("employee created",
		"employee_id", employee.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return employee, nil
}

// Get fetches a single employee record, active or not.
func (s *Service) Get(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	if employeeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "employee ID is required")
	}
	employee, err := s.store.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "employee not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "fetching employee")
	}
	return employee, nil
}

// Profile returns the record of the authenticated employee.
func (s *Service) Profile(ctx context.Context) (*models.Employee, error) {
	employeeID := requestcontext.EmployeeID(ctx)
	if employeeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return s.Get(ctx, employeeID)
}

// FindByIdentityNumber resolves an employee from their government document
// number, the lookup HR staff reach for when only the paper ID is at hand.
func (s *Service) FindByIdentityNumber(ctx context.Context, identityNumber string) (*models.Employee, error) {
	if identityNumber == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "identity number is required")
	}
	employee, err := s.store.FindByIdentityNumber(ctx, identityNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "employee not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "fetching employee")
	}
	return employee, nil
}

// List returns all employee records, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Employee, error) {
	employees, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "listing employees")
	}
	return employees, nil
}

// Update replaces an employee's profile. Passwords are out of scope here.
func (s *Service) Update(ctx context.Context, employeeID id.EmployeeID, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	if employeeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "employee ID is required")
	}
	current, err := s.store.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "employee not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "fetching employee")
	}

	updated := current.Clone()
	updated.PhoneNumber1 = req.PhoneNumber1
	updated.PhoneNumber2 = req.PhoneNumber2
	updated.FirstName = req.FirstName
	updated.RestOfName = req.RestOfName
	updated.Email = req.Email
	updated.DateJoined = req.DateJoined
	updated.DateOfBirth = req.ParsedDateOfBirth()
	updated.Gender = req.ParsedGender()
	updated.IdentityType = req.ParsedIdentityType()
	updated.IdentityNumber = req.IdentityNumber
	updated.Address = req.Address
	updated.Location = req.Location
	updated.Role = req.Role
	updated.ProfilePicture = req.ProfilePicture
	updated.FingerprintID = req.FingerprintID
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	updated.IsStaff = req.IsStaff
	updated.IsVerified = req.IsVerified
	s.deriveBirthFields(updated)

	if err := s.store.Update(ctx, updated); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "phone number, email, or identity number already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "updating employee")
	}

	s.publisher.Emit(ctx, audit.Event{
		EmployeeID: updated.ID,
		ActorID:    requestcontext.EmployeeID(ctx),
		Action:     audit.ActionUpdated,
	})
	return updated, nil
}

// Patch applies a partial profile update. The stored record fills in every
// field the caller left out, then the merged result goes through the same
// validation and persistence path as a full replace.
func (s *Service) Patch(ctx context.Context, employeeID id.EmployeeID, req *models.PatchEmployeeRequest) (*models.Employee, error) {
	if employeeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "employee ID is required")
	}
	current, err := s.store.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "employee not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "fetching employee")
	}

	full := req.MergeInto(current)
	full.Normalize()
	if err := full.Validate(); err != nil {
		return nil, err
	}
	return s.Update(ctx, employeeID, full)
}

// Deactivate soft-deletes the employee and revokes every outstanding access
// token.
func (s *Service) Deactivate(ctx context.Context, employeeID id.EmployeeID) error {
	if employeeID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "employee ID is required")
	}
	if employeeID == requestcontext.EmployeeID(ctx) {
		return dErrors.New(dErrors.CodeValidation, "cannot deactivate your own account")
	}

	if err := s.store.SetActive(ctx, employeeID, false); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "employee not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "deactivating employee")
	}

	if err := s.revocations.RevokeAll(ctx, employeeID, requestcontext.Now(ctx), s.tokenTTL); err != nil {
		// The record is already inactive; login is blocked even if old tokens
		// outlive this failure.
		s.logger.Error("revoking tokens after deactivation",
			"employee_id", employeeID.String(),
			"error", err,
		)
	}

	metrics.EmployeesDeactivated.Inc()
	s.publisher.Emit(ctx, audit.Event{
		EmployeeID: employeeID,
		ActorID:    requestcontext.EmployeeID(ctx),
		Action:     audit.ActionDeactivated,
	})
	return nil
}

// Activate reverses a soft delete.
func (s *Service) Activate(ctx context.Context, employeeID id.EmployeeID) error {
	if employeeID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "employee ID is required")
	}
	if err := s.store.SetActive(ctx, employeeID, true); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "employee not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "activating employee")
	}

	metrics.EmployeesActivated.Inc()
	s.publisher.Emit(ctx, audit.Event{
		EmployeeID: employeeID,
		ActorID:    requestcontext.EmployeeID(ctx),
		Action:     audit.ActionActivated,
	})
	return nil
}

// SetPassword is the administrative reset. The employee's outstanding tokens
// are revoked so stolen sessions die with the old credential.
func (s *Service) SetPassword(ctx context.Context, employeeID id.EmployeeID, req *models.SetPasswordRequest) error {
	if employeeID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "employee ID is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "hashing password")
	}

	if err := s.store.SetPasswordHash(ctx, employeeID, string(hash)); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "employee not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "setting password")
	}

	if err := s.revocations.RevokeAll(ctx, employeeID, requestcontext.Now(ctx), s.tokenTTL); err != nil {
		s.logger.Error("revoking tokens after password reset",
			"employee_id", employeeID.String(),
			"error", err,
		)
	}

	metrics.PasswordsReset.Inc()
	s.publisher.Emit(ctx, audit.Event{
		EmployeeID: employeeID,
		ActorID:    requestcontext.EmployeeID(ctx),
		Action:     audit.ActionPasswordSet,
	})
	return nil
}

// deriveBirthFields fills DateOfBirth and Gender from the national ID digits
// when the document is an NID and the caller left the field unset. Values the
// caller supplied are never overwritten, even when they disagree with the
// digits.
func (s *Service) deriveBirthFields(employee *models.Employee) {
	if employee.IdentityType != id.IdentityTypeNationalID {
		return
	}
	derived := false
	if employee.DateOfBirth == nil {
		if dob, ok := identity.DateOfBirth(employee.IdentityNumber); ok {
			employee.DateOfBirth = &dob
			derived = true
		}
	}
	if employee.Gender == "" {
		if gender, ok := identity.GenderFromNationalID(employee.IdentityNumber); ok {
			employee.Gender = gender
			derived = true
		}
	}
	if derived {
		metrics.BirthFieldsDerived.Inc()
	}
}
