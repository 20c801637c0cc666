// Package service implements phone-based authentication: login with the
// primary phone number and password, and self-service password changes.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kader/internal/audit"
	"kader/internal/auth/device"
	"kader/internal/auth/metrics"
	"kader/internal/auth/models"
	"kader/internal/auth/store/revocation"
	employeemodels "kader/internal/employee/models"
	id "kader/pkg/domain"
	dErrors "kader/pkg/domain-errors"
	"kader/pkg/platform/sentinel"
	"kader/pkg/requestcontext"
)

// EmployeeStore is the slice of the employee persistence layer that auth
// needs.
type EmployeeStore interface {
	FindByID(ctx context.Context, employeeID id.EmployeeID) (*employeemodels.Employee, error)
	FindByPhone(ctx context.Context, phoneNumber string) (*employeemodels.Employee, error)
	SetPasswordHash(ctx context.Context, employeeID id.EmployeeID, passwordHash string) error
}

// TokenIssuer mints access tokens.
type TokenIssuer interface {
	GenerateAccessToken(employeeID id.EmployeeID, staff bool, expiresIn time.Duration) (string, error)
}

type Service struct {
	employees   EmployeeStore
	tokens      TokenIssuer
	revocations revocation.List
	publisher   *audit.Publisher
	devices     *device.Service
	logger      *slog.Logger
	bcryptCost  int
	tokenTTL    time.Duration
}

func NewService(
	employees EmployeeStore,
	tokens TokenIssuer,
	revocations revocation.List,
	publisher *audit.Publisher,
	devices *device.Service,
	logger *slog.Logger,
	bcryptCost int,
	tokenTTL time.Duration,
) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		employees:   employees,
		tokens:      tokens,
		revocations: revocations,
		publisher:   publisher,
		devices:     devices,
		logger:      logger,
		bcryptCost:  bcryptCost,
		tokenTTL:    tokenTTL,
	}
}

// errInvalidCredentials is the single rejection for unknown phones, wrong
// passwords, and inactive accounts, so login probing cannot enumerate
// records.
var errInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "invalid phone number or password")

// Login verifies the credential pair and returns a bearer token plus the
// employee profile.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	start := time.Now()
	defer func() {
		metrics.LoginDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	employee, err := s.employees.FindByPhone(ctx, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.rejectLogin(ctx, metrics.OutcomeUnknownPhone, "unknown phone number")
			return nil, errInvalidCredentials
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "looking up employee")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		s.rejectLogin(ctx, metrics.OutcomeBadPassword, "wrong password")
		return nil, errInvalidCredentials
	}

	if !employee.IsActive {
		s.rejectLogin(ctx, metrics.OutcomeInactive, "account deactivated")
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(employee.ID, employee.IsStaff, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "issuing token")
	}

	display := device.ParseUserAgent(requestcontext.UserAgent(ctx))
	metrics.LoginAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	s.publisher.Emit(ctx, audit.Event{
		EmployeeID: employee.ID,
		ActorID:    employee.ID,
		Action:     audit.ActionLogin,
		Detail:     display,
	})
	s.logger.Info("employee logged in",
		"employee_id", employee.ID.String(),
		"device", display,
		"device_fingerprint", s.devices.ComputeFingerprint(requestcontext.UserAgent(ctx)),
		"request_id", requestcontext.RequestID(ctx),
	)

	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		Employee:    employeemodels.NewEmployeeResponse(employee),
	}, nil
}

// ChangePassword replaces the authenticated employee's credential after
// verifying the current one, then revokes all outstanding tokens.
func (s *Service) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	employeeID := requestcontext.EmployeeID(ctx)
	if employeeID.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "looking up employee")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return dErrors.New(dErrors.CodeUnauthorized, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "hashing password")
	}
	if err := s.employees.SetPasswordHash(ctx, employeeID, string(hash)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "setting password")
	}

	if err := s.revocations.RevokeAll(ctx, employeeID, requestcontext.Now(ctx), s.tokenTTL); err != nil {
		s.logger.Error("revoking tokens after password change",
			"employee_id", employeeID.String(),
			"error", err,
		)
	}

	metrics.PasswordsChanged.Inc()
	s.publisher.Emit(ctx, audit.Event{
		EmployeeID: employeeID,
		ActorID:    employeeID,
		Action:     audit.ActionPasswordChanged,
	})
	return nil
}

func (s *Service) rejectLogin(ctx context.Context, outcome, reason string) {
	metrics.LoginAttempts.WithLabelValues(outcome).Inc()
	s.publisher.Emit(ctx, audit.Event{
		Action: audit.ActionLoginFailed,
		Detail: reason,
	})
}
