package service_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"kader/internal/audit"
	auditstore "kader/internal/audit/store"
	"kader/internal/auth/store/revocation"
	"kader/internal/employee/models"
	"kader/internal/employee/service"
	"kader/internal/employee/store"
	id "kader/pkg/domain"
	dErrors "kader/pkg/domain-errors"
	"kader/pkg/requestcontext"
)

const tokenTTL = time.Hour

type EmployeeServiceSuite struct {
	suite.Suite
	ctx         context.Context
	actorID     id.EmployeeID
	now         time.Time
	employees   *store.InMemoryStore
	revocations *revocation.InMemoryList
	auditTrail  *auditstore.InMemoryStore
	inbox       chan audit.Event
	service     *service.Service
}

func TestEmployeeServiceSuite(t *testing.T) {
	suite.Run(t, new(EmployeeServiceSuite))
}

func (s *EmployeeServiceSuite) SetupTest() {
	s.actorID = id.NewEmployeeID()
	s.now = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	ctx := requestcontext.WithEmployeeID(context.Background(), s.actorID)
	ctx = requestcontext.WithStaff(ctx, true)
	s.ctx = requestcontext.WithTime(ctx, s.now)

	s.employees = store.NewInMemoryStore()
	s.revocations = revocation.NewInMemoryList()
	s.auditTrail = auditstore.NewInMemoryStore()
	s.inbox = make(chan audit.Event, 16)

	logger := slog.New(slog.DiscardHandler)
	publisher := audit.NewPublisher(s.inbox, logger)
	s.service = service.NewService(s.employees, s.revocations, publisher, logger, bcrypt.MinCost, tokenTTL)
}

func (s *EmployeeServiceSuite) drainAudit() []audit.Event {
	var events []audit.Event
	for {
		select {
		case event := <-s.inbox:
			events = append(events, event)
		default:
			return events
		}
	}
}

func (s *EmployeeServiceSuite) createRequest() *models.CreateEmployeeRequest {
	req := &models.CreateEmployeeRequest{
		PhoneNumber1:   "+201012345678",
		Password:       "correct-horse",
		RePassword:     "correct-horse",
		FirstName:      "Nour",
		RestOfName:     "El Din",
		DateJoined:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		IdentityType:   "nid",
		IdentityNumber: "29501151234517",
	}
	req.Normalize()
	s.Require().NoError(req.Validate())
	return req
}

func (s *EmployeeServiceSuite) TestCreateDerivesBirthFields() {
	employee, err := s.service.Create(s.ctx, s.createRequest())
	s.Require().NoError(err)

	s.Require().NotNil(employee.DateOfBirth)
	s.Require().Equal(time.Date(1995, 1, 15, 0, 0, 0, 0, time.UTC), *employee.DateOfBirth)
	s.Require().Equal(id.GenderMale, employee.Gender)

	s.Run("password is hashed", func() {
		s.Require().NotEqual("correct-horse", employee.PasswordHash)
		s.Require().NoError(bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte("correct-horse")))
	})

	s.Run("audit event carries the actor", func() {
		events := s.drainAudit()
		s.Require().Len(events, 1)
		s.Require().Equal(audit.ActionCreated, events[0].Action)
		s.Require().Equal(employee.ID, events[0].EmployeeID)
		s.Require().Equal(s.actorID, events[0].ActorID)
	})
}

func (s *EmployeeServiceSuite) TestCreateKeepsCallerSuppliedBirthFields() {
	req := s.createRequest()
	// Deliberately disagrees with the digits in the national ID.
	req.DateOfBirth = "1990-06-30"
	req.Gender = "female"
	req.Normalize()
	s.Require().NoError(req.Validate())

	employee, err := s.service.Create(s.ctx, req)
	s.Require().NoError(err)
	s.Require().Equal(time.Date(1990, 6, 30, 0, 0, 0, 0, time.UTC), *employee.DateOfBirth)
	s.Require().Equal(id.GenderFemale, employee.Gender)
}

func (s *EmployeeServiceSuite) TestCreateSkipsDerivationForOtherDocuments() {
	req := s.createRequest()
	req.IdentityType = "passport"
	req.IdentityNumber = "A23456789"
	req.Normalize()
	s.Require().NoError(req.Validate())

	employee, err := s.service.Create(s.ctx, req)
	s.Require().NoError(err)
	s.Require().Nil(employee.DateOfBirth)
	s.Require().Empty(employee.Gender)
}

func (s *EmployeeServiceSuite) TestCreateConflict() {
	_, err := s.service.Create(s.ctx, s.createRequest())
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, s.createRequest())
	s.Require().Error(err)
	s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *EmployeeServiceSuite) TestGet() {
	created, err := s.service.Create(s.ctx, s.createRequest())
	s.Require().NoError(err)

	s.Run("found", func() {
		employee, err := s.service.Get(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Require().Equal(created.PhoneNumber1, employee.PhoneNumber1)
	})

	s.Run("unknown", func() {
		_, err := s.service.Get(s.ctx, id.NewEmployeeID())
		s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("nil id", func() {
		_, err := s.service.Get(s.ctx, id.EmployeeID{})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *EmployeeServiceSuite) TestProfile() {
	created, err := s.service.Create(s.ctx, s.createRequest())
	s.Require().NoError(err)

	ctx := requestcontext.WithEmployeeID(context.Background(), created.ID)
	employee, err := s.service.Profile(ctx)
	s.Require().NoError(err)
	s.Require().Equal(created.ID, employee.ID)

	_, err = s.service.Profile(context.Background())
	s.Require().True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *EmployeeServiceSuite) TestUpdateRerunsDerivation() {
	created, err := s.service.Create(s.ctx, s.createRequest())
	s.Require().NoError(err)
	s.drainAudit()

	req := &models.UpdateEmployeeRequest{
		PhoneNumber1:   created.PhoneNumber1,
		FirstName:      "Nour",
		RestOfName:     "El Din",
		DateJoined:     created.DateJoined,
		IdentityType:   "nid",
		IdentityNumber: "29501151234528",
	}
	req.Normalize()
	s.Require().NoError(req.Validate())

	updated, err := s.service.Update(s.ctx, created.ID, req)
	s.Require().NoError(err)

	// The update cleared dob and gender, so both derive from the new NID.
	s.Require().NotNil(updated.DateOfBirth)
	s.Require().Equal(time.Date(1995, 1, 15, 0, 0, 0, 0, time.UTC), *updated.DateOfBirth)
	s.Require().Equal(id.GenderFemale, updated.Gender)

	events := s.drainAudit()
	s.Require().Len(events, 1)
	s.Require().Equal(audit.ActionUpdated, events[0].Action)
}

func (s *EmployeeServiceSuite) TestUpdateKeepsCallerSuppliedGender() {
	created, err := s.service.Create(s.ctx, s.createRequest())
	s.Require().NoError(err)

	req := &models.UpdateEmployeeRequest{
		PhoneNumber1:   created.PhoneNumber1,
		FirstName:      "Nour",
		RestOfName:     "El Din",
		DateJoined:     created.DateJoined,
		Gender:         "male",
		IdentityType:   "nid",
		IdentityNumber: "29501151234528",
	}
	req.Normalize()
	s.Require().NoError(req.Validate())

	updated, err := s.service.Update(s.ctx, created.ID, req)
	s.Require().NoError(err)
	// Digit parity says female; the caller said male and wins.
	s.Require().Equal(id.GenderMale, updated.Gender)
}

func (s *EmployeeServiceSuite) TestUpdateUnknownEmployee() {
	req := &models.UpdateEmployeeRequest{
		PhoneNumber1:   "+201112345678",
		FirstName:      "Salma",
		RestOfName:     "Ahmed",
		DateJoined:     time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		IdentityType:   "other",
		IdentityNumber: "X1",
	}
	req.Normalize()
	s.Require().NoError(req.Validate())

	_, err := s.service.Update(s.ctx, id.NewEmployeeID(), req)
	s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *EmployeeServiceSuite) TestPatch() {
	created, err := s.service.Create(s.ctx, s.createRequest())
	s.Require().NoError(err)
	s.drainAudit()

	s.Run("untouched fields survive", func() {
		role := "engineer"
		patched, err := s.service.Patch(s.ctx, created.ID, &models.PatchEmployeeRequest{Role: &role})
		s.Require().NoError(err)
		s.Require().Equal("engineer", patched.Role)
		s.Require().Equal(created.PhoneNumber1, patched.PhoneNumber1)
		s.Require().Equal(created.IdentityNumber, patched.IdentityNumber)
		s.Require().NotNil(patched.DateOfBirth)
		s.Require().Equal(*created.DateOfBirth, *patched.DateOfBirth)
		s.Require().Equal(created.Gender, patched.Gender)
	})

	s.Run("merged payload is validated", func() {
		phone := "+14155552671"
		_, err := s.service.Patch(s.ctx, created.ID, &models.PatchEmployeeRequest{PhoneNumber1: &phone})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown employee", func() {
		role := "engineer"
		_, err := s.service.Patch(s.ctx, id.NewEmployeeID(), &models.PatchEmployeeRequest{Role: &role})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("audited as an update", func() {
		events := s.drainAudit()
		s.Require().Len(events, 1)
		s.Require().Equal(audit.ActionUpdated, events[0].Action)
	})
}

func (s *EmployeeServiceSuite) TestDeactivate() {
	created, err := s.service.Create(s.ctx, s.createRequest())
	s.Require().NoError(err)
	s.drainAudit()

	s.Require().NoError(s.service.Deactivate(s.ctx, created.ID))

	s.Run("record is soft-deleted", func() {
		employee, err := s.service.Get(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Require().False(employee.IsActive)
	})

	s.Run("outstanding tokens are revoked", func() {
		revoked, err := s.revocations.IsRevoked(s.ctx, created.ID, s.now.Add(-time.Minute))
		s.Require().NoError(err)
		s.Require().True(revoked)
	})

	s.Run("audited", func() {
		events := s.drainAudit()
		s.Require().Len(events, 1)
		s.Require().Equal(audit.ActionDeactivated, events[0].Action)
	})
}

func (s *EmployeeServiceSuite) TestDeactivateSelfRejected() {
	err := s.service.Deactivate(s.ctx, s.actorID)
	s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *EmployeeServiceSuite) TestActivate() {
	created, err := s.service.Create(s.ctx, s.createRequest())
	s.Require().NoError(err)
	s.Require().NoError(s.service.Deactivate(s.ctx, created.ID))

	s.Require().NoError(s.service.Activate(s.ctx, created.ID))
	employee, err := s.service.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().True(employee.IsActive)
}

func (s *EmployeeServiceSuite) TestSetPassword() {
	created, err := s.service.Create(s.ctx, s.createRequest())
	s.Require().NoError(err)
	s.drainAudit()

	req := &models.SetPasswordRequest{NewPassword: "new-correct-horse", ReNewPassword: "new-correct-horse"}
	s.Require().NoError(req.Validate())
	s.Require().NoError(s.service.SetPassword(s.ctx, created.ID, req))

	s.Run("credential replaced", func() {
		employee, err := s.service.Get(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Require().NoError(bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte("new-correct-horse")))
	})

	s.Run("old sessions revoked", func() {
		revoked, err := s.revocations.IsRevoked(s.ctx, created.ID, s.now.Add(-time.Minute))
		s.Require().NoError(err)
		s.Require().True(revoked)
	})

	s.Run("audited", func() {
		events := s.drainAudit()
		s.Require().Len(events, 1)
		s.Require().Equal(audit.ActionPasswordSet, events[0].Action)
	})
}
