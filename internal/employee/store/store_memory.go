package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"kader/internal/employee/models"
	id "kader/pkg/domain"
	"kader/pkg/platform/sentinel"
)

// InMemoryStore keeps employee records in process memory. Used in tests and
// local development; safe for concurrent use.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.EmployeeID]*models.Employee
	now     func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[id.EmployeeID]*models.Employee),
		now:     time.Now,
	}
}

// WithClock overrides the timestamp source for tests.
func (s *InMemoryStore) WithClock(now func() time.Time) *InMemoryStore {
	s.now = now
	return s
}

func (s *InMemoryStore) Create(_ context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[employee.ID]; ok {
		return sentinel.ErrConflict
	}
	for _, existing := range s.records {
		if collides(existing, employee) {
			return sentinel.ErrConflict
		}
	}

	stored := employee.Clone()
	now := s.now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.records[stored.ID] = stored

	employee.CreatedAt = stored.CreatedAt
	employee.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[employee.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for otherID, existing := range s.records {
		if otherID == employee.ID {
			continue
		}
		if collides(existing, employee) {
			return sentinel.ErrConflict
		}
	}

	stored := employee.Clone()
	stored.CreatedAt = current.CreatedAt
	stored.PasswordHash = current.PasswordHash
	stored.UpdatedAt = s.now().UTC()
	s.records[stored.ID] = stored

	employee.CreatedAt = stored.CreatedAt
	employee.UpdatedAt = stored.UpdatedAt
	return nil
}

// collides reports a uniqueness clash between two records. Email is only
// unique when set, mirroring the partial index in Postgres.
func collides(existing, candidate *models.Employee) bool {
	if existing.PhoneNumber1 == candidate.PhoneNumber1 || existing.IdentityNumber == candidate.IdentityNumber {
		return true
	}
	return candidate.Email != "" && existing.Email == candidate.Email
}

func (s *InMemoryStore) FindByID(_ context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, ok := s.records[employeeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return employee.Clone(), nil
}

func (s *InMemoryStore) FindByPhone(_ context.Context, phoneNumber string) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, employee := range s.records {
		if employee.PhoneNumber1 == phoneNumber {
			return employee.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByIdentityNumber(_ context.Context, identityNumber string) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, employee := range s.records {
		if employee.IdentityNumber == identityNumber {
			return employee.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]*models.Employee, 0, len(s.records))
	for _, employee := range s.records {
		employees = append(employees, employee.Clone())
	}
	sort.Slice(employees, func(i, j int) bool {
		if !employees[i].CreatedAt.Equal(employees[j].CreatedAt) {
			return employees[i].CreatedAt.After(employees[j].CreatedAt)
		}
		return employees[i].ID.String() > employees[j].ID.String()
	})
	return employees, nil
}

func (s *InMemoryStore) SetActive(_ context.Context, employeeID id.EmployeeID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee, ok := s.records[employeeID]
	if !ok {
		return sentinel.ErrNotFound
	}
	employee.IsActive = active
	employee.UpdatedAt = s.now().UTC()
	return nil
}

func (s *InMemoryStore) SetPasswordHash(_ context.Context, employeeID id.EmployeeID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee, ok := s.records[employeeID]
	if !ok {
		return sentinel.ErrNotFound
	}
	employee.PasswordHash = passwordHash
	employee.UpdatedAt = s.now().UTC()
	return nil
}
