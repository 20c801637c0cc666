package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"kader/internal/employee/models"
	id "kader/pkg/domain"
	"kader/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists employee records in Postgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const employeeColumns = `id, phone_number1, phone_number2, first_name, rest_of_name, email,
	password_hash, date_joined, date_of_birth, gender, identity_type, identity_number,
	address, location, role, profile_picture, fingerprint_id,
	is_active, is_staff, is_verified, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, employee *models.Employee) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	_, err := s.db.ExecContext(ctx, query,
		employee.ID.String(),
		employee.PhoneNumber1,
		nullString(employee.PhoneNumber2),
		employee.FirstName,
		employee.RestOfName,
		nullString(employee.Email),
		employee.PasswordHash,
		employee.DateJoined,
		nullTime(employee.DateOfBirth),
		nullString(employee.Gender.String()),
		employee.IdentityType.String(),
		employee.IdentityNumber,
		nullString(employee.Address),
		nullString(employee.Location),
		nullString(employee.Role),
		nullString(employee.ProfilePicture),
		nullString(employee.FingerprintID),
		employee.IsActive,
		employee.IsStaff,
		employee.IsVerified,
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("inserting employee: %w", err)
	}
	employee.CreatedAt = now
	employee.UpdatedAt = now
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, employee *models.Employee) error {
	now := time.Now().UTC()
	query := `
		UPDATE employees SET
			phone_number1 = $2, phone_number2 = $3, first_name = $4, rest_of_name = $5,
			email = $6, date_joined = $7, date_of_birth = $8, gender = $9,
			identity_type = $10, identity_number = $11, address = $12, location = $13,
			role = $14, profile_picture = $15, fingerprint_id = $16,
			is_active = $17, is_staff = $18, is_verified = $19, updated_at = $20
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query,
		employee.ID.String(),
		employee.PhoneNumber1,
		nullString(employee.PhoneNumber2),
		employee.FirstName,
		employee.RestOfName,
		nullString(employee.Email),
		employee.DateJoined,
		nullTime(employee.DateOfBirth),
		nullString(employee.Gender.String()),
		employee.IdentityType.String(),
		employee.IdentityNumber,
		nullString(employee.Address),
		nullString(employee.Location),
		nullString(employee.Role),
		nullString(employee.ProfilePicture),
		nullString(employee.FingerprintID),
		employee.IsActive,
		employee.IsStaff,
		employee.IsVerified,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("updating employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	employee.UpdatedAt = now
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return s.scanEmployee(s.db.QueryRowContext(ctx, query, employeeID.String()))
}

func (s *PostgresStore) FindByPhone(ctx context.Context, phoneNumber string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE phone_number1 = $1`
	return s.scanEmployee(s.db.QueryRowContext(ctx, query, phoneNumber))
}

func (s *PostgresStore) FindByIdentityNumber(ctx context.Context, identityNumber string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE identity_number = $1`
	return s.scanEmployee(s.db.QueryRowContext(ctx, query, identityNumber))
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee, err := s.scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

func (s *PostgresStore) SetActive(ctx context.Context, employeeID id.EmployeeID, active bool) error {
	query := `UPDATE employees SET is_active = $2, updated_at = $3 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, employeeID.String(), active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("setting employee active state: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking active update result: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SetPasswordHash(ctx context.Context, employeeID id.EmployeeID, passwordHash string) error {
	query := `UPDATE employees SET password_hash = $2, updated_at = $3 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, employeeID.String(), passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("setting employee password hash: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking password update result: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanEmployee(row rowScanner) (*models.Employee, error) {
	var (
		employee       models.Employee
		rawID          string
		phone2         sql.NullString
		email          sql.NullString
		dateOfBirth    sql.NullTime
		gender         sql.NullString
		rawType        string
		address        sql.NullString
		location       sql.NullString
		role           sql.NullString
		profilePicture sql.NullString
		fingerprintID  sql.NullString
	)
	err := row.Scan(
		&rawID,
		&employee.PhoneNumber1,
		&phone2,
		&employee.FirstName,
		&employee.RestOfName,
		&email,
		&employee.PasswordHash,
		&employee.DateJoined,
		&dateOfBirth,
		&gender,
		&rawType,
		&employee.IdentityNumber,
		&address,
		&location,
		&role,
		&profilePicture,
		&fingerprintID,
		&employee.IsActive,
		&employee.IsStaff,
		&employee.IsVerified,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning employee: %w", err)
	}

	employee.ID, err = id.ParseEmployeeID(rawID)
	if err != nil {
		return nil, fmt.Errorf("parsing stored employee id: %w", err)
	}
	employee.IdentityType = id.IdentityType(rawType)
	employee.PhoneNumber2 = phone2.String
	employee.Email = email.String
	if dateOfBirth.Valid {
		dob := dateOfBirth.Time.UTC()
		employee.DateOfBirth = &dob
	}
	employee.Gender = id.Gender(gender.String)
	employee.Address = address.String
	employee.Location = location.String
	employee.Role = role.String
	employee.ProfilePicture = profilePicture.String
	employee.FingerprintID = fingerprintID.String
	return &employee, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
