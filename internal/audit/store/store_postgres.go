package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"kader/internal/audit"
	id "kader/pkg/domain"
)

// PostgresStore persists audit events in the audit_events table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (
			id, timestamp, employee_id, actor_id, action, detail,
			client_ip, user_agent, request_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		event.Timestamp,
		nullUUID(event.EmployeeID),
		nullUUID(event.ActorID),
		event.Action,
		event.Detail,
		event.ClientIP,
		event.UserAgent,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]audit.Event, error) {
	query := `
		SELECT timestamp, employee_id, actor_id, action, detail,
			   client_ip, user_agent, request_id
		FROM audit_events
		WHERE employee_id = $1
		ORDER BY timestamp DESC`

	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(employeeID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			event   audit.Event
			subject *uuid.UUID
			actor   *uuid.UUID
		)
		err := rows.Scan(
			&event.Timestamp,
			&subject,
			&actor,
			&event.Action,
			&event.Detail,
			&event.ClientIP,
			&event.UserAgent,
			&event.RequestID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if subject != nil {
			event.EmployeeID = id.EmployeeID(*subject)
		}
		if actor != nil {
			event.ActorID = id.EmployeeID(*actor)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

func nullUUID(employeeID id.EmployeeID) *uuid.UUID {
	if employeeID.IsNil() {
		return nil
	}
	u := uuid.UUID(employeeID)
	return &u
}
