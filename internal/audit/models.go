package audit

import (
	"time"

	id "kader/pkg/domain"
)

// Actions recorded in the audit trail.
const (
	ActionLogin           = "login"
	ActionLoginFailed     = "login_failed"
	ActionCreated         = "employee_created"
	ActionUpdated         = "employee_updated"
	ActionDeactivated     = "employee_deactivated"
	ActionActivated       = "employee_activated"
	ActionPasswordSet     = "password_set"
	ActionPasswordChanged = "password_changed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time
	EmployeeID id.EmployeeID
	ActorID    id.EmployeeID
	Action     string
	Detail     string
	ClientIP   string
	UserAgent  string
	RequestID  string
}
