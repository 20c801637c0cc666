package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kader/internal/audit"
	"kader/internal/employee/models"
	id "kader/pkg/domain"
	"kader/pkg/platform/httputil"
	"kader/pkg/requestcontext"
)

// Service defines the employee operations the handler exposes.
type Service interface {
	Create(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error)
	Get(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error)
	Profile(ctx context.Context) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
	FindByIdentityNumber(ctx context.Context, identityNumber string) (*models.Employee, error)
	Update(ctx context.Context, employeeID id.EmployeeID, req *models.UpdateEmployeeRequest) (*models.Employee, error)
	Patch(ctx context.Context, employeeID id.EmployeeID, req *models.PatchEmployeeRequest) (*models.Employee, error)
	Deactivate(ctx context.Context, employeeID id.EmployeeID) error
	Activate(ctx context.Context, employeeID id.EmployeeID) error
	SetPassword(ctx context.Context, employeeID id.EmployeeID, req *models.SetPasswordRequest) error
}

// AuditLister exposes the audit trail for the staff-facing history endpoint.
type AuditLister interface {
	ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]audit.Event, error)
}

// Handler wires employee endpoints to the employee service.
type Handler struct {
	service Service
	trail   AuditLister
	logger  *slog.Logger
}

func New(service Service, trail AuditLister, logger *slog.Logger) *Handler {
	return &Handler{service: service, trail: trail, logger: logger}
}

// Register mounts the endpoints available to any authenticated employee.
func (h *Handler) Register(r chi.Router) {
	r.Get("/employees/me", h.HandleProfile)
}

// RegisterStaff mounts the management endpoints; the caller wraps the router
// in the staff-only middleware.
func (h *Handler) RegisterStaff(r chi.Router) {
	r.Get("/employees", h.HandleList)
	r.Post("/employees", h.HandleCreate)
	r.Get("/employees/{employeeID}", h.HandleGet)
	r.Put("/employees/{employeeID}", h.HandleUpdate)
	r.Patch("/employees/{employeeID}", h.HandlePatch)
	r.Delete("/employees/{employeeID}", h.HandleDeactivate)
	r.Post("/employees/{employeeID}/activate", h.HandleActivate)
	r.Post("/employees/{employeeID}/set-password", h.HandleSetPassword)
	r.Get("/employees/{employeeID}/audit", h.HandleAudit)
}

// HandleProfile handles GET /employees/me requests.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employee, err := h.service.Profile(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewEmployeeResponse(employee))
}

// HandleList handles GET /employees requests. An identity_number query
// parameter narrows the listing to the single matching record.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if identityNumber := r.URL.Query().Get("identity_number"); identityNumber != "" {
		employee, err := h.service.FindByIdentityNumber(ctx, identityNumber)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, models.NewEmployeeListResponse([]*models.Employee{employee}))
		return
	}

	employees, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "listing employees failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewEmployeeListResponse(employees))
}

// HandleCreate handles POST /employees requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[models.CreateEmployeeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	employee, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "employee creation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "employee created",
		"request_id", requestID,
		"employee_id", employee.ID.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, models.NewEmployeeResponse(employee))
}

// HandleGet handles GET /employees/{employeeID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	employee, err := h.service.Get(ctx, employeeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewEmployeeResponse(employee))
}

// HandleUpdate handles PUT /employees/{employeeID} requests.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.UpdateEmployeeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	employee, err := h.service.Update(ctx, employeeID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "employee update failed",
			"request_id", requestID,
			"employee_id", employeeID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewEmployeeResponse(employee))
}

// HandlePatch handles PATCH /employees/{employeeID} requests, the partial
// update. Absent fields keep their stored values.
func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.PatchEmployeeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	employee, err := h.service.Patch(ctx, employeeID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "employee patch failed",
			"request_id", requestID,
			"employee_id", employeeID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewEmployeeResponse(employee))
}

// HandleDeactivate handles DELETE /employees/{employeeID} requests. Deletion
// is soft: the record stays, login and token checks start failing.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Deactivate(ctx, employeeID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "employee deactivated"})
}

// HandleActivate handles POST /employees/{employeeID}/activate requests.
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Activate(ctx, employeeID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "employee activated"})
}

// HandleSetPassword handles POST /employees/{employeeID}/set-password
// requests, the administrative reset.
func (h *Handler) HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.SetPasswordRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SetPassword(ctx, employeeID, req); err != nil {
		h.logger.ErrorContext(ctx, "password reset failed",
			"request_id", requestID,
			"employee_id", employeeID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.MessageResponse{Message: "password updated"})
}

type auditEventResponse struct {
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actor_id,omitempty"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// HandleAudit handles GET /employees/{employeeID}/audit requests.
func (h *Handler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.trail.ListByEmployee(ctx, employeeID)
	if err != nil {
		h.logger.ErrorContext(ctx, "listing audit trail failed",
			"request_id", requestcontext.RequestID(ctx),
			"employee_id", employeeID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	out := make([]auditEventResponse, 0, len(events))
	for _, event := range events {
		resp := auditEventResponse{
			Timestamp: event.Timestamp,
			Action:    event.Action,
			Detail:    event.Detail,
			ClientIP:  event.ClientIP,
			UserAgent: event.UserAgent,
			RequestID: event.RequestID,
		}
		if !event.ActorID.IsNil() {
			resp.ActorID = event.ActorID.String()
		}
		out = append(out, resp)
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
