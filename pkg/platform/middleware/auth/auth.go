package auth

//go:generate mockgen -source=auth.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	id "kader/pkg/domain"
	"kader/pkg/requestcontext"
)

// TokenValidator defines the interface for validating JWT tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// RevocationChecker defines the interface for checking whether an employee's
// tokens issued at a given time have been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, employeeID id.EmployeeID, issuedAt time.Time) (bool, error)
}

// JWTClaims represents the claims we expect from the token validator.
type JWTClaims struct {
	EmployeeID string
	Staff      bool
	JTI        string
	IssuedAt   time.Time
}

// writeJSONError writes a JSON error response with the given status code and
// error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAuth authenticates the request from its Bearer token and seeds the
// request context with the employee identity. When a revocation checker is
// supplied, tokens issued at or before the employee's revocation watermark
// are rejected even if cryptographically valid.
func RequireAuth(validator TokenValidator, revocations RevocationChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			employeeID, err := id.ParseEmployeeID(claims.EmployeeID)
			if err != nil || employeeID.IsNil() {
				logger.WarnContext(ctx, "unauthorized access - malformed subject",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			if revocations != nil {
				revoked, err := revocations.IsRevoked(ctx, employeeID, claims.IssuedAt)
				if err != nil {
					logger.ErrorContext(ctx, "failed to check token revocation",
						"error", err,
						"request_id", requestID,
					)
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to validate token")
					return
				}
				if revoked {
					logger.WarnContext(ctx, "unauthorized access - token revoked",
						"employee_id", employeeID.String(),
						"request_id", requestID,
					)
					writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Token has been revoked")
					return
				}
			}

			ctx = requestcontext.WithEmployeeID(ctx, employeeID)
			ctx = requestcontext.WithStaff(ctx, claims.Staff)
			ctx = requestcontext.WithTokenIssuedAt(ctx, claims.IssuedAt)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff gates the admin surface on the staff claim. Mount after
// RequireAuth.
func RequireStaff(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !requestcontext.Staff(ctx) {
				logger.WarnContext(ctx, "forbidden - staff role required",
					"employee_id", requestcontext.EmployeeID(ctx).String(),
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusForbidden, "forbidden", "Staff role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
