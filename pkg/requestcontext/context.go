// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services and handlers read them. Keeping the
// package free of net/http lets services import only what they need.
//
// Usage in services (read values):
//
//	employeeID := requestcontext.EmployeeID(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithEmployeeID(ctx, employeeID)
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "kader/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	employeeIDKey  struct{}
	staffKey       struct{}
	tokenIssuedKey struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// EmployeeID retrieves the authenticated employee ID from the context.
// Returns the zero value (nil UUID) if not set.
func EmployeeID(ctx context.Context) id.EmployeeID {
	if employeeID, ok := ctx.Value(employeeIDKey{}).(id.EmployeeID); ok {
		return employeeID
	}
	return id.EmployeeID{}
}

// WithEmployeeID injects an employee ID into the context.
func WithEmployeeID(ctx context.Context, employeeID id.EmployeeID) context.Context {
	return context.WithValue(ctx, employeeIDKey{}, employeeID)
}

// Staff reports whether the authenticated caller carries the staff role.
func Staff(ctx context.Context) bool {
	if staff, ok := ctx.Value(staffKey{}).(bool); ok {
		return staff
	}
	return false
}

// WithStaff marks the context as belonging to a staff caller.
func WithStaff(ctx context.Context, staff bool) context.Context {
	return context.WithValue(ctx, staffKey{}, staff)
}

// TokenIssuedAt retrieves the issue time of the access token that
// authenticated this request. Zero when unauthenticated.
func TokenIssuedAt(ctx context.Context) time.Time {
	if t, ok := ctx.Value(tokenIssuedKey{}).(time.Time); ok {
		return t
	}
	return time.Time{}
}

// WithTokenIssuedAt injects the token issue time into the context.
func WithTokenIssuedAt(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, tokenIssuedKey{}, t)
}

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
// Useful for service unit tests that don't run the full middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	ctx = context.WithValue(ctx, userAgentKey{}, userAgent)
	return ctx
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the request-scoped time from context. Falls back to
// time.Now() for non-HTTP contexts (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context so a whole request observes
// one consistent clock reading.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
