package auth_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	id "kader/pkg/domain"
	authmw "kader/pkg/platform/middleware/auth"
	"kader/pkg/platform/middleware/auth/mocks"
	"kader/pkg/requestcontext"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func okHandler(t *testing.T, sawRequest *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*sawRequest = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	employeeID := id.NewEmployeeID()
	issuedAt := time.Now().Add(-time.Minute)
	claims := &authmw.JWTClaims{
		EmployeeID: employeeID.String(),
		Staff:      true,
		JTI:        "jti-1",
		IssuedAt:   issuedAt,
	}

	t.Run("missing header is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := mocks.NewMockTokenValidator(ctrl)

		var saw bool
		handler := authmw.RequireAuth(validator, nil, discardLogger())(okHandler(t, &saw))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/me", nil))

		if rec.Code != http.StatusUnauthorized || saw {
			t.Fatalf("expected 401 without reaching handler, got %d (saw=%v)", rec.Code, saw)
		}
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := mocks.NewMockTokenValidator(ctrl)
		validator.EXPECT().ValidateToken("bad-token").Return(nil, errors.New("invalid token"))

		var saw bool
		handler := authmw.RequireAuth(validator, nil, discardLogger())(okHandler(t, &saw))
		req := httptest.NewRequest(http.MethodGet, "/employees/me", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized || saw {
			t.Fatalf("expected 401, got %d (saw=%v)", rec.Code, saw)
		}
	})

	t.Run("valid token seeds the context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := mocks.NewMockTokenValidator(ctrl)
		validator.EXPECT().ValidateToken("good-token").Return(claims, nil)
		revocations := mocks.NewMockRevocationChecker(ctrl)
		revocations.EXPECT().IsRevoked(gomock.Any(), employeeID, issuedAt).Return(false, nil)

		var gotEmployee id.EmployeeID
		var gotStaff bool
		handler := authmw.RequireAuth(validator, revocations, discardLogger())(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotEmployee = requestcontext.EmployeeID(r.Context())
				gotStaff = requestcontext.Staff(r.Context())
				w.WriteHeader(http.StatusOK)
			}))
		req := httptest.NewRequest(http.MethodGet, "/employees/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotEmployee != employeeID || !gotStaff {
			t.Fatalf("context not seeded: employee=%v staff=%v", gotEmployee, gotStaff)
		}
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := mocks.NewMockTokenValidator(ctrl)
		validator.EXPECT().ValidateToken("good-token").Return(claims, nil)
		revocations := mocks.NewMockRevocationChecker(ctrl)
		revocations.EXPECT().IsRevoked(gomock.Any(), employeeID, issuedAt).Return(true, nil)

		var saw bool
		handler := authmw.RequireAuth(validator, revocations, discardLogger())(okHandler(t, &saw))
		req := httptest.NewRequest(http.MethodGet, "/employees/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized || saw {
			t.Fatalf("expected 401 for revoked token, got %d (saw=%v)", rec.Code, saw)
		}
	})

	t.Run("revocation check failure is a server error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := mocks.NewMockTokenValidator(ctrl)
		validator.EXPECT().ValidateToken("good-token").Return(claims, nil)
		revocations := mocks.NewMockRevocationChecker(ctrl)
		revocations.EXPECT().IsRevoked(gomock.Any(), employeeID, issuedAt).Return(false, errors.New("redis down"))

		var saw bool
		handler := authmw.RequireAuth(validator, revocations, discardLogger())(okHandler(t, &saw))
		req := httptest.NewRequest(http.MethodGet, "/employees/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError || saw {
			t.Fatalf("expected 500, got %d (saw=%v)", rec.Code, saw)
		}
	})
}

func TestRequireStaff(t *testing.T) {
	t.Run("staff passes", func(t *testing.T) {
		var saw bool
		handler := authmw.RequireStaff(discardLogger())(okHandler(t, &saw))
		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req = req.WithContext(requestcontext.WithStaff(req.Context(), true))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || !saw {
			t.Fatalf("expected staff to pass, got %d", rec.Code)
		}
	})

	t.Run("non-staff is forbidden", func(t *testing.T) {
		var saw bool
		handler := authmw.RequireStaff(discardLogger())(okHandler(t, &saw))
		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		req = req.WithContext(requestcontext.WithStaff(req.Context(), false))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden || saw {
			t.Fatalf("expected 403, got %d (saw=%v)", rec.Code, saw)
		}
	})
}
