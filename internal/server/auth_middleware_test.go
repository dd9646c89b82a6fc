package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SUSHIbit/ProjectRara/internal/domain"
	"github.com/SUSHIbit/ProjectRara/internal/server/authctx"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func accessClaims(role domain.UserRole) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":        "42",
		"email":      "staff@example.com",
		"role":       string(role),
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}
}

func protectedHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := authctx.FromContext(r.Context())
		if u == nil {
			t.Error("no current user in context")
		} else if u.ID != 42 {
			t.Errorf("user id = %d, want 42", u.ID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	h := AuthMiddleware(testSecret)(protectedHandler(t))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendance/status", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	h := AuthMiddleware(testSecret)(protectedHandler(t))
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/attendance/status", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", accessClaims(domain.RoleEmployee)))
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	h := AuthMiddleware(testSecret)(protectedHandler(t))
	rec := httptest.NewRecorder()

	claims := accessClaims(domain.RoleEmployee)
	claims["token_type"] = "refresh"
	req := httptest.NewRequest(http.MethodGet, "/attendance/status", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareAcceptsAccessToken(t *testing.T) {
	h := AuthMiddleware(testSecret)(protectedHandler(t))
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/attendance/status", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, accessClaims(domain.RoleEmployee)))
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name string
		role domain.UserRole
		perm domain.Permission
		want int
	}{
		{"employee can record services", domain.RoleEmployee, domain.PermServiceWrite, http.StatusOK},
		{"employee cannot read sales", domain.RoleEmployee, domain.PermSalesRead, http.StatusForbidden},
		{"manager can read sales", domain.RoleManager, domain.PermSalesRead, http.StatusOK},
		{"manager can manage benefits", domain.RoleManager, domain.PermBenefitAdmin, http.StatusOK},
		{"customer cannot clock in", domain.RoleCustomer, domain.PermAttendanceSelf, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := AuthMiddleware(testSecret)(RequirePermission(tt.perm)(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
			)))
			rec := httptest.NewRecorder()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, accessClaims(tt.role)))
			chain.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequirePermissionWithoutAuth(t *testing.T) {
	h := RequirePermission(domain.PermSalesRead)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
