package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/domain"
)

type stubAuthorizer struct{}

func (stubAuthorizer) Authorize(identity *domain.User, required domain.Role) error {
	if identity == nil {
		return domain.ErrUnauthorized
	}
	if identity.Role != required {
		return &domain.RoleError{Role: identity.Role}
	}
	return nil
}

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyUser, &domain.User{Username: "root", Role: domain.RoleAdmin})

	called := false
	handler := RequireRole(stubAuthorizer{}, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(ContextKeyUser, &domain.User{Username: "lm9", Role: domain.RoleUser})

	err := RequireRole(stubAuthorizer{}, domain.RoleAdmin)(unreachable(t))(c)

	var roleErr *domain.RoleError
	if !errors.As(err, &roleErr) || roleErr.Role != domain.RoleUser {
		t.Fatalf("expected RoleError for User, got %v", err)
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected error to unwrap to ErrForbidden")
	}
}

func TestRequireRole_NoCaller(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := RequireRole(stubAuthorizer{}, domain.RoleAdmin)(unreachable(t))(c)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
