package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// Authorizer checks a resolved caller against a required role.
type Authorizer interface {
	Authorize(identity *domain.User, required domain.Role) error
}

// RequireRole enforces role-based access control. It must run after Auth.
func RequireRole(authorizer Authorizer, role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authorizer.Authorize(CurrentUser(c), role); err != nil {
				return err
			}
			return next(c)
		}
	}
}
