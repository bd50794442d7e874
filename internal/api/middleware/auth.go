package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// ContextKeyUser is the echo context key holding the resolved *domain.User.
const ContextKeyUser = "user"

// TokenResolver turns a bearer token into the user it was issued for.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// Auth resolves the bearer token and injects the caller into context.
// Every failure is reported as domain.ErrUnauthorized.
func Auth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrUnauthorized
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.ErrUnauthorized
			}

			user, err := resolver.Resolve(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// CurrentUser returns the caller stored by Auth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(ContextKeyUser).(*domain.User)
	return user
}
