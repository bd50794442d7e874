package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/api/middleware"
	"github.com/useraccounts/user-service/internal/core/domain"
)

// ctxUser returns the caller injected by the Auth middleware. A missing
// caller means the route was registered without Auth; reject with 401.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
