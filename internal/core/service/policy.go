package service

import "github.com/useraccounts/user-service/internal/core/domain"

// Authorize succeeds only when identity holds exactly the required role.
// A mismatch yields a *domain.RoleError naming the caller's actual role.
func Authorize(identity *domain.User, required domain.Role) error {
	if identity == nil {
		return domain.ErrUnauthorized
	}
	if identity.Role != required {
		return &domain.RoleError{Role: identity.Role}
	}
	return nil
}
