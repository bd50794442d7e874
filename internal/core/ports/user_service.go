package ports

import (
	"context"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// CreateUserInput carries the fields accepted when creating a user.
// Any role supplied by the caller is ignored.
type CreateUserInput struct {
	ID        string // optional, generated when empty
	FirstName string
	LastName  string
	Username  string
	Password  string
}

// UpdateUserInput carries the plaintext fields a user may change on their
// own record. Nil fields are left unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Username  *string
	Password  *string
}

// UserService defines the user directory operations.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.BasicUser, error)
	List(ctx context.Context) ([]domain.BasicUser, error)
	GetByID(ctx context.Context, id string, caller *domain.User) (*domain.User, error)
	UpdateSelf(ctx context.Context, input UpdateUserInput, caller *domain.User) (*domain.BasicUser, error)
	Delete(ctx context.Context, id string, caller *domain.User) error
	ReadSelf(caller *domain.User) domain.BasicUser
}
