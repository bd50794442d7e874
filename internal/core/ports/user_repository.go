package ports

import (
	"context"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// UserRepository defines the persistence operations on user records.
// Every method maps to exactly one store call.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no record matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no record matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Insert returns domain.ErrUsernameTaken or domain.ErrUserIDTaken when a
	// unique constraint rejects the document.
	Insert(ctx context.Context, user *domain.User) error
	// Update applies a partial update keyed by id and reports how many
	// records matched the filter.
	Update(ctx context.Context, id string, patch UserPatch) (matched int64, err error)
	// Delete reports how many records were removed.
	Delete(ctx context.Context, id string) (deleted int64, err error)
	// List returns at most limit records in store-native order.
	List(ctx context.Context, limit int64) ([]*domain.User, error)
}

// UserPatch carries the already-hashed fields of a partial update.
// Nil fields are left unchanged.
type UserPatch struct {
	FirstName    *string
	LastName     *string
	Username     *string
	PasswordHash *string
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Username == nil && p.PasswordHash == nil
}

// UsernameReserver holds a short-lived claim on a username while a record
// is being created.
type UsernameReserver interface {
	// Reserve reports false when another request already holds the claim.
	Reserve(ctx context.Context, username string) (bool, error)
	Release(ctx context.Context, username string) error
}
