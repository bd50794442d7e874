package ports

import (
	"context"
	"time"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// PasswordHasher produces and checks one-way salted credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, credential string) bool
}

// TokenCodec signs and verifies access tokens.
type TokenCodec interface {
	// Encode signs claims for subject. A zero lifetime selects the codec default.
	Encode(subject string, lifetime time.Duration) (string, error)
	// Decode fails with domain.ErrInvalidToken on any signature, format or
	// expiry problem.
	Decode(token string) (*domain.Claims, error)
}

// AuthService covers login, bearer-token resolution and role checks.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.Token, error)
	Resolve(ctx context.Context, token string) (*domain.User, error)
	Authorize(identity *domain.User, required domain.Role) error
}
