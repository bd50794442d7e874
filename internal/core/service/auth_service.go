package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/useraccounts/user-service/internal/core/domain"
	"github.com/useraccounts/user-service/internal/core/ports"
	"github.com/useraccounts/user-service/internal/pkg/metrics"
)

// dummyPassword is hashed once at startup so that a login for an unknown
// username costs one bcrypt comparison, same as a wrong password.
const dummyPassword = "user-service-timing-guard"

// AuthService implements login, bearer-token resolution and role checks.
type AuthService struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenCodec
	tokenTTL  time.Duration
	activity  ports.ActivityRecorder
	log       zerolog.Logger
	dummyHash string
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenCodec,
	tokenTTL time.Duration,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *AuthService {
	if activity == nil {
		activity = ports.NopActivityRecorder{}
	}
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		log.Warn().Err(err).Msg("failed to prepare timing guard hash")
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		tokenTTL:  tokenTTL,
		activity:  activity,
		log:       log,
		dummyHash: dummy,
	}
}

// Authenticate returns the user matching username and password. Unknown
// usernames, wrong passwords and disabled accounts all fail with
// domain.ErrInvalidCredentials; only the logs tell them apart.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			s.reject(username, "unknown_user")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.reject(username, "wrong_password")
		return nil, domain.ErrInvalidCredentials
	}
	if user.Role == domain.RoleDisabled {
		s.reject(username, "disabled")
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the user and issues a bearer token for them.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Token, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			s.activity.Record(domain.ActivityEvent{
				Type:       domain.ActivityLoginFailure,
				Username:   username,
				OccurredAt: time.Now().UTC(),
			})
		}
		return nil, err
	}

	signed, err := s.tokens.Encode(user.Username, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.activity.Record(domain.ActivityEvent{
		Type:       domain.ActivityLoginSuccess,
		Username:   user.Username,
		UserID:     user.ID,
		Actor:      user.Username,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Str("username", user.Username).Msg("user logged in")

	return &domain.Token{AccessToken: signed, TokenType: domain.TokenTypeBearer}, nil
}

// Resolve decodes a bearer token and re-reads the user it names. Every
// token or lookup problem collapses to domain.ErrUnauthorized; store
// failures are returned as-is.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("bearer token rejected")
		metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		metrics.AuthFailuresTotal.WithLabelValues("missing_subject").Inc()
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("username", claims.Subject).Msg("token subject no longer exists")
			metrics.AuthFailuresTotal.WithLabelValues("stale_subject").Inc()
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if user.Role == domain.RoleDisabled {
		metrics.AuthFailuresTotal.WithLabelValues("disabled").Inc()
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

func (s *AuthService) Authorize(identity *domain.User, required domain.Role) error {
	if err := Authorize(identity, required); err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
		return err
	}
	return nil
}

func (s *AuthService) reject(username, reason string) {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	s.log.Debug().Str("username", username).Str("reason", reason).Msg("login rejected")
}
