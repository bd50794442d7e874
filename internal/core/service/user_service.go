package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/useraccounts/user-service/internal/core/domain"
	"github.com/useraccounts/user-service/internal/core/ports"
	"github.com/useraccounts/user-service/internal/pkg/metrics"
)

// DefaultListLimit caps List when no limit is configured.
const DefaultListLimit = 50

// UserService implements the user directory operations.
type UserService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	reserver  ports.UsernameReserver
	activity  ports.ActivityRecorder
	listLimit int64
	log       zerolog.Logger
	newID     func() string
}

// NewUserService returns a UserService. reserver may be nil, in which case
// username uniqueness rests on the pre-insert lookup and the store index.
func NewUserService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	reserver ports.UsernameReserver,
	activity ports.ActivityRecorder,
	listLimit int,
	log zerolog.Logger,
) *UserService {
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	if activity == nil {
		activity = ports.NopActivityRecorder{}
	}
	return &UserService{
		repo:      repo,
		hasher:    hasher,
		reserver:  reserver,
		activity:  activity,
		listLimit: int64(listLimit),
		log:       log,
		newID:     uuid.NewString,
	}
}

// Create hashes the password, checks the username is free, forces the role
// to User and inserts the record. The stored record is re-read and returned
// as its basic projection.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.BasicUser, error) {
	if input.FirstName == "" || input.LastName == "" || input.Username == "" || input.Password == "" {
		return nil, domain.ErrMissingField
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	if s.reserver != nil {
		held, err := s.reserver.Reserve(ctx, input.Username)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("username", input.Username).Msg("username reservation failed, continuing")
		case !held:
			return nil, domain.ErrUsernameTaken
		default:
			defer s.release(context.WithoutCancel(ctx), input.Username)
		}
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	id := input.ID
	if id == "" {
		id = s.newID()
	}
	user := &domain.User{
		ID:           id,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch created user: %w", err)
	}

	metrics.UsersCreatedTotal.Inc()
	s.record(domain.ActivityUserCreated, created, "")
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")

	basic := created.Basic()
	return &basic, nil
}

// List returns at most the configured number of users.
func (s *UserService) List(ctx context.Context) ([]domain.BasicUser, error) {
	users, err := s.repo.List(ctx, s.listLimit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.BasicUser, len(users))
	for i, u := range users {
		out[i] = u.Basic()
	}
	return out, nil
}

// GetByID returns the full record. Only Admin callers are allowed.
func (s *UserService) GetByID(ctx context.Context, id string, caller *domain.User) (*domain.User, error) {
	if err := Authorize(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateSelf applies the supplied fields to the caller's own record. An
// empty patch is a no-op that returns the caller unchanged.
func (s *UserService) UpdateSelf(ctx context.Context, input ports.UpdateUserInput, caller *domain.User) (*domain.BasicUser, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	for _, v := range []*string{input.FirstName, input.LastName, input.Username, input.Password} {
		if v != nil && *v == "" {
			return nil, domain.ErrMissingField
		}
	}

	patch := ports.UserPatch{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
	}
	if input.Password != nil {
		hash, err := s.hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	if patch.Empty() {
		basic := caller.Basic()
		return &basic, nil
	}

	matched, err := s.repo.Update(ctx, caller.ID, patch)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, domain.ErrUserNotFound
	}

	updated, err := s.repo.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	s.record(domain.ActivityUserUpdated, updated, caller.Username)
	s.log.Info().Str("user_id", updated.ID).Msg("user updated")

	basic := updated.Basic()
	return &basic, nil
}

// Delete removes the record with id. Only Admin callers are allowed.
func (s *UserService) Delete(ctx context.Context, id string, caller *domain.User) error {
	if err := Authorize(caller, domain.RoleAdmin); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrUserNotFound
	}

	metrics.UsersDeletedTotal.Inc()
	s.activity.Record(domain.ActivityEvent{
		Type:       domain.ActivityUserDeleted,
		UserID:     id,
		Actor:      caller.Username,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", id).Str("actor", caller.Username).Msg("user deleted")
	return nil
}

// ReadSelf projects the already-resolved caller; no store access.
func (s *UserService) ReadSelf(caller *domain.User) domain.BasicUser {
	return caller.Basic()
}

func (s *UserService) hashPassword(plaintext string) (string, error) {
	timer := prometheus.NewTimer(metrics.PasswordHashDuration)
	defer timer.ObserveDuration()
	return s.hasher.Hash(plaintext)
}

func (s *UserService) release(ctx context.Context, username string) {
	if err := s.reserver.Release(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to release username reservation")
	}
}

func (s *UserService) record(typ domain.ActivityType, user *domain.User, actor string) {
	s.activity.Record(domain.ActivityEvent{
		Type:       typ,
		Username:   user.Username,
		UserID:     user.ID,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	})
}
