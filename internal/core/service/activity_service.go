package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/useraccounts/user-service/internal/core/domain"
	"github.com/useraccounts/user-service/internal/core/ports"
)

// ActivityService persists account activity dequeued by the dispatcher.
type ActivityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService backed by repo.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log}
}

// Process writes a single activity event to the audit trail.
func (s *ActivityService) Process(ctx context.Context, event domain.ActivityEvent) error {
	if event.Type == "" {
		return fmt.Errorf("process activity: missing event type")
	}
	if event.Username == "" && event.UserID == "" {
		return fmt.Errorf("process activity %s: missing subject", event.Type)
	}

	if err := s.repo.InsertActivity(ctx, &event); err != nil {
		return fmt.Errorf("process activity %s: %w", event.Type, err)
	}

	s.log.Debug().
		Str("type", string(event.Type)).
		Str("username", event.Username).
		Str("actor", event.Actor).
		Msg("activity recorded")

	return nil
}
