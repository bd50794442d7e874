package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/useraccounts/user-service/internal/core/domain"
)

type stubActivityRepo struct {
	inserted  []domain.ActivityEvent
	insertErr error
}

func (r *stubActivityRepo) InsertActivity(_ context.Context, e *domain.ActivityEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *e)
	return nil
}

func TestActivityService_Process(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	event := domain.ActivityEvent{
		Type:       domain.ActivityLoginSuccess,
		Username:   "lm9",
		UserID:     "u1",
		Actor:      "lm9",
		OccurredAt: time.Now().UTC(),
	}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0] != event {
		t.Fatalf("unexpected inserts: %+v", repo.inserted)
	}
}

func TestActivityService_Process_Invalid(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.ActivityEvent{Username: "lm9"}); err == nil {
		t.Fatalf("expected error for missing type")
	}
	if err := svc.Process(context.Background(), domain.ActivityEvent{Type: domain.ActivityUserDeleted}); err == nil {
		t.Fatalf("expected error for missing subject")
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("invalid events must not be stored")
	}
}

func TestActivityService_Process_RepoError(t *testing.T) {
	boom := errors.New("write failed")
	svc := NewActivityService(&stubActivityRepo{insertErr: boom}, zerolog.Nop())

	err := svc.Process(context.Background(), domain.ActivityEvent{Type: domain.ActivityUserDeleted, UserID: "u1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
