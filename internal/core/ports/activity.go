package ports

import (
	"context"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// ActivityRecorder accepts account activity for asynchronous persistence.
// Implementations must not block the calling request.
type ActivityRecorder interface {
	Record(event domain.ActivityEvent)
}

// NopActivityRecorder discards every event.
type NopActivityRecorder struct{}

func (NopActivityRecorder) Record(domain.ActivityEvent) {}

// ActivityProcessor persists a dequeued activity event.
type ActivityProcessor interface {
	Process(ctx context.Context, event domain.ActivityEvent) error
}
