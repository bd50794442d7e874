package ports

import (
	"context"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// ActivityRepository persists account activity to the audit collection.
type ActivityRepository interface {
	InsertActivity(ctx context.Context, event *domain.ActivityEvent) error
}
