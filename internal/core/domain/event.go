package domain

import "time"

// ActivityType enumerates the account actions recorded in the activity log.
type ActivityType string

const (
	ActivityLoginSuccess ActivityType = "auth.login.success"
	ActivityLoginFailure ActivityType = "auth.login.failure"
	ActivityUserCreated  ActivityType = "user.created"
	ActivityUserUpdated  ActivityType = "user.updated"
	ActivityUserDeleted  ActivityType = "user.deleted"
)

// ActivityEvent is an audit entry for a single account action.
type ActivityEvent struct {
	Type       ActivityType
	Username   string
	UserID     string // optional
	Actor      string // username of the caller, empty for anonymous actions
	OccurredAt time.Time
}
