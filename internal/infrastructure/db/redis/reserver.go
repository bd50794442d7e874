package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// reservationTTL bounds how long a crashed request can hold a username.
const reservationTTL = 30 * time.Second

// UsernameReserver claims usernames in Redis while a user is being created.
// Key format: user:reserve:<username>
type UsernameReserver struct {
	client redis.Cmdable
}

// NewUsernameReserver creates a UsernameReserver wrapping the given client.
func NewUsernameReserver(client redis.Cmdable) *UsernameReserver {
	return &UsernameReserver{client: client}
}

// Reserve reports whether the claim was acquired. It is false when another
// create for the same username is in flight.
func (r *UsernameReserver) Reserve(ctx context.Context, username string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.key(username), "1", reservationTTL).Result()
	if err != nil {
		return false, fmt.Errorf("reserve username: %w", err)
	}
	return ok, nil
}

// Release drops the claim.
func (r *UsernameReserver) Release(ctx context.Context, username string) error {
	if err := r.client.Del(ctx, r.key(username)).Err(); err != nil {
		return fmt.Errorf("release username: %w", err)
	}
	return nil
}

func (r *UsernameReserver) key(username string) string {
	return "user:reserve:" + username
}
