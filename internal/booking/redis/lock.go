package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultLockTTL = 10 * time.Second

type Redis struct {
	Client *redis.Client
	Logger *log.Logger
	// LockTTL bounds how long a leaked lock may outlive its holder; normal
	// operations release explicitly.
	LockTTL time.Duration
}

func NewRedis(client *redis.Client, lockTTL time.Duration) *Redis {
	return &Redis{
		Client:  client,
		Logger:  log.Default(),
		LockTTL: lockTTL,
	}
}

func (r *Redis) getUserLockDuration() time.Duration {
	if r.LockTTL > 0 {
		return r.LockTTL
	}
	return defaultLockTTL
}

// LockUserBooking serializes booking mutations for one user. Returns false
// when another mutation for the same user is already in flight.
func (r *Redis) LockUserBooking(ctx context.Context, userID int64, token string) (bool, error) {
	key := userLockKey(userID)
	ok, err := r.Client.SetNX(ctx, key, token, r.getUserLockDuration()).Result()
	return ok, err
}

// UnlockUserBooking releases the user's lock if this caller still owns it.
func (r *Redis) UnlockUserBooking(ctx context.Context, userID int64, token string) error {
	key := userLockKey(userID)
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // already expired
	}
	if err != nil {
		return err
	}
	if val == token {
		_, err := r.Client.Del(ctx, key).Result()
		return err
	}
	return nil
}

func userLockKey(userID int64) string {
	return fmt.Sprintf("booking_lock:%d", userID)
}
