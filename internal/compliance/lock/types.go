// Package lock serializes settlement work per company.
package lock

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type (
	// Locker grants exclusive access to a key until the returned release function is called.
	// The held context ends early, with model.ErrLockLost as its cause, if exclusivity can no longer be guaranteed.
	Locker interface {
		Lock(ctx context.Context, key string) (held context.Context, release func(), err error)
	}

	redisClient interface {
		SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
		Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	}
)
