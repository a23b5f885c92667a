package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/clock"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"go.uber.org/zap"
)

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

const extendScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`

// Redis is a distributed Locker using SET NX PX with a random token and compare-and-delete release.
type Redis struct {
	client       redisClient
	prefix       string
	ttl          time.Duration
	pollInterval time.Duration
	sleep        func(context.Context, time.Duration) error
	logger       *zap.Logger
}

// NewRedis constructs a distributed locker. The ttl bounds how long a crashed holder keeps the key.
func NewRedis(client redisClient, prefix string, ttl, pollInterval time.Duration, logger *zap.Logger) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl < 3*time.Millisecond {
		return nil, fmt.Errorf("lock ttl must be at least 3ms, got %s", ttl)
	}
	if pollInterval <= 0 {
		return nil, errors.New("lock poll interval must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{
		client:       client,
		prefix:       prefix,
		ttl:          ttl,
		pollInterval: pollInterval,
		sleep:        clock.SleepWithContext,
		logger:       logger.Named("redis_lock"),
	}, nil
}

// Lock polls until the key is acquired or ctx ends. While held, the key's ttl is renewed
// every third of the ttl. The held context ends with model.ErrLockLost when the key was taken
// over or could not be renewed for a whole ttl.
func (r *Redis) Lock(ctx context.Context, key string) (context.Context, func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, nil, err
	}
	redisKey := r.prefix + key

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			return nil, nil, fmt.Errorf("acquire lock %s: %w", redisKey, err)
		}
		if ok {
			break
		}
		if err := r.sleep(ctx, r.pollInterval); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %w", model.ErrLockHeld, redisKey, err)
		}
	}

	held, lose := context.WithCancelCause(ctx)
	stop := make(chan struct{})
	done := make(chan struct{})
	go r.renew(lose, redisKey, token, stop, done)

	var once sync.Once
	return held, func() {
		once.Do(func() {
			close(stop)
			<-done
			r.release(redisKey, token)
			lose(nil)
		})
	}, nil
}

// renew extends the key until stop is closed or ownership is lost.
// It keeps running after the caller's context ends: work that already reached the chain still holds the lock.
func (r *Redis) renew(lose context.CancelCauseFunc, key, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := r.ttl / 3
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	renewed := time.Now()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), interval)
		extended, err := r.client.Eval(ctx, extendScript, []string{key}, token, r.ttl.Milliseconds()).Int64()
		cancel()

		switch {
		case err == nil && extended == 1:
			renewed = time.Now()
		case err == nil:
			r.logger.Error("lock taken over", zap.String("key", key))
			lose(fmt.Errorf("%w: %s taken over", model.ErrLockLost, key))
			return
		case time.Since(renewed) >= r.ttl:
			r.logger.Error("lock expired without renewal", zap.String("key", key), zap.Error(err))
			lose(fmt.Errorf("%w: %s not renewed: %w", model.ErrLockLost, key, err))
			return
		default:
			r.logger.Warn("renew lock", zap.String("key", key), zap.Error(err))
		}
	}
}

func (r *Redis) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
		r.logger.Warn("release lock", zap.String("key", key), zap.Error(err))
	}
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate lock token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
