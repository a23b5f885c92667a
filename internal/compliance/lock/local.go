package lock

import (
	"context"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/puzpuzpuz/xsync/v4"
)

// Local is an in-process Locker backed by one single-slot semaphore per key.
type Local struct {
	slots *xsync.Map[string, chan struct{}]
}

// NewLocal constructs an empty in-process locker.
func NewLocal() *Local {
	return &Local{slots: xsync.NewMap[string, chan struct{}]()}
}

// Lock blocks until key is free or ctx ends. An in-process lock cannot be lost, so ctx is returned as the held context.
func (l *Local) Lock(ctx context.Context, key string) (context.Context, func(), error) {
	slot, _ := l.slots.LoadOrStore(key, make(chan struct{}, 1))

	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%w: %s: %w", model.ErrLockHeld, key, ctx.Err())
	}

	var once sync.Once
	return ctx, func() {
		once.Do(func() { <-slot })
	}, nil
}
