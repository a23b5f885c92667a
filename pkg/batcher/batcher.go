// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once the batcher is stopped.
var ErrStopped = errors.New("batcher stopped")

// Config sizes the buffer and paces flushes.
type Config struct {
	FlushSize     int
	FlushInterval time.Duration
	// BufferSize is the queue length. Zero means twice FlushSize.
	BufferSize int
	// RPS caps flushes per second. Zero leaves flushes unpaced.
	RPS int
	// FlushTimeout bounds the final flush after the run context ends.
	FlushTimeout time.Duration
}

// Batcher buffers items and flushes them either by size or interval.
type Batcher[T any] struct {
	flush   func(context.Context, []T) error
	cfg     Config
	itemsCh chan T
	rl      ratelimit.Limiter
	logger  *zap.Logger

	dropped  atomic.Uint64
	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Batcher.
func New[T any](logger *zap.Logger, flush func(context.Context, []T) error, cfg Config) (*Batcher[T], error) {
	if flush == nil {
		return nil, errors.New("flush callback is required")
	}
	if cfg.FlushSize < 1 {
		return nil, fmt.Errorf("flush size must be at least 1, got %d", cfg.FlushSize)
	}
	if cfg.FlushInterval <= 0 {
		return nil, fmt.Errorf("flush interval must be positive, got %s", cfg.FlushInterval)
	}
	if cfg.RPS < 0 {
		return nil, fmt.Errorf("rps must not be negative, got %d", cfg.RPS)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.FlushSize * 2
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rl := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		rl = ratelimit.New(cfg.RPS)
	}
	return &Batcher[T]{
		flush:   flush,
		cfg:     cfg,
		itemsCh: make(chan T, cfg.BufferSize),
		rl:      rl,
		logger:  logger,
		stop:    make(chan struct{}),
	}, nil
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes what is buffered and stops the loop. It is safe to call more than once.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() {
		close(b.stop)
	})
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return ErrStopped
	case b.itemsCh <- item:
		return nil
	}
}

// TryAdd queues an item without blocking. It reports false when the buffer is full or the batcher stopped.
func (b *Batcher[T]) TryAdd(item T) bool {
	select {
	case <-b.stop:
		b.dropped.Add(1)
		return false
	default:
	}

	select {
	case b.itemsCh <- item:
		return true
	default:
		b.dropped.Add(1)
		return false
	}
}

// Dropped returns how many items TryAdd rejected.
func (b *Batcher[T]) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.FlushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.FlushSize)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		err := b.flush(ctx, buf)
		if err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	// drain flushes everything still queued on a context that outlives ctx.
	drain := func() {
		final, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.cfg.FlushTimeout)
		defer cancel()
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
				if len(buf) >= b.cfg.FlushSize {
					flush(final)
				}
			default:
				flush(final)
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return

		case <-b.stop:
			drain()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.cfg.FlushSize {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
