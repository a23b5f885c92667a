// Package notify publishes settlement attempt changes for downstream consumers.
// Delivery is best effort: a slow or unavailable broker never blocks settlement.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/goodnatureofminers/emission-settlement-backend/pkg/batcher"
	"go.uber.org/zap"
)

// Redis publishes attempt events as JSON on a pub/sub channel.
type Redis struct {
	client  publisher
	channel string
	batcher *batcher.Batcher[Event]
	logger  *zap.Logger
}

func NewRedis(client publisher, channel string, cfg batcher.Config, logger *zap.Logger) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if channel == "" {
		return nil, errors.New("notification channel is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Redis{
		client:  client,
		channel: channel,
		logger:  logger.Named("notify"),
	}
	b, err := batcher.New(r.logger, r.publish, cfg)
	if err != nil {
		return nil, fmt.Errorf("notification batcher: %w", err)
	}
	r.batcher = b
	return r, nil
}

// Start begins publishing queued events.
func (r *Redis) Start(ctx context.Context) {
	r.batcher.Start(ctx)
}

// Stop publishes what is still queued and stops.
func (r *Redis) Stop() {
	r.batcher.Stop()
}

// AttemptChanged queues the attempt for publishing. Events are dropped when the queue is full.
func (r *Redis) AttemptChanged(_ context.Context, attempt model.Attempt) {
	if !r.batcher.TryAdd(NewEvent(attempt)) {
		r.logger.Warn("attempt event dropped",
			zap.String("attempt_id", attempt.ID),
			zap.String("state", string(attempt.State)),
			zap.Uint64("dropped_total", r.batcher.Dropped()),
		)
	}
}

func (r *Redis) publish(ctx context.Context, events []Event) error {
	var errs []error
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode event %s: %w", event.AttemptID, err))
			continue
		}
		if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
			errs = append(errs, fmt.Errorf("publish event %s: %w", event.AttemptID, err))
		}
	}
	return errors.Join(errs...)
}
