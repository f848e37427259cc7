package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// updateChannel carries authoritative search status reports
const updateChannel = "prospecta:search-updates"

// Verify interface compliance
var _ driven.UpdateFeed = (*UpdateFeed)(nil)

// UpdateFeed implements driven.UpdateFeed using Redis pub/sub.
// Delivery is fire-and-forget; a client that misses an update recovers by
// reloading its history.
type UpdateFeed struct {
	client *redis.Client
	logger *slog.Logger
}

// NewUpdateFeed creates a new Redis-backed update feed
func NewUpdateFeed(client *redis.Client, logger *slog.Logger) (*UpdateFeed, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateFeed{client: client, logger: logger}, nil
}

// Publish broadcasts an update
func (f *UpdateFeed) Publish(ctx context.Context, update *domain.SearchUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}
	if err := f.client.Publish(ctx, updateChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish update: %w", err)
	}
	return nil
}

// Subscribe returns a channel of updates. The channel closes when ctx is
// cancelled. Malformed messages are logged and skipped.
func (f *UpdateFeed) Subscribe(ctx context.Context) (<-chan *domain.SearchUpdate, error) {
	sub := f.client.Subscribe(ctx, updateChannel)

	// Confirm the subscription before handing out the channel
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan *domain.SearchUpdate, 16)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var update domain.SearchUpdate
				if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
					f.logger.Warn("dropping malformed search update", "error", err)
					continue
				}
				select {
				case out <- &update:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close tears down the connection
func (f *UpdateFeed) Close() error {
	return f.client.Close()
}
