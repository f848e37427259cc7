package worker

import (
	"context"
	"log/slog"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driving"
)

// Refresher listens on the update feed and refreshes the session when the
// scrape engine reports a result for the active search. It is the push-side
// complement of the manual refresh operation.
type Refresher struct {
	feed       driven.UpdateFeed
	controller driving.SessionController
	logger     *slog.Logger

	doneCh chan struct{}
}

// NewRefresher creates a refresher bound to a session controller.
func NewRefresher(feed driven.UpdateFeed, controller driving.SessionController, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		feed:       feed,
		controller: controller,
		logger:     logger,
	}
}

// Start subscribes to the feed and relays updates until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) error {
	updates, err := r.feed.Subscribe(ctx)
	if err != nil {
		return err
	}

	r.doneCh = make(chan struct{})
	go func() {
		defer close(r.doneCh)
		r.relayLoop(ctx, updates)
	}()

	r.logger.Info("refresher started")
	return nil
}

// Wait blocks until the relay loop exits.
func (r *Refresher) Wait() {
	if r.doneCh != nil {
		<-r.doneCh
	}
}

func (r *Refresher) relayLoop(ctx context.Context, updates <-chan *domain.SearchUpdate) {
	for update := range updates {
		if update == nil {
			continue
		}
		logger := r.logger.With("search_id", update.SearchID, "status", update.Status)
		if err := r.controller.Refresh(ctx, update.SearchID); err != nil {
			logger.Warn("refresh after update failed", "error", err)
			continue
		}
		logger.Info("session refreshed")
	}
	r.logger.Info("update feed closed")
}
