package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven/mocks"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driving"
)

// stubController records which searches were refreshed
type stubController struct {
	driving.SessionController

	mu        sync.Mutex
	refreshed []string
}

func (s *stubController) Refresh(ctx context.Context, searchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshed = append(s.refreshed, searchID)
	return nil
}

func (s *stubController) refreshCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.refreshed)
}

func TestRefresher_RelaysUpdates(t *testing.T) {
	feed := mocks.NewMockUpdateFeed()
	controller := &stubController{}
	refresher := NewRefresher(feed, controller, nil)

	ctx := context.Background()
	if err := refresher.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	feed.Publish(ctx, &domain.SearchUpdate{SearchID: "s1", Status: domain.StatusSuccess})
	feed.Publish(ctx, &domain.SearchUpdate{SearchID: "s2", Status: domain.StatusError, ErrorMessage: "quota exceeded"})

	deadline := time.After(2 * time.Second)
	for controller.refreshCount() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected 2 refreshes, got %d", controller.refreshCount())
		case <-time.After(10 * time.Millisecond):
		}
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.refreshed[0] != "s1" || controller.refreshed[1] != "s2" {
		t.Errorf("unexpected refresh order: %v", controller.refreshed)
	}
}

func TestRefresher_StopsWhenFeedCloses(t *testing.T) {
	feed := mocks.NewMockUpdateFeed()
	controller := &stubController{}
	refresher := NewRefresher(feed, controller, nil)

	if err := refresher.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	feed.Close()

	done := make(chan struct{})
	go func() {
		refresher.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not stop after feed close")
	}
}
