package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
)

func setupTestFeed(t *testing.T) *UpdateFeed {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	feed, err := NewUpdateFeed(client, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return feed
}

func TestUpdateFeed_PublishSubscribe(t *testing.T) {
	feed := setupTestFeed(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := feed.Subscribe(ctx)
	require.NoError(t, err)

	sent := &domain.SearchUpdate{
		SearchID:      "s1",
		Status:        domain.StatusSuccess,
		NextPageToken: "tok2",
	}
	require.NoError(t, feed.Publish(ctx, sent))

	select {
	case got := <-updates:
		assert.Equal(t, "s1", got.SearchID)
		assert.Equal(t, domain.StatusSuccess, got.Status)
		assert.Equal(t, "tok2", got.NextPageToken)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
}

func TestUpdateFeed_SubscribeClosesOnCancel(t *testing.T) {
	feed := setupTestFeed(t)

	ctx, cancel := context.WithCancel(context.Background())
	updates, err := feed.Subscribe(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-updates:
		assert.False(t, ok, "channel should close after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}

func TestUpdateFeed_MalformedMessageSkipped(t *testing.T) {
	feed := setupTestFeed(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := feed.Subscribe(ctx)
	require.NoError(t, err)

	// Raw garbage on the channel must not kill the subscription
	require.NoError(t, feed.client.Publish(ctx, updateChannel, "not json").Err())
	require.NoError(t, feed.Publish(ctx, &domain.SearchUpdate{SearchID: "s1", Status: domain.StatusSuccess}))

	select {
	case got := <-updates:
		assert.Equal(t, "s1", got.SearchID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
}
