package feed_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/atelier-lab/atelier/pkg/repository/memory"
	"github.com/atelier-lab/atelier/pkg/service/feed"
	"github.com/m-mizutani/gt"
)

const testWorkspaceID = "test-ws"

// collector accumulates delivered feed entries across polls
type collector struct {
	mu      sync.Mutex
	entries []*model.Activity
}

func (c *collector) handle(ctx context.Context, activities []*model.Activity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, activities...)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *collector) actions() []types.ActivityAction {
	c.mu.Lock()
	defer c.mu.Unlock()
	actions := make([]types.ActivityAction, len(c.entries))
	for i, e := range c.entries {
		actions[i] = e.Action
	}
	return actions
}

func appendActivity(t *testing.T, repo *memory.Memory, action types.ActivityAction) {
	t.Helper()
	_, err := repo.Activity().Create(context.Background(), testWorkspaceID, &model.Activity{
		EntityType: types.EntityTypeTask,
		RecordID:   1,
		Action:     action,
		ActorID:    "U001",
	})
	gt.NoError(t, err).Required()
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before timeout")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWatcher(t *testing.T) {
	t.Run("first poll delivers the existing feed immediately", func(t *testing.T) {
		repo := memory.New()
		appendActivity(t, repo, types.ActivityActionCreated)
		appendActivity(t, repo, types.ActivityActionCommented)

		c := &collector{}
		w := feed.New(repo.Activity(), testWorkspaceID, types.EntityTypeTask, 1, c.handle,
			feed.WithInterval(time.Hour)) // only the immediate poll can fire
		gt.NoError(t, w.Start(context.Background())).Required()
		defer w.Stop()

		waitFor(t, time.Second, func() bool { return c.count() == 2 })
		gt.Value(t, c.actions()).Equal([]types.ActivityAction{
			types.ActivityActionCreated,
			types.ActivityActionCommented,
		})
	})

	t.Run("new entries are delivered exactly once", func(t *testing.T) {
		repo := memory.New()
		appendActivity(t, repo, types.ActivityActionCreated)

		c := &collector{}
		w := feed.New(repo.Activity(), testWorkspaceID, types.EntityTypeTask, 1, c.handle,
			feed.WithInterval(20*time.Millisecond))
		gt.NoError(t, w.Start(context.Background())).Required()
		defer w.Stop()

		waitFor(t, time.Second, func() bool { return c.count() == 1 })

		appendActivity(t, repo, types.ActivityActionUpdated)
		waitFor(t, time.Second, func() bool { return c.count() == 2 })

		// Several more polls pass without new entries; nothing is re-delivered
		time.Sleep(100 * time.Millisecond)
		gt.Number(t, c.count()).Equal(2)
	})

	t.Run("entries for other records are not delivered", func(t *testing.T) {
		repo := memory.New()
		_, err := repo.Activity().Create(context.Background(), testWorkspaceID, &model.Activity{
			EntityType: types.EntityTypeTask,
			RecordID:   2,
			Action:     types.ActivityActionCreated,
		})
		gt.NoError(t, err).Required()

		c := &collector{}
		w := feed.New(repo.Activity(), testWorkspaceID, types.EntityTypeTask, 1, c.handle,
			feed.WithInterval(20*time.Millisecond))
		gt.NoError(t, w.Start(context.Background())).Required()
		defer w.Stop()

		time.Sleep(100 * time.Millisecond)
		gt.Number(t, c.count()).Equal(0)
	})

	t.Run("no delivery after Stop", func(t *testing.T) {
		repo := memory.New()

		c := &collector{}
		w := feed.New(repo.Activity(), testWorkspaceID, types.EntityTypeTask, 1, c.handle,
			feed.WithInterval(20*time.Millisecond))
		gt.NoError(t, w.Start(context.Background())).Required()

		w.Stop()
		appendActivity(t, repo, types.ActivityActionCreated)
		time.Sleep(100 * time.Millisecond)
		gt.Number(t, c.count()).Equal(0)
	})

	t.Run("context cancellation stops the loop", func(t *testing.T) {
		repo := memory.New()
		ctx, cancel := context.WithCancel(context.Background())

		c := &collector{}
		w := feed.New(repo.Activity(), testWorkspaceID, types.EntityTypeTask, 1, c.handle,
			feed.WithInterval(20*time.Millisecond))
		gt.NoError(t, w.Start(ctx)).Required()

		cancel()
		time.Sleep(50 * time.Millisecond)

		appendActivity(t, repo, types.ActivityActionCreated)
		time.Sleep(100 * time.Millisecond)
		gt.Number(t, c.count()).Equal(0)
	})
}
