package feed

import (
	"context"
	"sync"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/atelier-lab/atelier/pkg/utils/logging"
)

// DefaultInterval is the polling interval of a feed watcher
const DefaultInterval = 10 * time.Second

// Handler receives new feed entries in chronological order
type Handler func(ctx context.Context, activities []*model.Activity)

// Watcher polls the activity feed of one record and delivers entries that
// appeared after the previous poll. Each watcher tracks its own cursor, so
// every entry is delivered exactly once per watcher.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - Polling is cheap enough at the default interval; push delivery can
//   replace this without changing the Handler contract
type Watcher struct {
	repo        interfaces.ActivityRepository
	workspaceID string
	entityType  types.EntityType
	recordID    int64
	interval    time.Duration
	handler     Handler

	mu     sync.Mutex
	cursor time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// Option configures a Watcher
type Option func(*Watcher)

// WithInterval overrides the polling interval
func WithInterval(interval time.Duration) Option {
	return func(w *Watcher) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// New creates a watcher for one record's feed
func New(repo interfaces.ActivityRepository, workspaceID string, entityType types.EntityType, recordID int64, handler Handler, opts ...Option) *Watcher {
	w := &Watcher{
		repo:        repo,
		workspaceID: workspaceID,
		entityType:  entityType,
		recordID:    recordID,
		interval:    DefaultInterval,
		handler:     handler,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the polling loop. The first poll runs immediately so an
// opening detail view shows the existing feed without waiting one interval.
func (w *Watcher) Start(ctx context.Context) error {
	logging.From(ctx).Info("feed watcher starting",
		"entity_type", w.entityType,
		"record_id", w.recordID,
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the watcher to stop and waits for completion. No handler
// invocation happens after Stop returns.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	w.poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.poll(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.From(ctx).Info("feed watcher context cancelled",
				"entity_type", w.entityType,
				"record_id", w.recordID)
			return
		}
	}
}

// poll fetches entries newer than the cursor and hands them to the handler.
// A failed poll keeps the cursor, so missed entries arrive on the next tick.
func (w *Watcher) poll(ctx context.Context) {
	w.mu.Lock()
	since := w.cursor
	w.mu.Unlock()

	activities, err := w.repo.ListSince(ctx, w.workspaceID, w.entityType, w.recordID, since)
	if err != nil {
		logging.From(ctx).Error("feed poll failed (will retry next interval)",
			"entity_type", w.entityType,
			"record_id", w.recordID,
			"error", err.Error())
		return
	}
	if len(activities) == 0 {
		return
	}

	w.mu.Lock()
	w.cursor = activities[len(activities)-1].CreatedAt
	w.mu.Unlock()

	w.handler(ctx, activities)
}
