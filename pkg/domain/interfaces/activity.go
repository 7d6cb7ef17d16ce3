package interfaces

import (
	"context"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
)

// ActivityRepository defines the interface for the append-only activity log
type ActivityRepository interface {
	// Create appends an activity entry
	Create(ctx context.Context, workspaceID string, a *model.Activity) (*model.Activity, error)

	// ListByRecord retrieves all entries for a record in chronological order
	ListByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]*model.Activity, error)

	// ListSince retrieves entries created strictly after the given time,
	// in chronological order. Used by the polling feed watcher.
	ListSince(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, since time.Time) ([]*model.Activity, error)
}
