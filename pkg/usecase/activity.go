package usecase

import (
	"context"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ActivityUseCase reads the append-only activity feed of a record
type ActivityUseCase struct {
	repo interfaces.Repository
}

func NewActivityUseCase(repo interfaces.Repository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo}
}

// List retrieves the full feed of a record in chronological order
func (uc *ActivityUseCase) List(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]*model.Activity, error) {
	activities, err := uc.repo.Activity().ListByRecord(ctx, workspaceID, entityType, recordID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list activities",
			goerr.V(EntityTypeKey, entityType),
			goerr.V(RecordIDKey, recordID))
	}
	return activities, nil
}

// ListSince retrieves feed entries created strictly after the given time.
// Polling clients pass the timestamp of the newest entry they have seen, so
// an entry is delivered exactly once per client.
func (uc *ActivityUseCase) ListSince(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, since time.Time) ([]*model.Activity, error) {
	activities, err := uc.repo.Activity().ListSince(ctx, workspaceID, entityType, recordID, since)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list activities since",
			goerr.V(EntityTypeKey, entityType),
			goerr.V(RecordIDKey, recordID),
			goerr.V("since", since))
	}
	return activities, nil
}
