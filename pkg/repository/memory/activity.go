package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
)

type activityRepository struct {
	mu      sync.RWMutex
	entries map[string][]*model.Activity // key: "workspaceID/entityType/recordID"
}

var _ interfaces.ActivityRepository = &activityRepository{}

func newActivityRepository() *activityRepository {
	return &activityRepository{
		entries: make(map[string][]*model.Activity),
	}
}

func (r *activityRepository) Create(ctx context.Context, workspaceID string, a *model.Activity) (*model.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := a.Clone()
	if created.ID == "" {
		created.ID = model.NewActivityID()
	}
	created.CreatedAt = time.Now().UTC()

	key := recordKey(workspaceID, a.EntityType, a.RecordID)
	r.entries[key] = append(r.entries[key], created)
	return created.Clone(), nil
}

func (r *activityRepository) ListByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]*model.Activity, error) {
	return r.listSince(workspaceID, entityType, recordID, time.Time{})
}

func (r *activityRepository) ListSince(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, since time.Time) ([]*model.Activity, error) {
	return r.listSince(workspaceID, entityType, recordID, since)
}

func (r *activityRepository) listSince(workspaceID string, entityType types.EntityType, recordID int64, since time.Time) ([]*model.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := recordKey(workspaceID, entityType, recordID)
	result := make([]*model.Activity, 0)
	for _, a := range r.entries[key] {
		if !since.IsZero() && !a.CreatedAt.After(since) {
			continue
		}
		result = append(result, a.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}
