package memory

import (
	"context"
	"sync"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
)

// valueKey is the composite key of a property value row
type valueKey struct {
	workspaceID string
	entityType  types.EntityType
	recordID    int64
	key         types.PropertyKey
}

type valueRepository struct {
	mu     sync.RWMutex
	values map[valueKey]*model.PropertyValue
}

var _ interfaces.PropertyValueRepository = &valueRepository{}

func newValueRepository() *valueRepository {
	return &valueRepository{
		values: make(map[valueKey]*model.PropertyValue),
	}
}

func (r *valueRepository) Get(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, key types.PropertyKey) (*model.PropertyValue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k := valueKey{workspaceID: workspaceID, entityType: entityType, recordID: recordID, key: key}
	pv, exists := r.values[k]
	if !exists {
		// Absence means unset, never an error
		return nil, nil
	}
	return pv.Clone(), nil
}

func (r *valueRepository) ListByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]*model.PropertyValue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.PropertyValue, 0)
	for k, pv := range r.values {
		if k.workspaceID == workspaceID && k.entityType == entityType && k.recordID == recordID {
			result = append(result, pv.Clone())
		}
	}
	return result, nil
}

func (r *valueRepository) ListByRecords(ctx context.Context, workspaceID string, entityType types.EntityType, recordIDs []int64) (map[int64][]*model.PropertyValue, error) {
	result := make(map[int64][]*model.PropertyValue, len(recordIDs))
	for _, id := range recordIDs {
		values, err := r.ListByRecord(ctx, workspaceID, entityType, id)
		if err != nil {
			return nil, err
		}
		result[id] = values
	}
	return result, nil
}

func (r *valueRepository) Save(ctx context.Context, workspaceID string, value *model.PropertyValue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := value.Clone()
	saved.UpdatedAt = time.Now().UTC()

	k := valueKey{workspaceID: workspaceID, entityType: value.EntityType, recordID: value.RecordID, key: value.Key}
	r.values[k] = saved
	return nil
}

func (r *valueRepository) Delete(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, key types.PropertyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := valueKey{workspaceID: workspaceID, entityType: entityType, recordID: recordID, key: key}
	delete(r.values, k)
	return nil
}

func (r *valueRepository) DeleteByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k := range r.values {
		if k.workspaceID == workspaceID && k.entityType == entityType && k.recordID == recordID {
			delete(r.values, k)
		}
	}
	return nil
}

func (r *valueRepository) CountByKey(ctx context.Context, workspaceID string, entityType types.EntityType, key types.PropertyKey, validValues []string) (int64, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	validSet := make(map[string]bool, len(validValues))
	for _, v := range validValues {
		validSet[v] = true
	}

	var total, valid int64
	for k, pv := range r.values {
		if k.workspaceID != workspaceID || k.entityType != entityType || k.key != key {
			continue
		}
		total++
		if valueMatches(pv.Value, validSet) {
			valid++
		}
	}
	return total, valid, nil
}

func (r *valueRepository) FindInvalidValue(ctx context.Context, workspaceID string, entityType types.EntityType, key types.PropertyKey, validValues []string) (*model.PropertyValue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	validSet := make(map[string]bool, len(validValues))
	for _, v := range validValues {
		validSet[v] = true
	}

	for k, pv := range r.values {
		if k.workspaceID != workspaceID || k.entityType != entityType || k.key != key {
			continue
		}
		if !valueMatches(pv.Value, validSet) {
			return pv.Clone(), nil
		}
	}
	return nil, nil
}

// valueMatches reports whether a stored option value only references
// entries of validSet. Single values check membership; multi values
// require every element to be a member.
func valueMatches(value any, validSet map[string]bool) bool {
	switch v := value.(type) {
	case string:
		return validSet[v]
	default:
		values, ok := model.ToStringSlice(value)
		if !ok {
			return false
		}
		for _, s := range values {
			if !validSet[s] {
				return false
			}
		}
		return true
	}
}
