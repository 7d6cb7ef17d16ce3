package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type propertyRepository struct {
	mu   sync.RWMutex
	defs map[string]map[string]*model.PropertyDefinition // workspaceID -> definition ID
}

var _ interfaces.PropertyRepository = &propertyRepository{}

func newPropertyRepository() *propertyRepository {
	return &propertyRepository{
		defs: make(map[string]map[string]*model.PropertyDefinition),
	}
}

func (r *propertyRepository) ensureWorkspace(workspaceID string) {
	if _, exists := r.defs[workspaceID]; !exists {
		r.defs[workspaceID] = make(map[string]*model.PropertyDefinition)
	}
}

func (r *propertyRepository) Create(ctx context.Context, workspaceID string, def *model.PropertyDefinition) (*model.PropertyDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureWorkspace(workspaceID)

	created := def.Clone()
	if created.ID == "" {
		created.ID = model.NewPropertyDefinitionID()
	}
	created.WorkspaceID = workspaceID
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	for _, existing := range r.defs[workspaceID] {
		if existing.EntityType == created.EntityType && existing.Key == created.Key {
			return nil, goerr.New("property key already in use",
				goerr.V("key", created.Key),
				goerr.V("entity_type", created.EntityType))
		}
	}

	r.defs[workspaceID][created.ID] = created
	return created.Clone(), nil
}

func (r *propertyRepository) Get(ctx context.Context, workspaceID string, id string) (*model.PropertyDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.defs[workspaceID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "property definition not found", goerr.V("id", id))
	}
	def, exists := bucket[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "property definition not found", goerr.V("id", id))
	}
	return def.Clone(), nil
}

func (r *propertyRepository) GetByKey(ctx context.Context, workspaceID string, entityType types.EntityType, key types.PropertyKey) (*model.PropertyDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, def := range r.defs[workspaceID] {
		if def.EntityType == entityType && def.Key == key {
			return def.Clone(), nil
		}
	}
	return nil, nil
}

func (r *propertyRepository) List(ctx context.Context, workspaceID string, entityType types.EntityType) ([]*model.PropertyDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.PropertyDefinition, 0)
	for _, def := range r.defs[workspaceID] {
		if def.EntityType == entityType {
			result = append(result, def.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *propertyRepository) Update(ctx context.Context, workspaceID string, def *model.PropertyDefinition) (*model.PropertyDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.defs[workspaceID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "property definition not found", goerr.V("id", def.ID))
	}
	current, exists := bucket[def.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "property definition not found", goerr.V("id", def.ID))
	}

	updated := def.Clone()
	updated.WorkspaceID = workspaceID
	updated.Key = current.Key // key is immutable
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	bucket[def.ID] = updated
	return updated.Clone(), nil
}

func (r *propertyRepository) Delete(ctx context.Context, workspaceID string, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.defs[workspaceID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "property definition not found", goerr.V("id", id))
	}
	if _, exists := bucket[id]; !exists {
		return goerr.Wrap(ErrNotFound, "property definition not found", goerr.V("id", id))
	}

	delete(bucket, id)
	return nil
}
