package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type clientRepository struct {
	mu      sync.RWMutex
	clients map[string]map[int64]*model.Client
	nextID  map[string]int64
}

var _ interfaces.ClientRepository = &clientRepository{}

func newClientRepository() *clientRepository {
	return &clientRepository{
		clients: make(map[string]map[int64]*model.Client),
		nextID:  make(map[string]int64),
	}
}

func (r *clientRepository) ensureWorkspace(workspaceID string) {
	if _, exists := r.clients[workspaceID]; !exists {
		r.clients[workspaceID] = make(map[int64]*model.Client)
	}
	if _, exists := r.nextID[workspaceID]; !exists {
		r.nextID[workspaceID] = 1
	}
}

func (r *clientRepository) Create(ctx context.Context, workspaceID string, c *model.Client) (*model.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureWorkspace(workspaceID)

	now := time.Now().UTC()
	created := c.Clone()
	created.ID = r.nextID[workspaceID]
	created.WorkspaceID = workspaceID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID[workspaceID]++

	r.clients[workspaceID][created.ID] = created
	return created.Clone(), nil
}

func (r *clientRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.clients[workspaceID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "client not found", goerr.V("id", id))
	}
	c, exists := bucket[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "client not found", goerr.V("id", id))
	}
	return c.Clone(), nil
}

func (r *clientRepository) List(ctx context.Context, workspaceID string, opts ...interfaces.ListOption) ([]*model.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg := interfaces.NewListConfig(opts...)
	result := make([]*model.Client, 0)
	for _, c := range r.clients[workspaceID] {
		if c.Archived && !cfg.IncludeArchived {
			continue
		}
		result = append(result, c.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *clientRepository) Update(ctx context.Context, workspaceID string, c *model.Client) (*model.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.clients[workspaceID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "client not found", goerr.V("id", c.ID))
	}
	current, exists := bucket[c.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "client not found", goerr.V("id", c.ID))
	}

	updated := c.Clone()
	updated.WorkspaceID = workspaceID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	bucket[c.ID] = updated
	return updated.Clone(), nil
}

func (r *clientRepository) Delete(ctx context.Context, workspaceID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.clients[workspaceID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "client not found", goerr.V("id", id))
	}
	if _, exists := bucket[id]; !exists {
		return goerr.Wrap(ErrNotFound, "client not found", goerr.V("id", id))
	}

	delete(bucket, id)
	return nil
}
