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

type projectRepository struct {
	mu       sync.RWMutex
	projects map[string]map[int64]*model.Project
	nextID   map[string]int64
}

var _ interfaces.ProjectRepository = &projectRepository{}

func newProjectRepository() *projectRepository {
	return &projectRepository{
		projects: make(map[string]map[int64]*model.Project),
		nextID:   make(map[string]int64),
	}
}

func (r *projectRepository) ensureWorkspace(workspaceID string) {
	if _, exists := r.projects[workspaceID]; !exists {
		r.projects[workspaceID] = make(map[int64]*model.Project)
	}
	if _, exists := r.nextID[workspaceID]; !exists {
		r.nextID[workspaceID] = 1
	}
}

func (r *projectRepository) Create(ctx context.Context, workspaceID string, p *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureWorkspace(workspaceID)

	now := time.Now().UTC()
	created := p.Clone()
	created.ID = r.nextID[workspaceID]
	created.WorkspaceID = workspaceID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID[workspaceID]++

	r.projects[workspaceID][created.ID] = created
	return created.Clone(), nil
}

func (r *projectRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.projects[workspaceID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}
	p, exists := bucket[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}
	return p.Clone(), nil
}

func (r *projectRepository) List(ctx context.Context, workspaceID string, opts ...interfaces.ListOption) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg := interfaces.NewListConfig(opts...)
	result := make([]*model.Project, 0)
	for _, p := range r.projects[workspaceID] {
		if p.Archived && !cfg.IncludeArchived {
			continue
		}
		result = append(result, p.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *projectRepository) Update(ctx context.Context, workspaceID string, p *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.projects[workspaceID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", p.ID))
	}
	current, exists := bucket[p.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", p.ID))
	}

	updated := p.Clone()
	updated.WorkspaceID = workspaceID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	bucket[p.ID] = updated
	return updated.Clone(), nil
}

func (r *projectRepository) Delete(ctx context.Context, workspaceID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.projects[workspaceID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}
	if _, exists := bucket[id]; !exists {
		return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}

	delete(bucket, id)
	return nil
}
