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

type taskRepository struct {
	mu     sync.RWMutex
	tasks  map[string]map[int64]*model.Task
	nextID map[string]int64
}

var _ interfaces.TaskRepository = &taskRepository{}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks:  make(map[string]map[int64]*model.Task),
		nextID: make(map[string]int64),
	}
}

func (r *taskRepository) ensureWorkspace(workspaceID string) {
	if _, exists := r.tasks[workspaceID]; !exists {
		r.tasks[workspaceID] = make(map[int64]*model.Task)
	}
	if _, exists := r.nextID[workspaceID]; !exists {
		r.nextID[workspaceID] = 1
	}
}

func (r *taskRepository) Create(ctx context.Context, workspaceID string, t *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureWorkspace(workspaceID)

	now := time.Now().UTC()
	created := t.Clone()
	created.ID = r.nextID[workspaceID]
	created.WorkspaceID = workspaceID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID[workspaceID]++

	r.tasks[workspaceID][created.ID] = created
	return created.Clone(), nil
}

func (r *taskRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.tasks[workspaceID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}
	t, exists := bucket[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}
	return t.Clone(), nil
}

func (r *taskRepository) List(ctx context.Context, workspaceID string, opts ...interfaces.ListOption) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg := interfaces.NewListConfig(opts...)
	result := make([]*model.Task, 0)
	for _, t := range r.tasks[workspaceID] {
		if t.Archived && !cfg.IncludeArchived {
			continue
		}
		result = append(result, t.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *taskRepository) Update(ctx context.Context, workspaceID string, t *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.tasks[workspaceID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", t.ID))
	}
	current, exists := bucket[t.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", t.ID))
	}

	updated := t.Clone()
	updated.WorkspaceID = workspaceID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	bucket[t.ID] = updated
	return updated.Clone(), nil
}

func (r *taskRepository) Delete(ctx context.Context, workspaceID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.tasks[workspaceID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}
	if _, exists := bucket[id]; !exists {
		return goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	delete(bucket, id)
	return nil
}
