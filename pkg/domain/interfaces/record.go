package interfaces

import (
	"context"

	"github.com/atelier-lab/atelier/pkg/domain/model"
)

// ListOption configures record list queries
type ListOption func(*ListConfig)

// ListConfig holds resolved list options
type ListConfig struct {
	IncludeArchived bool
}

// WithArchived includes archived records in list results
func WithArchived() ListOption {
	return func(c *ListConfig) {
		c.IncludeArchived = true
	}
}

// NewListConfig resolves a set of list options
func NewListConfig(opts ...ListOption) *ListConfig {
	c := &ListConfig{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TaskRepository defines the interface for Task data access
type TaskRepository interface {
	// Create creates a new task with auto-generated ID
	Create(ctx context.Context, workspaceID string, t *model.Task) (*model.Task, error)

	// Get retrieves a task by ID
	Get(ctx context.Context, workspaceID string, id int64) (*model.Task, error)

	// List retrieves tasks, excluding archived ones unless requested
	List(ctx context.Context, workspaceID string, opts ...ListOption) ([]*model.Task, error)

	// Update updates an existing task
	Update(ctx context.Context, workspaceID string, t *model.Task) (*model.Task, error)

	// Delete deletes a task by ID
	Delete(ctx context.Context, workspaceID string, id int64) error
}

// ProjectRepository defines the interface for Project data access
type ProjectRepository interface {
	Create(ctx context.Context, workspaceID string, p *model.Project) (*model.Project, error)
	Get(ctx context.Context, workspaceID string, id int64) (*model.Project, error)
	List(ctx context.Context, workspaceID string, opts ...ListOption) ([]*model.Project, error)
	Update(ctx context.Context, workspaceID string, p *model.Project) (*model.Project, error)
	Delete(ctx context.Context, workspaceID string, id int64) error
}

// ClientRepository defines the interface for Client data access
type ClientRepository interface {
	Create(ctx context.Context, workspaceID string, c *model.Client) (*model.Client, error)
	Get(ctx context.Context, workspaceID string, id int64) (*model.Client, error)
	List(ctx context.Context, workspaceID string, opts ...ListOption) ([]*model.Client, error)
	Update(ctx context.Context, workspaceID string, c *model.Client) (*model.Client, error)
	Delete(ctx context.Context, workspaceID string, id int64) error
}
