package interfaces

import (
	"context"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
)

// PropertyRepository defines the interface for PropertyDefinition data access
type PropertyRepository interface {
	// Create persists a new definition
	Create(ctx context.Context, workspaceID string, def *model.PropertyDefinition) (*model.PropertyDefinition, error)

	// Get retrieves a definition by ID
	Get(ctx context.Context, workspaceID string, id string) (*model.PropertyDefinition, error)

	// GetByKey retrieves a definition by its storage key.
	// Returns nil, nil when no definition uses the key.
	GetByKey(ctx context.Context, workspaceID string, entityType types.EntityType, key types.PropertyKey) (*model.PropertyDefinition, error)

	// List retrieves all definitions for an entity type in creation order
	List(ctx context.Context, workspaceID string, entityType types.EntityType) ([]*model.PropertyDefinition, error)

	// Update updates an existing definition in place
	Update(ctx context.Context, workspaceID string, def *model.PropertyDefinition) (*model.PropertyDefinition, error)

	// Delete removes a definition. Stored values keyed by the definition's
	// key are intentionally left in place (no cascade).
	Delete(ctx context.Context, workspaceID string, id string) error
}
