package interfaces

import (
	"context"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
)

// PropertyValueRepository defines the interface for custom property value
// access. Values are stored one row per (entity type, record ID, key), so
// concurrent writes to different keys of the same record never conflict.
type PropertyValueRepository interface {
	// Get retrieves one value. Returns nil, nil when the key is unset
	// (absence is "empty", never an error).
	Get(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, key types.PropertyKey) (*model.PropertyValue, error)

	// ListByRecord retrieves all values for a specific record
	ListByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]*model.PropertyValue, error)

	// ListByRecords retrieves values for multiple records (for batch reads).
	// Returns a map of record ID to list of values.
	ListByRecords(ctx context.Context, workspaceID string, entityType types.EntityType, recordIDs []int64) (map[int64][]*model.PropertyValue, error)

	// Save creates or updates a value (upsert on the composite key)
	Save(ctx context.Context, workspaceID string, value *model.PropertyValue) error

	// Delete removes a single value row
	Delete(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, key types.PropertyKey) error

	// DeleteByRecord removes all values for a record (record deletion)
	DeleteByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) error

	// CountByKey counts how many records hold a value for key and how many
	// of those match one of validValues. invalid = total - valid detects
	// stale option references without transferring row data.
	CountByKey(ctx context.Context, workspaceID string, entityType types.EntityType, key types.PropertyKey, validValues []string) (total int64, valid int64, err error)

	// FindInvalidValue returns one value for key not matching validValues.
	// Returns nil, nil when every stored value is valid.
	FindInvalidValue(ctx context.Context, workspaceID string, entityType types.EntityType, key types.PropertyKey, validValues []string) (*model.PropertyValue, error)
}
