package interfaces

import (
	"context"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
)

// CommentRepository defines the interface for Comment data access
type CommentRepository interface {
	// Create appends a comment to a record's thread
	Create(ctx context.Context, workspaceID string, c *model.Comment) (*model.Comment, error)

	// ListByRecord retrieves comments for a record in chronological order
	ListByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]*model.Comment, error)
}
