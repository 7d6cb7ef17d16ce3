package model

import (
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/google/uuid"
)

// CommentID is a UUID-based identifier for Comment
type CommentID string

// NewCommentID generates a new UUID v4 CommentID
func NewCommentID() CommentID {
	return CommentID(uuid.New().String())
}

// Comment represents one entry in a record's discussion thread
type Comment struct {
	ID         CommentID
	EntityType types.EntityType
	RecordID   int64
	AuthorID   string
	Body       string
	CreatedAt  time.Time
}

// Clone returns a copy of the comment
func (c *Comment) Clone() *Comment {
	copied := *c
	return &copied
}
