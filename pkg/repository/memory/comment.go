package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
)

type commentRepository struct {
	mu       sync.RWMutex
	comments map[string][]*model.Comment // key: "workspaceID/entityType/recordID"
}

var _ interfaces.CommentRepository = &commentRepository{}

func newCommentRepository() *commentRepository {
	return &commentRepository{
		comments: make(map[string][]*model.Comment),
	}
}

func recordKey(workspaceID string, entityType types.EntityType, recordID int64) string {
	return fmt.Sprintf("%s/%s/%d", workspaceID, entityType, recordID)
}

func (r *commentRepository) Create(ctx context.Context, workspaceID string, c *model.Comment) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := c.Clone()
	if created.ID == "" {
		created.ID = model.NewCommentID()
	}
	created.CreatedAt = time.Now().UTC()

	key := recordKey(workspaceID, c.EntityType, c.RecordID)
	r.comments[key] = append(r.comments[key], created)
	return created.Clone(), nil
}

func (r *commentRepository) ListByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := recordKey(workspaceID, entityType, recordID)
	result := make([]*model.Comment, 0, len(r.comments[key]))
	for _, c := range r.comments[key] {
		result = append(result, c.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}
