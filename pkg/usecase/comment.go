package usecase

import (
	"context"
	"strings"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/atelier-lab/atelier/pkg/utils/async"
	"github.com/m-mizutani/goerr/v2"
)

// CommentUseCase manages record comment threads
type CommentUseCase struct {
	repo     interfaces.Repository
	activity *ActivityUseCase
}

func NewCommentUseCase(repo interfaces.Repository, activity *ActivityUseCase) *CommentUseCase {
	return &CommentUseCase{repo: repo, activity: activity}
}

// Add appends a comment to a record's thread. The comment itself is the
// durable write; the matching feed entry is appended asynchronously and is
// best-effort.
func (uc *CommentUseCase) Add(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, body string) (*model.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, goerr.Wrap(ErrBodyRequired, "comment body must not be empty")
	}

	comment := &model.Comment{
		EntityType: entityType,
		RecordID:   recordID,
		AuthorID:   ActorFromContext(ctx),
		Body:       body,
	}

	created, err := uc.repo.Comment().Create(ctx, workspaceID, comment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create comment",
			goerr.V(EntityTypeKey, entityType),
			goerr.V(RecordIDKey, recordID))
	}

	actorID := created.AuthorID
	async.Dispatch(ctx, func(ctx context.Context) error {
		_, err := uc.repo.Activity().Create(ctx, workspaceID, &model.Activity{
			EntityType: entityType,
			RecordID:   recordID,
			Action:     types.ActivityActionCommented,
			ActorID:    actorID,
		})
		return err
	})

	return created, nil
}

// List retrieves the comment thread of a record in chronological order
func (uc *CommentUseCase) List(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]*model.Comment, error) {
	comments, err := uc.repo.Comment().ListByRecord(ctx, workspaceID, entityType, recordID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list comments",
			goerr.V(EntityTypeKey, entityType),
			goerr.V(RecordIDKey, recordID))
	}
	return comments, nil
}
