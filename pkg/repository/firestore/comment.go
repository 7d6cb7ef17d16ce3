package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

// commentDoc is the Firestore document shape of one comment
type commentDoc struct {
	ID          string
	WorkspaceID string
	EntityType  string
	RecordID    int64
	AuthorID    string
	Body        string
	CreatedAt   time.Time
}

func (d *commentDoc) toModel() *model.Comment {
	return &model.Comment{
		ID:         model.CommentID(d.ID),
		EntityType: types.EntityType(d.EntityType),
		RecordID:   d.RecordID,
		AuthorID:   d.AuthorID,
		Body:       d.Body,
		CreatedAt:  d.CreatedAt,
	}
}

type commentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.CommentRepository = &commentRepository{}

func newCommentRepository(client *firestore.Client) *commentRepository {
	return &commentRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *commentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_comments"
	}
	return "comments"
}

func (r *commentRepository) Create(ctx context.Context, workspaceID string, c *model.Comment) (*model.Comment, error) {
	id := c.ID
	if id == "" {
		id = model.NewCommentID()
	}

	saved := &commentDoc{
		ID:          string(id),
		WorkspaceID: workspaceID,
		EntityType:  string(c.EntityType),
		RecordID:    c.RecordID,
		AuthorID:    c.AuthorID,
		Body:        c.Body,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := r.client.Collection(r.collection()).Doc(saved.ID).Set(ctx, saved); err != nil {
		return nil, goerr.Wrap(err, "failed to create comment",
			goerr.V("record_id", c.RecordID),
			goerr.V("id", saved.ID))
	}

	return saved.toModel(), nil
}

func (r *commentRepository) ListByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]*model.Comment, error) {
	iter := r.client.Collection(r.collection()).
		Where("WorkspaceID", "==", workspaceID).
		Where("EntityType", "==", string(entityType)).
		Where("RecordID", "==", recordID).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	comments := make([]*model.Comment, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate comments",
				goerr.V("entity_type", entityType),
				goerr.V("record_id", recordID))
		}

		var doc commentDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode comment", goerr.V("doc_id", docSnap.Ref.ID))
		}

		comments = append(comments, doc.toModel())
	}

	return comments, nil
}
