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

// activityDoc is the Firestore document shape of one activity entry
type activityDoc struct {
	ID          string
	WorkspaceID string
	EntityType  string
	RecordID    int64
	Action      string
	ActorID     string
	Field       string
	From        string
	To          string
	CreatedAt   time.Time
}

func (d *activityDoc) toModel() *model.Activity {
	return &model.Activity{
		ID:         model.ActivityID(d.ID),
		EntityType: types.EntityType(d.EntityType),
		RecordID:   d.RecordID,
		Action:     types.ActivityAction(d.Action),
		ActorID:    d.ActorID,
		Field:      d.Field,
		From:       d.From,
		To:         d.To,
		CreatedAt:  d.CreatedAt,
	}
}

type activityRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ActivityRepository = &activityRepository{}

func newActivityRepository(client *firestore.Client) *activityRepository {
	return &activityRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *activityRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_activities"
	}
	return "activities"
}

func (r *activityRepository) Create(ctx context.Context, workspaceID string, a *model.Activity) (*model.Activity, error) {
	id := a.ID
	if id == "" {
		id = model.NewActivityID()
	}

	saved := &activityDoc{
		ID:          string(id),
		WorkspaceID: workspaceID,
		EntityType:  string(a.EntityType),
		RecordID:    a.RecordID,
		Action:      string(a.Action),
		ActorID:     a.ActorID,
		Field:       a.Field,
		From:        a.From,
		To:          a.To,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := r.client.Collection(r.collection()).Doc(saved.ID).Set(ctx, saved); err != nil {
		return nil, goerr.Wrap(err, "failed to create activity",
			goerr.V("record_id", a.RecordID),
			goerr.V("action", a.Action))
	}

	return saved.toModel(), nil
}

func (r *activityRepository) ListByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]*model.Activity, error) {
	return r.listSince(ctx, workspaceID, entityType, recordID, time.Time{})
}

func (r *activityRepository) ListSince(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, since time.Time) ([]*model.Activity, error) {
	return r.listSince(ctx, workspaceID, entityType, recordID, since)
}

func (r *activityRepository) listSince(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, since time.Time) ([]*model.Activity, error) {
	query := r.client.Collection(r.collection()).
		Where("WorkspaceID", "==", workspaceID).
		Where("EntityType", "==", string(entityType)).
		Where("RecordID", "==", recordID)
	if !since.IsZero() {
		query = query.Where("CreatedAt", ">", since)
	}

	iter := query.OrderBy("CreatedAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	activities := make([]*model.Activity, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate activities",
				goerr.V("entity_type", entityType),
				goerr.V("record_id", recordID))
		}

		var doc activityDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode activity", goerr.V("doc_id", docSnap.Ref.ID))
		}

		activities = append(activities, doc.toModel())
	}

	return activities, nil
}
