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
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type propertyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.PropertyRepository = &propertyRepository{}

func newPropertyRepository(client *firestore.Client) *propertyRepository {
	return &propertyRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *propertyRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_property_definitions"
	}
	return "property_definitions"
}

func (r *propertyRepository) Create(ctx context.Context, workspaceID string, def *model.PropertyDefinition) (*model.PropertyDefinition, error) {
	existing, err := r.GetByKey(ctx, workspaceID, def.EntityType, def.Key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, goerr.New("property key already in use",
			goerr.V("key", def.Key),
			goerr.V("entity_type", def.EntityType))
	}

	now := time.Now().UTC()
	created := def.Clone()
	if created.ID == "" {
		created.ID = model.NewPropertyDefinitionID()
	}
	created.WorkspaceID = workspaceID
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create property definition", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *propertyRepository) Get(ctx context.Context, workspaceID string, id string) (*model.PropertyDefinition, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "property definition not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get property definition", goerr.V("id", id))
	}

	var def model.PropertyDefinition
	if err := docSnap.DataTo(&def); err != nil {
		return nil, goerr.Wrap(err, "failed to decode property definition", goerr.V("id", id))
	}
	if def.WorkspaceID != workspaceID {
		return nil, goerr.Wrap(ErrNotFound, "property definition not found", goerr.V("id", id))
	}

	return &def, nil
}

func (r *propertyRepository) GetByKey(ctx context.Context, workspaceID string, entityType types.EntityType, key types.PropertyKey) (*model.PropertyDefinition, error) {
	iter := r.client.Collection(r.collection()).
		Where("WorkspaceID", "==", workspaceID).
		Where("EntityType", "==", string(entityType)).
		Where("Key", "==", string(key)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query property definition by key", goerr.V("key", key))
	}

	var def model.PropertyDefinition
	if err := docSnap.DataTo(&def); err != nil {
		return nil, goerr.Wrap(err, "failed to decode property definition", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return &def, nil
}

func (r *propertyRepository) List(ctx context.Context, workspaceID string, entityType types.EntityType) ([]*model.PropertyDefinition, error) {
	iter := r.client.Collection(r.collection()).
		Where("WorkspaceID", "==", workspaceID).
		Where("EntityType", "==", string(entityType)).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	defs := make([]*model.PropertyDefinition, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate property definitions",
				goerr.V("workspace_id", workspaceID),
				goerr.V("entity_type", entityType))
		}

		var def model.PropertyDefinition
		if err := docSnap.DataTo(&def); err != nil {
			return nil, goerr.Wrap(err, "failed to decode property definition", goerr.V("doc_id", docSnap.Ref.ID))
		}

		defs = append(defs, &def)
	}

	return defs, nil
}

func (r *propertyRepository) Update(ctx context.Context, workspaceID string, def *model.PropertyDefinition) (*model.PropertyDefinition, error) {
	current, err := r.Get(ctx, workspaceID, def.ID)
	if err != nil {
		return nil, err
	}

	// Key and CreatedAt are immutable; only display attributes change
	updated := def.Clone()
	updated.WorkspaceID = workspaceID
	updated.Key = current.Key
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(updated.ID).Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update property definition", goerr.V("id", updated.ID))
	}

	return updated, nil
}

func (r *propertyRepository) Delete(ctx context.Context, workspaceID string, id string) error {
	if _, err := r.Get(ctx, workspaceID, id); err != nil {
		return err
	}

	// Value rows keyed by this definition's key stay in place (no cascade)
	if _, err := r.client.Collection(r.collection()).Doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete property definition", goerr.V("id", id))
	}

	return nil
}
