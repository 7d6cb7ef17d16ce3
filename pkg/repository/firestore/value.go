package firestore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// valueDoc is the Firestore document shape of one property value row
type valueDoc struct {
	WorkspaceID string
	EntityType  string
	RecordID    int64
	Key         string
	Value       any
	UpdatedAt   time.Time
}

func (d *valueDoc) toModel() *model.PropertyValue {
	return &model.PropertyValue{
		EntityType: types.EntityType(d.EntityType),
		RecordID:   d.RecordID,
		Key:        types.PropertyKey(d.Key),
		Value:      d.Value,
		UpdatedAt:  d.UpdatedAt,
	}
}

type valueRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.PropertyValueRepository = &valueRepository{}

func newValueRepository(client *firestore.Client) *valueRepository {
	return &valueRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *valueRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_property_values"
	}
	return "property_values"
}

func (r *valueRepository) docID(workspaceID string, entityType types.EntityType, recordID int64, key types.PropertyKey) string {
	return fmt.Sprintf("%s_%s_%d_%s", workspaceID, entityType, recordID, key)
}

func (r *valueRepository) Get(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, key types.PropertyKey) (*model.PropertyValue, error) {
	docID := r.docID(workspaceID, entityType, recordID, key)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			// Absence means unset, never an error
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get property value", goerr.V("doc_id", docID))
	}

	var doc valueDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode property value", goerr.V("doc_id", docID))
	}

	return doc.toModel(), nil
}

func (r *valueRepository) ListByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]*model.PropertyValue, error) {
	iter := r.client.Collection(r.collection()).
		Where("WorkspaceID", "==", workspaceID).
		Where("EntityType", "==", string(entityType)).
		Where("RecordID", "==", recordID).
		Documents(ctx)
	defer iter.Stop()

	values := make([]*model.PropertyValue, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate property values",
				goerr.V("entity_type", entityType),
				goerr.V("record_id", recordID))
		}

		var doc valueDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode property value", goerr.V("doc_id", docSnap.Ref.ID))
		}

		values = append(values, doc.toModel())
	}

	return values, nil
}

func (r *valueRepository) ListByRecords(ctx context.Context, workspaceID string, entityType types.EntityType, recordIDs []int64) (map[int64][]*model.PropertyValue, error) {
	result := make(map[int64][]*model.PropertyValue, len(recordIDs))
	var mu sync.Mutex

	// Parallel per-record queries avoid a composite IN index
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for _, recordID := range recordIDs {
		eg.Go(func() error {
			values, err := r.ListByRecord(ctx, workspaceID, entityType, recordID)
			if err != nil {
				return err
			}
			mu.Lock()
			result[recordID] = values
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to get property values by records")
	}

	return result, nil
}

func (r *valueRepository) Save(ctx context.Context, workspaceID string, value *model.PropertyValue) error {
	docID := r.docID(workspaceID, value.EntityType, value.RecordID, value.Key)

	saved := &valueDoc{
		WorkspaceID: workspaceID,
		EntityType:  string(value.EntityType),
		RecordID:    value.RecordID,
		Key:         string(value.Key),
		Value:       value.Value,
		UpdatedAt:   time.Now().UTC(),
	}

	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, saved); err != nil {
		return goerr.Wrap(err, "failed to save property value", goerr.V("doc_id", docID))
	}

	return nil
}

func (r *valueRepository) Delete(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, key types.PropertyKey) error {
	docID := r.docID(workspaceID, entityType, recordID, key)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete property value", goerr.V("doc_id", docID))
	}
	return nil
}

func (r *valueRepository) DeleteByRecord(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) error {
	iter := r.client.Collection(r.collection()).
		Where("WorkspaceID", "==", workspaceID).
		Where("EntityType", "==", string(entityType)).
		Where("RecordID", "==", recordID).
		Documents(ctx)
	defer iter.Stop()

	var docRefs []*firestore.DocumentRef
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate property values for deletion", goerr.V("record_id", recordID))
		}
		docRefs = append(docRefs, docSnap.Ref)
	}

	for _, docRef := range docRefs {
		if _, err := docRef.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete property value",
				goerr.V("record_id", recordID),
				goerr.V("doc_id", docRef.ID))
		}
	}

	return nil
}

func (r *valueRepository) CountByKey(ctx context.Context, workspaceID string, entityType types.EntityType, key types.PropertyKey, validValues []string) (int64, int64, error) {
	values, err := r.listByKey(ctx, workspaceID, entityType, key)
	if err != nil {
		return 0, 0, err
	}

	validSet := make(map[string]bool, len(validValues))
	for _, v := range validValues {
		validSet[v] = true
	}

	var total, valid int64
	for _, pv := range values {
		total++
		if optionValueMatches(pv.Value, validSet) {
			valid++
		}
	}
	return total, valid, nil
}

func (r *valueRepository) FindInvalidValue(ctx context.Context, workspaceID string, entityType types.EntityType, key types.PropertyKey, validValues []string) (*model.PropertyValue, error) {
	values, err := r.listByKey(ctx, workspaceID, entityType, key)
	if err != nil {
		return nil, err
	}

	validSet := make(map[string]bool, len(validValues))
	for _, v := range validValues {
		validSet[v] = true
	}

	for _, pv := range values {
		if !optionValueMatches(pv.Value, validSet) {
			return pv, nil
		}
	}
	return nil, nil
}

func (r *valueRepository) listByKey(ctx context.Context, workspaceID string, entityType types.EntityType, key types.PropertyKey) ([]*model.PropertyValue, error) {
	iter := r.client.Collection(r.collection()).
		Where("WorkspaceID", "==", workspaceID).
		Where("EntityType", "==", string(entityType)).
		Where("Key", "==", string(key)).
		Documents(ctx)
	defer iter.Stop()

	values := make([]*model.PropertyValue, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate property values by key", goerr.V("key", key))
		}

		var doc valueDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode property value", goerr.V("doc_id", docSnap.Ref.ID))
		}

		values = append(values, doc.toModel())
	}

	return values, nil
}

// optionValueMatches reports whether a stored option value only references
// entries of validSet. Single values check membership; multi values require
// every element to be a member.
func optionValueMatches(value any, validSet map[string]bool) bool {
	switch v := value.(type) {
	case string:
		return validSet[v]
	default:
		values, ok := model.ToStringSlice(value)
		if !ok {
			return false
		}
		for _, s := range values {
			if !validSet[s] {
				return false
			}
		}
		return true
	}
}
