package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type clientRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ClientRepository = &clientRepository{}

func newClientRepository(client *firestore.Client) *clientRepository {
	return &clientRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *clientRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_clients"
	}
	return "clients"
}

func (r *clientRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *clientRepository) docID(workspaceID string, id int64) string {
	return fmt.Sprintf("%s_%d", workspaceID, id)
}

func (r *clientRepository) Create(ctx context.Context, workspaceID string, c *model.Client) (*model.Client, error) {
	nextID, err := nextRecordID(ctx, r.client, r.counterCollection(), workspaceID, "client")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := c.Clone()
	created.ID = nextID
	created.WorkspaceID = workspaceID
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := r.docID(workspaceID, created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create client", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *clientRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.Client, error) {
	docID := r.docID(workspaceID, id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "client not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get client", goerr.V("id", id))
	}

	var c model.Client
	if err := docSnap.DataTo(&c); err != nil {
		return nil, goerr.Wrap(err, "failed to decode client", goerr.V("id", id))
	}

	return &c, nil
}

func (r *clientRepository) List(ctx context.Context, workspaceID string, opts ...interfaces.ListOption) ([]*model.Client, error) {
	cfg := interfaces.NewListConfig(opts...)

	iter := r.client.Collection(r.collection()).
		Where("WorkspaceID", "==", workspaceID).
		Documents(ctx)
	defer iter.Stop()

	clients := make([]*model.Client, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate clients", goerr.V("workspace_id", workspaceID))
		}

		var c model.Client
		if err := docSnap.DataTo(&c); err != nil {
			return nil, goerr.Wrap(err, "failed to decode client", goerr.V("doc_id", docSnap.Ref.ID))
		}
		if c.Archived && !cfg.IncludeArchived {
			continue
		}

		clients = append(clients, &c)
	}

	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })

	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, workspaceID string, c *model.Client) (*model.Client, error) {
	current, err := r.Get(ctx, workspaceID, c.ID)
	if err != nil {
		return nil, err
	}

	updated := c.Clone()
	updated.WorkspaceID = workspaceID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	docID := r.docID(workspaceID, updated.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update client", goerr.V("id", updated.ID))
	}

	return updated, nil
}

func (r *clientRepository) Delete(ctx context.Context, workspaceID string, id int64) error {
	if _, err := r.Get(ctx, workspaceID, id); err != nil {
		return err
	}

	docID := r.docID(workspaceID, id)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete client", goerr.V("id", id))
	}

	return nil
}
