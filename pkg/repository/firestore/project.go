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

type projectRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ProjectRepository = &projectRepository{}

func newProjectRepository(client *firestore.Client) *projectRepository {
	return &projectRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *projectRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_projects"
	}
	return "projects"
}

func (r *projectRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *projectRepository) docID(workspaceID string, id int64) string {
	return fmt.Sprintf("%s_%d", workspaceID, id)
}

func (r *projectRepository) Create(ctx context.Context, workspaceID string, p *model.Project) (*model.Project, error) {
	nextID, err := nextRecordID(ctx, r.client, r.counterCollection(), workspaceID, "project")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := p.Clone()
	created.ID = nextID
	created.WorkspaceID = workspaceID
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := r.docID(workspaceID, created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create project", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *projectRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.Project, error) {
	docID := r.docID(workspaceID, id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("id", id))
	}

	var p model.Project
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode project", goerr.V("id", id))
	}

	return &p, nil
}

func (r *projectRepository) List(ctx context.Context, workspaceID string, opts ...interfaces.ListOption) ([]*model.Project, error) {
	cfg := interfaces.NewListConfig(opts...)

	iter := r.client.Collection(r.collection()).
		Where("WorkspaceID", "==", workspaceID).
		Documents(ctx)
	defer iter.Stop()

	projects := make([]*model.Project, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects", goerr.V("workspace_id", workspaceID))
		}

		var p model.Project
		if err := docSnap.DataTo(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to decode project", goerr.V("doc_id", docSnap.Ref.ID))
		}
		if p.Archived && !cfg.IncludeArchived {
			continue
		}

		projects = append(projects, &p)
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, workspaceID string, p *model.Project) (*model.Project, error) {
	current, err := r.Get(ctx, workspaceID, p.ID)
	if err != nil {
		return nil, err
	}

	updated := p.Clone()
	updated.WorkspaceID = workspaceID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	docID := r.docID(workspaceID, updated.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update project", goerr.V("id", updated.ID))
	}

	return updated, nil
}

func (r *projectRepository) Delete(ctx context.Context, workspaceID string, id int64) error {
	if _, err := r.Get(ctx, workspaceID, id); err != nil {
		return err
	}

	docID := r.docID(workspaceID, id)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete project", goerr.V("id", id))
	}

	return nil
}
