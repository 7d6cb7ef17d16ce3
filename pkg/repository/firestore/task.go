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

type taskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.TaskRepository = &taskRepository{}

func newTaskRepository(client *firestore.Client) *taskRepository {
	return &taskRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *taskRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_tasks"
	}
	return "tasks"
}

func (r *taskRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *taskRepository) docID(workspaceID string, id int64) string {
	return fmt.Sprintf("%s_%d", workspaceID, id)
}

func (r *taskRepository) Create(ctx context.Context, workspaceID string, t *model.Task) (*model.Task, error) {
	nextID, err := nextRecordID(ctx, r.client, r.counterCollection(), workspaceID, "task")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := t.Clone()
	created.ID = nextID
	created.WorkspaceID = workspaceID
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := r.docID(workspaceID, created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create task", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *taskRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.Task, error) {
	docID := r.docID(workspaceID, id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	var t model.Task
	if err := docSnap.DataTo(&t); err != nil {
		return nil, goerr.Wrap(err, "failed to decode task", goerr.V("id", id))
	}

	return &t, nil
}

func (r *taskRepository) List(ctx context.Context, workspaceID string, opts ...interfaces.ListOption) ([]*model.Task, error) {
	cfg := interfaces.NewListConfig(opts...)

	iter := r.client.Collection(r.collection()).
		Where("WorkspaceID", "==", workspaceID).
		Documents(ctx)
	defer iter.Stop()

	tasks := make([]*model.Task, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tasks", goerr.V("workspace_id", workspaceID))
		}

		var t model.Task
		if err := docSnap.DataTo(&t); err != nil {
			return nil, goerr.Wrap(err, "failed to decode task", goerr.V("doc_id", docSnap.Ref.ID))
		}
		if t.Archived && !cfg.IncludeArchived {
			continue
		}

		tasks = append(tasks, &t)
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, workspaceID string, t *model.Task) (*model.Task, error) {
	current, err := r.Get(ctx, workspaceID, t.ID)
	if err != nil {
		return nil, err
	}

	updated := t.Clone()
	updated.WorkspaceID = workspaceID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	docID := r.docID(workspaceID, updated.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V("id", updated.ID))
	}

	return updated, nil
}

func (r *taskRepository) Delete(ctx context.Context, workspaceID string, id int64) error {
	if _, err := r.Get(ctx, workspaceID, id); err != nil {
		return err
	}

	docID := r.docID(workspaceID, id)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("id", id))
	}

	return nil
}
