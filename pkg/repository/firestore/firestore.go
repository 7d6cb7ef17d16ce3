package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Firestore is the Cloud Firestore backed repository. Every collection name
// can be prefixed so multiple deployments share one database.
type Firestore struct {
	client   *firestore.Client
	property *propertyRepository
	value    *valueRepository
	task     *taskRepository
	project  *projectRepository
	clients  *clientRepository
	comment  *commentRepository
	activity *activityRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.property.collectionPrefix = prefix
		f.value.collectionPrefix = prefix
		f.task.collectionPrefix = prefix
		f.project.collectionPrefix = prefix
		f.clients.collectionPrefix = prefix
		f.comment.collectionPrefix = prefix
		f.activity.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:   client,
		property: newPropertyRepository(client),
		value:    newValueRepository(client),
		task:     newTaskRepository(client),
		project:  newProjectRepository(client),
		clients:  newClientRepository(client),
		comment:  newCommentRepository(client),
		activity: newActivityRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Property() interfaces.PropertyRepository {
	return f.property
}

func (f *Firestore) Value() interfaces.PropertyValueRepository {
	return f.value
}

func (f *Firestore) Task() interfaces.TaskRepository {
	return f.task
}

func (f *Firestore) Project() interfaces.ProjectRepository {
	return f.project
}

func (f *Firestore) Client() interfaces.ClientRepository {
	return f.clients
}

func (f *Firestore) Comment() interfaces.CommentRepository {
	return f.comment
}

func (f *Firestore) Activity() interfaces.ActivityRepository {
	return f.activity
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
