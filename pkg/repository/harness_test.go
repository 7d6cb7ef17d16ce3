package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/repository/firestore"
	"github.com/atelier-lab/atelier/pkg/repository/memory"
	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
)

// isNotFound matches the not-found sentinel of either backend
func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

// testWorkspace returns a unique workspace ID so tests never see data from
// previous runs against a shared Firestore project
func testWorkspace() string {
	return "test-ws-" + uuid.New().String()[:8]
}

func newMemoryRepo(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID)
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}
