package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func newTaskDef(name string, typ types.PropertyType) *model.PropertyDefinition {
	return &model.PropertyDefinition{
		ID:         model.NewPropertyDefinitionID(),
		EntityType: types.EntityTypeTask,
		Name:       name,
		Key:        model.NewPropertyKey(name),
		Type:       typ,
	}
}

func runPropertyRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns workspace and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ws := testWorkspace()

		created, err := repo.Property().Create(ctx, ws, newTaskDef("Budget", types.PropertyTypeNumber))
		gt.NoError(t, err).Required()

		gt.Value(t, created.WorkspaceID).Equal(ws)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.IsZero()).False()
	})

	t.Run("Create rejects duplicate key for same entity type", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ws := testWorkspace()

		def := newTaskDef("Budget", types.PropertyTypeNumber)
		_, err := repo.Property().Create(ctx, ws, def)
		gt.NoError(t, err).Required()

		dup := newTaskDef("Budget Copy", types.PropertyTypeNumber)
		dup.Key = def.Key
		_, err = repo.Property().Create(ctx, ws, dup)
		gt.Value(t, err).NotNil()
	})

	t.Run("Get unknown ID is not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Property().Get(ctx, testWorkspace(), "no-such-id")
		gt.Value(t, err).NotNil()
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("Get is scoped to the workspace", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Property().Create(ctx, testWorkspace(), newTaskDef("Budget", types.PropertyTypeNumber))
		gt.NoError(t, err).Required()

		_, err = repo.Property().Get(ctx, testWorkspace(), created.ID)
		gt.Value(t, err).NotNil()
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("GetByKey returns nil when key is unused", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		def, err := repo.Property().GetByKey(ctx, testWorkspace(), types.EntityTypeTask, "unused_key")
		gt.NoError(t, err)
		gt.Value(t, def).Nil()
	})

	t.Run("List returns definitions of one entity type in creation order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ws := testWorkspace()

		first, err := repo.Property().Create(ctx, ws, newTaskDef("Budget", types.PropertyTypeNumber))
		gt.NoError(t, err).Required()
		time.Sleep(5 * time.Millisecond)
		second, err := repo.Property().Create(ctx, ws, newTaskDef("Stage", types.PropertyTypeSelect))
		gt.NoError(t, err).Required()

		other := newTaskDef("Retainer", types.PropertyTypeNumber)
		other.EntityType = types.EntityTypeClient
		_, err = repo.Property().Create(ctx, ws, other)
		gt.NoError(t, err).Required()

		defs, err := repo.Property().List(ctx, ws, types.EntityTypeTask)
		gt.NoError(t, err).Required()
		gt.Array(t, defs).Length(2).Required()
		gt.Value(t, defs[0].ID).Equal(first.ID)
		gt.Value(t, defs[1].ID).Equal(second.ID)
	})

	t.Run("Update preserves key and creation time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ws := testWorkspace()

		created, err := repo.Property().Create(ctx, ws, newTaskDef("Budget", types.PropertyTypeNumber))
		gt.NoError(t, err).Required()

		modified := created.Clone()
		modified.Name = "Total Budget"
		modified.Key = "attempted_key_change"
		updated, err := repo.Property().Update(ctx, ws, modified)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Name).Equal("Total Budget")
		gt.Value(t, updated.Key).Equal(created.Key)
		gt.Value(t, updated.CreatedAt.Unix()).Equal(created.CreatedAt.Unix())
	})

	t.Run("Delete removes the definition only", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ws := testWorkspace()

		created, err := repo.Property().Create(ctx, ws, newTaskDef("Budget", types.PropertyTypeNumber))
		gt.NoError(t, err).Required()

		// A value stored under the definition's key stays behind
		err = repo.Value().Save(ctx, ws, &model.PropertyValue{
			EntityType: types.EntityTypeTask,
			RecordID:   1,
			Key:        created.Key,
			Value:      float64(500),
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Property().Delete(ctx, ws, created.ID)).Required()

		_, err = repo.Property().Get(ctx, ws, created.ID)
		gt.Bool(t, isNotFound(err)).True()

		pv, err := repo.Value().Get(ctx, ws, types.EntityTypeTask, 1, created.Key)
		gt.NoError(t, err).Required()
		gt.Value(t, pv).NotNil()
	})
}

func TestMemoryPropertyRepository(t *testing.T) {
	runPropertyRepositoryTest(t, newMemoryRepo)
}

func TestFirestorePropertyRepository(t *testing.T) {
	runPropertyRepositoryTest(t, newFirestoreRepo)
}
