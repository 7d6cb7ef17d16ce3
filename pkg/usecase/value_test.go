package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/atelier-lab/atelier/pkg/repository/memory"
	"github.com/atelier-lab/atelier/pkg/usecase"
	"github.com/m-mizutani/gt"
)

type valueFixture struct {
	repo     *memory.Memory
	record   *usecase.RecordUseCase
	property *usecase.PropertyUseCase
	task     *model.Task
}

func newValueFixture(t *testing.T) *valueFixture {
	t.Helper()
	repo := memory.New()
	f := &valueFixture{
		repo:     repo,
		record:   usecase.NewRecordUseCase(repo),
		property: usecase.NewPropertyUseCase(repo),
	}
	task, err := f.record.CreateTask(context.Background(), testWorkspaceID, usecase.CreateTaskInput{Title: "Design homepage"})
	gt.NoError(t, err).Required()
	f.task = task
	return f
}

func (f *valueFixture) defineProperty(t *testing.T, input usecase.CreatePropertyInput) *model.PropertyDefinition {
	t.Helper()
	def, err := f.property.Create(context.Background(), testWorkspaceID, input)
	gt.NoError(t, err).Required()
	return def
}

func TestRecordUseCase_SetValue(t *testing.T) {
	t.Run("stores and updates a number value", func(t *testing.T) {
		f := newValueFixture(t)
		ctx := context.Background()
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Budget",
			Type:       types.PropertyTypeNumber,
		})

		pv, err := f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, 500)
		gt.NoError(t, err).Required()
		gt.Value(t, pv.Value).Equal(float64(500))

		pv, err = f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, 750)
		gt.NoError(t, err).Required()
		gt.Value(t, pv.Value).Equal(float64(750))

		stored, err := f.repo.Value().Get(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Value).Equal(float64(750))

		entries, err := f.repo.Activity().ListByRecord(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(3).Required() // created + two value updates

		last := entries[2]
		gt.Value(t, last.Action).Equal(types.ActivityActionUpdated)
		gt.Value(t, last.Field).Equal(string(def.Key))
		gt.Value(t, last.From).Equal("500")
		gt.Value(t, last.To).Equal("750")
	})

	t.Run("rewriting the same value is a no-op", func(t *testing.T) {
		f := newValueFixture(t)
		ctx := context.Background()
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Budget",
			Type:       types.PropertyTypeNumber,
		})

		_, err := f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, 500)
		gt.NoError(t, err).Required()
		stored, err := f.repo.Value().Get(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key)
		gt.NoError(t, err).Required()

		_, err = f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, 500)
		gt.NoError(t, err).Required()
		after, err := f.repo.Value().Get(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key)
		gt.NoError(t, err).Required()
		gt.Value(t, after.UpdatedAt).Equal(stored.UpdatedAt)

		entries, err := f.repo.Activity().ListByRecord(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2) // created + one value update only
	})

	t.Run("type mismatch fails", func(t *testing.T) {
		f := newValueFixture(t)
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Budget",
			Type:       types.PropertyTypeNumber,
		})

		_, err := f.record.SetValue(context.Background(), testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, "a lot")
		gt.Bool(t, errors.Is(err, model.ErrInvalidValueType)).True()
	})

	t.Run("unknown key fails", func(t *testing.T) {
		f := newValueFixture(t)
		_, err := f.record.SetValue(context.Background(), testWorkspaceID, types.EntityTypeTask, f.task.ID, "ghost_key", "x")
		gt.Bool(t, errors.Is(err, usecase.ErrPropertyNotFound)).True()
	})

	t.Run("unknown record fails", func(t *testing.T) {
		f := newValueFixture(t)
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Budget",
			Type:       types.PropertyTypeNumber,
		})

		_, err := f.record.SetValue(context.Background(), testWorkspaceID, types.EntityTypeTask, 999, def.Key, 500)
		gt.Bool(t, errors.Is(err, usecase.ErrRecordNotFound)).True()
	})

	t.Run("required property rejects empty value", func(t *testing.T) {
		f := newValueFixture(t)
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Owner",
			Type:       types.PropertyTypeText,
			Required:   true,
		})

		_, err := f.record.SetValue(context.Background(), testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, "")
		gt.Bool(t, errors.Is(err, model.ErrMissingRequired)).True()
	})

	t.Run("false is a valid value for a required checkbox", func(t *testing.T) {
		f := newValueFixture(t)
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Billable",
			Type:       types.PropertyTypeCheckbox,
			Required:   true,
		})

		pv, err := f.record.SetValue(context.Background(), testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, false)
		gt.NoError(t, err).Required()
		gt.Value(t, pv.Value).Equal(false)
	})

	t.Run("orphan select value survives re-write", func(t *testing.T) {
		f := newValueFixture(t)
		ctx := context.Background()
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Stage",
			Type:       types.PropertyTypeSelect,
			Options: []model.PropertyOption{
				{Value: "draft", Label: "Draft"},
				{Value: "review", Label: "Review"},
			},
		})

		_, err := f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, "review")
		gt.NoError(t, err).Required()

		// Remove "review" from the options; the stored value becomes an orphan
		_, err = f.property.UpdateOptions(ctx, testWorkspaceID, def.ID, []model.PropertyOption{
			{Value: "draft", Label: "Draft"},
		})
		gt.NoError(t, err).Required()

		// Re-writing the orphan value still works
		pv, err := f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, "review")
		gt.NoError(t, err).Required()
		gt.Value(t, pv.Value).Equal("review")

		// A different removed value is rejected
		_, err = f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, "final")
		gt.Bool(t, errors.Is(err, model.ErrInvalidOption)).True()
	})
}

func TestRecordUseCase_ClearValue(t *testing.T) {
	t.Run("removes the value and logs the change", func(t *testing.T) {
		f := newValueFixture(t)
		ctx := context.Background()
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Budget",
			Type:       types.PropertyTypeNumber,
		})

		_, err := f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, 500)
		gt.NoError(t, err).Required()

		gt.NoError(t, f.record.ClearValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key)).Required()

		pv, err := f.repo.Value().Get(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key)
		gt.NoError(t, err).Required()
		gt.Value(t, pv).Nil()
	})

	t.Run("required property cannot be cleared", func(t *testing.T) {
		f := newValueFixture(t)
		ctx := context.Background()
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Owner",
			Type:       types.PropertyTypeText,
			Required:   true,
		})

		_, err := f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, "ana")
		gt.NoError(t, err).Required()

		err = f.record.ClearValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key)
		gt.Bool(t, errors.Is(err, model.ErrMissingRequired)).True()
	})

	t.Run("clearing an unset key is a no-op", func(t *testing.T) {
		f := newValueFixture(t)
		ctx := context.Background()
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Budget",
			Type:       types.PropertyTypeNumber,
		})

		gt.NoError(t, f.record.ClearValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key))

		entries, err := f.repo.Activity().ListByRecord(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1) // created only
	})
}

func TestRecordUseCase_Descriptors(t *testing.T) {
	t.Run("builtins followed by dynamic properties", func(t *testing.T) {
		f := newValueFixture(t)
		ctx := context.Background()
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Budget",
			Type:       types.PropertyTypeNumber,
		})

		_, err := f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, 500)
		gt.NoError(t, err).Required()

		descriptors, err := f.record.Descriptors(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, descriptors).Length(7).Required()

		budget := descriptors[6]
		gt.Value(t, budget.Key).Equal(def.Key)
		gt.Value(t, budget.Value).Equal(float64(500))
	})

	t.Run("deleted definition stops rendering but keeps the row", func(t *testing.T) {
		f := newValueFixture(t)
		ctx := context.Background()
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Budget",
			Type:       types.PropertyTypeNumber,
		})

		_, err := f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, 500)
		gt.NoError(t, err).Required()

		gt.NoError(t, f.property.Delete(ctx, testWorkspaceID, def.ID, true)).Required()

		descriptors, err := f.record.Descriptors(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, descriptors).Length(6) // builtins only

		pv, err := f.repo.Value().Get(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key)
		gt.NoError(t, err).Required()
		gt.Value(t, pv).NotNil()
	})

	t.Run("type change without migration quarantines the value", func(t *testing.T) {
		f := newValueFixture(t)
		ctx := context.Background()
		def := f.defineProperty(t, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Notes",
			Type:       types.PropertyTypeText,
		})

		_, err := f.record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID, def.Key, "five hundred")
		gt.NoError(t, err).Required()

		_, err = f.property.ChangeType(ctx, testWorkspaceID, def.ID, types.PropertyTypeNumber, true)
		gt.NoError(t, err).Required()

		descriptors, err := f.record.Descriptors(ctx, testWorkspaceID, types.EntityTypeTask, f.task.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, descriptors).Length(7).Required()

		notes := descriptors[6]
		gt.Bool(t, notes.Quarantined).True()
		gt.Value(t, notes.Value).Equal("five hundred")
	})
}
