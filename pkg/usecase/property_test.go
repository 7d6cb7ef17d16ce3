package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/atelier-lab/atelier/pkg/repository/memory"
	"github.com/atelier-lab/atelier/pkg/usecase"
	"github.com/m-mizutani/gt"
)

const testWorkspaceID = "test-ws"

func TestPropertyUseCase_Create(t *testing.T) {
	t.Run("derives key from name", func(t *testing.T) {
		uc := usecase.NewPropertyUseCase(memory.New())
		ctx := context.Background()

		created, err := uc.Create(ctx, testWorkspaceID, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Launch Date",
			Type:       types.PropertyTypeDate,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.Name).Equal("Launch Date")
		gt.Bool(t, strings.HasPrefix(string(created.Key), "launch_date_")).True()
		gt.Value(t, created.Type).Equal(types.PropertyTypeDate)
	})

	t.Run("empty name fails", func(t *testing.T) {
		uc := usecase.NewPropertyUseCase(memory.New())
		_, err := uc.Create(context.Background(), testWorkspaceID, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Type:       types.PropertyTypeText,
		})
		gt.Bool(t, errors.Is(err, usecase.ErrNameRequired)).True()
	})

	t.Run("options on a non-option type fail", func(t *testing.T) {
		uc := usecase.NewPropertyUseCase(memory.New())
		_, err := uc.Create(context.Background(), testWorkspaceID, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Budget",
			Type:       types.PropertyTypeNumber,
			Options:    []model.PropertyOption{{Value: "a", Label: "A"}},
		})
		gt.Value(t, err).NotNil()
	})

	t.Run("invalid entity type fails", func(t *testing.T) {
		uc := usecase.NewPropertyUseCase(memory.New())
		_, err := uc.Create(context.Background(), testWorkspaceID, usecase.CreatePropertyInput{
			EntityType: "campaign",
			Name:       "Budget",
			Type:       types.PropertyTypeNumber,
		})
		gt.Value(t, err).NotNil()
	})
}

func TestPropertyUseCase_Rename(t *testing.T) {
	uc := usecase.NewPropertyUseCase(memory.New())
	ctx := context.Background()

	created, err := uc.Create(ctx, testWorkspaceID, usecase.CreatePropertyInput{
		EntityType: types.EntityTypeTask,
		Name:       "Budget",
		Type:       types.PropertyTypeNumber,
	})
	gt.NoError(t, err).Required()

	renamed, err := uc.Rename(ctx, testWorkspaceID, created.ID, "Total Budget")
	gt.NoError(t, err).Required()

	// Renaming changes the label only; the storage key never moves
	gt.Value(t, renamed.Name).Equal("Total Budget")
	gt.Value(t, renamed.Key).Equal(created.Key)
}

func TestPropertyUseCase_ChangeType(t *testing.T) {
	setup := func(t *testing.T) (*usecase.PropertyUseCase, *model.PropertyDefinition) {
		t.Helper()
		uc := usecase.NewPropertyUseCase(memory.New())
		created, err := uc.Create(context.Background(), testWorkspaceID, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Stage",
			Type:       types.PropertyTypeSelect,
			Options:    []model.PropertyOption{{Value: "draft", Label: "Draft"}},
		})
		gt.NoError(t, err).Required()
		return uc, created
	}

	t.Run("requires confirmation", func(t *testing.T) {
		uc, created := setup(t)
		_, err := uc.ChangeType(context.Background(), testWorkspaceID, created.ID, types.PropertyTypeText, false)
		gt.Bool(t, errors.Is(err, usecase.ErrConfirmationRequired)).True()
	})

	t.Run("same type is a no-op without confirmation", func(t *testing.T) {
		uc, created := setup(t)
		def, err := uc.ChangeType(context.Background(), testWorkspaceID, created.ID, types.PropertyTypeSelect, false)
		gt.NoError(t, err).Required()
		gt.Value(t, def.Type).Equal(types.PropertyTypeSelect)
	})

	t.Run("confirmed change drops options for non-option types", func(t *testing.T) {
		uc, created := setup(t)
		changed, err := uc.ChangeType(context.Background(), testWorkspaceID, created.ID, types.PropertyTypeText, true)
		gt.NoError(t, err).Required()
		gt.Value(t, changed.Type).Equal(types.PropertyTypeText)
		gt.Array(t, changed.Options).Length(0)
	})

	t.Run("select to multi_select keeps options", func(t *testing.T) {
		uc, created := setup(t)
		changed, err := uc.ChangeType(context.Background(), testWorkspaceID, created.ID, types.PropertyTypeMultiSelect, true)
		gt.NoError(t, err).Required()
		gt.Array(t, changed.Options).Length(1)
	})
}

func TestPropertyUseCase_Delete(t *testing.T) {
	repo := memory.New()
	uc := usecase.NewPropertyUseCase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, testWorkspaceID, usecase.CreatePropertyInput{
		EntityType: types.EntityTypeTask,
		Name:       "Budget",
		Type:       types.PropertyTypeNumber,
	})
	gt.NoError(t, err).Required()

	err = uc.Delete(ctx, testWorkspaceID, created.ID, false)
	gt.Bool(t, errors.Is(err, usecase.ErrConfirmationRequired)).True()

	// A value row stored under the key survives the deletion
	gt.NoError(t, repo.Value().Save(ctx, testWorkspaceID, &model.PropertyValue{
		EntityType: types.EntityTypeTask,
		RecordID:   1,
		Key:        created.Key,
		Value:      float64(500),
	})).Required()

	gt.NoError(t, uc.Delete(ctx, testWorkspaceID, created.ID, true)).Required()

	_, err = uc.Get(ctx, testWorkspaceID, created.ID)
	gt.Bool(t, errors.Is(err, usecase.ErrPropertyNotFound)).True()

	pv, err := repo.Value().Get(ctx, testWorkspaceID, types.EntityTypeTask, 1, created.Key)
	gt.NoError(t, err).Required()
	gt.Value(t, pv).NotNil()
}

func TestPropertyUseCase_Duplicate(t *testing.T) {
	uc := usecase.NewPropertyUseCase(memory.New())
	ctx := context.Background()

	src, err := uc.Create(ctx, testWorkspaceID, usecase.CreatePropertyInput{
		EntityType: types.EntityTypeTask,
		Name:       "Stage",
		Type:       types.PropertyTypeSelect,
		Options:    []model.PropertyOption{{Value: "draft", Label: "Draft"}},
	})
	gt.NoError(t, err).Required()

	dup, err := uc.Duplicate(ctx, testWorkspaceID, src.ID)
	gt.NoError(t, err).Required()

	gt.Value(t, dup.Name).Equal("Stage (copy)")
	gt.Value(t, dup.Key).NotEqual(src.Key)
	gt.Value(t, dup.ID).NotEqual(src.ID)
	gt.Array(t, dup.Options).Length(1)
}

func TestPropertyUseCase_UpdateOptions(t *testing.T) {
	t.Run("replaces the option list", func(t *testing.T) {
		uc := usecase.NewPropertyUseCase(memory.New())
		ctx := context.Background()

		created, err := uc.Create(ctx, testWorkspaceID, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Stage",
			Type:       types.PropertyTypeSelect,
			Options:    []model.PropertyOption{{Value: "draft", Label: "Draft"}},
		})
		gt.NoError(t, err).Required()

		updated, err := uc.UpdateOptions(ctx, testWorkspaceID, created.ID, []model.PropertyOption{
			{Value: "review", Label: "Review"},
			{Value: "final", Label: "Final"},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Options).Length(2)
	})

	t.Run("fails for types without options", func(t *testing.T) {
		uc := usecase.NewPropertyUseCase(memory.New())
		ctx := context.Background()

		created, err := uc.Create(ctx, testWorkspaceID, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Budget",
			Type:       types.PropertyTypeNumber,
		})
		gt.NoError(t, err).Required()

		_, err = uc.UpdateOptions(ctx, testWorkspaceID, created.ID, []model.PropertyOption{
			{Value: "x", Label: "X"},
		})
		gt.Value(t, err).NotNil()
	})
}
