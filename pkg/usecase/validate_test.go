package usecase_test

import (
	"context"
	"testing"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/atelier-lab/atelier/pkg/repository/memory"
	"github.com/atelier-lab/atelier/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func newTestRegistry() *model.WorkspaceRegistry {
	registry := model.NewWorkspaceRegistry()
	registry.Register(&model.WorkspaceEntry{
		Workspace: model.Workspace{ID: testWorkspaceID, Name: "Test Workspace"},
		Labels:    model.EntityLabels{Task: "Task", Project: "Project", Client: "Client"},
	})
	return registry
}

func TestValidateDB(t *testing.T) {
	t.Run("clean database reports no issues", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, newTestRegistry())
		ctx := context.Background()

		def, err := uc.Property.Create(ctx, testWorkspaceID, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Stage",
			Type:       types.PropertyTypeSelect,
			Options:    []model.PropertyOption{{Value: "draft", Label: "Draft"}},
		})
		gt.NoError(t, err).Required()

		task, err := uc.Record.CreateTask(ctx, testWorkspaceID, usecase.CreateTaskInput{Title: "t"})
		gt.NoError(t, err).Required()
		_, err = uc.Record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, task.ID, def.Key, "draft")
		gt.NoError(t, err).Required()

		result, err := uc.ValidateDB(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, result.HasIssues()).False()
	})

	t.Run("stale option reference is reported", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, newTestRegistry())
		ctx := context.Background()

		def, err := uc.Property.Create(ctx, testWorkspaceID, usecase.CreatePropertyInput{
			EntityType: types.EntityTypeTask,
			Name:       "Stage",
			Type:       types.PropertyTypeSelect,
			Options: []model.PropertyOption{
				{Value: "draft", Label: "Draft"},
				{Value: "review", Label: "Review"},
			},
		})
		gt.NoError(t, err).Required()

		task, err := uc.Record.CreateTask(ctx, testWorkspaceID, usecase.CreateTaskInput{Title: "t"})
		gt.NoError(t, err).Required()
		_, err = uc.Record.SetValue(ctx, testWorkspaceID, types.EntityTypeTask, task.ID, def.Key, "review")
		gt.NoError(t, err).Required()

		// Shrink the option set so the stored value goes stale
		_, err = uc.Property.UpdateOptions(ctx, testWorkspaceID, def.ID, []model.PropertyOption{
			{Value: "draft", Label: "Draft"},
		})
		gt.NoError(t, err).Required()

		result, err := uc.ValidateDB(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, result.HasIssues()).True()
		gt.Array(t, result.Issues).Length(1).Required()

		issue := result.Issues[0]
		gt.Value(t, issue.WorkspaceID).Equal(testWorkspaceID)
		gt.Value(t, issue.EntityType).Equal(types.EntityTypeTask)
		gt.Value(t, issue.RecordID).Equal(task.ID)
		gt.Value(t, issue.PropertyKey).Equal(def.Key)
	})
}
