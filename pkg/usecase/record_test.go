package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/atelier-lab/atelier/pkg/repository/memory"
	"github.com/atelier-lab/atelier/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func newTask(t *testing.T, repo interfaces.Repository, uc *usecase.RecordUseCase, title string) *model.Task {
	t.Helper()
	task, err := uc.CreateTask(context.Background(), testWorkspaceID, usecase.CreateTaskInput{Title: title})
	gt.NoError(t, err).Required()
	return task
}

func activityActions(t *testing.T, repo interfaces.Repository, entityType types.EntityType, recordID int64) []types.ActivityAction {
	t.Helper()
	entries, err := repo.Activity().ListByRecord(context.Background(), testWorkspaceID, entityType, recordID)
	gt.NoError(t, err).Required()
	actions := make([]types.ActivityAction, len(entries))
	for i, e := range entries {
		actions[i] = e.Action
	}
	return actions
}

func TestRecordUseCase_CreateTask(t *testing.T) {
	t.Run("applies defaults and logs creation", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewRecordUseCase(repo)
		ctx := context.Background()

		task, err := uc.CreateTask(ctx, testWorkspaceID, usecase.CreateTaskInput{Title: "Design homepage"})
		gt.NoError(t, err).Required()

		gt.Value(t, task.Status).Equal(types.TaskStatusTodo)
		gt.Value(t, task.Priority).Equal(types.TaskPriorityMedium)

		gt.Value(t, activityActions(t, repo, types.EntityTypeTask, task.ID)).
			Equal([]types.ActivityAction{types.ActivityActionCreated})
	})

	t.Run("empty title fails", func(t *testing.T) {
		uc := usecase.NewRecordUseCase(memory.New())
		_, err := uc.CreateTask(context.Background(), testWorkspaceID, usecase.CreateTaskInput{Title: "   "})
		gt.Bool(t, errors.Is(err, usecase.ErrTitleRequired)).True()
	})

	t.Run("invalid status fails", func(t *testing.T) {
		uc := usecase.NewRecordUseCase(memory.New())
		_, err := uc.CreateTask(context.Background(), testWorkspaceID, usecase.CreateTaskInput{
			Title:  "x",
			Status: "paused",
		})
		gt.Value(t, err).NotNil()
	})
}

func TestRecordUseCase_UpdateTask(t *testing.T) {
	t.Run("status transition logs status_changed with transition fields", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewRecordUseCase(repo)
		ctx := context.Background()
		task := newTask(t, repo, uc, "Design homepage")

		status := types.TaskStatusInProgress
		updated, err := uc.UpdateTask(ctx, testWorkspaceID, task.ID, usecase.TaskPatch{Status: &status})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.TaskStatusInProgress)

		entries, err := repo.Activity().ListByRecord(ctx, testWorkspaceID, types.EntityTypeTask, task.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2).Required()

		change := entries[1]
		gt.Value(t, change.Action).Equal(types.ActivityActionStatusChanged)
		gt.Value(t, change.Field).Equal("status")
		gt.Value(t, change.From).Equal("todo")
		gt.Value(t, change.To).Equal("in_progress")
	})

	t.Run("non-status change logs a plain update", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewRecordUseCase(repo)
		ctx := context.Background()
		task := newTask(t, repo, uc, "Design homepage")

		title := "Design landing page"
		_, err := uc.UpdateTask(ctx, testWorkspaceID, task.ID, usecase.TaskPatch{Title: &title})
		gt.NoError(t, err).Required()

		gt.Value(t, activityActions(t, repo, types.EntityTypeTask, task.ID)).
			Equal([]types.ActivityAction{types.ActivityActionCreated, types.ActivityActionUpdated})
	})

	t.Run("no-op patch writes nothing", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewRecordUseCase(repo)
		ctx := context.Background()
		task := newTask(t, repo, uc, "Design homepage")

		sameTitle := task.Title
		sameStatus := task.Status
		updated, err := uc.UpdateTask(ctx, testWorkspaceID, task.ID, usecase.TaskPatch{
			Title:  &sameTitle,
			Status: &sameStatus,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.UpdatedAt).Equal(task.UpdatedAt)

		gt.Value(t, activityActions(t, repo, types.EntityTypeTask, task.ID)).
			Equal([]types.ActivityAction{types.ActivityActionCreated})
	})

	t.Run("clearing the due date", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewRecordUseCase(repo)
		ctx := context.Background()
		task := newTask(t, repo, uc, "Design homepage")

		due := task.CreatedAt.AddDate(0, 0, 7)
		updated, err := uc.UpdateTask(ctx, testWorkspaceID, task.ID, usecase.TaskPatch{DueDate: &due})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.DueDate).NotNil()

		cleared, err := uc.UpdateTask(ctx, testWorkspaceID, task.ID, usecase.TaskPatch{ClearDue: true})
		gt.NoError(t, err).Required()
		gt.Value(t, cleared.DueDate).Nil()
	})

	t.Run("unknown record fails with not found", func(t *testing.T) {
		uc := usecase.NewRecordUseCase(memory.New())
		title := "x"
		_, err := uc.UpdateTask(context.Background(), testWorkspaceID, 999, usecase.TaskPatch{Title: &title})
		gt.Bool(t, errors.Is(err, usecase.ErrRecordNotFound)).True()
	})
}

func TestRecordUseCase_GetTask(t *testing.T) {
	t.Run("resolves relation titles", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewRecordUseCase(repo)
		ctx := context.Background()

		client, err := uc.CreateClient(ctx, testWorkspaceID, usecase.CreateClientInput{Name: "Acme"})
		gt.NoError(t, err).Required()
		project, err := uc.CreateProject(ctx, testWorkspaceID, usecase.CreateProjectInput{
			Title:    "Relaunch",
			ClientID: client.ID,
		})
		gt.NoError(t, err).Required()
		task, err := uc.CreateTask(ctx, testWorkspaceID, usecase.CreateTaskInput{
			Title:     "Design",
			ProjectID: project.ID,
			ClientID:  client.ID,
		})
		gt.NoError(t, err).Required()

		detail, err := uc.GetTask(ctx, testWorkspaceID, task.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, detail.ProjectTitle).Equal("Relaunch")
		gt.Value(t, detail.ClientName).Equal("Acme")
	})

	t.Run("dangling relation resolves to empty title", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewRecordUseCase(repo)
		ctx := context.Background()

		task, err := uc.CreateTask(ctx, testWorkspaceID, usecase.CreateTaskInput{
			Title:     "Design",
			ProjectID: 42, // never created
		})
		gt.NoError(t, err).Required()

		detail, err := uc.GetTask(ctx, testWorkspaceID, task.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, detail.ProjectTitle).Equal("")
	})
}

func TestRecordUseCase_ArchiveAndDelete(t *testing.T) {
	t.Run("archive hides from default lists", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewRecordUseCase(repo)
		ctx := context.Background()
		task := newTask(t, repo, uc, "Old task")

		gt.NoError(t, uc.Archive(ctx, testWorkspaceID, types.EntityTypeTask, task.ID)).Required()

		tasks, err := uc.ListTasks(ctx, testWorkspaceID)
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(0)

		all, err := uc.ListTasks(ctx, testWorkspaceID, interfaces.WithArchived())
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(1)

		gt.Value(t, activityActions(t, repo, types.EntityTypeTask, task.ID)).
			Equal([]types.ActivityAction{types.ActivityActionCreated, types.ActivityActionArchived})
	})

	t.Run("delete requires confirmation", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewRecordUseCase(repo)
		ctx := context.Background()
		task := newTask(t, repo, uc, "Doomed")

		err := uc.Delete(ctx, testWorkspaceID, types.EntityTypeTask, task.ID, false)
		gt.Bool(t, errors.Is(err, usecase.ErrConfirmationRequired)).True()

		// Still there
		_, err = uc.GetTask(ctx, testWorkspaceID, task.ID)
		gt.NoError(t, err)
	})

	t.Run("confirmed delete removes record and its values", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewRecordUseCase(repo)
		ctx := context.Background()
		task := newTask(t, repo, uc, "Doomed")

		gt.NoError(t, repo.Value().Save(ctx, testWorkspaceID, &model.PropertyValue{
			EntityType: types.EntityTypeTask,
			RecordID:   task.ID,
			Key:        "budget_x1",
			Value:      float64(500),
		})).Required()

		gt.NoError(t, uc.Delete(ctx, testWorkspaceID, types.EntityTypeTask, task.ID, true)).Required()

		_, err := uc.GetTask(ctx, testWorkspaceID, task.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrRecordNotFound)).True()

		values, err := repo.Value().ListByRecord(ctx, testWorkspaceID, types.EntityTypeTask, task.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, values).Length(0)
	})
}
