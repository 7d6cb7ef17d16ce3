package usecase

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// RecordUseCase manages tasks, projects and clients along with their custom
// property values, comments excluded.
type RecordUseCase struct {
	repo interfaces.Repository
}

func NewRecordUseCase(repo interfaces.Repository) *RecordUseCase {
	return &RecordUseCase{repo: repo}
}

// CreateTaskInput holds the attributes for a new task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      types.TaskStatus
	Priority    types.TaskPriority
	DueDate     *time.Time
	AssigneeIDs []string
	ProjectID   int64
	ClientID    int64
}

// CreateProjectInput holds the attributes for a new project
type CreateProjectInput struct {
	Title       string
	Description string
	Status      types.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	ClientID    int64
}

// CreateClientInput holds the attributes for a new client
type CreateClientInput struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Website string
	Notes   string
}

// TaskDetail is a task with its relation titles resolved for display
type TaskDetail struct {
	Task         *model.Task
	ProjectTitle string
	ClientName   string
}

// ProjectDetail is a project with its relation titles resolved for display
type ProjectDetail struct {
	Project    *model.Project
	ClientName string
}

func (uc *RecordUseCase) CreateTask(ctx context.Context, workspaceID string, input CreateTaskInput) (*model.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, goerr.Wrap(ErrTitleRequired, "task title must not be empty")
	}
	if input.Status == "" {
		input.Status = types.TaskStatusTodo
	}
	if !input.Status.IsValid() {
		return nil, goerr.New("invalid task status", goerr.V("status", input.Status))
	}
	if input.Priority == "" {
		input.Priority = types.TaskPriorityMedium
	}
	if !input.Priority.IsValid() {
		return nil, goerr.New("invalid task priority", goerr.V("priority", input.Priority))
	}

	task := &model.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		AssigneeIDs: input.AssigneeIDs,
		ProjectID:   input.ProjectID,
		ClientID:    input.ClientID,
	}

	created, err := uc.repo.Task().Create(ctx, workspaceID, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create task")
	}

	uc.recordActivity(ctx, workspaceID, &model.Activity{
		EntityType: types.EntityTypeTask,
		RecordID:   created.ID,
		Action:     types.ActivityActionCreated,
	})

	return created, nil
}

func (uc *RecordUseCase) CreateProject(ctx context.Context, workspaceID string, input CreateProjectInput) (*model.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, goerr.Wrap(ErrTitleRequired, "project title must not be empty")
	}
	if input.Status == "" {
		input.Status = types.ProjectStatusPlanning
	}
	if !input.Status.IsValid() {
		return nil, goerr.New("invalid project status", goerr.V("status", input.Status))
	}

	project := &model.Project{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		ClientID:    input.ClientID,
	}

	created, err := uc.repo.Project().Create(ctx, workspaceID, project)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create project")
	}

	uc.recordActivity(ctx, workspaceID, &model.Activity{
		EntityType: types.EntityTypeProject,
		RecordID:   created.ID,
		Action:     types.ActivityActionCreated,
	})

	return created, nil
}

func (uc *RecordUseCase) CreateClient(ctx context.Context, workspaceID string, input CreateClientInput) (*model.Client, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, goerr.Wrap(ErrNameRequired, "client name must not be empty")
	}

	client := &model.Client{
		Name:    input.Name,
		Company: input.Company,
		Email:   input.Email,
		Phone:   input.Phone,
		Website: input.Website,
		Notes:   input.Notes,
	}

	created, err := uc.repo.Client().Create(ctx, workspaceID, client)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create client")
	}

	uc.recordActivity(ctx, workspaceID, &model.Activity{
		EntityType: types.EntityTypeClient,
		RecordID:   created.ID,
		Action:     types.ActivityActionCreated,
	})

	return created, nil
}

// GetTask retrieves a task with its relation titles resolved. A relation
// pointing at a removed record resolves to an empty title, not an error.
func (uc *RecordUseCase) GetTask(ctx context.Context, workspaceID string, id int64) (*TaskDetail, error) {
	task, err := uc.repo.Task().Get(ctx, workspaceID, id)
	if err != nil {
		return nil, uc.notFoundOr(err, types.EntityTypeTask, id)
	}

	detail := &TaskDetail{Task: task}
	if task.ProjectID != 0 {
		if project, err := uc.repo.Project().Get(ctx, workspaceID, task.ProjectID); err == nil {
			detail.ProjectTitle = project.Title
		} else if !isNotFound(err) {
			return nil, goerr.Wrap(err, "failed to resolve task project", goerr.V(RecordIDKey, id))
		}
	}
	if task.ClientID != 0 {
		if client, err := uc.repo.Client().Get(ctx, workspaceID, task.ClientID); err == nil {
			detail.ClientName = client.Name
		} else if !isNotFound(err) {
			return nil, goerr.Wrap(err, "failed to resolve task client", goerr.V(RecordIDKey, id))
		}
	}

	return detail, nil
}

// GetProject retrieves a project with its client name resolved
func (uc *RecordUseCase) GetProject(ctx context.Context, workspaceID string, id int64) (*ProjectDetail, error) {
	project, err := uc.repo.Project().Get(ctx, workspaceID, id)
	if err != nil {
		return nil, uc.notFoundOr(err, types.EntityTypeProject, id)
	}

	detail := &ProjectDetail{Project: project}
	if project.ClientID != 0 {
		if client, err := uc.repo.Client().Get(ctx, workspaceID, project.ClientID); err == nil {
			detail.ClientName = client.Name
		} else if !isNotFound(err) {
			return nil, goerr.Wrap(err, "failed to resolve project client", goerr.V(RecordIDKey, id))
		}
	}

	return detail, nil
}

// GetClient retrieves a client
func (uc *RecordUseCase) GetClient(ctx context.Context, workspaceID string, id int64) (*model.Client, error) {
	client, err := uc.repo.Client().Get(ctx, workspaceID, id)
	if err != nil {
		return nil, uc.notFoundOr(err, types.EntityTypeClient, id)
	}
	return client, nil
}

func (uc *RecordUseCase) ListTasks(ctx context.Context, workspaceID string, opts ...interfaces.ListOption) ([]*model.Task, error) {
	tasks, err := uc.repo.Task().List(ctx, workspaceID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks")
	}
	return tasks, nil
}

func (uc *RecordUseCase) ListProjects(ctx context.Context, workspaceID string, opts ...interfaces.ListOption) ([]*model.Project, error) {
	projects, err := uc.repo.Project().List(ctx, workspaceID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}
	return projects, nil
}

func (uc *RecordUseCase) ListClients(ctx context.Context, workspaceID string, opts ...interfaces.ListOption) ([]*model.Client, error) {
	clients, err := uc.repo.Client().List(ctx, workspaceID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list clients")
	}
	return clients, nil
}

// TaskPatch carries partial task updates; nil fields stay unchanged
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *types.TaskStatus
	Priority    *types.TaskPriority
	DueDate     *time.Time
	ClearDue    bool
	AssigneeIDs []string
	ProjectID   *int64
	ClientID    *int64
}

// UpdateTask applies a partial update. A status transition is logged as its
// own activity kind; any other effective change is logged as a plain update.
// Applying a patch that changes nothing writes neither record nor activity.
func (uc *RecordUseCase) UpdateTask(ctx context.Context, workspaceID string, id int64, patch TaskPatch) (*model.Task, error) {
	task, err := uc.repo.Task().Get(ctx, workspaceID, id)
	if err != nil {
		return nil, uc.notFoundOr(err, types.EntityTypeTask, id)
	}

	before := task.Clone()
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, goerr.Wrap(ErrTitleRequired, "task title must not be empty")
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, goerr.New("invalid task status", goerr.V("status", *patch.Status))
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return nil, goerr.New("invalid task priority", goerr.V("priority", *patch.Priority))
		}
		task.Priority = *patch.Priority
	}
	if patch.ClearDue {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		due := *patch.DueDate
		task.DueDate = &due
	}
	if patch.AssigneeIDs != nil {
		task.AssigneeIDs = patch.AssigneeIDs
	}
	if patch.ProjectID != nil {
		task.ProjectID = *patch.ProjectID
	}
	if patch.ClientID != nil {
		task.ClientID = *patch.ClientID
	}

	if reflect.DeepEqual(before, task) {
		return task, nil
	}

	updated, err := uc.repo.Task().Update(ctx, workspaceID, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V(RecordIDKey, id))
	}

	activity := &model.Activity{
		EntityType: types.EntityTypeTask,
		RecordID:   id,
		Action:     types.ActivityActionUpdated,
	}
	if before.Status != updated.Status {
		activity.Action = types.ActivityActionStatusChanged
		activity.Field = "status"
		activity.From = string(before.Status)
		activity.To = string(updated.Status)
	}
	uc.recordActivity(ctx, workspaceID, activity)

	return updated, nil
}

// ProjectPatch carries partial project updates; nil fields stay unchanged
type ProjectPatch struct {
	Title       *string
	Description *string
	Status      *types.ProjectStatus
	StartDate   *time.Time
	ClearStart  bool
	EndDate     *time.Time
	ClearEnd    bool
	ClientID    *int64
}

func (uc *RecordUseCase) UpdateProject(ctx context.Context, workspaceID string, id int64, patch ProjectPatch) (*model.Project, error) {
	project, err := uc.repo.Project().Get(ctx, workspaceID, id)
	if err != nil {
		return nil, uc.notFoundOr(err, types.EntityTypeProject, id)
	}

	before := project.Clone()
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, goerr.Wrap(ErrTitleRequired, "project title must not be empty")
		}
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, goerr.New("invalid project status", goerr.V("status", *patch.Status))
		}
		project.Status = *patch.Status
	}
	if patch.ClearStart {
		project.StartDate = nil
	} else if patch.StartDate != nil {
		d := *patch.StartDate
		project.StartDate = &d
	}
	if patch.ClearEnd {
		project.EndDate = nil
	} else if patch.EndDate != nil {
		d := *patch.EndDate
		project.EndDate = &d
	}
	if patch.ClientID != nil {
		project.ClientID = *patch.ClientID
	}

	if reflect.DeepEqual(before, project) {
		return project, nil
	}

	updated, err := uc.repo.Project().Update(ctx, workspaceID, project)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update project", goerr.V(RecordIDKey, id))
	}

	activity := &model.Activity{
		EntityType: types.EntityTypeProject,
		RecordID:   id,
		Action:     types.ActivityActionUpdated,
	}
	if before.Status != updated.Status {
		activity.Action = types.ActivityActionStatusChanged
		activity.Field = "status"
		activity.From = string(before.Status)
		activity.To = string(updated.Status)
	}
	uc.recordActivity(ctx, workspaceID, activity)

	return updated, nil
}

// ClientPatch carries partial client updates; nil fields stay unchanged
type ClientPatch struct {
	Name    *string
	Company *string
	Email   *string
	Phone   *string
	Website *string
	Notes   *string
}

func (uc *RecordUseCase) UpdateClient(ctx context.Context, workspaceID string, id int64, patch ClientPatch) (*model.Client, error) {
	client, err := uc.repo.Client().Get(ctx, workspaceID, id)
	if err != nil {
		return nil, uc.notFoundOr(err, types.EntityTypeClient, id)
	}

	before := client.Clone()
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, goerr.Wrap(ErrNameRequired, "client name must not be empty")
		}
		client.Name = *patch.Name
	}
	if patch.Company != nil {
		client.Company = *patch.Company
	}
	if patch.Email != nil {
		client.Email = *patch.Email
	}
	if patch.Phone != nil {
		client.Phone = *patch.Phone
	}
	if patch.Website != nil {
		client.Website = *patch.Website
	}
	if patch.Notes != nil {
		client.Notes = *patch.Notes
	}

	if reflect.DeepEqual(before, client) {
		return client, nil
	}

	updated, err := uc.repo.Client().Update(ctx, workspaceID, client)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update client", goerr.V(RecordIDKey, id))
	}

	uc.recordActivity(ctx, workspaceID, &model.Activity{
		EntityType: types.EntityTypeClient,
		RecordID:   id,
		Action:     types.ActivityActionUpdated,
	})

	return updated, nil
}

// Archive hides a record from default list views without losing its data
func (uc *RecordUseCase) Archive(ctx context.Context, workspaceID string, entityType types.EntityType, id int64) error {
	switch entityType {
	case types.EntityTypeTask:
		task, err := uc.repo.Task().Get(ctx, workspaceID, id)
		if err != nil {
			return uc.notFoundOr(err, entityType, id)
		}
		task.Archived = true
		if _, err := uc.repo.Task().Update(ctx, workspaceID, task); err != nil {
			return goerr.Wrap(err, "failed to archive task", goerr.V(RecordIDKey, id))
		}
	case types.EntityTypeProject:
		project, err := uc.repo.Project().Get(ctx, workspaceID, id)
		if err != nil {
			return uc.notFoundOr(err, entityType, id)
		}
		project.Archived = true
		if _, err := uc.repo.Project().Update(ctx, workspaceID, project); err != nil {
			return goerr.Wrap(err, "failed to archive project", goerr.V(RecordIDKey, id))
		}
	case types.EntityTypeClient:
		client, err := uc.repo.Client().Get(ctx, workspaceID, id)
		if err != nil {
			return uc.notFoundOr(err, entityType, id)
		}
		client.Archived = true
		if _, err := uc.repo.Client().Update(ctx, workspaceID, client); err != nil {
			return goerr.Wrap(err, "failed to archive client", goerr.V(RecordIDKey, id))
		}
	default:
		return goerr.New("invalid entity type", goerr.V(EntityTypeKey, entityType))
	}

	uc.recordActivity(ctx, workspaceID, &model.Activity{
		EntityType: entityType,
		RecordID:   id,
		Action:     types.ActivityActionArchived,
	})

	return nil
}

// Delete permanently removes a record together with its custom property
// values. The caller must confirm the operation explicitly.
func (uc *RecordUseCase) Delete(ctx context.Context, workspaceID string, entityType types.EntityType, id int64, confirmed bool) error {
	if _, err := uc.getRecord(ctx, workspaceID, entityType, id); err != nil {
		return err
	}
	if !confirmed {
		return goerr.Wrap(ErrConfirmationRequired, "deleting a record cannot be undone",
			goerr.V(EntityTypeKey, entityType),
			goerr.V(RecordIDKey, id))
	}

	var err error
	switch entityType {
	case types.EntityTypeTask:
		err = uc.repo.Task().Delete(ctx, workspaceID, id)
	case types.EntityTypeProject:
		err = uc.repo.Project().Delete(ctx, workspaceID, id)
	case types.EntityTypeClient:
		err = uc.repo.Client().Delete(ctx, workspaceID, id)
	}
	if err != nil {
		return goerr.Wrap(err, "failed to delete record",
			goerr.V(EntityTypeKey, entityType),
			goerr.V(RecordIDKey, id))
	}

	if err := uc.repo.Value().DeleteByRecord(ctx, workspaceID, entityType, id); err != nil {
		return goerr.Wrap(err, "failed to delete property values of record",
			goerr.V(EntityTypeKey, entityType),
			goerr.V(RecordIDKey, id))
	}

	uc.recordActivity(ctx, workspaceID, &model.Activity{
		EntityType: entityType,
		RecordID:   id,
		Action:     types.ActivityActionDeleted,
	})

	return nil
}

// SetValue validates and stores one custom property value. Writing the value
// a record already holds is a no-op: nothing is persisted and no activity is
// logged.
func (uc *RecordUseCase) SetValue(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, key types.PropertyKey, raw any) (*model.PropertyValue, error) {
	if _, err := uc.getRecord(ctx, workspaceID, entityType, recordID); err != nil {
		return nil, err
	}

	defs, err := uc.repo.Property().List(ctx, workspaceID, entityType)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list property definitions")
	}
	validator := model.NewPropertyValidator(defs)

	def, ok := validator.Definition(key)
	if !ok {
		return nil, goerr.Wrap(ErrPropertyNotFound, "no definition for property key", goerr.V(model.PropertyKeyKey, key))
	}

	existing, err := uc.repo.Value().Get(ctx, workspaceID, entityType, recordID, key)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get current property value", goerr.V(model.PropertyKeyKey, key))
	}
	var existingValue any
	if existing != nil {
		existingValue = existing.Value
	}

	normalized, err := validator.ValidateValue(key, raw, existingValue)
	if err != nil {
		return nil, err
	}
	if def.Required && isEmptyValue(normalized) {
		return nil, goerr.Wrap(model.ErrMissingRequired, "required property must not be empty",
			goerr.V(model.PropertyKeyKey, key))
	}

	if existing != nil && reflect.DeepEqual(existing.Value, normalized) {
		return existing, nil
	}

	value := &model.PropertyValue{
		EntityType: entityType,
		RecordID:   recordID,
		Key:        key,
		Value:      normalized,
	}
	if err := uc.repo.Value().Save(ctx, workspaceID, value); err != nil {
		return nil, goerr.Wrap(err, "failed to save property value", goerr.V(model.PropertyKeyKey, key))
	}

	uc.recordActivity(ctx, workspaceID, &model.Activity{
		EntityType: entityType,
		RecordID:   recordID,
		Action:     types.ActivityActionUpdated,
		Field:      string(key),
		From:       valueString(existingValue),
		To:         valueString(normalized),
	})

	return value, nil
}

// ClearValue removes one custom property value from a record. A required
// property cannot be cleared.
func (uc *RecordUseCase) ClearValue(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64, key types.PropertyKey) error {
	if _, err := uc.getRecord(ctx, workspaceID, entityType, recordID); err != nil {
		return err
	}

	def, err := uc.repo.Property().GetByKey(ctx, workspaceID, entityType, key)
	if err != nil {
		return goerr.Wrap(err, "failed to get property definition", goerr.V(model.PropertyKeyKey, key))
	}
	if def != nil && def.Required {
		return goerr.Wrap(model.ErrMissingRequired, "required property cannot be cleared",
			goerr.V(model.PropertyKeyKey, key))
	}

	existing, err := uc.repo.Value().Get(ctx, workspaceID, entityType, recordID, key)
	if err != nil {
		return goerr.Wrap(err, "failed to get current property value", goerr.V(model.PropertyKeyKey, key))
	}
	if existing == nil {
		return nil
	}

	if err := uc.repo.Value().Delete(ctx, workspaceID, entityType, recordID, key); err != nil {
		return goerr.Wrap(err, "failed to delete property value", goerr.V(model.PropertyKeyKey, key))
	}

	uc.recordActivity(ctx, workspaceID, &model.Activity{
		EntityType: entityType,
		RecordID:   recordID,
		Action:     types.ActivityActionUpdated,
		Field:      string(key),
		From:       valueString(existing.Value),
	})

	return nil
}

// Descriptors builds the full ordered property list of one record: built-in
// fields first, then one entry per active definition in creation order.
func (uc *RecordUseCase) Descriptors(ctx context.Context, workspaceID string, entityType types.EntityType, recordID int64) ([]model.PropertyDescriptor, error) {
	record, err := uc.getRecord(ctx, workspaceID, entityType, recordID)
	if err != nil {
		return nil, err
	}

	defs, err := uc.repo.Property().List(ctx, workspaceID, entityType)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list property definitions")
	}

	values, err := uc.repo.Value().ListByRecord(ctx, workspaceID, entityType, recordID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list property values", goerr.V(RecordIDKey, recordID))
	}

	return model.BuildDescriptors(record, defs, model.ValueMap(values)), nil
}

// ValuesForRecords retrieves custom values for a batch of records, for list
// views that render custom columns.
func (uc *RecordUseCase) ValuesForRecords(ctx context.Context, workspaceID string, entityType types.EntityType, recordIDs []int64) (map[int64][]*model.PropertyValue, error) {
	values, err := uc.repo.Value().ListByRecords(ctx, workspaceID, entityType, recordIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list property values by records")
	}
	return values, nil
}

func (uc *RecordUseCase) getRecord(ctx context.Context, workspaceID string, entityType types.EntityType, id int64) (model.Record, error) {
	switch entityType {
	case types.EntityTypeTask:
		task, err := uc.repo.Task().Get(ctx, workspaceID, id)
		if err != nil {
			return nil, uc.notFoundOr(err, entityType, id)
		}
		return task, nil
	case types.EntityTypeProject:
		project, err := uc.repo.Project().Get(ctx, workspaceID, id)
		if err != nil {
			return nil, uc.notFoundOr(err, entityType, id)
		}
		return project, nil
	case types.EntityTypeClient:
		client, err := uc.repo.Client().Get(ctx, workspaceID, id)
		if err != nil {
			return nil, uc.notFoundOr(err, entityType, id)
		}
		return client, nil
	default:
		return nil, goerr.New("invalid entity type", goerr.V(EntityTypeKey, entityType))
	}
}

func (uc *RecordUseCase) notFoundOr(err error, entityType types.EntityType, id int64) error {
	if isNotFound(err) {
		return goerr.Wrap(ErrRecordNotFound, "record not found",
			goerr.V(EntityTypeKey, entityType),
			goerr.V(RecordIDKey, id))
	}
	return goerr.Wrap(err, "failed to get record",
		goerr.V(EntityTypeKey, entityType),
		goerr.V(RecordIDKey, id))
}

// recordActivity appends an activity entry attributed to the context actor.
// The feed is informational; a logging failure never fails the operation.
func (uc *RecordUseCase) recordActivity(ctx context.Context, workspaceID string, a *model.Activity) {
	a.ActorID = ActorFromContext(ctx)
	if _, err := uc.repo.Activity().Create(ctx, workspaceID, a); err != nil {
		logActivityError(ctx, err)
	}
}

// isEmptyValue reports whether a normalized value counts as unset for the
// required check. A false checkbox is a real value, not an empty one.
func isEmptyValue(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case []string:
		return len(value) == 0
	case []model.FileRef:
		return len(value) == 0
	default:
		return false
	}
}

func valueString(v any) string {
	if v == nil {
		return ""
	}
	switch value := v.(type) {
	case string:
		return value
	case []string:
		return strings.Join(value, ", ")
	default:
		return fmt.Sprintf("%v", value)
	}
}
