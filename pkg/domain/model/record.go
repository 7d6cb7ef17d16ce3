package model

import (
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/types"
)

// Record is implemented by every entity kind that can carry custom
// properties. Built-in descriptors come from the record's fixed columns;
// dynamic descriptors are composed from property definitions and values.
type Record interface {
	RecordID() int64
	Kind() types.EntityType
	BuiltinDescriptors() []PropertyDescriptor
}

// Task represents a unit of work within a project
type Task struct {
	ID          int64
	WorkspaceID string
	Title       string
	Description string
	Status      types.TaskStatus
	Priority    types.TaskPriority
	DueDate     *time.Time
	AssigneeIDs []string
	ProjectID   int64 // 0 = not linked
	ClientID    int64 // 0 = not linked
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecordID returns the task's record ID
func (t *Task) RecordID() int64 { return t.ID }

// Kind returns the task entity type
func (t *Task) Kind() types.EntityType { return types.EntityTypeTask }

// Clone returns a deep copy of the task
func (t *Task) Clone() *Task {
	copied := *t
	if t.AssigneeIDs != nil {
		copied.AssigneeIDs = make([]string, len(t.AssigneeIDs))
		copy(copied.AssigneeIDs, t.AssigneeIDs)
	}
	if t.DueDate != nil {
		due := *t.DueDate
		copied.DueDate = &due
	}
	return &copied
}

// Project represents a client engagement grouping tasks
type Project struct {
	ID          int64
	WorkspaceID string
	Title       string
	Description string
	Status      types.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	ClientID    int64 // 0 = not linked
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecordID returns the project's record ID
func (p *Project) RecordID() int64 { return p.ID }

// Kind returns the project entity type
func (p *Project) Kind() types.EntityType { return types.EntityTypeProject }

// Clone returns a deep copy of the project
func (p *Project) Clone() *Project {
	copied := *p
	if p.StartDate != nil {
		d := *p.StartDate
		copied.StartDate = &d
	}
	if p.EndDate != nil {
		d := *p.EndDate
		copied.EndDate = &d
	}
	return &copied
}

// Client represents a customer of the agency
type Client struct {
	ID          int64
	WorkspaceID string
	Name        string
	Company     string
	Email       string
	Phone       string
	Website     string
	Notes       string
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecordID returns the client's record ID
func (c *Client) RecordID() int64 { return c.ID }

// Kind returns the client entity type
func (c *Client) Kind() types.EntityType { return types.EntityTypeClient }

// Clone returns a deep copy of the client
func (c *Client) Clone() *Client {
	copied := *c
	return &copied
}
