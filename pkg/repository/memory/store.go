package memory

import "github.com/atelier-lab/atelier/pkg/domain/interfaces"

// Memory is an in-memory Repository implementation for development and tests
type Memory struct {
	property *propertyRepository
	value    *valueRepository
	task     *taskRepository
	project  *projectRepository
	client   *clientRepository
	comment  *commentRepository
	activity *activityRepository
}

var _ interfaces.Repository = &Memory{}

// New creates a new in-memory repository
func New() *Memory {
	return &Memory{
		property: newPropertyRepository(),
		value:    newValueRepository(),
		task:     newTaskRepository(),
		project:  newProjectRepository(),
		client:   newClientRepository(),
		comment:  newCommentRepository(),
		activity: newActivityRepository(),
	}
}

func (m *Memory) Property() interfaces.PropertyRepository   { return m.property }
func (m *Memory) Value() interfaces.PropertyValueRepository { return m.value }
func (m *Memory) Task() interfaces.TaskRepository           { return m.task }
func (m *Memory) Project() interfaces.ProjectRepository     { return m.project }
func (m *Memory) Client() interfaces.ClientRepository       { return m.client }
func (m *Memory) Comment() interfaces.CommentRepository     { return m.comment }
func (m *Memory) Activity() interfaces.ActivityRepository   { return m.activity }

func (m *Memory) Close() error {
	return nil
}
