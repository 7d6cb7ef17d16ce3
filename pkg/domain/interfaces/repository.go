package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Property() PropertyRepository
	Value() PropertyValueRepository
	Task() TaskRepository
	Project() ProjectRepository
	Client() ClientRepository
	Comment() CommentRepository
	Activity() ActivityRepository

	Close() error
}
