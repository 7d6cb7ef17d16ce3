package types

import "fmt"

// EntityType represents the kind of record that can carry custom properties
type EntityType string

const (
	EntityTypeTask    EntityType = "task"
	EntityTypeProject EntityType = "project"
	EntityTypeClient  EntityType = "client"
)

// AllEntityTypes returns all valid entity types
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeTask,
		EntityTypeProject,
		EntityTypeClient,
	}
}

// IsValid checks if the entity type is valid
func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeTask, EntityTypeProject, EntityTypeClient:
		return true
	default:
		return false
	}
}

// String returns the string representation of the entity type
func (t EntityType) String() string {
	return string(t)
}

// ParseEntityType parses a string into an EntityType
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid entity type: %s", s)
	}
	return t, nil
}
