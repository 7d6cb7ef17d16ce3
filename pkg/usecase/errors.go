package usecase

import (
	"errors"

	"github.com/atelier-lab/atelier/pkg/repository/firestore"
	"github.com/atelier-lab/atelier/pkg/repository/memory"
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrRecordNotFound   = errors.New("record not found")
	ErrPropertyNotFound = errors.New("property definition not found")

	// Destructive operations require explicit confirmation
	ErrConfirmationRequired = errors.New("confirmation required")

	// Validation errors
	ErrTitleRequired = errors.New("title is required")
	ErrNameRequired  = errors.New("name is required")
	ErrBodyRequired  = errors.New("comment body is required")
)

// Context keys for error values
const (
	RecordIDKey   = "record_id"
	PropertyIDKey = "property_id"
	EntityTypeKey = "entity_type"
)

// isNotFound reports whether a repository error means the entity does not
// exist, regardless of the storage backend.
func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}
