package model

import (
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/google/uuid"
)

// ActivityID is a UUID-based identifier for Activity
type ActivityID string

// NewActivityID generates a new UUID v4 ActivityID
func NewActivityID() ActivityID {
	return ActivityID(uuid.New().String())
}

// Activity represents one entry in a record's activity log. Entries are
// append-only; Field/From/To are set for field-level changes and empty
// otherwise.
type Activity struct {
	ID         ActivityID
	EntityType types.EntityType
	RecordID   int64
	Action     types.ActivityAction
	ActorID    string
	Field      string
	From       string
	To         string
	CreatedAt  time.Time
}

// Clone returns a copy of the activity entry
func (a *Activity) Clone() *Activity {
	copied := *a
	return &copied
}
