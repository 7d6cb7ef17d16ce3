package types

import "strings"

// ActivityAction represents the kind of change recorded in the activity feed
type ActivityAction string

const (
	ActivityActionCreated       ActivityAction = "created"
	ActivityActionStatusChanged ActivityAction = "status_changed"
	ActivityActionUpdated       ActivityAction = "updated"
	ActivityActionCommented     ActivityAction = "commented"
	ActivityActionArchived      ActivityAction = "archived"
	ActivityActionDeleted       ActivityAction = "deleted"
)

// AllActivityActions returns all known activity actions
func AllActivityActions() []ActivityAction {
	return []ActivityAction{
		ActivityActionCreated,
		ActivityActionStatusChanged,
		ActivityActionUpdated,
		ActivityActionCommented,
		ActivityActionArchived,
		ActivityActionDeleted,
	}
}

// IsKnown checks if the action belongs to the known vocabulary.
// Unknown actions are still stored and displayed; they are never an error.
func (a ActivityAction) IsKnown() bool {
	switch a {
	case ActivityActionCreated,
		ActivityActionStatusChanged,
		ActivityActionUpdated,
		ActivityActionCommented,
		ActivityActionArchived,
		ActivityActionDeleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the activity action
func (a ActivityAction) String() string {
	return string(a)
}

// Humanize returns a display form of the action. Unknown actions degrade
// to their raw value with underscores replaced by spaces.
func (a ActivityAction) Humanize() string {
	return strings.ReplaceAll(string(a), "_", " ")
}
