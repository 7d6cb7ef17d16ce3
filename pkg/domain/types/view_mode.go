package types

import "fmt"

// ViewMode represents the presentation state of the record detail container.
// It is session-local client state; the server only validates and echoes it.
type ViewMode string

const (
	ViewModeSide   ViewMode = "side"
	ViewModeCenter ViewMode = "center"
	ViewModeFull   ViewMode = "full"
)

// DefaultViewMode is the initial presentation state
const DefaultViewMode = ViewModeSide

// IsValid checks if the view mode is valid
func (m ViewMode) IsValid() bool {
	switch m {
	case ViewModeSide, ViewModeCenter, ViewModeFull:
		return true
	default:
		return false
	}
}

// String returns the string representation of the view mode
func (m ViewMode) String() string {
	return string(m)
}

// ParseViewMode parses a string into a ViewMode
func ParseViewMode(s string) (ViewMode, error) {
	m := ViewMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid view mode: %s", s)
	}
	return m, nil
}
