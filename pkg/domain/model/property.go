package model

import (
	"strings"
	"time"
	"unicode"

	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/google/uuid"
)

// PropertyOption represents an option for select/multi_select properties
type PropertyOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"` // Optional: hex color code
}

// PropertyDefinition declares one custom field for one entity kind within
// one workspace. The Key is the storage identifier for every record's value
// of this property and is immutable after creation; renaming a definition
// changes only the display name.
type PropertyDefinition struct {
	ID          string
	WorkspaceID string
	EntityType  types.EntityType
	Name        string
	Key         types.PropertyKey
	Type        types.PropertyType
	Required    bool
	Options     []PropertyOption // Only used for select and multi_select types
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPropertyDefinitionID generates a new UUID v4 definition ID
func NewPropertyDefinitionID() string {
	return uuid.New().String()
}

// NewPropertyKey derives a storage key from a display name: a slug of the
// name plus a short random token. Collisions are avoided probabilistically.
func NewPropertyKey(name string) types.PropertyKey {
	return types.PropertyKey(slugify(name) + "_" + keyToken(4))
}

// DuplicateKey derives a fresh key for a duplicated definition. The token is
// long enough that two duplications in quick succession never collide.
func DuplicateKey(src types.PropertyKey) types.PropertyKey {
	return types.PropertyKey(string(src) + "_" + keyToken(8))
}

func keyToken(n int) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return id[:n]
}

func slugify(name string) string {
	var b strings.Builder
	lastUnderscore := true // suppress leading underscore
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	s := strings.TrimRight(b.String(), "_")
	if s == "" {
		return "property"
	}
	return s
}

// FindOption returns the option with the given value, if any
func (d *PropertyDefinition) FindOption(value string) (PropertyOption, bool) {
	for _, opt := range d.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return PropertyOption{}, false
}

// OptionValues returns the values of all defined options
func (d *PropertyDefinition) OptionValues() []string {
	values := make([]string, len(d.Options))
	for i, opt := range d.Options {
		values[i] = opt.Value
	}
	return values
}

// OrphanValues returns the subset of values that reference no current option.
// Orphans appear when an option is removed after records were tagged with it;
// they are displayed and preserved, never silently dropped.
func (d *PropertyDefinition) OrphanValues(values []string) []string {
	var orphans []string
	for _, v := range values {
		if _, ok := d.FindOption(v); !ok {
			orphans = append(orphans, v)
		}
	}
	return orphans
}

// Clone returns a deep copy of the definition
func (d *PropertyDefinition) Clone() *PropertyDefinition {
	copied := *d
	if d.Options != nil {
		copied.Options = make([]PropertyOption, len(d.Options))
		copy(copied.Options, d.Options)
	}
	return &copied
}
