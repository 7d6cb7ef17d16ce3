package types

import "fmt"

// PropertyKey is the stable machine identifier of a custom property.
// It is used as the storage key for every record's value of that property
// and never changes after the definition is created.
type PropertyKey string

// String returns the string representation of the property key
func (k PropertyKey) String() string {
	return string(k)
}

// PropertyType represents the type of a custom property
type PropertyType string

const (
	PropertyTypeText        PropertyType = "text"
	PropertyTypeNumber      PropertyType = "number"
	PropertyTypeDate        PropertyType = "date"
	PropertyTypeSelect      PropertyType = "select"
	PropertyTypeMultiSelect PropertyType = "multi_select"
	PropertyTypeCheckbox    PropertyType = "checkbox"
	PropertyTypeURL         PropertyType = "url"
	PropertyTypeEmail       PropertyType = "email"
	PropertyTypePerson      PropertyType = "person"
	PropertyTypeFiles       PropertyType = "files"
)

// AllPropertyTypes returns all valid property types
func AllPropertyTypes() []PropertyType {
	return []PropertyType{
		PropertyTypeText,
		PropertyTypeNumber,
		PropertyTypeDate,
		PropertyTypeSelect,
		PropertyTypeMultiSelect,
		PropertyTypeCheckbox,
		PropertyTypeURL,
		PropertyTypeEmail,
		PropertyTypePerson,
		PropertyTypeFiles,
	}
}

// IsValid checks if the property type is valid
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeText,
		PropertyTypeNumber,
		PropertyTypeDate,
		PropertyTypeSelect,
		PropertyTypeMultiSelect,
		PropertyTypeCheckbox,
		PropertyTypeURL,
		PropertyTypeEmail,
		PropertyTypePerson,
		PropertyTypeFiles:
		return true
	default:
		return false
	}
}

// HasOptions reports whether the type carries a predefined option list
func (t PropertyType) HasOptions() bool {
	return t == PropertyTypeSelect || t == PropertyTypeMultiSelect
}

// String returns the string representation of the property type
func (t PropertyType) String() string {
	return string(t)
}

// ParsePropertyType parses a string into a PropertyType
func ParsePropertyType(s string) (PropertyType, error) {
	t := PropertyType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid property type: %s", s)
	}
	return t, nil
}
