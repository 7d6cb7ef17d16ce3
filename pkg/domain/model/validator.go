package model

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// dateLayouts are the accepted wire formats for date values
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// PropertyValidator validates and normalizes property values against the
// current definitions of a workspace. Writes go through ValidateValue so
// only well-typed values reach storage; reads go through DecodeValue so
// stale values of an older shape are quarantined instead of rejected.
type PropertyValidator struct {
	defs map[types.PropertyKey]*PropertyDefinition
}

// NewPropertyValidator creates a validator over the given definitions
func NewPropertyValidator(defs []*PropertyDefinition) *PropertyValidator {
	m := make(map[types.PropertyKey]*PropertyDefinition, len(defs))
	for _, d := range defs {
		m[d.Key] = d
	}
	return &PropertyValidator{defs: m}
}

// Definition returns the definition for a key, if one exists
func (v *PropertyValidator) Definition(key types.PropertyKey) (*PropertyDefinition, bool) {
	d, ok := v.defs[key]
	return d, ok
}

// ValidateValue checks a new value against the definition for key and
// returns its normalized form. The existing stored value (nil when unset)
// is consulted so that orphan option values already assigned to the record
// survive re-writes: deleting an option must never strip it from records.
func (v *PropertyValidator) ValidateValue(key types.PropertyKey, value any, existing any) (any, error) {
	def, ok := v.defs[key]
	if !ok {
		return nil, goerr.New("unknown property key", goerr.V(PropertyKeyKey, key))
	}

	switch def.Type {
	case types.PropertyTypeText:
		return v.validateText(def, value)
	case types.PropertyTypeNumber:
		return v.validateNumber(def, value)
	case types.PropertyTypeDate:
		return v.validateDate(def, value)
	case types.PropertyTypeSelect:
		return v.validateSelect(def, value, existing)
	case types.PropertyTypeMultiSelect:
		return v.validateMultiSelect(def, value, existing)
	case types.PropertyTypeCheckbox:
		return v.validateCheckbox(def, value)
	case types.PropertyTypeURL:
		return v.validateURL(def, value)
	case types.PropertyTypeEmail:
		return v.validateEmail(def, value)
	case types.PropertyTypePerson:
		return v.validatePerson(def, value)
	case types.PropertyTypeFiles:
		return v.validateFiles(def, value)
	default:
		return nil, goerr.Wrap(ErrInvalidValueType, "unsupported property type",
			goerr.V(PropertyKeyKey, def.Key),
			goerr.V(ExpectedTypeKey, def.Type))
	}
}

func (v *PropertyValidator) validateText(def *PropertyDefinition, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, typeError(def, types.PropertyTypeText, value)
	}
	return s, nil
}

func (v *PropertyValidator) validateNumber(def *PropertyDefinition, value any) (any, error) {
	n, ok := ToNumber(value)
	if !ok {
		return nil, typeError(def, types.PropertyTypeNumber, value)
	}
	return n, nil
}

func (v *PropertyValidator) validateDate(def *PropertyDefinition, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, typeError(def, types.PropertyTypeDate, value)
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return s, nil
		}
	}
	return nil, goerr.Wrap(ErrInvalidFormat, "date must be YYYY-MM-DD or RFC3339",
		goerr.V(PropertyKeyKey, def.Key),
		goerr.V("value", s))
}

func (v *PropertyValidator) validateSelect(def *PropertyDefinition, value any, existing any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, typeError(def, types.PropertyTypeSelect, value)
	}
	if _, ok := def.FindOption(s); ok {
		return s, nil
	}
	// A value already stored on the record is kept writable even when its
	// option has since been removed from the definition.
	if prev, ok := existing.(string); ok && prev == s {
		return s, nil
	}
	return nil, goerr.Wrap(ErrInvalidOption, "option value not found in property definition",
		goerr.V(OptionValueKey, s),
		goerr.V(PropertyKeyKey, def.Key))
}

func (v *PropertyValidator) validateMultiSelect(def *PropertyDefinition, value any, existing any) (any, error) {
	selected, ok := ToStringSlice(value)
	if !ok {
		return nil, typeError(def, types.PropertyTypeMultiSelect, value)
	}
	stored, _ := ToStringSlice(existing)
	storedSet := make(map[string]bool, len(stored))
	for _, s := range stored {
		storedSet[s] = true
	}
	for _, s := range selected {
		if _, ok := def.FindOption(s); ok {
			continue
		}
		if storedSet[s] {
			// Orphan value already on the record; preserved on re-write
			continue
		}
		return nil, goerr.Wrap(ErrInvalidOption, "option value not found in property definition",
			goerr.V(OptionValueKey, s),
			goerr.V(PropertyKeyKey, def.Key))
	}
	return selected, nil
}

func (v *PropertyValidator) validateCheckbox(def *PropertyDefinition, value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, typeError(def, types.PropertyTypeCheckbox, value)
	}
	return b, nil
}

func (v *PropertyValidator) validateURL(def *PropertyDefinition, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, typeError(def, types.PropertyTypeURL, value)
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, goerr.Wrap(ErrInvalidFormat, "value must be an http(s) URL",
			goerr.V(PropertyKeyKey, def.Key),
			goerr.V("value", s))
	}
	return s, nil
}

func (v *PropertyValidator) validateEmail(def *PropertyDefinition, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, typeError(def, types.PropertyTypeEmail, value)
	}
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") || at == len(s)-1 {
		return nil, goerr.Wrap(ErrInvalidFormat, "value must be an email address",
			goerr.V(PropertyKeyKey, def.Key),
			goerr.V("value", s))
	}
	return s, nil
}

func (v *PropertyValidator) validatePerson(def *PropertyDefinition, value any) (any, error) {
	// Stored shape may be a single ID or an array; always written back as array
	ids, ok := ToStringSlice(value)
	if !ok {
		return nil, typeError(def, types.PropertyTypePerson, value)
	}
	return ids, nil
}

func (v *PropertyValidator) validateFiles(def *PropertyDefinition, value any) (any, error) {
	files, ok := ToFileRefs(value)
	if !ok {
		return nil, typeError(def, types.PropertyTypeFiles, value)
	}
	return files, nil
}

func typeError(def *PropertyDefinition, expected types.PropertyType, value any) error {
	return goerr.Wrap(ErrInvalidValueType, "value does not match property type",
		goerr.V(PropertyKeyKey, def.Key),
		goerr.V(ExpectedTypeKey, expected),
		goerr.V(ActualTypeKey, fmt.Sprintf("%T", value)))
}

// DecodeValue normalizes a stored value for display under the current
// definition type. When the stored shape no longer matches (for example
// after the definition's type was changed without migration), the raw value
// is returned with ok=false so callers can quarantine it instead of
// rendering garbage or failing. Stored values are never modified here.
func DecodeValue(def *PropertyDefinition, raw any) (any, bool) {
	if raw == nil {
		return nil, true
	}
	switch def.Type {
	case types.PropertyTypeText, types.PropertyTypeURL, types.PropertyTypeEmail:
		if s, ok := raw.(string); ok {
			return s, true
		}
	case types.PropertyTypeNumber:
		if n, ok := ToNumber(raw); ok {
			return n, true
		}
	case types.PropertyTypeDate:
		if s, ok := raw.(string); ok {
			for _, layout := range dateLayouts {
				if _, err := time.Parse(layout, s); err == nil {
					return s, true
				}
			}
		}
	case types.PropertyTypeSelect:
		// Unknown option values still decode; the descriptor reports them
		// as orphans rather than erroring.
		if s, ok := raw.(string); ok {
			return s, true
		}
	case types.PropertyTypeMultiSelect, types.PropertyTypePerson:
		if values, ok := ToStringSlice(raw); ok {
			return values, true
		}
	case types.PropertyTypeCheckbox:
		if b, ok := raw.(bool); ok {
			return b, true
		}
	case types.PropertyTypeFiles:
		if files, ok := ToFileRefs(raw); ok {
			return files, true
		}
	}
	return raw, false
}
