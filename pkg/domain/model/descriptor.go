package model

import (
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/types"
)

// PropertyDescriptor is the runtime unit of work for rendering one property
// of one record: metadata from the definition (or a built-in column) merged
// with the record's current value. It is rebuilt on every read and never
// persisted.
type PropertyDescriptor struct {
	ID           string             `json:"id"`
	Key          types.PropertyKey  `json:"key"`
	Label        string             `json:"label"`
	Type         types.PropertyType `json:"type"`
	Value        any                `json:"value"`
	Options      []PropertyOption   `json:"options,omitempty"`
	Builtin      bool               `json:"builtin"`
	ReadOnly     bool               `json:"read_only"`
	Required     bool               `json:"required"`
	Quarantined  bool               `json:"quarantined"`
	OrphanValues []string           `json:"orphan_values,omitempty"`
}

// BuildDescriptors produces the ordered property list for one record: the
// fixed built-in descriptors of its entity kind followed by one descriptor
// per active definition, with values looked up by key. Definitions must be
// passed in creation order. Value rows whose key has no definition are
// intentionally omitted (the definition was deleted; the rows remain in
// storage but are no longer rendered).
func BuildDescriptors(rec Record, defs []*PropertyDefinition, values map[types.PropertyKey]*PropertyValue) []PropertyDescriptor {
	descriptors := rec.BuiltinDescriptors()
	for _, def := range defs {
		if def.EntityType != rec.Kind() {
			continue
		}
		var raw any
		if pv, ok := values[def.Key]; ok {
			raw = pv.Value
		}
		descriptors = append(descriptors, descriptorFor(def, raw))
	}
	return descriptors
}

// descriptorFor builds the descriptor for one dynamic property. A stored
// value that no longer decodes under the definition's current type is kept
// as-is and flagged quarantined; select values referencing deleted options
// are reported as orphans.
func descriptorFor(def *PropertyDefinition, raw any) PropertyDescriptor {
	d := PropertyDescriptor{
		ID:       def.ID,
		Key:      def.Key,
		Label:    def.Name,
		Type:     def.Type,
		Options:  def.Options,
		Required: def.Required,
	}

	value, ok := DecodeValue(def, raw)
	d.Value = value
	if !ok {
		d.Quarantined = true
		return d
	}

	switch def.Type {
	case types.PropertyTypeSelect:
		if s, isStr := value.(string); isStr && s != "" {
			d.OrphanValues = def.OrphanValues([]string{s})
		}
	case types.PropertyTypeMultiSelect:
		if selected, isSlice := value.([]string); isSlice {
			d.OrphanValues = def.OrphanValues(selected)
		}
	}
	return d
}

const builtinIDPrefix = "builtin:"

func builtinDescriptor(key, label string, typ types.PropertyType, value any) PropertyDescriptor {
	return PropertyDescriptor{
		ID:      builtinIDPrefix + key,
		Key:     types.PropertyKey(key),
		Label:   label,
		Type:    typ,
		Value:   value,
		Builtin: true,
	}
}

func statusOptions[T ~string](all []T) []PropertyOption {
	opts := make([]PropertyOption, len(all))
	for i, s := range all {
		opts[i] = PropertyOption{Value: string(s), Label: string(s)}
	}
	return opts
}

func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func relationValue(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// BuiltinDescriptors returns the fixed field descriptors of a task
func (t *Task) BuiltinDescriptors() []PropertyDescriptor {
	status := builtinDescriptor("status", "Status", types.PropertyTypeSelect, string(t.Status))
	status.Options = statusOptions(types.AllTaskStatuses())
	priority := builtinDescriptor("priority", "Priority", types.PropertyTypeSelect, string(t.Priority))
	priority.Options = statusOptions(types.AllTaskPriorities())
	return []PropertyDescriptor{
		status,
		priority,
		builtinDescriptor("due_date", "Due Date", types.PropertyTypeDate, dateValue(t.DueDate)),
		builtinDescriptor("assignees", "Assignees", types.PropertyTypePerson, append([]string{}, t.AssigneeIDs...)),
		builtinDescriptor("project", "Project", types.PropertyTypeNumber, relationValue(t.ProjectID)),
		builtinDescriptor("client", "Client", types.PropertyTypeNumber, relationValue(t.ClientID)),
	}
}

// BuiltinDescriptors returns the fixed field descriptors of a project
func (p *Project) BuiltinDescriptors() []PropertyDescriptor {
	status := builtinDescriptor("status", "Status", types.PropertyTypeSelect, string(p.Status))
	status.Options = statusOptions(types.AllProjectStatuses())
	return []PropertyDescriptor{
		status,
		builtinDescriptor("start_date", "Start Date", types.PropertyTypeDate, dateValue(p.StartDate)),
		builtinDescriptor("end_date", "End Date", types.PropertyTypeDate, dateValue(p.EndDate)),
		builtinDescriptor("client", "Client", types.PropertyTypeNumber, relationValue(p.ClientID)),
	}
}

// BuiltinDescriptors returns the fixed field descriptors of a client
func (c *Client) BuiltinDescriptors() []PropertyDescriptor {
	return []PropertyDescriptor{
		builtinDescriptor("company", "Company", types.PropertyTypeText, c.Company),
		builtinDescriptor("email", "Email", types.PropertyTypeEmail, c.Email),
		builtinDescriptor("phone", "Phone", types.PropertyTypeText, c.Phone),
		builtinDescriptor("website", "Website", types.PropertyTypeURL, c.Website),
	}
}
