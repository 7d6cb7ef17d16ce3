package usecase

import (
	"context"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// PropertyUseCase manages custom property definitions of a workspace
type PropertyUseCase struct {
	repo interfaces.Repository
}

func NewPropertyUseCase(repo interfaces.Repository) *PropertyUseCase {
	return &PropertyUseCase{repo: repo}
}

// CreatePropertyInput holds the attributes for a new property definition
type CreatePropertyInput struct {
	EntityType types.EntityType
	Name       string
	Type       types.PropertyType
	Required   bool
	Options    []model.PropertyOption
}

// Create adds a new property definition. The storage key is derived from the
// display name once, at creation, and never changes afterwards.
func (uc *PropertyUseCase) Create(ctx context.Context, workspaceID string, input CreatePropertyInput) (*model.PropertyDefinition, error) {
	if input.Name == "" {
		return nil, goerr.Wrap(ErrNameRequired, "property name must not be empty")
	}
	if !input.EntityType.IsValid() {
		return nil, goerr.New("invalid entity type", goerr.V(EntityTypeKey, input.EntityType))
	}
	if !input.Type.IsValid() {
		return nil, goerr.New("invalid property type", goerr.V("type", input.Type))
	}
	if len(input.Options) > 0 && !input.Type.HasOptions() {
		return nil, goerr.New("options are only allowed for select and multi_select properties",
			goerr.V("type", input.Type))
	}

	def := &model.PropertyDefinition{
		ID:         model.NewPropertyDefinitionID(),
		EntityType: input.EntityType,
		Name:       input.Name,
		Key:        model.NewPropertyKey(input.Name),
		Type:       input.Type,
		Required:   input.Required,
		Options:    input.Options,
	}

	created, err := uc.repo.Property().Create(ctx, workspaceID, def)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create property definition")
	}

	return created, nil
}

// Get retrieves one property definition
func (uc *PropertyUseCase) Get(ctx context.Context, workspaceID string, id string) (*model.PropertyDefinition, error) {
	def, err := uc.repo.Property().Get(ctx, workspaceID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrPropertyNotFound, "property definition not found", goerr.V(PropertyIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get property definition", goerr.V(PropertyIDKey, id))
	}
	return def, nil
}

// List retrieves all definitions for an entity type in creation order
func (uc *PropertyUseCase) List(ctx context.Context, workspaceID string, entityType types.EntityType) ([]*model.PropertyDefinition, error) {
	if !entityType.IsValid() {
		return nil, goerr.New("invalid entity type", goerr.V(EntityTypeKey, entityType))
	}
	defs, err := uc.repo.Property().List(ctx, workspaceID, entityType)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list property definitions")
	}
	return defs, nil
}

// Rename changes a definition's display name. All stored values stay
// addressable because the storage key is untouched.
func (uc *PropertyUseCase) Rename(ctx context.Context, workspaceID string, id string, name string) (*model.PropertyDefinition, error) {
	if name == "" {
		return nil, goerr.Wrap(ErrNameRequired, "property name must not be empty")
	}

	def, err := uc.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	def.Name = name
	updated, err := uc.repo.Property().Update(ctx, workspaceID, def)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to rename property definition", goerr.V(PropertyIDKey, id))
	}

	return updated, nil
}

// UpdateOptions replaces the option list of a select or multi_select
// definition. Removing an option leaves records tagged with it untouched;
// such values surface as orphans in descriptors.
func (uc *PropertyUseCase) UpdateOptions(ctx context.Context, workspaceID string, id string, options []model.PropertyOption) (*model.PropertyDefinition, error) {
	def, err := uc.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if !def.Type.HasOptions() {
		return nil, goerr.New("property type does not carry options", goerr.V("type", def.Type))
	}

	def.Options = options
	updated, err := uc.repo.Property().Update(ctx, workspaceID, def)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update property options", goerr.V(PropertyIDKey, id))
	}

	return updated, nil
}

// SetRequired toggles whether the property must be filled on future writes
func (uc *PropertyUseCase) SetRequired(ctx context.Context, workspaceID string, id string, required bool) (*model.PropertyDefinition, error) {
	def, err := uc.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	def.Required = required
	updated, err := uc.repo.Property().Update(ctx, workspaceID, def)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update property definition", goerr.V(PropertyIDKey, id))
	}

	return updated, nil
}

// ChangeType switches a definition to a different property type without
// migrating stored values. Existing values that no longer match the new type
// are quarantined on read. The operation is destructive in effect, so the
// caller must confirm it explicitly.
func (uc *PropertyUseCase) ChangeType(ctx context.Context, workspaceID string, id string, newType types.PropertyType, confirmed bool) (*model.PropertyDefinition, error) {
	if !newType.IsValid() {
		return nil, goerr.New("invalid property type", goerr.V("type", newType))
	}

	def, err := uc.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if def.Type == newType {
		return def, nil
	}
	if !confirmed {
		return nil, goerr.Wrap(ErrConfirmationRequired, "changing the property type may quarantine stored values",
			goerr.V(PropertyIDKey, id),
			goerr.V("from", def.Type),
			goerr.V("to", newType))
	}

	def.Type = newType
	if !newType.HasOptions() {
		def.Options = nil
	}

	updated, err := uc.repo.Property().Update(ctx, workspaceID, def)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to change property type", goerr.V(PropertyIDKey, id))
	}

	return updated, nil
}

// Delete removes a definition. Stored value rows keyed by the definition's
// key are left in place; they simply stop rendering. The caller must confirm
// the operation explicitly.
func (uc *PropertyUseCase) Delete(ctx context.Context, workspaceID string, id string, confirmed bool) error {
	def, err := uc.Get(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if !confirmed {
		return goerr.Wrap(ErrConfirmationRequired, "deleting a property hides it from every record",
			goerr.V(PropertyIDKey, id),
			goerr.V("name", def.Name))
	}

	if err := uc.repo.Property().Delete(ctx, workspaceID, id); err != nil {
		return goerr.Wrap(err, "failed to delete property definition", goerr.V(PropertyIDKey, id))
	}

	return nil
}

// Duplicate creates a copy of a definition with a fresh storage key, so the
// copy starts with no values on any record.
func (uc *PropertyUseCase) Duplicate(ctx context.Context, workspaceID string, id string) (*model.PropertyDefinition, error) {
	src, err := uc.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	dup := src.Clone()
	dup.ID = model.NewPropertyDefinitionID()
	dup.Name = src.Name + " (copy)"
	dup.Key = model.DuplicateKey(src.Key)

	created, err := uc.repo.Property().Create(ctx, workspaceID, dup)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to duplicate property definition", goerr.V(PropertyIDKey, id))
	}

	return created, nil
}
