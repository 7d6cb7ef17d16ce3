package usecase

import (
	"context"
	"fmt"

	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ValidationIssue represents a single validation issue found during DB consistency check
type ValidationIssue struct {
	WorkspaceID string
	EntityType  types.EntityType
	RecordID    int64
	PropertyKey types.PropertyKey
	Message     string
	Expected    string
	Actual      string
}

// ValidationResult holds the results of DB validation
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// ValidateDB checks that stored select/multi_select values reference options
// still present on their property definitions. Orphan values are legal while
// the record keeps them, but operators want to know how widespread they are.
// Detection is count-based so no row data is transferred; one sample row is
// fetched per finding for the report. It does NOT modify any data.
func (uc *UseCases) ValidateDB(ctx context.Context) (*ValidationResult, error) {
	result := &ValidationResult{}

	for _, entry := range uc.workspaceRegistry.List() {
		wsID := entry.Workspace.ID

		for _, entityType := range types.AllEntityTypes() {
			defs, err := uc.repo.Property().List(ctx, wsID, entityType)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to list property definitions",
					goerr.V("workspace_id", wsID),
					goerr.V("entity_type", entityType))
			}

			for _, def := range defs {
				if !def.Type.HasOptions() {
					continue
				}

				validValues := def.OptionValues()

				// Phase 1: Count-based detection (no row data transfer)
				total, valid, err := uc.repo.Value().CountByKey(ctx, wsID, entityType, def.Key, validValues)
				if err != nil {
					return nil, goerr.Wrap(err, "failed to count property values",
						goerr.V("workspace_id", wsID),
						goerr.V("property_key", def.Key))
				}

				invalidCount := total - valid
				if invalidCount == 0 {
					continue
				}

				// Phase 2: Fetch one sample row for the error report
				sample, err := uc.repo.Value().FindInvalidValue(ctx, wsID, entityType, def.Key, validValues)
				if err != nil {
					return nil, goerr.Wrap(err, "failed to find invalid value sample",
						goerr.V("workspace_id", wsID),
						goerr.V("property_key", def.Key))
				}

				issue := ValidationIssue{
					WorkspaceID: wsID,
					EntityType:  entityType,
					PropertyKey: def.Key,
					Message:     fmt.Sprintf("found %d record(s) with orphan option value", invalidCount),
					Expected:    "value from current option list",
					Actual:      "<unknown>",
				}
				if sample != nil {
					issue.RecordID = sample.RecordID
					issue.Actual = fmt.Sprint(sample.Value)
				}
				result.AddIssue(issue)
			}
		}
	}

	return result, nil
}
