package http

import (
	"net/http"

	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) setValue(w http.ResponseWriter, r *http.Request) {
	entityType, err := pathEntityType(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathRecordID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	key := types.PropertyKey(chi.URLParam(r, "key"))

	var req struct {
		Value any `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	value, err := s.uc.Record.SetValue(r.Context(), workspaceID, entityType, id, key, req.Value)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"key":        string(value.Key),
		"value":      value.Value,
		"updated_at": value.UpdatedAt,
	})
}

func (s *Server) clearValue(w http.ResponseWriter, r *http.Request) {
	entityType, err := pathEntityType(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathRecordID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	key := types.PropertyKey(chi.URLParam(r, "key"))

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	if err := s.uc.Record.ClearValue(r.Context(), workspaceID, entityType, id, key); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// recordDescriptors serves the ordered property list of one record. The
// optional view parameter is validated and echoed; presentation state lives
// on the client.
func (s *Server) recordDescriptors(w http.ResponseWriter, r *http.Request) {
	entityType, err := pathEntityType(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathRecordID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	viewMode := types.DefaultViewMode
	if raw := r.URL.Query().Get("view"); raw != "" {
		viewMode, err = types.ParseViewMode(raw)
		if err != nil {
			respondError(w, r, goerr.Wrap(errBadRequest, "invalid view mode", goerr.V("value", raw)))
			return
		}
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	descriptors, err := s.uc.Record.Descriptors(r.Context(), workspaceID, entityType, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"entity_type": string(entityType),
		"record_id":   id,
		"view_mode":   string(viewMode),
		"descriptors": descriptors,
	})
}

// recordDetail serves the full detail view payload of one record
func (s *Server) recordDetail(w http.ResponseWriter, r *http.Request) {
	entityType, err := pathEntityType(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathRecordID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx := r.Context()
	workspaceID := workspaceFromContext(ctx).Workspace.ID

	var record any
	switch entityType {
	case types.EntityTypeTask:
		detail, err := s.uc.Record.GetTask(ctx, workspaceID, id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		record = map[string]any{
			"task":          renderTask(detail.Task),
			"project_title": detail.ProjectTitle,
			"client_name":   detail.ClientName,
		}
	case types.EntityTypeProject:
		detail, err := s.uc.Record.GetProject(ctx, workspaceID, id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		record = map[string]any{
			"project":     renderProject(detail.Project),
			"client_name": detail.ClientName,
		}
	case types.EntityTypeClient:
		client, err := s.uc.Record.GetClient(ctx, workspaceID, id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		record = map[string]any{"client": renderClient(client)}
	}

	descriptors, err := s.uc.Record.Descriptors(ctx, workspaceID, entityType, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	comments, err := s.uc.Comment.List(ctx, workspaceID, entityType, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	activities, err := s.uc.Activity.List(ctx, workspaceID, entityType, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"record":      record,
		"descriptors": descriptors,
		"comments":    renderComments(comments),
		"activity":    renderActivities(activities),
	})
}
