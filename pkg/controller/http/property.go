package http

import (
	"net/http"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/atelier-lab/atelier/pkg/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) listProperties(w http.ResponseWriter, r *http.Request) {
	entityType, err := pathEntityType(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	defs, err := s.uc.Property.List(r.Context(), workspaceID, entityType)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"properties": renderProperties(defs)})
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	entityType, err := pathEntityType(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req struct {
		Name     string                 `json:"name"`
		Type     string                 `json:"type"`
		Required bool                   `json:"required"`
		Options  []model.PropertyOption `json:"options"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	propertyType, err := types.ParsePropertyType(req.Type)
	if err != nil {
		respondError(w, r, goerr.Wrap(errBadRequest, "invalid property type", goerr.V("value", req.Type)))
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	def, err := s.uc.Property.Create(r.Context(), workspaceID, usecase.CreatePropertyInput{
		EntityType: entityType,
		Name:       req.Name,
		Type:       propertyType,
		Required:   req.Required,
		Options:    req.Options,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, renderProperty(def))
}

func (s *Server) getProperty(w http.ResponseWriter, r *http.Request) {
	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	def, err := s.uc.Property.Get(r.Context(), workspaceID, chi.URLParam(r, "propertyID"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderProperty(def))
}

func (s *Server) updateProperty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string `json:"name"`
		Required *bool   `json:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	propertyID := chi.URLParam(r, "propertyID")

	def, err := s.uc.Property.Get(r.Context(), workspaceID, propertyID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if req.Name != nil {
		if def, err = s.uc.Property.Rename(r.Context(), workspaceID, propertyID, *req.Name); err != nil {
			respondError(w, r, err)
			return
		}
	}
	if req.Required != nil {
		if def, err = s.uc.Property.SetRequired(r.Context(), workspaceID, propertyID, *req.Required); err != nil {
			respondError(w, r, err)
			return
		}
	}

	respondJSON(w, r, http.StatusOK, renderProperty(def))
}

func (s *Server) updatePropertyOptions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Options []model.PropertyOption `json:"options"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	def, err := s.uc.Property.UpdateOptions(r.Context(), workspaceID, chi.URLParam(r, "propertyID"), req.Options)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderProperty(def))
}

func (s *Server) changePropertyType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    string `json:"type"`
		Confirm bool   `json:"confirm"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	propertyType, err := types.ParsePropertyType(req.Type)
	if err != nil {
		respondError(w, r, goerr.Wrap(errBadRequest, "invalid property type", goerr.V("value", req.Type)))
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	def, err := s.uc.Property.ChangeType(r.Context(), workspaceID, chi.URLParam(r, "propertyID"), propertyType, req.Confirm)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderProperty(def))
}

func (s *Server) duplicateProperty(w http.ResponseWriter, r *http.Request) {
	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	def, err := s.uc.Property.Duplicate(r.Context(), workspaceID, chi.URLParam(r, "propertyID"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, renderProperty(def))
}

func (s *Server) deleteProperty(w http.ResponseWriter, r *http.Request) {
	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	if err := s.uc.Property.Delete(r.Context(), workspaceID, chi.URLParam(r, "propertyID"), queryConfirmed(r)); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
