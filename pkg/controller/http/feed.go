package http

import (
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
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

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	comments, err := s.uc.Comment.List(r.Context(), workspaceID, entityType, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"comments": renderComments(comments)})
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Body string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	comment, err := s.uc.Comment.Add(r.Context(), workspaceID, entityType, id, req.Body)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, map[string]any{
		"id":         string(comment.ID),
		"author_id":  comment.AuthorID,
		"body":       comment.Body,
		"created_at": comment.CreatedAt,
	})
}

// listActivity serves a record's feed. With ?since=RFC3339 only entries
// created strictly after that time are returned; polling clients pass the
// timestamp of the newest entry they have seen.
func (s *Server) listActivity(w http.ResponseWriter, r *http.Request) {
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

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID

	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, r, goerr.Wrap(errBadRequest, "since must be RFC3339", goerr.V("value", raw)))
			return
		}
		activities, err := s.uc.Activity.ListSince(r.Context(), workspaceID, entityType, id, since)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, map[string]any{"activity": renderActivities(activities)})
		return
	}

	activities, err := s.uc.Activity.List(r.Context(), workspaceID, entityType, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"activity": renderActivities(activities)})
}
