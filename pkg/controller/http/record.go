package http

import (
	"net/http"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/interfaces"
	"github.com/atelier-lab/atelier/pkg/domain/types"
	"github.com/atelier-lab/atelier/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

func listOptions(r *http.Request) []interfaces.ListOption {
	var opts []interfaces.ListOption
	if r.URL.Query().Get("archived") == "true" {
		opts = append(opts, interfaces.WithArchived())
	}
	return opts
}

// parseDate accepts YYYY-MM-DD or RFC3339
func parseDate(raw string) (*time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, goerr.Wrap(errBadRequest, "date must be YYYY-MM-DD or RFC3339", goerr.V("value", raw))
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	tasks, err := s.uc.Record.ListTasks(r.Context(), workspaceID, listOptions(r)...)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = renderTask(t)
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"tasks": out})
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Status      string   `json:"status"`
		Priority    string   `json:"priority"`
		DueDate     string   `json:"due_date"`
		AssigneeIDs []string `json:"assignee_ids"`
		ProjectID   int64    `json:"project_id"`
		ClientID    int64    `json:"client_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	input := usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      types.TaskStatus(req.Status),
		Priority:    types.TaskPriority(req.Priority),
		AssigneeIDs: req.AssigneeIDs,
		ProjectID:   req.ProjectID,
		ClientID:    req.ClientID,
	}
	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			respondError(w, r, err)
			return
		}
		input.DueDate = due
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	task, err := s.uc.Record.CreateTask(r.Context(), workspaceID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, renderTask(task))
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathRecordID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	detail, err := s.uc.Record.GetTask(r.Context(), workspaceID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"task":          renderTask(detail.Task),
		"project_title": detail.ProjectTitle,
		"client_name":   detail.ClientName,
	})
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathRecordID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Status      *string  `json:"status"`
		Priority    *string  `json:"priority"`
		DueDate     *string  `json:"due_date"`
		AssigneeIDs []string `json:"assignee_ids"`
		ProjectID   *int64   `json:"project_id"`
		ClientID    *int64   `json:"client_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	patch := usecase.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		AssigneeIDs: req.AssigneeIDs,
		ProjectID:   req.ProjectID,
		ClientID:    req.ClientID,
	}
	if req.Status != nil {
		status := types.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := types.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.DueDate != nil {
		// Empty string clears the due date
		if *req.DueDate == "" {
			patch.ClearDue = true
		} else {
			due, err := parseDate(*req.DueDate)
			if err != nil {
				respondError(w, r, err)
				return
			}
			patch.DueDate = due
		}
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	task, err := s.uc.Record.UpdateTask(r.Context(), workspaceID, id, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderTask(task))
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	projects, err := s.uc.Record.ListProjects(r.Context(), workspaceID, listOptions(r)...)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = renderProject(p)
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"projects": out})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
		ClientID    int64  `json:"client_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	input := usecase.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      types.ProjectStatus(req.Status),
		ClientID:    req.ClientID,
	}
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			respondError(w, r, err)
			return
		}
		input.StartDate = start
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			respondError(w, r, err)
			return
		}
		input.EndDate = end
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	project, err := s.uc.Record.CreateProject(r.Context(), workspaceID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, renderProject(project))
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathRecordID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	detail, err := s.uc.Record.GetProject(r.Context(), workspaceID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"project":     renderProject(detail.Project),
		"client_name": detail.ClientName,
	})
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathRecordID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		StartDate   *string `json:"start_date"`
		EndDate     *string `json:"end_date"`
		ClientID    *int64  `json:"client_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	patch := usecase.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		ClientID:    req.ClientID,
	}
	if req.Status != nil {
		status := types.ProjectStatus(*req.Status)
		patch.Status = &status
	}
	if req.StartDate != nil {
		if *req.StartDate == "" {
			patch.ClearStart = true
		} else {
			start, err := parseDate(*req.StartDate)
			if err != nil {
				respondError(w, r, err)
				return
			}
			patch.StartDate = start
		}
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			patch.ClearEnd = true
		} else {
			end, err := parseDate(*req.EndDate)
			if err != nil {
				respondError(w, r, err)
				return
			}
			patch.EndDate = end
		}
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	project, err := s.uc.Record.UpdateProject(r.Context(), workspaceID, id, patch)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderProject(project))
}

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	clients, err := s.uc.Record.ListClients(r.Context(), workspaceID, listOptions(r)...)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]clientResponse, len(clients))
	for i, c := range clients {
		out[i] = renderClient(c)
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"clients": out})
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Company string `json:"company"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Website string `json:"website"`
		Notes   string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	client, err := s.uc.Record.CreateClient(r.Context(), workspaceID, usecase.CreateClientInput{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Website: req.Website,
		Notes:   req.Notes,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, renderClient(client))
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathRecordID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	client, err := s.uc.Record.GetClient(r.Context(), workspaceID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderClient(client))
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathRecordID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Company *string `json:"company"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Website *string `json:"website"`
		Notes   *string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	workspaceID := workspaceFromContext(r.Context()).Workspace.ID
	client, err := s.uc.Record.UpdateClient(r.Context(), workspaceID, id, usecase.ClientPatch{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Website: req.Website,
		Notes:   req.Notes,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, renderClient(client))
}

func (s *Server) archiveRecord(w http.ResponseWriter, r *http.Request) {
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
	if err := s.uc.Record.Archive(r.Context(), workspaceID, entityType, id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request) {
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
	if err := s.uc.Record.Delete(r.Context(), workspaceID, entityType, id, queryConfirmed(r)); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
