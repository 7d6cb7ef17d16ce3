package http

import (
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/model"
)

// Wire representations of domain entities. Dates travel as YYYY-MM-DD,
// timestamps as RFC3339.

type propertyResponse struct {
	ID         string                 `json:"id"`
	EntityType string                 `json:"entity_type"`
	Name       string                 `json:"name"`
	Key        string                 `json:"key"`
	Type       string                 `json:"type"`
	Required   bool                   `json:"required"`
	Options    []model.PropertyOption `json:"options,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

func renderProperty(def *model.PropertyDefinition) propertyResponse {
	return propertyResponse{
		ID:         def.ID,
		EntityType: string(def.EntityType),
		Name:       def.Name,
		Key:        string(def.Key),
		Type:       string(def.Type),
		Required:   def.Required,
		Options:    def.Options,
		CreatedAt:  def.CreatedAt,
		UpdatedAt:  def.UpdatedAt,
	}
}

func renderProperties(defs []*model.PropertyDefinition) []propertyResponse {
	out := make([]propertyResponse, len(defs))
	for i, def := range defs {
		out[i] = renderProperty(def)
	}
	return out
}

type taskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     string    `json:"due_date,omitempty"`
	AssigneeIDs []string  `json:"assignee_ids,omitempty"`
	ProjectID   int64     `json:"project_id,omitempty"`
	ClientID    int64     `json:"client_id,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func renderTask(t *model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     renderDate(t.DueDate),
		AssigneeIDs: t.AssigneeIDs,
		ProjectID:   t.ProjectID,
		ClientID:    t.ClientID,
		Archived:    t.Archived,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type projectResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	ClientID    int64     `json:"client_id,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func renderProject(p *model.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status),
		StartDate:   renderDate(p.StartDate),
		EndDate:     renderDate(p.EndDate),
		ClientID:    p.ClientID,
		Archived:    p.Archived,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type clientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Website   string    `json:"website,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func renderClient(c *model.Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Website:   c.Website,
		Notes:     c.Notes,
		Archived:  c.Archived,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type commentResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func renderComments(comments []*model.Comment) []commentResponse {
	out := make([]commentResponse, len(comments))
	for i, c := range comments {
		out[i] = commentResponse{
			ID:        string(c.ID),
			AuthorID:  c.AuthorID,
			Body:      c.Body,
			CreatedAt: c.CreatedAt,
		}
	}
	return out
}

type activityResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Display   string    `json:"display"`
	ActorID   string    `json:"actor_id"`
	Field     string    `json:"field,omitempty"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func renderActivities(activities []*model.Activity) []activityResponse {
	out := make([]activityResponse, len(activities))
	for i, a := range activities {
		out[i] = activityResponse{
			ID:        string(a.ID),
			Action:    string(a.Action),
			Display:   a.Action.Humanize(),
			ActorID:   a.ActorID,
			Field:     a.Field,
			From:      a.From,
			To:        a.To,
			CreatedAt: a.CreatedAt,
		}
	}
	return out
}

func renderDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
