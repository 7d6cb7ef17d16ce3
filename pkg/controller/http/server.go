package http

import (
	"net/http"
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/usecase"
	"github.com/atelier-lab/atelier/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router            *chi.Mux
	uc                *usecase.UseCases
	workspaceRegistry *model.WorkspaceRegistry
}

type Options func(*Server)

func New(uc *usecase.UseCases, registry *model.WorkspaceRegistry, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:            r,
		uc:                uc,
		workspaceRegistry: registry,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	r.Get("/api/workspaces", workspacesHandler(registry))

	r.Route("/api/workspaces/{workspaceID}", func(r chi.Router) {
		r.Use(workspaceMiddleware(registry))
		r.Use(actorMiddleware)

		r.Get("/", workspaceHandler)

		r.Route("/properties/{entityType}", func(r chi.Router) {
			r.Get("/", s.listProperties)
			r.Post("/", s.createProperty)

			r.Route("/{propertyID}", func(r chi.Router) {
				r.Get("/", s.getProperty)
				r.Patch("/", s.updateProperty)
				r.Delete("/", s.deleteProperty)
				r.Put("/options", s.updatePropertyOptions)
				r.Put("/type", s.changePropertyType)
				r.Post("/duplicate", s.duplicateProperty)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.listTasks)
			r.Post("/", s.createTask)
			r.Get("/{recordID}", s.getTask)
			r.Patch("/{recordID}", s.updateTask)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.Post("/", s.createProject)
			r.Get("/{recordID}", s.getProject)
			r.Patch("/{recordID}", s.updateProject)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", s.listClients)
			r.Post("/", s.createClient)
			r.Get("/{recordID}", s.getClient)
			r.Patch("/{recordID}", s.updateClient)
		})

		r.Route("/records/{entityType}/{recordID}", func(r chi.Router) {
			r.Post("/archive", s.archiveRecord)
			r.Delete("/", s.deleteRecord)
			r.Get("/detail", s.recordDetail)
			r.Get("/descriptors", s.recordDescriptors)
			r.Put("/values/{key}", s.setValue)
			r.Delete("/values/{key}", s.clearValue)
			r.Get("/comments", s.listComments)
			r.Post("/comments", s.addComment)
			r.Get("/activity", s.listActivity)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// workspacesHandler serves the workspace list as JSON
func workspacesHandler(registry *model.WorkspaceRegistry) http.HandlerFunc {
	type workspaceResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	type response struct {
		Workspaces []workspaceResponse `json:"workspaces"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		entries := registry.List()
		resp := response{
			Workspaces: make([]workspaceResponse, len(entries)),
		}
		for i, entry := range entries {
			resp.Workspaces[i] = workspaceResponse{
				ID:   entry.Workspace.ID,
				Name: entry.Workspace.Name,
			}
		}

		respondJSON(w, r, http.StatusOK, resp)
	}
}

// workspaceHandler serves one workspace's identity and entity labels
func workspaceHandler(w http.ResponseWriter, r *http.Request) {
	entry := workspaceFromContext(r.Context())

	respondJSON(w, r, http.StatusOK, map[string]any{
		"id":   entry.Workspace.ID,
		"name": entry.Workspace.Name,
		"labels": map[string]string{
			"task":    entry.Labels.Task,
			"project": entry.Labels.Project,
			"client":  entry.Labels.Client,
		},
	})
}
