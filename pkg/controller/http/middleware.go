package http

import (
	"context"
	"net/http"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/atelier-lab/atelier/pkg/usecase"
	"github.com/go-chi/chi/v5"
)

type workspaceCtxKey struct{}

// workspaceMiddleware resolves the {workspaceID} path parameter against the
// registry. Requests for unknown workspaces end here with a 404.
func workspaceMiddleware(registry *model.WorkspaceRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			workspaceID := chi.URLParam(r, "workspaceID")
			entry, err := registry.Get(workspaceID)
			if err != nil {
				respondError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), workspaceCtxKey{}, entry)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// workspaceFromContext returns the workspace entry resolved by the middleware
func workspaceFromContext(ctx context.Context) *model.WorkspaceEntry {
	entry, _ := ctx.Value(workspaceCtxKey{}).(*model.WorkspaceEntry)
	return entry
}

// actorMiddleware carries the acting user's ID from the X-Actor-ID header
// into the context for activity attribution. Identity is asserted by an
// upstream auth proxy; an absent header falls back to the anonymous actor.
func actorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actorID := r.Header.Get("X-Actor-ID"); actorID != "" {
			r = r.WithContext(usecase.WithActor(r.Context(), actorID))
		}
		next.ServeHTTP(w, r)
	})
}
