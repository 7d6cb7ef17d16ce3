package usecase

import "context"

type actorCtxKey struct{}

// AnonymousActor is used when no actor identity was provided.
// Authentication itself is an external collaborator; the core only
// carries the identity through for activity attribution.
const AnonymousActor = "anonymous"

// WithActor returns a context carrying the acting user's ID
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actorID)
}

// ActorFromContext returns the acting user's ID, or AnonymousActor
func ActorFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(actorCtxKey{}).(string); ok && id != "" {
		return id
	}
	return AnonymousActor
}
