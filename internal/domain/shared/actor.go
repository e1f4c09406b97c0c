package shared

import "context"

// Actor identifies who is performing a mutation. Every repository mutation
// records the acting identity in the audit trail; when no authenticated user
// is present the configured system identity is used instead of a hardcoded
// literal.
type Actor struct {
	ID   string
	Name string
}

// SystemActor is the fallback identity for unattended mutations
// (schedulers, sync replays, restores).
var SystemActor = Actor{ID: "system", Name: "System"}

type actorContextKey struct{}

// WithActor returns a context carrying the acting identity.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext returns the acting identity from the context, falling back
// to SystemActor when none was set.
func ActorFromContext(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorContextKey{}).(Actor); ok && actor.Name != "" {
		return actor
	}
	return SystemActor
}
