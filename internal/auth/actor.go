package auth

import (
	"context"

	"github.com/heartmarshall/storyflow-backend/internal/domain"
	"github.com/heartmarshall/storyflow-backend/pkg/ctxutil"
)

// ActorFromCtx returns the verified actor placed in ctx by the auth
// middleware. A missing identity yields domain.ErrUnauthorized.
func ActorFromCtx(ctx context.Context) (domain.Actor, error) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	return domain.Actor{ID: id, Role: domain.UserRole(ctxutil.UserRoleFromCtx(ctx))}, nil
}

// WithActor stores actor in ctx the same way the auth middleware does.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	ctx = ctxutil.WithUserID(ctx, actor.ID)
	return ctxutil.WithUserRole(ctx, string(actor.Role))
}
