package ctxkeys

import (
	"context"

	"github.com/valueaim/api/internal/model"
)

// contextKey is a private type so no other package can collide with
// our context values.
type contextKey string

const userKey contextKey = "user"

// User returns the authenticated user attached by the auth middleware,
// or nil for unauthenticated requests.
func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(userKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
