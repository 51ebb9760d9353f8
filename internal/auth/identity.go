package auth

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the verified caller. Services take it as an explicit argument.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	UserType string
}

// Authenticated reports whether the identity names a user.
func (i Identity) Authenticated() bool {
	return i.UserID != uuid.Nil
}

type contextKey struct{}

// WithIdentity attaches the verified identity to ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFrom returns the identity attached by WithIdentity.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok && id.Authenticated()
}
