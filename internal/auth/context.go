package auth

import (
	"context"

	"github.com/2beens/fittrack/internal/fitstats"
)

type contextKey struct{}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID    string `json:"userId"`
	SessionID string `json:"-"`
	Email     string `json:"email,omitempty"`
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(Identity)
	return identity, ok && identity.UserID != ""
}

// OwnerID returns the id of the authenticated user, or ErrUnauthenticated
// when the request went through without one.
func OwnerID(ctx context.Context) (string, error) {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return "", fitstats.ErrUnauthenticated
	}
	return identity.UserID, nil
}
