package auth

import (
	"context"
	"errors"
)

// RoleAdmin is the role required for catalog mutations
const RoleAdmin = "admin"

// UserContext carries the authenticated identity through a request
type UserContext struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the identity carries the admin role
func (u *UserContext) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type contextKey struct{}

var userContextKey = contextKey{}

// ErrNoUserInContext is returned when no identity was attached to the context
var ErrNoUserInContext = errors.New("no user in context")

// SetUserInContext attaches the identity to a request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the identity from a request context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
