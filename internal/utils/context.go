package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// userIDKey is the context key under which the auth middleware stores the
// authenticated user's id.
const userIDKey contextKey = "user_id"

// WithUserID returns a context carrying the authenticated user's id
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// GetUserIDFromContext extracts the authenticated user's id set by the auth
// middleware
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
