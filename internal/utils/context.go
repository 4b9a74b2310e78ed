package utils

import (
	"context"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"

// SessionData is what the session middleware learns about the request's user.
type SessionData struct {
	UserID string
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}
