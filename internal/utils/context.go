package utils

import (
	"context"
	"time"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"
const ContextRoleKey contextKey = "role"

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role := ctx.Value(ContextRoleKey)
	roleStr, ok := role.(string)
	return roleStr, ok
}

type SessionData struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}
