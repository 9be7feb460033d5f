package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID carries the authenticated user's id.
	CtxKeyUserID ctxKey = "user_id"
	// CtxKeyUsername carries the authenticated user's username.
	CtxKeyUsername ctxKey = "username"
	// CtxKeySessionID carries the server-side session id.
	CtxKeySessionID ctxKey = "session_id"
)

// WithIdentity attaches the authenticated identity to the context for
// downstream handlers.
func WithIdentity(ctx context.Context, userID, username, sessionID string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, userID)
	ctx = context.WithValue(ctx, CtxKeyUsername, username)
	ctx = context.WithValue(ctx, CtxKeySessionID, sessionID)
	return ctx
}

// UserIDFromContext returns the authenticated user id, or "" when the
// request carries no session.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// UsernameFromContext returns the authenticated username, or "".
func UsernameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUsername).(string); ok {
		return v
	}
	return ""
}

// SessionIDFromContext returns the server-side session id, or "".
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySessionID).(string); ok {
		return v
	}
	return ""
}
