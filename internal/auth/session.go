package auth

import (
	"context"
	"errors"
	"time"
)

// TokenHeader carries the session token issued by POST /a/login.
const TokenHeader = "X-LIFTLOG-TOKEN"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	// ErrAuthRequired is returned by operations which need a logged-in user
	// when the context carries no session.
	ErrAuthRequired = errors.New("authentication required")
)

type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}

type sessionCtxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(*Session)
	if !ok || s == nil || s.UserID == "" {
		return nil, false
	}
	return s, true
}

// RequireSession is SessionFromContext failing with ErrAuthRequired.
func RequireSession(ctx context.Context) (*Session, error) {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return nil, ErrAuthRequired
	}
	return s, nil
}
