package auth

import (
	"context"
	"time"
)

// LoginTestChecker is an in-memory Checker, used in handler and middleware tests.
type LoginTestChecker struct {
	// token -> user id
	LoggedSessions map[string]string
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		map[string]string{},
	}
}

func (c *LoginTestChecker) Check(_ context.Context, token string) (*Session, error) {
	userID, ok := c.LoggedSessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now(),
	}, nil
}
