package domain

import (
	"context"
	"time"
)

// Session asserts that a browser context is authenticated as a department.
// At most one exists at a time.
type Session struct {
	Department     string    `json:"department"`
	DepartmentName string    `json:"departmentName"`
	LoginTime      time.Time `json:"loginTime"`
}

// NewSession returns a Session for department with its resolved display name.
func NewSession(department string, loginTime time.Time) *Session {
	return &Session{
		Department:     department,
		DepartmentName: DepartmentName(department),
		LoginTime:      loginTime,
	}
}

// SessionStore persists the single current session.
type SessionStore interface {
	SetSession(ctx context.Context, department string) (*Session, error)
	GetSession(ctx context.Context) *Session
	ClearSession(ctx context.Context) error
}

type sessionContextKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session set by WithSession, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok && s != nil
}
