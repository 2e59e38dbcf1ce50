package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/career-path/pkg/auth"
)

// Session identifies the signed-in caller of a use case.
type Session struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func FromClaims(c *auth.CustomClaims) *Session {
	if c == nil {
		return nil
	}
	return &Session{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

// Authenticated is false for a nil session.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != uuid.Nil
}

func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == auth.RoleAdmin
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns nil when no session is attached.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
