package team

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMemberNotFound = errors.New("team member not found")
	ErrNameRequired   = errors.New("name is required")
	ErrRoleRequired   = errors.New("role is required")
)

type Member struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Bio         string    `json:"bio"`
	PhotoURL    *string   `json:"photo_url"`
	LinkedInURL *string   `json:"linkedin_url"`
	Email       *string   `json:"email"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(m.Role) == "" {
		return ErrRoleRequired
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)
	List(ctx context.Context) ([]*Member, error)
}
