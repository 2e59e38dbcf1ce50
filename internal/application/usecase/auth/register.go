package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/domain/user"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/auth"
	"github.com/khoahotran/career-path/pkg/logger"
)

const minPasswordLength = 8

type RegisterUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{userRepo: repo, logger: log}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Execute creates a student account. Admins are only created through careerctl.
func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*user.User, error) {
	ctx, span := tracer.Start(ctx, "RegisterUseCase.Execute")
	defer span.End()

	email := normalizeEmail(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.NewInvalidInput("email is not valid", err)
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperror.NewInvalidInput("password must be at least 8 characters", nil)
	}

	u, err := newUser(email, input.Password, input.Name, auth.RoleStudent)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := uc.userRepo.Save(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, apperror.NewConflict("user", "email", email)
		}
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	uc.logger.Info("User registered", zap.String("user_id", u.ID.String()))
	return u, nil
}

func newUser(email, password, name, role string) (*user.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if name = strings.TrimSpace(name); name != "" {
		u.Name = &name
	}
	return u, nil
}
