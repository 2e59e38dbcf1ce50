package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/domain/user"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/auth"
	"github.com/khoahotran/career-path/pkg/logger"
)

type SeedAdminUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

func NewSeedAdminUseCase(repo user.Repository, log logger.Logger) *SeedAdminUseCase {
	return &SeedAdminUseCase{userRepo: repo, logger: log}
}

// Execute creates the admin account, or promotes it if the email is already registered.
func (uc *SeedAdminUseCase) Execute(ctx context.Context, email, password string) (*user.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.NewInvalidInput("email and password are required", nil)
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == auth.RoleAdmin {
			uc.logger.Info("Admin already exists", zap.String("email", email))
			return existing, nil
		}
		if err := uc.userRepo.UpdateRole(ctx, existing.ID, auth.RoleAdmin); err != nil {
			return nil, err
		}
		existing.Role = auth.RoleAdmin
		uc.logger.Info("User promoted to admin", zap.String("email", email))
		return existing, nil
	case !errors.Is(err, user.ErrUserNotFound):
		return nil, err
	}

	u, err := newUser(email, password, "Admin", auth.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}
	uc.logger.Info("Admin user created", zap.String("email", email), zap.String("user_id", u.ID.String()))
	return u, nil
}
