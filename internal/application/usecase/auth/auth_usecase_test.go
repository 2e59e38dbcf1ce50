package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/career-path/internal/domain/user"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/auth"
	"github.com/khoahotran/career-path/pkg/logger"
)

type memoryUsers struct {
	mu      sync.Mutex
	byEmail map[string]*user.User
}

func (m *memoryUsers) Save(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	cp := *u
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *memoryUsers) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return user.ErrUserNotFound
}

type AuthUseCaseTestSuite struct {
	suite.Suite
	users    *memoryUsers
	jwt      *auth.JWTService
	register *RegisterUseCase
	login    *LoginUseCase
	seed     *SeedAdminUseCase
}

func (s *AuthUseCaseTestSuite) SetupTest() {
	s.users = &memoryUsers{byEmail: map[string]*user.User{}}
	s.jwt = auth.NewJWTService("test-secret", time.Hour)
	log := logger.NewNop()
	s.register = NewRegisterUseCase(s.users, log)
	s.login = NewLoginUseCase(s.users, s.jwt, log)
	s.seed = NewSeedAdminUseCase(s.users, log)
}

func TestAuthUseCase(t *testing.T) {
	suite.Run(t, new(AuthUseCaseTestSuite))
}

func (s *AuthUseCaseTestSuite) TestRegisterThenLogin() {
	ctx := context.Background()
	u, err := s.register.Execute(ctx, RegisterInput{Email: " Asha@Example.com ", Password: "s3cretpass", Name: "Asha"})
	s.Require().NoError(err)
	s.Equal("asha@example.com", u.Email)
	s.Equal(auth.RoleStudent, u.Role)
	s.Require().NotNil(u.Name)

	out, err := s.login.Execute(ctx, LoginInput{Email: "asha@example.com", Password: "s3cretpass"})
	s.Require().NoError(err)

	claims, err := s.jwt.ValidateToken(out.AccessToken)
	s.Require().NoError(err)
	s.Equal(u.ID, claims.UserID)
	s.Equal(auth.RoleStudent, claims.Role)
}

func (s *AuthUseCaseTestSuite) TestRegisterDuplicateIsConflict() {
	ctx := context.Background()
	_, err := s.register.Execute(ctx, RegisterInput{Email: "dup@example.com", Password: "password1"})
	s.Require().NoError(err)

	_, err = s.register.Execute(ctx, RegisterInput{Email: "DUP@example.com", Password: "password2"})
	s.ErrorIs(err, apperror.ErrConflict)
}

func (s *AuthUseCaseTestSuite) TestRegisterValidation() {
	ctx := context.Background()
	_, err := s.register.Execute(ctx, RegisterInput{Email: "not-an-email", Password: "password1"})
	s.ErrorIs(err, apperror.ErrInvalidInput)

	_, err = s.register.Execute(ctx, RegisterInput{Email: "a@example.com", Password: "short"})
	s.ErrorIs(err, apperror.ErrInvalidInput)
}

func (s *AuthUseCaseTestSuite) TestLoginFailures() {
	ctx := context.Background()
	_, err := s.login.Execute(ctx, LoginInput{Email: "nobody@example.com", Password: "x"})
	s.ErrorIs(err, apperror.ErrUnauthorized)

	_, err = s.register.Execute(ctx, RegisterInput{Email: "ravi@example.com", Password: "password1"})
	s.Require().NoError(err)
	_, err = s.login.Execute(ctx, LoginInput{Email: "ravi@example.com", Password: "wrong-password"})
	s.ErrorIs(err, apperror.ErrUnauthorized)
}

func (s *AuthUseCaseTestSuite) TestSeedAdmin() {
	ctx := context.Background()

	created, err := s.seed.Execute(ctx, "admin@example.com", "adminpass")
	s.Require().NoError(err)
	s.Equal(auth.RoleAdmin, created.Role)

	again, err := s.seed.Execute(ctx, "admin@example.com", "adminpass")
	s.Require().NoError(err)
	s.Equal(created.ID, again.ID)

	student, err := s.register.Execute(ctx, RegisterInput{Email: "mentor@example.com", Password: "password1"})
	s.Require().NoError(err)
	promoted, err := s.seed.Execute(ctx, "mentor@example.com", "ignored")
	s.Require().NoError(err)
	s.Equal(student.ID, promoted.ID)
	s.Equal(auth.RoleAdmin, promoted.Role)
}
