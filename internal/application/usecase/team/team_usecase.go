package team

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/application/service"
	"github.com/khoahotran/career-path/internal/domain/team"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

const photoFolder = "team"

type TeamUseCase struct {
	repo     team.Repository
	uploader service.Uploader
	logger   logger.Logger
}

func NewTeamUseCase(r team.Repository, u service.Uploader, log logger.Logger) *TeamUseCase {
	return &TeamUseCase{repo: r, uploader: u, logger: log}
}

type MemberInput struct {
	Name        string
	Role        string
	Bio         string
	LinkedInURL string
	Email       string
	SortOrder   int
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (in MemberInput) applyTo(m *team.Member) {
	m.Name = strings.TrimSpace(in.Name)
	m.Role = strings.TrimSpace(in.Role)
	m.Bio = strings.TrimSpace(in.Bio)
	m.LinkedInURL = optional(in.LinkedInURL)
	m.Email = optional(in.Email)
	m.SortOrder = in.SortOrder
}

func (uc *TeamUseCase) List(ctx context.Context) ([]*team.Member, error) {
	return uc.repo.List(ctx)
}

func (uc *TeamUseCase) Create(ctx context.Context, in MemberInput) (*team.Member, error) {
	now := time.Now().UTC()
	m := &team.Member{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	in.applyTo(m)
	if err := m.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("team member validation failed", err)
	}
	if err := uc.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *TeamUseCase) find(ctx context.Context, id uuid.UUID) (*team.Member, error) {
	m, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, team.ErrMemberNotFound) {
		return nil, apperror.NewNotFound("team member", id.String())
	}
	return m, err
}

func (uc *TeamUseCase) Update(ctx context.Context, id uuid.UUID, in MemberInput) (*team.Member, error) {
	m, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	in.applyTo(m)
	m.UpdatedAt = time.Now().UTC()
	if err := m.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("team member validation failed", err)
	}
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *TeamUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, team.ErrMemberNotFound) {
			return apperror.NewNotFound("team member", id.String())
		}
		return err
	}
	if err := uc.uploader.Delete(ctx, photoFolder+"/"+id.String()); err != nil {
		uc.logger.Warn("Failed to delete team photo", zap.String("member_id", id.String()), zap.Error(err))
	}
	return nil
}

// UploadPhoto stores the photo under a public id derived from the member id,
// so a new upload replaces the previous one.
func (uc *TeamUseCase) UploadPhoto(ctx context.Context, id uuid.UUID, file io.Reader) (*team.Member, error) {
	m, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := uc.uploader.Upload(ctx, file, photoFolder, id.String())
	if err != nil {
		return nil, apperror.NewInternal("failed to upload team photo", err)
	}

	m.PhotoURL = &url
	m.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	uc.logger.Info("Team photo updated", zap.String("member_id", id.String()), zap.String("url", url))
	return m, nil
}
