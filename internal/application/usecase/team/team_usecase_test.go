package team

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/career-path/internal/domain/team"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

type memoryTeam struct {
	members map[uuid.UUID]team.Member
}

func (m *memoryTeam) Save(_ context.Context, t *team.Member) error {
	m.members[t.ID] = *t
	return nil
}

func (m *memoryTeam) Update(_ context.Context, t *team.Member) error {
	if _, ok := m.members[t.ID]; !ok {
		return team.ErrMemberNotFound
	}
	m.members[t.ID] = *t
	return nil
}

func (m *memoryTeam) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.members[id]; !ok {
		return team.ErrMemberNotFound
	}
	delete(m.members, id)
	return nil
}

func (m *memoryTeam) FindByID(_ context.Context, id uuid.UUID) (*team.Member, error) {
	t, ok := m.members[id]
	if !ok {
		return nil, team.ErrMemberNotFound
	}
	return &t, nil
}

func (m *memoryTeam) List(context.Context) ([]*team.Member, error) {
	out := make([]*team.Member, 0, len(m.members))
	for _, t := range m.members {
		out = append(out, &t)
	}
	return out, nil
}

type fakeUploader struct {
	uploaded map[string]string
	deleted  []string
	err      error
}

func (f *fakeUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	body, _ := io.ReadAll(file)
	key := folder + "/" + publicID
	f.uploaded[key] = string(body)
	return "https://res.cloudinary.com/demo/image/upload/" + key, nil
}

func (f *fakeUploader) UploadRaw(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	return f.Upload(ctx, file, folder, publicID)
}

func (f *fakeUploader) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

type TeamUseCaseTestSuite struct {
	suite.Suite
	repo     *memoryTeam
	uploader *fakeUploader
	uc       *TeamUseCase
}

func (s *TeamUseCaseTestSuite) SetupTest() {
	s.repo = &memoryTeam{members: map[uuid.UUID]team.Member{}}
	s.uploader = &fakeUploader{uploaded: map[string]string{}}
	s.uc = NewTeamUseCase(s.repo, s.uploader, logger.NewNop())
}

func TestTeamUseCase(t *testing.T) {
	suite.Run(t, new(TeamUseCaseTestSuite))
}

func (s *TeamUseCaseTestSuite) TestCreateUpdateDelete() {
	ctx := context.Background()

	m, err := s.uc.Create(ctx, MemberInput{Name: " Ravi ", Role: "Mentor", LinkedInURL: ""})
	s.Require().NoError(err)
	s.Equal("Ravi", m.Name)
	s.Nil(m.LinkedInURL)

	updated, err := s.uc.Update(ctx, m.ID, MemberInput{Name: "Ravi K", Role: "Lead Mentor", Email: "ravi@example.com"})
	s.Require().NoError(err)
	s.Equal("Lead Mentor", updated.Role)
	s.Require().NotNil(updated.Email)

	s.Require().NoError(s.uc.Delete(ctx, m.ID))
	s.Equal([]string{"team/" + m.ID.String()}, s.uploader.deleted)
	s.ErrorIs(s.uc.Delete(ctx, m.ID), apperror.ErrNotFound)
}

func (s *TeamUseCaseTestSuite) TestCreateValidation() {
	_, err := s.uc.Create(context.Background(), MemberInput{Name: "Asha"})
	s.ErrorIs(err, apperror.ErrInvalidInput)
	s.Empty(s.repo.members)
}

func (s *TeamUseCaseTestSuite) TestUploadPhoto() {
	ctx := context.Background()
	m, err := s.uc.Create(ctx, MemberInput{Name: "Asha", Role: "Counsellor"})
	s.Require().NoError(err)

	got, err := s.uc.UploadPhoto(ctx, m.ID, strings.NewReader("jpeg-bytes"))
	s.Require().NoError(err)
	s.Require().NotNil(got.PhotoURL)
	s.Contains(*got.PhotoURL, "team/"+m.ID.String())
	s.Equal("jpeg-bytes", s.uploader.uploaded["team/"+m.ID.String()])

	stored, _ := s.repo.FindByID(ctx, m.ID)
	s.Equal(got.PhotoURL, stored.PhotoURL)
}

func (s *TeamUseCaseTestSuite) TestUploadPhotoFailures() {
	ctx := context.Background()
	_, err := s.uc.UploadPhoto(ctx, uuid.New(), strings.NewReader("x"))
	s.ErrorIs(err, apperror.ErrNotFound)

	m, err := s.uc.Create(ctx, MemberInput{Name: "Asha", Role: "Counsellor"})
	s.Require().NoError(err)
	s.uploader.err = errors.New("cloudinary down")
	_, err = s.uc.UploadPhoto(ctx, m.ID, strings.NewReader("x"))
	s.ErrorIs(err, apperror.ErrInternal)
}
