package http

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/career-path/internal/application/service"
	"github.com/khoahotran/career-path/internal/domain/feedback"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/internal/domain/stats"
	"github.com/khoahotran/career-path/internal/domain/team"
	"github.com/khoahotran/career-path/internal/domain/user"
)

type memoryProfiles struct {
	mu       sync.Mutex
	byOwner  map[uuid.UUID]*profile.UserProfile
	failNext error
	calls    int
}

func (s *memoryProfiles) Create(_ context.Context, p *profile.UserProfile) (*profile.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if err := s.failNext; err != nil {
		s.failNext = nil
		return nil, err
	}
	if _, ok := s.byOwner[p.OwnerID]; ok {
		return nil, profile.ErrProfileExists
	}
	saved := p.Clone()
	saved.ID, saved.Version, saved.UpdatedAt = uuid.New(), 1, time.Now().UTC()
	s.byOwner[p.OwnerID] = saved
	return saved.Clone(), nil
}

func (s *memoryProfiles) Update(_ context.Context, id uuid.UUID, expectedVersion int64, patch profile.Patch) (*profile.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if err := s.failNext; err != nil {
		s.failNext = nil
		return nil, err
	}
	for _, p := range s.byOwner {
		if p.ID == id {
			if p.Version != expectedVersion {
				return nil, profile.ErrStaleVersion
			}
			patch.Apply(p)
			p.Version++
			return p.Clone(), nil
		}
	}
	return nil, profile.ErrProfileNotFound
}

func (s *memoryProfiles) FindByOwner(_ context.Context, ownerID uuid.UUID) (*profile.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	p, ok := s.byOwner[ownerID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return p.Clone(), nil
}

func (s *memoryProfiles) List(context.Context, int, int) ([]*profile.UserProfile, error) {
	return nil, nil
}

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

func (m *memoryUsers) FindByID(context.Context, uuid.UUID) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *memoryUsers) UpdateRole(context.Context, uuid.UUID, string) error { return nil }

type memoryFeedback struct {
	mu    sync.Mutex
	items []*feedback.Feedback
}

func (m *memoryFeedback) Save(_ context.Context, f *feedback.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, f)
	return nil
}

func (m *memoryFeedback) List(context.Context, int, int) ([]*feedback.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items, nil
}

func (m *memoryFeedback) Delete(context.Context, uuid.UUID) error {
	return feedback.ErrFeedbackNotFound
}

type memoryTeam struct {
	mu      sync.Mutex
	members map[uuid.UUID]team.Member
}

func (m *memoryTeam) Save(_ context.Context, t *team.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[t.ID] = *t
	return nil
}

func (m *memoryTeam) Update(_ context.Context, t *team.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[t.ID] = *t
	return nil
}

func (m *memoryTeam) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.members, id)
	return nil
}

func (m *memoryTeam) FindByID(_ context.Context, id uuid.UUID) (*team.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.members[id]
	if !ok {
		return nil, team.ErrMemberNotFound
	}
	return &t, nil
}

func (m *memoryTeam) List(context.Context) ([]*team.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*team.Member, 0, len(m.members))
	for _, t := range m.members {
		out = append(out, &t)
	}
	return out, nil
}

type emptyStats struct{}

func (emptyStats) IncrCareerSaves(context.Context, int, int64) error      { return nil }
func (emptyStats) IncrScholarshipSaves(context.Context, int, int64) error { return nil }
func (emptyStats) TopCareers(context.Context, int) ([]stats.CareerCount, error) {
	return []stats.CareerCount{{CareerID: 1, Saves: 7}}, nil
}
func (emptyStats) IncrFeedbackByState(context.Context, string) error { return nil }
func (emptyStats) FeedbackByState(context.Context) (map[string]int64, error) {
	return map[string]int64{"Karnataka": 2}, nil
}

type nopFeedbackPublisher struct{}

func (nopFeedbackPublisher) PublishFeedbackEvent(context.Context, feedback.Event) error { return nil }

type nopUploader struct{}

func (nopUploader) Upload(_ context.Context, _ io.Reader, folder, publicID string) (string, error) {
	return "https://res.cloudinary.com/demo/" + folder + "/" + publicID, nil
}

func (u nopUploader) UploadRaw(ctx context.Context, r io.Reader, folder, publicID string) (string, error) {
	return u.Upload(ctx, r, folder, publicID)
}

func (nopUploader) Delete(context.Context, string) error { return nil }

type scriptedLLM struct {
	reply string
	err   error
}

func (l scriptedLLM) GenerateChatResponse(context.Context, string) (string, error) {
	return l.reply, l.err
}

func (l scriptedLLM) GenerateStructured(context.Context, string, service.ResponseSchema) (map[string]string, error) {
	if l.err != nil {
		return nil, l.err
	}
	return map[string]string{"response": l.reply}, nil
}

var errUnavailable = errors.New("upstream unavailable")
