package profile

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/career-path/internal/domain/catalog"
	"github.com/khoahotran/career-path/internal/domain/profile"
)

type memoryStore struct {
	mu       sync.Mutex
	byOwner  map[uuid.UUID]*profile.UserProfile
	creates  int
	updates  int
	finds    int
	failNext error
	// beforeWrite runs once before the next Create/Update takes effect.
	beforeWrite func(s *memoryStore)
	// findGate, when set, holds the next FindByOwner after it has read the
	// stored profile and before it returns.
	findGate *readGate
}

type readGate struct {
	loaded  chan struct{}
	release chan struct{}
}

func newReadGate() *readGate {
	return &readGate{loaded: make(chan struct{}), release: make(chan struct{})}
}

func newMemoryStore() *memoryStore {
	return &memoryStore{byOwner: make(map[uuid.UUID]*profile.UserProfile)}
}

func (s *memoryStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates + s.updates + s.finds
}

func (s *memoryStore) takeHook() {
	if h := s.beforeWrite; h != nil {
		s.beforeWrite = nil
		h(s)
	}
}

func (s *memoryStore) Create(_ context.Context, p *profile.UserProfile) (*profile.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if err := s.failNext; err != nil {
		s.failNext = nil
		return nil, err
	}
	s.takeHook()
	if _, ok := s.byOwner[p.OwnerID]; ok {
		return nil, profile.ErrProfileExists
	}
	saved := p.Clone()
	saved.ID = uuid.New()
	saved.Version = 1
	saved.CreatedAt = time.Now().UTC()
	saved.UpdatedAt = saved.CreatedAt
	s.byOwner[p.OwnerID] = saved
	return saved.Clone(), nil
}

func (s *memoryStore) Update(_ context.Context, id uuid.UUID, expectedVersion int64, patch profile.Patch) (*profile.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if err := s.failNext; err != nil {
		s.failNext = nil
		return nil, err
	}
	s.takeHook()
	for _, p := range s.byOwner {
		if p.ID != id {
			continue
		}
		if p.Version != expectedVersion {
			return nil, profile.ErrStaleVersion
		}
		patch.Apply(p)
		p.Version++
		p.UpdatedAt = time.Now().UTC()
		return p.Clone(), nil
	}
	return nil, profile.ErrProfileNotFound
}

func (s *memoryStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.finds++
	var found *profile.UserProfile
	if p, ok := s.byOwner[ownerID]; ok {
		found = p.Clone()
	}
	gate := s.findGate
	s.findGate = nil
	s.mu.Unlock()

	if gate != nil {
		close(gate.loaded)
		<-gate.release
	}
	if found == nil {
		return nil, profile.ErrProfileNotFound
	}
	return found, nil
}

func (s *memoryStore) List(_ context.Context, limit, offset int) ([]*profile.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*profile.UserProfile, 0, len(s.byOwner))
	for _, p := range s.byOwner {
		out = append(out, p.Clone())
	}
	if offset >= len(out) {
		return []*profile.UserProfile{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// bumpVersion simulates a writer on another instance.
func (s *memoryStore) bumpVersion(ownerID uuid.UUID, careerID int) {
	p := s.byOwner[ownerID]
	p.SavedCareers = append(p.SavedCareers, careerID)
	p.Version++
}

type memoryCache struct {
	mu          sync.Mutex
	items       map[uuid.UUID]*profile.UserProfile
	invalidated int
	getErr      error
	setErr      error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[uuid.UUID]*profile.UserProfile)}
}

func (c *memoryCache) Get(_ context.Context, ownerID uuid.UUID) (*profile.UserProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	p, ok := c.items[ownerID]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (c *memoryCache) Set(_ context.Context, p *profile.UserProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	if cur, ok := c.items[p.OwnerID]; ok && cur.Version > p.Version {
		return nil
	}
	c.items[p.OwnerID] = p.Clone()
	return nil
}

func (c *memoryCache) drop(ownerID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, ownerID)
}

func (c *memoryCache) Invalidate(_ context.Context, ownerID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	delete(c.items, ownerID)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []profile.Event
	err    error
}

func (p *recordingPublisher) PublishProfileEvent(_ context.Context, e profile.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []profile.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]profile.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

// stubCatalog gives every course four phases per timeline, except course 7
// whose two-month roadmap has six.
type stubCatalog struct{}

func (stubCatalog) Careers() []catalog.Career { return nil }
func (stubCatalog) CareerByID(id int) (catalog.Career, bool) {
	if id == 5 {
		return catalog.Career{ID: 5, Name: "Data Scientist"}, true
	}
	return catalog.Career{}, false
}
func (stubCatalog) Scholarships() []catalog.Scholarship { return nil }
func (stubCatalog) ScholarshipByID(int) (catalog.Scholarship, bool) { return catalog.Scholarship{}, false }
func (stubCatalog) CourseByID(int) (catalog.Course, bool) { return catalog.Course{}, false }
func (stubCatalog) Updates() []catalog.Update { return nil }
func (stubCatalog) RoadmapSteps(id int, t catalog.Timeline) (int, bool) {
	if id > 100 {
		return 0, false
	}
	if id == 7 && t == catalog.Timeline2Months {
		return 6, true
	}
	return 4, true
}

var errStoreDown = errors.New("connection refused")
