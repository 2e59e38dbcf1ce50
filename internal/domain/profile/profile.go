package profile

import (
	"context"
	"errors"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/career-path/internal/domain/catalog"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileExists is returned by Store.Create when the owner already has a profile.
	ErrProfileExists = errors.New("profile already exists")
	// ErrStaleVersion is returned by Store.Update when the stored version moved on.
	ErrStaleVersion = errors.New("profile version is stale")
)

type CourseProgress struct {
	Timeline       catalog.Timeline `json:"timeline"`
	CompletedSteps []int            `json:"completed_steps"`
}

type Goals struct {
	CareerGoal          string `json:"career_goal"`
	TargetYear          string `json:"target_year"`
	CurrentClass        string `json:"current_class"`
	PreferredStream     string `json:"preferred_stream"`
	MotivationalEnabled bool   `json:"motivational_enabled"`
}

type UserProfile struct {
	ID                uuid.UUID                 `json:"id"`
	OwnerID           uuid.UUID                 `json:"owner_id"`
	SavedCareers      []int                     `json:"saved_careers"`
	SavedScholarships []int                     `json:"saved_scholarships"`
	RoadmapProgress   map[string]CourseProgress `json:"roadmap_progress"`
	Goals
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserProfile returns an unsaved profile with empty collections.
func NewUserProfile(ownerID uuid.UUID) *UserProfile {
	return &UserProfile{
		OwnerID:           ownerID,
		SavedCareers:      []int{},
		SavedScholarships: []int{},
		RoadmapProgress:   map[string]CourseProgress{},
		Goals:             Goals{MotivationalEnabled: true},
	}
}

// Persisted reports whether the store has assigned an id yet.
func (p *UserProfile) Persisted() bool {
	return p.ID != uuid.Nil
}

// Normalize replaces nil collections with empty ones.
func (p *UserProfile) Normalize() {
	if p.SavedCareers == nil {
		p.SavedCareers = []int{}
	}
	if p.SavedScholarships == nil {
		p.SavedScholarships = []int{}
	}
	if p.RoadmapProgress == nil {
		p.RoadmapProgress = map[string]CourseProgress{}
	}
	for k, cp := range p.RoadmapProgress {
		if cp.CompletedSteps == nil {
			cp.CompletedSteps = []int{}
			p.RoadmapProgress[k] = cp
		}
	}
}

func (p *UserProfile) Clone() *UserProfile {
	c := *p
	c.SavedCareers = slices.Clone(p.SavedCareers)
	c.SavedScholarships = slices.Clone(p.SavedScholarships)
	c.RoadmapProgress = make(map[string]CourseProgress, len(p.RoadmapProgress))
	for k, cp := range p.RoadmapProgress {
		c.RoadmapProgress[k] = CourseProgress{Timeline: cp.Timeline, CompletedSteps: slices.Clone(cp.CompletedSteps)}
	}
	c.Normalize()
	return &c
}

func (p *UserProfile) HasSavedCareer(id int) bool {
	return slices.Contains(p.SavedCareers, id)
}

func (p *UserProfile) HasSavedScholarship(id int) bool {
	return slices.Contains(p.SavedScholarships, id)
}

// Patch is a partial update. Nil fields are left untouched by the store and
// every non-nil collection is the full new value.
type Patch struct {
	SavedCareers      *[]int
	SavedScholarships *[]int
	RoadmapProgress   map[string]CourseProgress
	Goals             *Goals
}

func (p Patch) Empty() bool {
	return p.SavedCareers == nil && p.SavedScholarships == nil && p.RoadmapProgress == nil && p.Goals == nil
}

// Apply copies the patched fields onto the profile.
func (p Patch) Apply(up *UserProfile) {
	if p.SavedCareers != nil {
		up.SavedCareers = slices.Clone(*p.SavedCareers)
	}
	if p.SavedScholarships != nil {
		up.SavedScholarships = slices.Clone(*p.SavedScholarships)
	}
	if p.RoadmapProgress != nil {
		up.RoadmapProgress = p.RoadmapProgress
	}
	if p.Goals != nil {
		up.Goals = *p.Goals
	}
	up.Normalize()
}

func toggle(ids []int, id int) ([]int, bool) {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(slices.Clone(ids), i, i+1), false
	}
	return append(slices.Clone(ids), id), true
}

// ToggleSavedCareer flips membership of id and reports whether it is now saved.
func (p *UserProfile) ToggleSavedCareer(id int) (bool, Patch) {
	next, saved := toggle(p.SavedCareers, id)
	p.SavedCareers = next
	return saved, Patch{SavedCareers: &next}
}

func (p *UserProfile) ToggleSavedScholarship(id int) (bool, Patch) {
	next, saved := toggle(p.SavedScholarships, id)
	p.SavedScholarships = next
	return saved, Patch{SavedScholarships: &next}
}

// RemoveSavedCareer reports false when id was not saved.
func (p *UserProfile) RemoveSavedCareer(id int) (bool, Patch) {
	if !p.HasSavedCareer(id) {
		return false, Patch{}
	}
	_, patch := p.ToggleSavedCareer(id)
	return true, patch
}

func (p *UserProfile) RemoveSavedScholarship(id int) (bool, Patch) {
	if !p.HasSavedScholarship(id) {
		return false, Patch{}
	}
	_, patch := p.ToggleSavedScholarship(id)
	return true, patch
}

type TimelineSwitchPolicy string

const (
	// TimelinePreserve keeps completed steps when the timeline changes.
	TimelinePreserve TimelineSwitchPolicy = "preserve"
	// TimelineReset clears completed steps when the timeline changes.
	TimelineReset TimelineSwitchPolicy = "reset"
)

func ParseTimelineSwitchPolicy(s string) (TimelineSwitchPolicy, error) {
	switch TimelineSwitchPolicy(s) {
	case "", TimelinePreserve:
		return TimelinePreserve, nil
	case TimelineReset:
		return TimelineReset, nil
	}
	return "", errors.New("timeline switch policy must be 'preserve' or 'reset'")
}

func CourseKey(courseID int) string {
	return strconv.Itoa(courseID)
}

// ToggleRoadmapStep flips stepIndex for a course and records timeline as the
// course's current timeline. totalSteps is the roadmap length for timeline;
// steps outside it are dropped when the timeline changes under the preserve
// policy. It reports whether the step is now completed.
func (p *UserProfile) ToggleRoadmapStep(courseID, stepIndex int, timeline catalog.Timeline, totalSteps int, policy TimelineSwitchPolicy) (bool, Patch) {
	key := CourseKey(courseID)
	current, ok := p.RoadmapProgress[key]
	if !ok {
		current = CourseProgress{Timeline: timeline, CompletedSteps: []int{}}
	}

	steps := slices.Clone(current.CompletedSteps)
	if current.Timeline != timeline {
		if policy == TimelineReset {
			steps = []int{}
		} else {
			steps = slices.DeleteFunc(steps, func(s int) bool { return s < 0 || s >= totalSteps })
		}
	}
	if steps == nil {
		steps = []int{}
	}

	steps, done := toggle(steps, stepIndex)

	next := make(map[string]CourseProgress, len(p.RoadmapProgress)+1)
	for k, v := range p.RoadmapProgress {
		next[k] = v
	}
	next[key] = CourseProgress{Timeline: timeline, CompletedSteps: steps}
	p.RoadmapProgress = next
	return done, Patch{RoadmapProgress: next}
}

func (p *UserProfile) UpdateGoals(g Goals) Patch {
	p.Goals = g
	return Patch{Goals: &g}
}

// StepCounter resolves the roadmap length of a course for a timeline.
type StepCounter interface {
	RoadmapSteps(courseID int, t catalog.Timeline) (int, bool)
}

func totalSteps(counter StepCounter, key string, t catalog.Timeline) int {
	if counter != nil {
		if id, err := strconv.Atoi(key); err == nil {
			if n, ok := counter.RoadmapSteps(id, t); ok && n > 0 {
				return n
			}
		}
	}
	return catalog.DefaultRoadmapSteps
}

func percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// CompletionPercentage is 0 when the course has no progress entry.
func (p *UserProfile) CompletionPercentage(courseID int, counter StepCounter) int {
	key := CourseKey(courseID)
	cp, ok := p.RoadmapProgress[key]
	if !ok {
		return 0
	}
	return percent(len(cp.CompletedSteps), totalSteps(counter, key, cp.Timeline))
}

// OverallCompletionPercentage is the unweighted mean of every tracked course.
func (p *UserProfile) OverallCompletionPercentage(counter StepCounter) int {
	if len(p.RoadmapProgress) == 0 {
		return 0
	}
	sum := 0
	for key, cp := range p.RoadmapProgress {
		sum += percent(len(cp.CompletedSteps), totalSteps(counter, key, cp.Timeline))
	}
	return int(math.Round(float64(sum) / float64(len(p.RoadmapProgress))))
}

type Store interface {
	// Create assigns the id and version 1. It returns ErrProfileExists when
	// the owner already has a profile.
	Create(ctx context.Context, p *UserProfile) (*UserProfile, error)
	// Update applies patch only if the stored version equals expectedVersion.
	Update(ctx context.Context, id uuid.UUID, expectedVersion int64, patch Patch) (*UserProfile, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*UserProfile, error)
	List(ctx context.Context, limit, offset int) ([]*UserProfile, error)
}

// Cache holds read snapshots. Get returns nil, nil on a miss.
type Cache interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*UserProfile, error)
	// Set stores p unless the cache already holds a snapshot with a higher Version.
	Set(ctx context.Context, p *UserProfile) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}
