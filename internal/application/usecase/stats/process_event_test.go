package stats

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/career-path/internal/domain/catalog"
	"github.com/khoahotran/career-path/internal/domain/feedback"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/internal/domain/stats"
	"github.com/khoahotran/career-path/pkg/logger"
)

type memoryStats struct {
	careers      map[int]int64
	scholarships map[int]int64
	byState      map[string]int64
	err          error
}

func newMemoryStats() *memoryStats {
	return &memoryStats{careers: map[int]int64{}, scholarships: map[int]int64{}, byState: map[string]int64{}}
}

func (m *memoryStats) IncrCareerSaves(_ context.Context, id int, d int64) error {
	m.careers[id] += d
	return m.err
}

func (m *memoryStats) IncrScholarshipSaves(_ context.Context, id int, d int64) error {
	m.scholarships[id] += d
	return m.err
}

func (m *memoryStats) TopCareers(_ context.Context, limit int) ([]stats.CareerCount, error) {
	out := make([]stats.CareerCount, 0, len(m.careers))
	for id, n := range m.careers {
		out = append(out, stats.CareerCount{CareerID: id, Saves: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Saves > out[j].Saves })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStats) IncrFeedbackByState(_ context.Context, state string) error {
	m.byState[state]++
	return m.err
}

func (m *memoryStats) FeedbackByState(context.Context) (map[string]int64, error) {
	return m.byState, nil
}

type twoCareers struct{ catalog.Repository }

func (twoCareers) CareerByID(id int) (catalog.Career, bool) {
	if id == 1 || id == 2 {
		return catalog.Career{ID: id, Name: "Career"}, true
	}
	return catalog.Career{}, false
}

func TestExecuteProfileEvent_UpdatesCounters(t *testing.T) {
	repo := newMemoryStats()
	uc := NewProcessEventUseCase(repo, logger.NewNop())
	ctx := context.Background()
	owner := uuid.New()

	events := []profile.Event{
		{EventType: profile.EventCareerSaved, OwnerID: owner, ItemID: 1},
		{EventType: profile.EventCareerSaved, OwnerID: owner, ItemID: 2},
		{EventType: profile.EventCareerUnsaved, OwnerID: owner, ItemID: 2},
		{EventType: profile.EventScholarshipSaved, OwnerID: owner, ItemID: 9},
		{EventType: profile.EventStepToggled, OwnerID: owner, ItemID: 1},
		{EventType: "something_else", OwnerID: owner},
	}
	for _, e := range events {
		require.NoError(t, uc.ExecuteProfileEvent(ctx, e))
	}

	assert.Equal(t, int64(1), repo.careers[1])
	assert.Equal(t, int64(0), repo.careers[2])
	assert.Equal(t, int64(1), repo.scholarships[9])
}

func TestExecuteProfileEvent_RepoError(t *testing.T) {
	repo := newMemoryStats()
	repo.err = errors.New("redis down")
	uc := NewProcessEventUseCase(repo, logger.NewNop())

	err := uc.ExecuteProfileEvent(context.Background(), profile.Event{EventType: profile.EventCareerSaved, ItemID: 1})
	assert.ErrorIs(t, err, repo.err)
}

func TestExecuteFeedbackEvent(t *testing.T) {
	repo := newMemoryStats()
	uc := NewProcessEventUseCase(repo, logger.NewNop())

	require.NoError(t, uc.ExecuteFeedbackEvent(context.Background(), feedback.Event{FeedbackID: uuid.New(), State: "Kerala"}))
	assert.Equal(t, int64(1), repo.byState["Kerala"])
}

func TestPopularCareers_SkipsUnknownIDs(t *testing.T) {
	repo := newMemoryStats()
	repo.careers[1] = 3
	repo.careers[2] = 5
	repo.careers[77] = 9
	uc := NewStatsUseCase(repo, twoCareers{}, logger.NewNop())

	got, err := uc.PopularCareers(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Career.ID)
	assert.Equal(t, int64(5), got[0].Saves)
}
