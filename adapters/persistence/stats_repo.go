package persistence

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/career-path/internal/domain/stats"
	"github.com/khoahotran/career-path/pkg/apperror"
)

const (
	keyPopularCareers      = "careers:popular"
	keyPopularScholarships = "scholarships:popular"
	keyFeedbackByState     = "feedback:by_state"
)

type redisStatsRepo struct {
	client *redis.Client
}

func NewRedisStatsRepo(client *redis.Client) stats.Repository {
	return &redisStatsRepo{client: client}
}

func (r *redisStatsRepo) IncrCareerSaves(ctx context.Context, careerID int, delta int64) error {
	return r.incr(ctx, keyPopularCareers, careerID, delta)
}

func (r *redisStatsRepo) IncrScholarshipSaves(ctx context.Context, scholarshipID int, delta int64) error {
	return r.incr(ctx, keyPopularScholarships, scholarshipID, delta)
}

// incr drops members whose score falls to zero.
func (r *redisStatsRepo) incr(ctx context.Context, key string, id int, delta int64) error {
	member := strconv.Itoa(id)
	score, err := r.client.ZIncrBy(ctx, key, float64(delta), member).Result()
	if err != nil {
		return apperror.NewInternal("failed to update popularity counter", err)
	}
	if score <= 0 {
		if err := r.client.ZRem(ctx, key, member).Err(); err != nil {
			return apperror.NewInternal("failed to prune popularity counter", err)
		}
	}
	return nil
}

func (r *redisStatsRepo) TopCareers(ctx context.Context, limit int) ([]stats.CareerCount, error) {
	if limit <= 0 {
		limit = 5
	}
	zs, err := r.client.ZRevRangeWithScores(ctx, keyPopularCareers, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, apperror.NewInternal("failed to read popular careers", err)
	}

	out := make([]stats.CareerCount, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		out = append(out, stats.CareerCount{CareerID: id, Saves: int64(z.Score)})
	}
	return out, nil
}

func (r *redisStatsRepo) IncrFeedbackByState(ctx context.Context, state string) error {
	if state == "" {
		state = "unknown"
	}
	if err := r.client.HIncrBy(ctx, keyFeedbackByState, state, 1).Err(); err != nil {
		return apperror.NewInternal("failed to update feedback counter", err)
	}
	return nil
}

func (r *redisStatsRepo) FeedbackByState(ctx context.Context) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, keyFeedbackByState).Result()
	if err != nil {
		return nil, apperror.NewInternal("failed to read feedback counters", err)
	}
	out := make(map[string]int64, len(raw))
	for state, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[state] = n
	}
	return out, nil
}
