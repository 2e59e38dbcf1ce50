package stats

import (
	"context"

	"github.com/khoahotran/career-path/internal/domain/catalog"
	"github.com/khoahotran/career-path/internal/domain/stats"
	"github.com/khoahotran/career-path/pkg/logger"
)

type StatsUseCase struct {
	repo    stats.Repository
	catalog catalog.Repository
	logger  logger.Logger
}

func NewStatsUseCase(repo stats.Repository, cat catalog.Repository, log logger.Logger) *StatsUseCase {
	return &StatsUseCase{repo: repo, catalog: cat, logger: log}
}

type PopularCareer struct {
	Career catalog.Career `json:"career"`
	Saves  int64          `json:"saves"`
}

// PopularCareers lists the most saved careers. Ids no longer in the catalog are skipped.
func (uc *StatsUseCase) PopularCareers(ctx context.Context, limit int) ([]PopularCareer, error) {
	counts, err := uc.repo.TopCareers(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]PopularCareer, 0, len(counts))
	for _, c := range counts {
		career, ok := uc.catalog.CareerByID(c.CareerID)
		if !ok {
			continue
		}
		out = append(out, PopularCareer{Career: career, Saves: c.Saves})
	}
	return out, nil
}

func (uc *StatsUseCase) FeedbackByState(ctx context.Context) (map[string]int64, error) {
	return uc.repo.FeedbackByState(ctx)
}
