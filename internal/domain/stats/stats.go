package stats

import "context"

type CareerCount struct {
	CareerID int   `json:"career_id"`
	Saves    int64 `json:"saves"`
}

// Repository keeps aggregate counters fed by the event worker.
type Repository interface {
	IncrCareerSaves(ctx context.Context, careerID int, delta int64) error
	IncrScholarshipSaves(ctx context.Context, scholarshipID int, delta int64) error
	TopCareers(ctx context.Context, limit int) ([]CareerCount, error)
	IncrFeedbackByState(ctx context.Context, state string) error
	FeedbackByState(ctx context.Context) (map[string]int64, error)
}
