package stats

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/domain/feedback"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/internal/domain/stats"
	"github.com/khoahotran/career-path/pkg/logger"
)

type ProcessEventUseCase struct {
	repo   stats.Repository
	logger logger.Logger
}

func NewProcessEventUseCase(repo stats.Repository, log logger.Logger) *ProcessEventUseCase {
	return &ProcessEventUseCase{repo: repo, logger: log}
}

// ExecuteProfileEvent updates the popularity counters. Events that do not
// change a saved list are acknowledged without work.
func (uc *ProcessEventUseCase) ExecuteProfileEvent(ctx context.Context, e profile.Event) error {
	l := uc.logger.With(zap.String("event_type", string(e.EventType)), zap.String("owner_id", e.OwnerID.String()))

	var err error
	switch e.EventType {
	case profile.EventCareerSaved:
		err = uc.repo.IncrCareerSaves(ctx, e.ItemID, 1)
	case profile.EventCareerUnsaved:
		err = uc.repo.IncrCareerSaves(ctx, e.ItemID, -1)
	case profile.EventScholarshipSaved:
		err = uc.repo.IncrScholarshipSaves(ctx, e.ItemID, 1)
	case profile.EventScholarshipUnsaved:
		err = uc.repo.IncrScholarshipSaves(ctx, e.ItemID, -1)
	case profile.EventStepToggled, profile.EventGoalsUpdated:
		l.Debug("No counters for event")
		return nil
	default:
		l.Warn("Unknown profile event type, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("process %s for item %d: %w", e.EventType, e.ItemID, err)
	}
	l.Info("Profile event processed", zap.Int("item_id", e.ItemID))
	return nil
}

func (uc *ProcessEventUseCase) ExecuteFeedbackEvent(ctx context.Context, e feedback.Event) error {
	if err := uc.repo.IncrFeedbackByState(ctx, e.State); err != nil {
		return fmt.Errorf("process feedback %s: %w", e.FeedbackID, err)
	}
	uc.logger.Info("Feedback event processed", zap.String("feedback_id", e.FeedbackID.String()), zap.String("state", e.State))
	return nil
}
