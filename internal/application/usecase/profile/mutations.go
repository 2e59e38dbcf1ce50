package profile

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/career-path/internal/application/session"
	"github.com/khoahotran/career-path/internal/domain/catalog"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/pkg/apperror"
)

type ToggleOutput struct {
	Profile *profile.UserProfile
	// Saved is the membership after the toggle.
	Saved bool
}

func (uc *ProfileUseCase) ToggleSavedCareer(ctx context.Context, sess *session.Session, careerID int) (*ToggleOutput, error) {
	ctx, span := tracer.Start(ctx, "ToggleSavedCareer")
	defer span.End()
	span.SetAttributes(attribute.Int("career_id", careerID))

	var saved bool
	p, _, err := uc.mutate(ctx, sess, profile.Mutation{Kind: profile.MutationToggleCareer, ItemID: careerID},
		func(draft *profile.UserProfile) (profile.Patch, error) {
			var patch profile.Patch
			saved, patch = draft.ToggleSavedCareer(careerID)
			return patch, nil
		})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	ev := profile.EventCareerUnsaved
	if saved {
		ev = profile.EventCareerSaved
	}
	uc.publish(ctx, p, profile.Event{EventType: ev, ItemID: careerID})
	return &ToggleOutput{Profile: p, Saved: saved}, nil
}

func (uc *ProfileUseCase) ToggleSavedScholarship(ctx context.Context, sess *session.Session, scholarshipID int) (*ToggleOutput, error) {
	ctx, span := tracer.Start(ctx, "ToggleSavedScholarship")
	defer span.End()
	span.SetAttributes(attribute.Int("scholarship_id", scholarshipID))

	var saved bool
	p, _, err := uc.mutate(ctx, sess, profile.Mutation{Kind: profile.MutationToggleScholarship, ItemID: scholarshipID},
		func(draft *profile.UserProfile) (profile.Patch, error) {
			var patch profile.Patch
			saved, patch = draft.ToggleSavedScholarship(scholarshipID)
			return patch, nil
		})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	ev := profile.EventScholarshipUnsaved
	if saved {
		ev = profile.EventScholarshipSaved
	}
	uc.publish(ctx, p, profile.Event{EventType: ev, ItemID: scholarshipID})
	return &ToggleOutput{Profile: p, Saved: saved}, nil
}

// RemoveSavedCareer unsaves careerID. It never creates a profile.
func (uc *ProfileUseCase) RemoveSavedCareer(ctx context.Context, sess *session.Session, careerID int) (*profile.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "RemoveSavedCareer")
	defer span.End()

	p, written, err := uc.mutate(ctx, sess, profile.Mutation{Kind: profile.MutationRemoveCareer, ItemID: careerID},
		func(draft *profile.UserProfile) (profile.Patch, error) {
			_, patch := draft.RemoveSavedCareer(careerID)
			return patch, nil
		})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if written {
		uc.publish(ctx, p, profile.Event{EventType: profile.EventCareerUnsaved, ItemID: careerID})
	}
	return p, nil
}

func (uc *ProfileUseCase) RemoveSavedScholarship(ctx context.Context, sess *session.Session, scholarshipID int) (*profile.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "RemoveSavedScholarship")
	defer span.End()

	p, written, err := uc.mutate(ctx, sess, profile.Mutation{Kind: profile.MutationRemoveScholarship, ItemID: scholarshipID},
		func(draft *profile.UserProfile) (profile.Patch, error) {
			_, patch := draft.RemoveSavedScholarship(scholarshipID)
			return patch, nil
		})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if written {
		uc.publish(ctx, p, profile.Event{EventType: profile.EventScholarshipUnsaved, ItemID: scholarshipID})
	}
	return p, nil
}

type ToggleStepInput struct {
	CourseID  int
	StepIndex int
	Timeline  string
}

type ToggleStepOutput struct {
	Profile   *profile.UserProfile
	Progress  profile.CourseProgress
	Completed bool
	Percent   int
}

func (uc *ProfileUseCase) ToggleRoadmapStep(ctx context.Context, sess *session.Session, in ToggleStepInput) (*ToggleStepOutput, error) {
	ctx, span := tracer.Start(ctx, "ToggleRoadmapStep")
	defer span.End()
	span.SetAttributes(
		attribute.Int("course_id", in.CourseID),
		attribute.Int("step_index", in.StepIndex),
		attribute.String("timeline", in.Timeline),
	)

	if err := requireSession(sess); err != nil {
		return nil, err
	}

	tl, err := catalog.ParseTimeline(in.Timeline)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	total, ok := uc.catalog.RoadmapSteps(in.CourseID, tl)
	if !ok || total == 0 {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("course %d has no %s roadmap", in.CourseID, tl), catalog.ErrCourseNotFound)
	}
	if in.StepIndex < 0 || in.StepIndex >= total {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("step index must be between 0 and %d", total-1), nil)
	}

	step := in.StepIndex
	policy := uc.timelinePolicy()
	var completed bool
	p, _, err := uc.mutate(ctx, sess, profile.Mutation{Kind: profile.MutationToggleStep, ItemID: in.CourseID, StepIndex: &step, Timeline: tl},
		func(draft *profile.UserProfile) (profile.Patch, error) {
			var patch profile.Patch
			completed, patch = draft.ToggleRoadmapStep(in.CourseID, in.StepIndex, tl, total, policy)
			return patch, nil
		})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.publish(ctx, p, profile.Event{
		EventType: profile.EventStepToggled,
		ItemID:    in.CourseID,
		StepIndex: &step,
		Timeline:  tl,
		Completed: completed,
	})
	return &ToggleStepOutput{
		Profile:   p,
		Progress:  p.RoadmapProgress[strconv.Itoa(in.CourseID)],
		Completed: completed,
		Percent:   p.CompletionPercentage(in.CourseID, uc.catalog),
	}, nil
}

type GoalsInput struct {
	CareerGoal          string
	TargetYear          string
	CurrentClass        string
	PreferredStream     string
	MotivationalEnabled *bool
}

func (uc *ProfileUseCase) UpdateGoals(ctx context.Context, sess *session.Session, in GoalsInput) (*profile.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "UpdateGoals")
	defer span.End()

	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if err := profile.ValidateGoals(in.TargetYear, in.CurrentClass, in.PreferredStream); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	requested := profile.Goals{
		CareerGoal:      in.CareerGoal,
		TargetYear:      in.TargetYear,
		CurrentClass:    in.CurrentClass,
		PreferredStream: in.PreferredStream,
	}
	p, _, err := uc.mutate(ctx, sess, profile.Mutation{Kind: profile.MutationUpdateGoals, Goals: &requested},
		func(draft *profile.UserProfile) (profile.Patch, error) {
			g := requested
			g.MotivationalEnabled = draft.MotivationalEnabled
			if in.MotivationalEnabled != nil {
				g.MotivationalEnabled = *in.MotivationalEnabled
			}
			return draft.UpdateGoals(g), nil
		})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.publish(ctx, p, profile.Event{EventType: profile.EventGoalsUpdated})
	return p, nil
}
