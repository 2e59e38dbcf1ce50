package profile

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"

	"github.com/khoahotran/career-path/internal/application/session"
	"github.com/khoahotran/career-path/internal/domain/catalog"
)

var motivationalMessages = []string{
	"🌟 Every expert was once a beginner. Keep going!",
	"💪 Your hard work today is tomorrow's success!",
	"🚀 Dream big, work hard, stay focused!",
	"✨ Success is the sum of small efforts repeated daily!",
	"🎯 You're one step closer to your dreams today!",
	"🌈 Believe in yourself - you've got this!",
	"📚 Education is the passport to the future!",
	"⭐ Your potential is unlimited!",
}

func MotivationalMessage() string {
	return motivationalMessages[rand.IntN(len(motivationalMessages))]
}

func (uc *ProfileUseCase) CompletionPercentage(ctx context.Context, sess *session.Session, courseID int) (int, error) {
	p, err := uc.GetProfile(ctx, sess)
	if err != nil {
		return 0, err
	}
	return p.CompletionPercentage(courseID, uc.catalog), nil
}

func (uc *ProfileUseCase) OverallCompletionPercentage(ctx context.Context, sess *session.Session) (int, error) {
	p, err := uc.GetProfile(ctx, sess)
	if err != nil {
		return 0, err
	}
	return p.OverallCompletionPercentage(uc.catalog), nil
}

type CourseProgressSummary struct {
	CourseID       int              `json:"course_id"`
	CourseName     string           `json:"course_name"`
	Timeline       catalog.Timeline `json:"timeline"`
	TimelineLabel  string           `json:"timeline_label"`
	CompletedSteps []int            `json:"completed_steps"`
	TotalSteps     int              `json:"total_steps"`
	Percent        int              `json:"percent"`
}

type ProgressSummary struct {
	Courses                []CourseProgressSummary `json:"courses"`
	OverallPercent         int                     `json:"overall_percent"`
	SavedCareersCount      int                     `json:"saved_careers_count"`
	SavedScholarshipsCount int                     `json:"saved_scholarships_count"`
	MotivationalMessage    string                  `json:"motivational_message,omitempty"`
}

// ProgressSummary builds the dashboard view of the caller's profile.
func (uc *ProfileUseCase) ProgressSummary(ctx context.Context, sess *session.Session) (*ProgressSummary, error) {
	ctx, span := tracer.Start(ctx, "ProgressSummary")
	defer span.End()

	p, err := uc.GetProfile(ctx, sess)
	if err != nil {
		return nil, err
	}

	out := &ProgressSummary{
		Courses:                make([]CourseProgressSummary, 0, len(p.RoadmapProgress)),
		OverallPercent:         p.OverallCompletionPercentage(uc.catalog),
		SavedCareersCount:      len(p.SavedCareers),
		SavedScholarshipsCount: len(p.SavedScholarships),
	}
	if p.MotivationalEnabled {
		out.MotivationalMessage = MotivationalMessage()
	}

	for key, cp := range p.RoadmapProgress {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		name := fmt.Sprintf("Course %d", id)
		if c, ok := uc.catalog.CareerByID(id); ok {
			name = c.Name
		}
		total, ok := uc.catalog.RoadmapSteps(id, cp.Timeline)
		if !ok || total == 0 {
			total = catalog.DefaultRoadmapSteps
		}
		out.Courses = append(out.Courses, CourseProgressSummary{
			CourseID:       id,
			CourseName:     name,
			Timeline:       cp.Timeline,
			TimelineLabel:  cp.Timeline.Label(),
			CompletedSteps: cp.CompletedSteps,
			TotalSteps:     total,
			Percent:        p.CompletionPercentage(id, uc.catalog),
		})
	}
	sort.Slice(out.Courses, func(i, j int) bool { return out.Courses[i].CourseID < out.Courses[j].CourseID })
	return out, nil
}
