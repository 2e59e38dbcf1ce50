package catalog

import (
	"errors"
	"fmt"
	"time"
)

type Timeline string

const (
	Timeline1Month  Timeline = "1month"
	Timeline2Months Timeline = "2months"
)

// DefaultRoadmapSteps is the phase count every catalog roadmap currently has.
// It is only used for courses that have no roadmap entry of their own.
const DefaultRoadmapSteps = 4

var (
	ErrInvalidTimeline = errors.New("timeline must be '1month' or '2months'")
	ErrCourseNotFound  = errors.New("course not found")
)

func ParseTimeline(s string) (Timeline, error) {
	switch Timeline(s) {
	case Timeline1Month, Timeline2Months:
		return Timeline(s), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidTimeline, s)
	}
}

func (t Timeline) Label() string {
	if t == Timeline1Month {
		return "1 Month Plan"
	}
	return "2 Month Plan"
}

type Career struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    string   `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
	Subjects    []string `json:"subjects" yaml:"subjects"`
	Duration    string   `json:"duration" yaml:"duration"`
	Salary      string   `json:"salary" yaml:"salary"`
}

type Scholarship struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Amount      string `json:"amount" yaml:"amount"`
	Eligibility string `json:"eligibility" yaml:"eligibility"`
	Category    string `json:"category" yaml:"category"`
	State       string `json:"state" yaml:"state"`
	Deadline    string `json:"deadline" yaml:"deadline"`
	ApplyLink   string `json:"apply_link" yaml:"apply_link"`
	Description string `json:"description" yaml:"description"`
}

type RoadmapPhase struct {
	Week      string   `json:"week" yaml:"week"`
	Title     string   `json:"title" yaml:"title"`
	Topics    []string `json:"topics" yaml:"topics"`
	Resources string   `json:"resources" yaml:"resources"`
}

type Course struct {
	ID                  int                         `json:"id" yaml:"id"`
	Name                string                      `json:"name" yaml:"name"`
	Category            string                      `json:"category" yaml:"category"`
	Duration            string                      `json:"duration" yaml:"duration"`
	Fees                string                      `json:"fees" yaml:"fees"`
	Introduction        string                      `json:"introduction" yaml:"introduction"`
	Prerequisites       []string                    `json:"prerequisites" yaml:"prerequisites"`
	CareerOpportunities []string                    `json:"career_opportunities" yaml:"career_opportunities"`
	TopColleges         []string                    `json:"top_colleges" yaml:"top_colleges"`
	EntranceExams       []string                    `json:"entrance_exams" yaml:"entrance_exams"`
	Roadmaps            map[Timeline][]RoadmapPhase `json:"roadmaps" yaml:"roadmaps"`
	ComingSoon          bool                        `json:"coming_soon" yaml:"-"`
}

func (c Course) Roadmap(t Timeline) []RoadmapPhase {
	return c.Roadmaps[t]
}

// ComingSoonCourse is shown for career ids that have no detailed course yet.
func ComingSoonCourse(id int) Course {
	tbd := []string{"To be updated"}
	return Course{
		ID:                  id,
		Name:                "Course Coming Soon",
		Category:            "General",
		Duration:            "Coming Soon",
		Fees:                "Coming Soon",
		Introduction:        "We're adding detailed roadmaps for all courses. Please check back soon!",
		Prerequisites:       tbd,
		CareerOpportunities: tbd,
		TopColleges:         tbd,
		EntranceExams:       tbd,
		Roadmaps: map[Timeline][]RoadmapPhase{
			Timeline1Month:  {},
			Timeline2Months: {},
		},
		ComingSoon: true,
	}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Update struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Priority    Priority  `json:"priority"`
}

var (
	CareerCategories      = []string{"Engineering", "Medical", "Commerce", "Arts", "Science", "Technology", "Design", "Management"}
	ScholarshipCategories = []string{"General", "Merit-based", "Women", "SC/ST", "Science", "OBC", "Minority"}
	ScholarshipStates     = []string{"All India", "Karnataka"}
	UpdateCategories      = []string{"Scholarship", "Exam", "Education"}
)

// Repository is the read-only catalog embedded in the service.
type Repository interface {
	Careers() []Career
	CareerByID(id int) (Career, bool)
	Scholarships() []Scholarship
	ScholarshipByID(id int) (Scholarship, bool)
	CourseByID(id int) (Course, bool)
	Updates() []Update
	// RoadmapSteps reports the number of phases of a course roadmap.
	RoadmapSteps(courseID int, t Timeline) (int, bool)
}
