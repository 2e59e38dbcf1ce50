package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/career-path/internal/domain/catalog"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/internal/domain/team"
)

// Auth DTOs
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  *string   `json:"name"`
	Role  string    `json:"role"`
}

// Profile DTOs
type ProfileDTO struct {
	ID                  *uuid.UUID                        `json:"id"`
	SavedCareers        []int                             `json:"saved_careers"`
	SavedScholarships   []int                             `json:"saved_scholarships"`
	RoadmapProgress     map[string]profile.CourseProgress `json:"roadmap_progress"`
	CareerGoal          string                            `json:"career_goal"`
	TargetYear          string                            `json:"target_year"`
	CurrentClass        string                            `json:"current_class"`
	PreferredStream     string                            `json:"preferred_stream"`
	MotivationalEnabled bool                              `json:"motivational_enabled"`
	Version             int64                             `json:"version"`
	UpdatedAt           *time.Time                        `json:"updated_at"`
}

// ToProfileDTO leaves id and updated_at null for a profile that was never saved.
func ToProfileDTO(p *profile.UserProfile) ProfileDTO {
	dto := ProfileDTO{
		SavedCareers:        p.SavedCareers,
		SavedScholarships:   p.SavedScholarships,
		RoadmapProgress:     p.RoadmapProgress,
		CareerGoal:          p.CareerGoal,
		TargetYear:          p.TargetYear,
		CurrentClass:        p.CurrentClass,
		PreferredStream:     p.PreferredStream,
		MotivationalEnabled: p.MotivationalEnabled,
		Version:             p.Version,
	}
	if p.Persisted() {
		id, updated := p.ID, p.UpdatedAt
		dto.ID = &id
		dto.UpdatedAt = &updated
	}
	return dto
}

type ToggleResponse struct {
	Saved   bool       `json:"saved"`
	Profile ProfileDTO `json:"profile"`
}

type ToggleStepRequest struct {
	Timeline string `json:"timeline" binding:"required"`
}

type ToggleStepResponse struct {
	CourseID  int                    `json:"course_id"`
	Progress  profile.CourseProgress `json:"progress"`
	Completed bool                   `json:"completed"`
	Percent   int                    `json:"percent"`
}

type CourseProgressResponse struct {
	CourseID int `json:"course_id"`
	Percent  int `json:"percent"`
}

type UpdateGoalsRequest struct {
	CareerGoal          string `json:"career_goal"`
	TargetYear          string `json:"target_year"`
	CurrentClass        string `json:"current_class"`
	PreferredStream     string `json:"preferred_stream"`
	MotivationalEnabled *bool  `json:"motivational_enabled"`
}

// Catalog DTOs
type CourseResponse struct {
	catalog.Course
	Timelines []TimelineDTO `json:"timelines"`
}

type TimelineDTO struct {
	Value catalog.Timeline `json:"value"`
	Label string           `json:"label"`
	Steps int              `json:"steps"`
}

func ToCourseResponse(c catalog.Course) CourseResponse {
	resp := CourseResponse{Course: c}
	for _, t := range []catalog.Timeline{catalog.Timeline1Month, catalog.Timeline2Months} {
		resp.Timelines = append(resp.Timelines, TimelineDTO{Value: t, Label: t.Label(), Steps: len(c.Roadmap(t))})
	}
	return resp
}

// Chat DTOs
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatResponse struct {
	Reply  string `json:"reply"`
	Failed bool   `json:"failed"`
}

// Feedback DTOs
type ContactRequest struct {
	Name     string `json:"name" binding:"required"`
	District string `json:"district"`
	State    string `json:"state"`
	Email    string `json:"email"`
	Message  string `json:"message" binding:"required"`
}

// Team DTOs
type TeamMemberRequest struct {
	Name        string `json:"name" binding:"required"`
	Role        string `json:"role" binding:"required"`
	Bio         string `json:"bio"`
	LinkedInURL string `json:"linkedin_url"`
	Email       string `json:"email"`
	SortOrder   int    `json:"sort_order"`
}

type TeamMemberDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Bio         string    `json:"bio"`
	PhotoURL    *string   `json:"photo_url"`
	LinkedInURL *string   `json:"linkedin_url"`
	SortOrder   int       `json:"sort_order"`
}

// ToTeamMemberDTO omits the contact email, which is admin-only.
func ToTeamMemberDTO(m *team.Member) TeamMemberDTO {
	return TeamMemberDTO{
		ID:          m.ID,
		Name:        m.Name,
		Role:        m.Role,
		Bio:         m.Bio,
		PhotoURL:    m.PhotoURL,
		LinkedInURL: m.LinkedInURL,
		SortOrder:   m.SortOrder,
	}
}
