package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/career-path/internal/domain/catalog"
)

type MutationKind string

const (
	MutationToggleCareer      MutationKind = "toggle_saved_career"
	MutationToggleScholarship MutationKind = "toggle_saved_scholarship"
	MutationRemoveCareer      MutationKind = "remove_saved_career"
	MutationRemoveScholarship MutationKind = "remove_saved_scholarship"
	MutationToggleStep        MutationKind = "toggle_roadmap_step"
	MutationUpdateGoals       MutationKind = "update_goals"
)

// Mutation describes a requested change. Replaying it recomputes the target
// state from the latest snapshot, so it is safe to resend after a failure.
type Mutation struct {
	Kind      MutationKind     `json:"kind"`
	ItemID    int              `json:"item_id,omitempty"`
	StepIndex *int             `json:"step_index,omitempty"`
	Timeline  catalog.Timeline `json:"timeline,omitempty"`
	Goals     *Goals           `json:"goals,omitempty"`
}

type EventType string

const (
	EventCareerSaved        EventType = "career_saved"
	EventCareerUnsaved      EventType = "career_unsaved"
	EventScholarshipSaved   EventType = "scholarship_saved"
	EventScholarshipUnsaved EventType = "scholarship_unsaved"
	EventStepToggled        EventType = "step_toggled"
	EventGoalsUpdated       EventType = "goals_updated"
)

type Event struct {
	EventType  EventType        `json:"event_type"`
	OwnerID    uuid.UUID        `json:"owner_id"`
	ProfileID  uuid.UUID        `json:"profile_id"`
	ItemID     int              `json:"item_id,omitempty"`
	StepIndex  *int             `json:"step_index,omitempty"`
	Timeline   catalog.Timeline `json:"timeline,omitempty"`
	Completed  bool             `json:"completed,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
