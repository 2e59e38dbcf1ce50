package feedback

import (
	"context"
	"errors"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNameRequired     = errors.New("name is required")
	ErrMessageRequired  = errors.New("message is required")
	ErrInvalidEmail     = errors.New("email is not valid")
	ErrUnknownState     = errors.New("state is not an Indian state or union territory")
	ErrFeedbackNotFound = errors.New("feedback not found")
)

var IndianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa", "Gujarat",
	"Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala", "Madhya Pradesh",
	"Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab",
	"Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh",
	"Uttarakhand", "West Bengal", "Andaman and Nicobar Islands", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Delhi", "Jammu and Kashmir", "Ladakh",
	"Lakshadweep", "Puducherry",
}

type Feedback struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	District  string    `json:"district"`
	State     string    `json:"state"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Feedback) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(f.Message) == "" {
		return ErrMessageRequired
	}
	if f.Email != "" {
		if _, err := mail.ParseAddress(f.Email); err != nil {
			return ErrInvalidEmail
		}
	}
	if f.State != "" && !slices.Contains(IndianStates, f.State) {
		return ErrUnknownState
	}
	return nil
}

type Event struct {
	FeedbackID uuid.UUID `json:"feedback_id"`
	Email      string    `json:"email,omitempty"`
	State      string    `json:"state,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Repository interface {
	Save(ctx context.Context, f *Feedback) error
	List(ctx context.Context, limit, offset int) ([]*Feedback, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
