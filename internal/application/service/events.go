package service

import (
	"context"

	"github.com/khoahotran/career-path/internal/domain/feedback"
	"github.com/khoahotran/career-path/internal/domain/profile"
)

type ProfileEventPublisher interface {
	PublishProfileEvent(ctx context.Context, e profile.Event) error
}

type FeedbackEventPublisher interface {
	PublishFeedbackEvent(ctx context.Context, e feedback.Event) error
}
