package feedback

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/khoahotran/career-path/internal/application/service"
	"github.com/khoahotran/career-path/internal/domain/feedback"
	"github.com/khoahotran/career-path/pkg/apperror"
	"github.com/khoahotran/career-path/pkg/logger"
)

var tracer = otel.Tracer("feedback_usecase")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type FeedbackUseCase struct {
	repo      feedback.Repository
	publisher service.FeedbackEventPublisher
	logger    logger.Logger
}

func NewFeedbackUseCase(repo feedback.Repository, publisher service.FeedbackEventPublisher, log logger.Logger) *FeedbackUseCase {
	return &FeedbackUseCase{repo: repo, publisher: publisher, logger: log}
}

type SubmitInput struct {
	Name     string
	District string
	State    string
	Email    string
	Message  string
}

func (uc *FeedbackUseCase) Submit(ctx context.Context, input SubmitInput) (*feedback.Feedback, error) {
	ctx, span := tracer.Start(ctx, "FeedbackUseCase.Submit")
	defer span.End()

	f := &feedback.Feedback{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(input.Name),
		District:  strings.TrimSpace(input.District),
		State:     strings.TrimSpace(input.State),
		Email:     strings.TrimSpace(input.Email),
		Message:   strings.TrimSpace(input.Message),
		CreatedAt: time.Now().UTC(),
	}
	if err := f.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.repo.Save(ctx, f); err != nil {
		span.RecordError(err)
		return nil, err
	}

	l := uc.logger.With(zap.String("feedback_id", f.ID.String()))
	l.Info("Feedback saved")

	evt := feedback.Event{FeedbackID: f.ID, Email: f.Email, State: f.State, CreatedAt: f.CreatedAt}
	if err := uc.publisher.PublishFeedbackEvent(ctx, evt); err != nil {
		l.Error("Failed to publish feedback event", err)
	}
	return f, nil
}

func (uc *FeedbackUseCase) List(ctx context.Context, limit, offset int) ([]*feedback.Feedback, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, limit, offset)
}

func (uc *FeedbackUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	err := uc.repo.Delete(ctx, id)
	if errors.Is(err, feedback.ErrFeedbackNotFound) {
		return apperror.NewNotFound("feedback", id.String())
	}
	return err
}
