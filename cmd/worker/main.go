package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/career-path/adapters/event"
	"github.com/khoahotran/career-path/adapters/persistence"
	statsUC "github.com/khoahotran/career-path/internal/application/usecase/stats"
	"github.com/khoahotran/career-path/internal/config"
	"github.com/khoahotran/career-path/internal/domain/feedback"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/pkg/logger"
)

func main() {
	fmt.Println("Starting CareerPath Worker...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	processEventUC := statsUC.NewProcessEventUseCase(persistence.NewRedisStatsRepo(redisClient), appLogger)

	profileConsumer := newReader(cfg, event.TopicProfileEvents)
	defer profileConsumer.Close()
	feedbackConsumer := newReader(cfg, event.TopicFeedbackEvents)
	defer feedbackConsumer.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consume(gctx, profileConsumer, appLogger, func(ctx context.Context, payload []byte) error {
			var e profile.Event
			if err := json.Unmarshal(payload, &e); err != nil {
				return errSkip(err)
			}
			return processEventUC.ExecuteProfileEvent(ctx, e)
		})
	})
	g.Go(func() error {
		return consume(gctx, feedbackConsumer, appLogger, func(ctx context.Context, payload []byte) error {
			var e feedback.Event
			if err := json.Unmarshal(payload, &e); err != nil {
				return errSkip(err)
			}
			return processEventUC.ExecuteFeedbackEvent(ctx, e)
		})
	})

	appLogger.Info("Worker listening", zap.Strings("topics", []string{event.TopicProfileEvents, event.TopicFeedbackEvents}))
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Worker stopped with error", err)
	}
	appLogger.Info("Worker exited")
}

func newReader(cfg config.Config, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    topic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
}

type skipError struct{ err error }

func (e skipError) Error() string { return e.err.Error() }

// errSkip marks a message that can never be processed; it is committed and dropped.
func errSkip(err error) error { return skipError{err} }

// consume commits a message after handle succeeds or reports it as malformed.
func consume(ctx context.Context, r *kafka.Reader, log logger.Logger, handle func(context.Context, []byte) error) error {
	topic := r.Config().Topic
	l := log.With(zap.String("topic", topic))
	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.Error("Failed to fetch message from Kafka", err)
			continue
		}

		l.Debug("Received message", zap.String("key", string(msg.Key)), zap.Int64("offset", msg.Offset))

		if err := handle(ctx, msg.Value); err != nil {
			var skip skipError
			if !errors.As(err, &skip) {
				l.Error("Failed to process message", err, zap.Int64("offset", msg.Offset))
				continue
			}
			l.Warn("Skipping malformed message", zap.Error(err), zap.Int64("offset", msg.Offset))
		}

		if err := r.CommitMessages(ctx, msg); err != nil {
			l.Error("Failed to commit message", err)
		}
	}
}
