package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogAdapter "github.com/khoahotran/career-path/adapters/catalog"
	"github.com/khoahotran/career-path/adapters/event"
	httpAdapter "github.com/khoahotran/career-path/adapters/http"
	"github.com/khoahotran/career-path/adapters/llm"
	"github.com/khoahotran/career-path/adapters/media_storage"
	"github.com/khoahotran/career-path/adapters/persistence"
	authUC "github.com/khoahotran/career-path/internal/application/usecase/auth"
	catalogUC "github.com/khoahotran/career-path/internal/application/usecase/catalog"
	chatUC "github.com/khoahotran/career-path/internal/application/usecase/chat"
	feedbackUC "github.com/khoahotran/career-path/internal/application/usecase/feedback"
	profileUC "github.com/khoahotran/career-path/internal/application/usecase/profile"
	statsUC "github.com/khoahotran/career-path/internal/application/usecase/stats"
	teamUC "github.com/khoahotran/career-path/internal/application/usecase/team"
	"github.com/khoahotran/career-path/internal/config"
	"github.com/khoahotran/career-path/internal/domain/profile"
	"github.com/khoahotran/career-path/pkg/auth"
	"github.com/khoahotran/career-path/pkg/logger"
	"github.com/khoahotran/career-path/pkg/tracing"
)

func main() {
	fmt.Println("Start CareerPath API Server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "career-path-api")
	if err != nil {
		appLogger.Fatal("Cannot init tracer", err)
	}
	defer tp.Shutdown(context.Background())

	policy, err := profile.ParseTimelineSwitchPolicy(cfg.Progress.TimelineSwitch)
	if err != nil {
		appLogger.Fatal("Invalid progress.timeline_switch", err)
	}

	// Infrastructure
	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	catalogRepo, err := catalogAdapter.NewEmbeddedRepository()
	if err != nil {
		appLogger.Fatal("Cannot load catalog data", err)
	}

	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	llmService, err := llm.NewLLMService(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM adapter", err)
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	feedbackRepo := persistence.NewPostgresFeedbackRepo(dbPool, appLogger)
	teamRepo := persistence.NewPostgresTeamRepo(dbPool, appLogger)
	profileCache := persistence.NewRedisProfileCache(redisClient, cfg.Redis.ProfileTTL)
	statsRepo := persistence.NewRedisStatsRepo(redisClient)

	// Use Cases
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, profileCache, catalogRepo, kafkaClient, policy, appLogger)
	statsUseCase := statsUC.NewStatsUseCase(statsRepo, catalogRepo, appLogger)

	handlers := httpAdapter.Handlers{
		Auth: httpAdapter.NewAuthHandler(
			authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger),
			authUC.NewRegisterUseCase(userRepo, appLogger),
			appLogger,
		),
		Catalog:  httpAdapter.NewCatalogHandler(catalogUC.NewCatalogUseCase(catalogRepo, appLogger), statsUseCase, appLogger),
		RSS:      httpAdapter.NewRSSHandler(catalogUC.NewRSSUseCase(catalogRepo, cfg.App.PublicURL, appLogger), appLogger),
		Chat:     httpAdapter.NewChatHandler(chatUC.NewChatUseCase(llmService, appLogger), appLogger),
		Profile:  httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		Feedback: httpAdapter.NewFeedbackHandler(feedbackUC.NewFeedbackUseCase(feedbackRepo, kafkaClient, appLogger), statsUseCase, appLogger),
		Team:     httpAdapter.NewTeamHandler(teamUC.NewTeamUseCase(teamRepo, uploader, appLogger), appLogger),
	}

	config.Watch(func(next config.Config) {
		if next.App.LogLevel != "" {
			appLogger.SetLevel(next.App.LogLevel)
		}
		if p, err := profile.ParseTimelineSwitchPolicy(next.Progress.TimelineSwitch); err == nil {
			profileUseCase.SetTimelineSwitchPolicy(p)
		} else {
			appLogger.Warn("Ignoring invalid progress.timeline_switch", zap.Error(err))
		}
		appLogger.Info("Config reloaded", zap.String("log_level", next.App.LogLevel), zap.String("timeline_switch", next.Progress.TimelineSwitch))
	})

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(handlers, jwtSvc, cfg.App.RequestTimeout, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	appLogger.Info("Server exited")
}
