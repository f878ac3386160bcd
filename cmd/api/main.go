package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/teachback-api/internal/config"
	"github.com/noah-isme/teachback-api/internal/database"
	"github.com/noah-isme/teachback-api/internal/handler"
	"github.com/noah-isme/teachback-api/internal/middleware"
	"github.com/noah-isme/teachback-api/internal/models"
	"github.com/noah-isme/teachback-api/internal/repository"
	"github.com/noah-isme/teachback-api/internal/router"
	"github.com/noah-isme/teachback-api/internal/service"
	"github.com/noah-isme/teachback-api/pkg/ai"
	"github.com/noah-isme/teachback-api/pkg/cloudinary"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL, database.PoolOptions{
		MaxOpenConns:    cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	if err := migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}()

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to nats, cross-node fan-out disabled")
		} else {
			defer natsConn.Close()
		}
	}

	var storage service.FileStorage
	media, err := cloudinary.New(cloudinary.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("cloudinary unavailable, media submissions disabled")
	} else {
		storage = media
	}

	var evaluator ai.Evaluator
	var transcriber ai.Transcriber
	var insights ai.InsightsGenerator
	if cfg.AIProvider == "openai" && cfg.OpenAIAPIKey != "" {
		openAIClient, err := ai.NewOpenAIClient(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("openai unavailable, falling back to heuristic scoring")
		} else {
			evaluator = openAIClient
			transcriber = openAIClient
			insights = openAIClient
		}
	}
	fallback := ai.NewFallbackEvaluator(nil)

	validate := validator.New(validator.WithRequiredStructEnabled())

	uow := repository.NewUnitOfWork(db)
	userRepo := repository.NewUserRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	explanationRepo := repository.NewExplanationRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, redisClient, cfg.NotificationChannel, natsConn, logger)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, logger)
	topicService := service.NewTopicService(topicRepo, logger)
	explanationService := service.NewExplanationService(uow, userRepo, topicRepo, explanationRepo, evaluator, fallback, transcriber, storage, notificationService, validate, logger)
	voteService := service.NewVoteService(voteRepo, explanationRepo, logger)
	galleryService := service.NewGalleryService(explanationRepo, logger)
	leaderboardService := service.NewLeaderboardService(userRepo, redisClient, cfg.LeaderboardCacheTTL, logger)
	profileService := service.NewProfileService(userRepo, explanationRepo, badgeRepo, logger)
	badgeService := service.NewBadgeService(badgeRepo, logger)
	reportService := service.NewReportService(reportRepo, userRepo, explanationRepo, badgeRepo, insights, logger)
	seedService := service.NewSeedService(topicRepo, badgeRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notificationService.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})

	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		TopicHandler:        handler.NewTopicHandler(topicService, logger),
		ExplanationHandler:  handler.NewExplanationHandler(explanationService, voteService, logger),
		GalleryHandler:      handler.NewGalleryHandler(galleryService, logger),
		LeaderboardHandler:  handler.NewLeaderboardHandler(leaderboardService, logger),
		ProfileHandler:      handler.NewProfileHandler(profileService, logger),
		BadgeHandler:        handler.NewBadgeHandler(badgeService, logger),
		ReportHandler:       handler.NewReportHandler(reportService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger, 30*time.Second),
		SeedHandler:         handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Msg("starting http server")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Topic{},
		&models.Explanation{},
		&models.Vote{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Report{},
		&models.Notification{},
	)
}
