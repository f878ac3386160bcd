package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/teachback-api/internal/config"
	"github.com/noah-isme/teachback-api/internal/handler"
	"github.com/noah-isme/teachback-api/internal/middleware"
	"github.com/noah-isme/teachback-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	TopicHandler        *handler.TopicHandler
	ExplanationHandler  *handler.ExplanationHandler
	GalleryHandler      *handler.GalleryHandler
	LeaderboardHandler  *handler.LeaderboardHandler
	ProfileHandler      *handler.ProfileHandler
	BadgeHandler        *handler.BadgeHandler
	ReportHandler       *handler.ReportHandler
	NotificationHandler *handler.NotificationHandler
	SeedHandler         *handler.SeedHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil.
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := app.Group("/api/v2/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	if deps.TopicHandler != nil {
		topics := app.Group("/api/v2/topics", jwtMiddleware)
		deps.TopicHandler.Register(topics)
	}

	// The gallery and leaderboard are public read surfaces. The gallery path
	// must be registered before the explanations group so it is not shadowed
	// by the :id route.
	if deps.GalleryHandler != nil {
		gallery := app.Group("/api/v2/explanations/public")
		deps.GalleryHandler.Register(gallery)
	}

	if deps.ExplanationHandler != nil {
		explanations := app.Group("/api/v2/explanations", jwtMiddleware, middleware.RateLimit("submissions", 60, time.Minute))
		deps.ExplanationHandler.Register(explanations)
	}

	if deps.LeaderboardHandler != nil {
		leaderboard := app.Group("/api/v2/leaderboard")
		deps.LeaderboardHandler.Register(leaderboard)
	}

	if deps.ProfileHandler != nil {
		profile := app.Group("/api/v2/profile", jwtMiddleware)
		deps.ProfileHandler.Register(profile)
	}

	if deps.BadgeHandler != nil {
		badges := app.Group("/api/v2/badges", jwtMiddleware)
		deps.BadgeHandler.Register(badges)
	}

	if deps.ReportHandler != nil {
		reports := app.Group("/api/v2/reports", jwtMiddleware)
		deps.ReportHandler.Register(reports)
	}

	if deps.NotificationHandler != nil {
		notifications := app.Group("/api/v2/notifications", jwtMiddleware)
		deps.NotificationHandler.Register(notifications)
	}

	if deps.SeedHandler != nil {
		seed := app.Group("/api/v2/admin/seed")
		deps.SeedHandler.Register(seed)
	}
}
