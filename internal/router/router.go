package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/intervia/interview-api/internal/config"
	"github.com/intervia/interview-api/internal/handler"
	"github.com/intervia/interview-api/internal/middleware"
	"github.com/intervia/interview-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	InterviewHandler *handler.InterviewHandler
	AdaptiveHandler  *handler.AdaptiveHandler
	ReportHandler    *handler.ReportHandler
	SeedHandler      *handler.SeedHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	rateLimit := middleware.RateLimit("interview", cfg.RateLimitPerMinute, time.Minute)

	interview := app.Group("/api/v1/interview", rateLimit)
	if deps.InterviewHandler != nil {
		deps.InterviewHandler.Register(interview)
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(interview)
	}
	if deps.AdaptiveHandler != nil {
		deps.AdaptiveHandler.Register(interview)
	}

	if deps.SeedHandler != nil {
		seed := app.Group("/api/v1/seed")
		deps.SeedHandler.Register(seed)
	}
}
