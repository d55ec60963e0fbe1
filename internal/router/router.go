package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-proficiency-api/internal/config"
	"github.com/noah-isme/gema-proficiency-api/internal/handler"
	"github.com/noah-isme/gema-proficiency-api/internal/middleware"
	"github.com/noah-isme/gema-proficiency-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ExamHandler        *handler.ExamHandler
	PerformanceHandler *handler.PerformanceHandler
	AttendanceHandler  *handler.AttendanceHandler
	MockExamHandler    *handler.MockExamHandler
	ActivityHandler    *handler.ActivityHandler
	HealthProbes       map[string]handler.HealthProbe
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbes))

	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = middleware.JWTProtected(cfg.JWTSecret)
	}

	v2 := app.Group("/api/v2", jwtMiddleware)

	if deps.ExamHandler != nil {
		deps.ExamHandler.Register(v2.Group("/exams"), middleware.RateLimit("exam-submit", cfg.SubmitRateLimit, time.Second))
		deps.ExamHandler.RegisterResults(v2.Group("/results"))
	}

	if deps.PerformanceHandler != nil {
		deps.PerformanceHandler.Register(v2.Group("/performance"))
	}

	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(v2.Group("/attendance"))
	}

	if deps.MockExamHandler != nil {
		deps.MockExamHandler.Register(v2.Group("/mock-exams"))
	}

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(v2.Group("/activity"))
	}
}
