package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/Chirag2510/QuizApp-React-DotNet/internal/api/http/handlers"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/auth"
	"github.com/Chirag2510/QuizApp-React-DotNet/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Participants   *handlers.ParticipantsHandler
	Questions      *handlers.QuestionsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Everything under /api passes the auth
// gateway; probes and metrics do not.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	participants := api.Group("/Participants")
	participants.Get("/", cfg.Participants.List)
	participants.Post("/signup", cfg.Participants.Signup)
	participants.Post("/login", cfg.Participants.Login)
	participants.Post("/logout", cfg.Participants.Logout)
	participants.Get("/:id", cfg.Participants.Get)
	participants.Put("/:id", cfg.Participants.SubmitResult)
	participants.Delete("/:id", cfg.Participants.Delete)

	questions := api.Group("/Questions")
	questions.Get("/", cfg.Questions.Round)
	questions.Post("/GetAnswers", cfg.Questions.Answers)
	questions.Get("/:id", cfg.Questions.Get)
	questions.Put("/:id", cfg.Questions.Update)
	questions.Delete("/:id", cfg.Questions.Delete)
}
