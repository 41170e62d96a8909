package http

import (
	"github.com/agentos/backend/internal/config"
	"github.com/agentos/backend/internal/core/agents"
	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/core/services"
	"github.com/agentos/backend/internal/infrastructure/db"
	"github.com/agentos/backend/internal/infrastructure/logger"
	"github.com/agentos/backend/internal/transport/http/handlers"
	httpmw "github.com/agentos/backend/internal/transport/http/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type RouterConfig struct {
	DB     *gorm.DB
	Cache  ports.ContentCache
	Logger *logger.Logger
	Config *config.Config
}

// SetupRoutes wires repositories, services and handlers onto the app and
// returns the orchestrator so main can manage its lifecycle.
func SetupRoutes(app *fiber.App, cfg RouterConfig) ports.Orchestrator {
	taskRepo := db.NewTaskRepository(cfg.DB, cfg.Logger)
	userRepo := db.NewUserRepository(cfg.DB, cfg.Logger)
	eventRepo := db.NewTaskEventRepository(cfg.DB, cfg.Logger)

	hub := services.NewSubscriberHub()
	pool := agents.NewDefaultPool(cfg.Logger)

	authService := services.NewAuthService(services.AuthServiceConfig{
		Users:       userRepo,
		Logger:      cfg.Logger,
		TokenSecret: cfg.Config.Auth.TokenSecret,
		TokenTTL:    cfg.Config.Auth.TokenTTL,
		BcryptCost:  cfg.Config.Auth.BcryptCost,
	})

	orchestratorService := services.NewOrchestrator(services.OrchestratorConfig{
		TaskRepo:       taskRepo,
		EventRepo:      eventRepo,
		Cache:          cfg.Cache,
		AgentPool:      pool,
		Notifier:       hub,
		Logger:         cfg.Logger,
		MaxConcurrent:  cfg.Config.Orchestrator.MaxConcurrent,
		AgentTimeout:   cfg.Config.Orchestrator.AgentTimeout,
		ResultCacheTTL: cfg.Config.Orchestrator.ResultCacheTTL,
		StatusCacheTTL: cfg.Config.Orchestrator.StatusCacheTTL,
		QueueBackoff:   cfg.Config.Orchestrator.QueueBackoff,
	})

	authHandler := handlers.NewAuthHandler(authService, cfg.Logger)
	taskHandler := handlers.NewTaskHandler(orchestratorService, cfg.Logger)
	metricsHandler := handlers.NewMetricsHandler(orchestratorService, cfg.Logger)
	wsHandler := handlers.NewWSHandler(orchestratorService, hub, cfg.Logger)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	tasks := api.Group("/tasks", httpmw.UserAuth(authService))
	tasks.Post("/", taskHandler.SubmitTask)
	tasks.Get("/", taskHandler.ListTasks)
	tasks.Get("/:id", taskHandler.GetTaskStatus)
	tasks.Get("/:id/events", taskHandler.GetTaskEvents)
	tasks.Delete("/:id", taskHandler.CancelTask)

	system := api.Group("/system", httpmw.UserAuth(authService), httpmw.AdminOnly())
	system.Get("/metrics", metricsHandler.GetSystemMetrics)

	// Websocket clients authenticate with ?token= since browsers cannot set
	// headers on the upgrade request.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		user, err := authService.Validate(c.Context(), c.Query("token"))
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		c.Locals("user_id", user.ID)
		return c.Next()
	})
	app.Get("/ws", websocket.New(wsHandler.Handle))

	return orchestratorService
}
