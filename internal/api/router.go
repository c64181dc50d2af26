package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agencydesk/agency-platform/internal/api/handler"
	"github.com/agencydesk/agency-platform/internal/api/middleware"
	"github.com/agencydesk/agency-platform/internal/api/ws"
	"github.com/agencydesk/agency-platform/internal/core/domain"
	"github.com/agencydesk/agency-platform/internal/core/ports"
)

// Deps carries everything the router needs wired up by main.
type Deps struct {
	Mongo *mongo.Database
	Redis *redis.Client

	AuthService    ports.AuthService
	ProjectService ports.ProjectService
	TaskService    ports.TaskService
	Users          ports.UserRepository
	WSServer       *ws.Server

	CORSOrigins []string
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
	}))
	e.Use(echoprometheus.NewMiddleware("agency"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.Users)
	projectHandler := handler.NewProjectHandler(deps.ProjectService)
	taskHandler := handler.NewTaskHandler(deps.TaskService)
	authMW := middleware.Auth(deps.AuthService)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout, authMW)
	e.GET("/api/auth/me", authHandler.Me, authMW)

	// --- Team directory ---
	e.GET("/api/users", userHandler.List, authMW)

	// --- Projects ---
	projects := e.Group("/api/projects", authMW)
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:project_id", projectHandler.Get)
	projects.PUT("/:project_id", projectHandler.Update)
	projects.DELETE("/:project_id", projectHandler.Delete,
		middleware.RBAC(domain.RoleAdmin, domain.RoleManager))

	// --- Kanban board ---
	projects.POST("/:project_id/tasks", taskHandler.Create)
	projects.GET("/:project_id/tasks", taskHandler.List)
	projects.PUT("/:project_id/tasks/:task_id", taskHandler.Update)
	projects.DELETE("/:project_id/tasks/:task_id", taskHandler.Delete)

	// --- Realtime ---
	e.GET("/ws", deps.WSServer.Handle)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)   // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
