package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aydocorp/portal-api/internal/api/http/handlers"
	"github.com/aydocorp/portal-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Sync           *handlers.SyncHandler
	Employees      *handlers.EmployeesHandler
	CareerPaths    *handlers.CareerPathsHandler
	Events         *handlers.EventsHandler
	Operations     *handlers.OperationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	// On-demand reconciliation. Public: a pass only pulls documents the org
	// has already shared, and per-domain single-flight bounds the cost.
	syncGroup := app.Group("/sync")
	syncGroup.Get("/employees", cfg.Sync.Employees)
	syncGroup.Get("/career-paths", cfg.Sync.CareerPaths)
	syncGroup.Get("/events", cfg.Sync.Events)
	syncGroup.Get("/operations", cfg.Sync.Operations)
	syncGroup.Get("/all", cfg.Sync.All)
	syncGroup.Get("/status", cfg.Sync.Status)

	employees := app.Group("/employees")
	employees.Get("/", cfg.Employees.List)
	employees.Get("/:id", cfg.Employees.Get)
	employeesAdmin := employees.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	employeesAdmin.Post("/", cfg.Employees.Create)
	employeesAdmin.Put("/:id", cfg.Employees.Update)
	employeesAdmin.Delete("/:id", cfg.Employees.Delete)

	careerPaths := app.Group("/career-paths")
	careerPaths.Get("/", cfg.CareerPaths.List)
	careerPaths.Get("/:id", cfg.CareerPaths.Get)
	careerPathsAdmin := careerPaths.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	careerPathsAdmin.Post("/", cfg.CareerPaths.Create)
	careerPathsAdmin.Put("/:id", cfg.CareerPaths.Update)
	careerPathsAdmin.Delete("/:id", cfg.CareerPaths.Delete)

	events := app.Group("/events", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	events.Get("/", cfg.Events.List)
	events.Get("/:id", cfg.Events.Get)
	events.Post("/", cfg.Events.Create)
	events.Put("/:id", cfg.Events.Update)
	events.Delete("/:id", cfg.Events.Delete)
	events.Post("/:id/attendance", cfg.Events.Attend)

	operations := app.Group("/operations", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	operations.Get("/", cfg.Operations.List)
	operations.Get("/:id", cfg.Operations.Get)
	operationsAdmin := operations.Group("", auth.RequireAdmin())
	operationsAdmin.Post("/", cfg.Operations.Create)
	operationsAdmin.Put("/:id", cfg.Operations.Update)
	operationsAdmin.Delete("/:id", cfg.Operations.Delete)
}
