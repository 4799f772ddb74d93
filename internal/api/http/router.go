package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/http/handlers"
	"github.com/spec-kit/project-board/internal/auth"
	"github.com/spec-kit/project-board/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Team           *handlers.TeamHandler
	Tasks          *handlers.TasksHandler
	StatusUpdates  *handlers.StatusUpdatesHandler
	Suggestions    *handlers.SuggestionsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role checks sit on the mutation routes
// themselves; reads are open to any authenticated member.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/activate", cfg.Auth.Activate)
	authGroup.Post("/login", cfg.Auth.Login)

	adminOnly := auth.RequireRole(domain.RoleAdmin)
	canEdit := auth.RequireRole(domain.RoleAdmin, domain.RoleMember)

	team := app.Group("/team", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	team.Get("/members", cfg.Team.List)
	team.Get("/avatar-presets", cfg.Team.AvatarPresets)
	team.Post("/members", adminOnly, cfg.Team.Invite)
	team.Put("/members/:id", adminOnly, cfg.Team.UpdateProfile)
	team.Patch("/members/:id/role", adminOnly, cfg.Team.ChangeRole)
	team.Put("/members/:id/avatar", adminOnly, cfg.Team.ChangeAvatar)
	team.Post("/members/:id/removal", adminOnly, cfg.Team.RequestRemoval)
	team.Delete("/members/:id", adminOnly, cfg.Team.Remove)

	tasks := app.Group("/tasks", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tasks.Get("/cards", cfg.Tasks.ListCards)
	tasks.Post("/", canEdit, cfg.Tasks.Create)
	tasks.Post("/move", canEdit, cfg.Tasks.Move)
	tasks.Get("/:id", cfg.Tasks.Get)
	tasks.Put("/:id", canEdit, cfg.Tasks.Update)
	tasks.Delete("/:id", adminOnly, cfg.Tasks.Delete)
	tasks.Post("/:id/comments", canEdit, cfg.Tasks.AddComment)

	updates := app.Group("/status-updates", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	updates.Get("/", cfg.StatusUpdates.List)
	updates.Post("/", canEdit, cfg.StatusUpdates.Create)

	suggestions := app.Group("/suggestions", cfg.AuthMiddleware.Handle, canEdit)
	suggestions.Post("/enhance-description", cfg.Suggestions.EnhanceDescription)
	suggestions.Post("/subtasks", cfg.Suggestions.GenerateSubtasks)
}
