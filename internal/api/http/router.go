package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/http/handlers"
	"github.com/spec-kit/ticket-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Teams          *handlers.TeamsHandler
	Invites        *handlers.InvitesHandler
	Attachments    *handlers.AttachmentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/:id/tickets", cfg.Users.ListTickets)

	teams := app.Group("/teams", cfg.AuthMiddleware.Handle)
	teams.Get("/:id/tickets", cfg.Teams.ListTickets)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Delete("/:id/comments/:commentId", cfg.Tickets.DeleteComment)
	tickets.Put("/:id/solve", cfg.Tickets.Solve)
	tickets.Put("/:id/leave", cfg.Tickets.Leave)
	tickets.Get("/:id/attachments/:attachmentId", cfg.Attachments.Download)

	invites := app.Group("/invites", cfg.AuthMiddleware.Handle)
	invites.Post("/", cfg.Invites.CreateInvite)
}
