package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// TeamsHandler serves team-scoped ticket listings.
type TeamsHandler struct {
	ticketService *service.TicketService
}

// NewTeamsHandler constructs handler.
func NewTeamsHandler(ticketService *service.TicketService) *TeamsHandler {
	return &TeamsHandler{ticketService: ticketService}
}

// ListTickets GET /teams/:id/tickets.
func (h *TeamsHandler) ListTickets(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("user required")
	}
	tickets, err := h.ticketService.ListTicketsForTeam(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	page := parsePage(c.Query("page"))
	return c.JSON(ticketPage(tickets, parseSortKey(c.Query("sort")), page))
}
