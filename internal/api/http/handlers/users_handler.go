package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/dto"
	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// UsersHandler manages registration, login and per-user ticket listing.
type UsersHandler struct {
	authService   *service.AuthService
	ticketService *service.TicketService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, ticketService *service.TicketService) *UsersHandler {
	return &UsersHandler{authService: authService, ticketService: ticketService}
}

// Register POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	user, token, exp, err := h.authService.RegisterUser(c.UserContext(), req.Name, req.Email, req.Avatar, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.UserRefResponse{ID: user.ID, Name: user.Name, Avatar: user.Avatar},
	})
}

// Login POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, token, exp, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.UserRefResponse{ID: user.ID, Name: user.Name, Avatar: user.Avatar},
	})
}

// ListTickets GET /users/:id/tickets. Users may only list their own tickets.
func (h *UsersHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if principal.User.ID != c.Params("id") {
		return apperrors.NewForbidden("cannot list another user's tickets")
	}

	tickets, err := h.ticketService.ListTicketsForUser(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	page := parsePage(c.Query("page"))
	return c.JSON(ticketPage(tickets, parseSortKey(c.Query("sort")), page))
}
