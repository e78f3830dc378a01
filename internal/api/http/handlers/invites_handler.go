package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/dto"
	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// InvitesHandler validates and records team invites.
type InvitesHandler struct {
	service *service.InviteService
}

// NewInvitesHandler constructs handler.
func NewInvitesHandler(inviteService *service.InviteService) *InvitesHandler {
	return &InvitesHandler{service: inviteService}
}

// CreateInvite POST /invites. The sender is always the authenticated caller.
func (h *InvitesHandler) CreateInvite(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Team == "" {
		return apperrors.NewValidationError("team required", nil)
	}

	invite, err := h.service.CreateInvite(c.UserContext(), principal.User.ID, req.Team, req.Member)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.InviteResponse{
		ID:        invite.ID,
		Sender:    invite.SenderID,
		Member:    invite.Email,
		Team:      invite.TeamID,
		CreatedAt: invite.CreatedAt,
	})
}
