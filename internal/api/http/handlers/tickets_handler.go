package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/dto"
	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Team == "" || strings.TrimSpace(req.Subject) == "" {
		return apperrors.NewValidationError("team and subject required", nil)
	}

	attachments := make([]domain.Attachment, 0, len(req.Attachments))
	for _, att := range req.Attachments {
		attachments = append(attachments, domain.Attachment{Name: att.Name, URL: att.URL})
	}
	input := service.TicketCreateInput{
		TeamID:      req.Team,
		Subject:     req.Subject,
		Content:     req.Content,
		Priority:    req.Priority,
		Due:         req.Due,
		MemberIDs:   req.Member,
		Attachments: attachments,
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(ticketResponse(ticket))
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("user required")
	}
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.service.AddComment(c.UserContext(), c.Params("id"), principal.User, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(commentResponse(comment))
}

// DeleteComment DELETE /tickets/:id/comments/:commentId.
func (h *TicketsHandler) DeleteComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.DeleteComment(c.UserContext(), c.Params("id"), principal.User.ID, c.Params("commentId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Solve PUT /tickets/:id/solve.
func (h *TicketsHandler) Solve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	ticket, err := h.service.MarkSolved(c.UserContext(), c.Params("id"), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// Leave PUT /tickets/:id/leave.
func (h *TicketsHandler) Leave(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	ticket, err := h.service.Leave(c.UserContext(), c.Params("id"), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// ticketPage applies the collection view to a fetched snapshot.
func ticketPage(tickets []domain.Ticket, key domain.TicketSortKey, page int) dto.TicketPageResponse {
	sorted := domain.SortTickets(tickets, key)
	slice := domain.PaginateTickets(sorted, page)

	items := make([]dto.TicketResponse, 0, len(slice))
	for i := range slice {
		items = append(items, ticketResponse(&slice[i]))
	}
	return dto.TicketPageResponse{
		Tickets:    items,
		Page:       page,
		TotalPages: domain.TotalPages(len(tickets)),
		Total:      len(tickets),
	}
}

func parseSortKey(val string) domain.TicketSortKey {
	switch key := domain.TicketSortKey(val); key {
	case domain.SortByDue, domain.SortByPriority, domain.SortByStatus, domain.SortByNewest:
		return key
	default:
		return ""
	}
}

func parsePage(val string) int {
	if val == "" {
		return 1
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 1 {
		return 1
	}
	return parsed
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	members := make([]dto.UserRefResponse, 0, len(ticket.Members))
	for _, member := range ticket.Members {
		members = append(members, userRefResponse(member))
	}
	attachments := make([]dto.AttachmentResponse, 0, len(ticket.Attachments))
	for _, att := range ticket.Attachments {
		attachments = append(attachments, dto.AttachmentResponse{ID: att.ID, Name: att.Name, URL: att.URL})
	}
	comments := make([]dto.CommentResponse, 0, len(ticket.Comments))
	for i := range ticket.Comments {
		comments = append(comments, commentResponse(&ticket.Comments[i]))
	}

	resp := dto.TicketResponse{
		ID:          ticket.ID,
		Subject:     ticket.Subject,
		Content:     ticket.Content,
		Priority:    ticket.Priority,
		Status:      ticket.Status,
		Due:         ticket.Due,
		CreatedAt:   ticket.CreatedAt,
		CreatedBy:   userRefResponse(ticket.CreatedBy),
		Member:      members,
		Team:        dto.TeamRefResponse{ID: ticket.TeamID},
		Attachments: attachments,
		Comments:    comments,
	}
	if ticket.SolvedBy != nil {
		solved := userRefResponse(*ticket.SolvedBy)
		resp.SolvedBy = &solved
	}
	return resp
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:      comment.ID,
		Content: comment.Content,
		Member:  userRefResponse(comment.Author),
	}
}

func userRefResponse(ref domain.UserRef) dto.UserRefResponse {
	return dto.UserRefResponse{ID: ref.ID, Name: ref.Name, Avatar: ref.Avatar}
}
