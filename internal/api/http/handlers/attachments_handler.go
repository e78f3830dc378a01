package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/service"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// AttachmentsHandler streams stored files back to the caller. The engine only
// carries {name, url}; content comes straight from the storage URL.
type AttachmentsHandler struct {
	service *service.TicketService
	client  *http.Client
}

// NewAttachmentsHandler constructs handler.
func NewAttachmentsHandler(ticketService *service.TicketService) *AttachmentsHandler {
	return &AttachmentsHandler{
		service: ticketService,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Download GET /tickets/:id/attachments/:attachmentId.
func (h *AttachmentsHandler) Download(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("user required")
	}
	att, err := h.service.GetAttachment(c.UserContext(), c.Params("id"), c.Params("attachmentId"))
	if err != nil {
		return err
	}

	// The body is streamed after the handler returns, so the request must not
	// borrow the request-scoped context; the client timeout bounds the fetch.
	req, err := http.NewRequest(http.MethodGet, att.URL, nil)
	if err != nil {
		return apperrors.MapError(err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return apperrors.NewDomainError("UPSTREAM_UNAVAILABLE", "attachment storage unreachable", http.StatusBadGateway, nil)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return apperrors.NewDomainError("UPSTREAM_UNAVAILABLE", "attachment storage error", http.StatusBadGateway,
			map[string]any{"status": resp.StatusCode})
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", att.Name))
	if ct := resp.Header.Get(fiber.HeaderContentType); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	return c.SendStream(resp.Body)
}
