package dto

import (
	"time"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// UserRefResponse mirrors the persisted user projection.
type UserRefResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// TeamRefResponse carries the owning team reference.
type TeamRefResponse struct {
	ID string `json:"_id"`
}

// AttachmentResponse carries a stored file reference.
type AttachmentResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CommentResponse mirrors a thread comment.
type CommentResponse struct {
	ID      string          `json:"_id"`
	Content string          `json:"content"`
	Member  UserRefResponse `json:"member"`
}

// TicketResponse is the interop representation of a ticket.
type TicketResponse struct {
	ID          string                `json:"_id"`
	Subject     string                `json:"subject"`
	Content     string                `json:"content"`
	Priority    domain.TicketPriority `json:"priority"`
	Status      domain.TicketStatus   `json:"status"`
	Due         *time.Time            `json:"due,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   UserRefResponse       `json:"createdBy"`
	Member      []UserRefResponse     `json:"member"`
	SolvedBy    *UserRefResponse      `json:"solvedBy,omitempty"`
	Team        TeamRefResponse       `json:"team"`
	Attachments []AttachmentResponse  `json:"attachments"`
	Comments    []CommentResponse     `json:"comments"`
}

// TicketPageResponse is one page of a sorted collection.
type TicketPageResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Total      int              `json:"total"`
}

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Team        string                    `json:"team"`
	Subject     string                    `json:"subject"`
	Content     string                    `json:"content"`
	Priority    domain.TicketPriority     `json:"priority"`
	Due         *time.Time                `json:"due"`
	Member      []string                  `json:"member"`
	Attachments []CreateAttachmentInput   `json:"attachments"`
}

// CreateAttachmentInput describes attachment metadata supplied at creation.
type CreateAttachmentInput struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}
