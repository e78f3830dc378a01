package events

import (
	"time"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated    EventType = "ticket_created"
	EventTicketSolved     EventType = "ticket_solved"
	EventTicketMemberLeft EventType = "ticket_member_left"
	EventCommentAdded     EventType = "comment_added"
	EventCommentDeleted   EventType = "comment_deleted"
	EventInviteCreated    EventType = "invite_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TeamID   string                `json:"team_id"`
	Subject  string                `json:"subject"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketSolvedPayload payload.
type TicketSolvedPayload struct {
	SolvedBy string `json:"solved_by"`
}

// TicketMemberLeftPayload payload.
type TicketMemberLeftPayload struct {
	UserID         string `json:"user_id"`
	RemainingCount int    `json:"remaining_count"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	AuthorID    string `json:"author_id"`
	BodyPreview string `json:"body_preview"`
}

// CommentDeletedPayload payload.
type CommentDeletedPayload struct {
	CommentID string `json:"comment_id"`
}

// InviteCreatedPayload payload.
type InviteCreatedPayload struct {
	TeamID string `json:"team_id"`
	Email  string `json:"email"`
}
