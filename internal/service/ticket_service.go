package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// TicketService coordinates the ticket collaboration and lifecycle engine.
// Every mutation is a single read-modify-write against one ticket aggregate;
// concurrent writers race last-write-wins, which the underlying store accepts.
type TicketService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
	cache      TicketCache
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	UserRepo    repository.UserRepository
	Cache       TicketCache
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	TeamID      string
	Subject     string
	Content     string
	Priority    domain.TicketPriority
	Due         *time.Time
	MemberIDs   []string
	Attachments []domain.Attachment
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		users:      deps.UserRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket files a new Pending ticket with the creator assigned. The
// creator is always part of the working group even when omitted from the
// member list.
func (s *TicketService) CreateTicket(ctx context.Context, creator *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, apperrors.NewInvalidInput("subject required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMid
	}
	if !priority.Valid() {
		return nil, apperrors.NewInvalidInput("unknown priority", map[string]any{"priority": priority})
	}

	members := []domain.UserRef{creator.Ref()}
	for _, memberID := range input.MemberIDs {
		if memberID == creator.ID {
			continue
		}
		user, err := s.users.GetByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("user", map[string]any{"user_id": memberID})
			}
			return nil, apperrors.MapError(err)
		}
		members = append(members, user.Ref())
	}

	ticket := &domain.Ticket{
		TeamID:      input.TeamID,
		Subject:     subject,
		Content:     strings.TrimSpace(input.Content),
		Priority:    priority,
		Status:      domain.TicketStatusPending,
		Due:         input.Due,
		CreatedBy:   creator.Ref(),
		Members:     members,
		Attachments: input.Attachments,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  creator.ID,
		Payload: events.TicketCreatedPayload{
			TeamID:   ticket.TeamID,
			Subject:  ticket.Subject,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// GetTicket fetches a single ticket, serving from cache when possible.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	if s.cache != nil {
		if ticket, ok := s.cache.Get(ctx, ticketID); ok {
			return ticket, nil
		}
	}
	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, ticket)
	}
	return ticket, nil
}

// ListTicketsForUser returns every ticket the user is assigned to.
func (s *TicketService) ListTicketsForUser(ctx context.Context, userID string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByMember(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListTicketsForTeam returns a team's tickets.
func (s *TicketService) ListTicketsForTeam(ctx context.Context, teamID string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// MarkSolved completes the ticket and records the solver. Re-solving an
// already Complete ticket is rejected rather than treated as a no-op: the UI
// never re-offers the action, so a second attempt signals a stale client.
func (s *TicketService) MarkSolved(ctx context.Context, ticketID string, solver *domain.User) (*domain.Ticket, error) {
	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusComplete {
		return nil, apperrors.NewInvalidTransition("ticket already complete", map[string]any{"ticket_id": ticketID})
	}
	if !domain.CanAct(ticket, solver.ID, domain.MarkSolvedAction{}) {
		return nil, apperrors.NewForbidden("not a ticket member")
	}

	solvedBy := solver.Ref()
	ticket.Status = domain.TicketStatusComplete
	ticket.SolvedBy = &solvedBy
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, ticketID)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketSolved,
		TicketID: ticket.ID,
		ActorID:  solver.ID,
		Payload:  events.TicketSolvedPayload{SolvedBy: solver.ID},
	})
	return ticket, nil
}

// Leave removes the user from the ticket's working group. A ticket left by
// its last member keeps its status; reassignment is an external workflow.
func (s *TicketService) Leave(ctx context.Context, ticketID, userID string) (*domain.Ticket, error) {
	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAct(ticket, userID, domain.LeaveAction{}) {
		if ticket.Solved() {
			return nil, apperrors.NewForbidden("ticket already solved")
		}
		return nil, apperrors.NewForbidden("not a ticket member")
	}

	if err := s.tickets.RemoveMember(ctx, ticketID, userID); err != nil {
		return nil, apperrors.MapError(err)
	}
	remaining := ticket.Members[:0:0]
	for _, member := range ticket.Members {
		if member.ID != userID {
			remaining = append(remaining, member)
		}
	}
	ticket.Members = remaining

	s.invalidate(ctx, ticketID)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketMemberLeft,
		TicketID: ticket.ID,
		ActorID:  userID,
		Payload: events.TicketMemberLeftPayload{
			UserID:         userID,
			RemainingCount: len(ticket.Members),
		},
	})
	return ticket, nil
}

// AddComment appends to the ticket thread in arrival order.
func (s *TicketService) AddComment(ctx context.Context, ticketID string, author *domain.User, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewInvalidInput("comment content required", nil)
	}

	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAct(ticket, author.ID, domain.CommentAction{}) {
		if ticket.Status == domain.TicketStatusComplete {
			return nil, apperrors.NewForbidden("ticket closed")
		}
		return nil, apperrors.NewForbidden("not a ticket member")
	}

	comment := &domain.Comment{
		TicketID: ticket.ID,
		Author:   author.Ref(),
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, ticketID)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticket.ID,
		ActorID:  author.ID,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    author.ID,
			BodyPreview: bodyPreview(comment.Content, 120),
		},
	})
	return comment, nil
}

// DeleteComment removes a single comment; only its author may do so.
func (s *TicketService) DeleteComment(ctx context.Context, ticketID, requesterID, commentID string) error {
	ticket, err := s.fetchTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if _, ok := ticket.CommentByID(commentID); !ok {
		return apperrors.NewNotFound("comment", map[string]any{"comment_id": commentID})
	}
	if !domain.CanAct(ticket, requesterID, domain.DeleteCommentAction{CommentID: commentID}) {
		return apperrors.NewNotAuthor("only the comment author may delete it")
	}

	if err := s.comments.Delete(ctx, ticketID, commentID); err != nil {
		return apperrors.MapError(err)
	}
	s.invalidate(ctx, ticketID)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventCommentDeleted,
		TicketID: ticket.ID,
		ActorID:  requesterID,
		Payload:  events.CommentDeletedPayload{CommentID: commentID},
	})
	return nil
}

// GetAttachment resolves an attachment reference for pass-through download.
func (s *TicketService) GetAttachment(ctx context.Context, ticketID, attachmentID string) (*domain.Attachment, error) {
	att, err := s.tickets.GetAttachment(ctx, ticketID, attachmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("attachment", map[string]any{"attachment_id": attachmentID})
		}
		return nil, apperrors.MapError(err)
	}
	return att, nil
}

func (s *TicketService) fetchTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) invalidate(ctx context.Context, ticketID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, ticketID)
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func bodyPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
