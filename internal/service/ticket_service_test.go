package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

func newTicketService(tickets *MockTicketRepository, comments *MockCommentRepository, users *MockUserRepository, dispatcher events.Dispatcher) *TicketService {
	return NewTicketService(TicketDependencies{
		TicketRepo:  tickets,
		CommentRepo: comments,
		UserRepo:    users,
		Dispatcher:  dispatcher,
	})
}

func pendingTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:     "t1",
		TeamID: "team1",
		Status: domain.TicketStatusPending,
		Members: []domain.UserRef{
			{ID: "alice", Name: "Alice"},
			{ID: "bob", Name: "Bob"},
		},
		Comments: []domain.Comment{
			{ID: "c1", TicketID: "t1", Author: domain.UserRef{ID: "alice"}, Content: "first"},
		},
	}
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	assert.Error(t, err)
	domainErr := &apperrors.DomainError{}
	if assert.ErrorAs(t, err, &domainErr) {
		assert.Equal(t, code, domainErr.Code)
	}
}

func TestTicketService_MarkSolved(t *testing.T) {
	alice := &domain.User{ID: "alice", Name: "Alice"}

	t.Run("member solves pending ticket", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		dispatcher := &recordingDispatcher{}
		ticket := pendingTicket()

		tickets.On("GetByID", mock.Anything, "t1").Return(ticket, nil)
		tickets.On("Update", mock.Anything, mock.MatchedBy(func(tk *domain.Ticket) bool {
			return tk.Status == domain.TicketStatusComplete && tk.SolvedBy != nil && tk.SolvedBy.ID == "alice"
		})).Return(nil)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), dispatcher)
		got, err := svc.MarkSolved(context.Background(), "t1", alice)

		assert.NoError(t, err)
		assert.Equal(t, domain.TicketStatusComplete, got.Status)
		assert.Equal(t, "alice", got.SolvedBy.ID)
		if assert.Len(t, dispatcher.published, 1) {
			assert.Equal(t, events.EventTicketSolved, dispatcher.published[0].Type)
		}
		tickets.AssertExpectations(t)
	})

	t.Run("complete ticket cannot be re-solved", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		ticket := pendingTicket()
		ticket.Status = domain.TicketStatusComplete
		solver := domain.UserRef{ID: "bob"}
		ticket.SolvedBy = &solver

		tickets.On("GetByID", mock.Anything, "t1").Return(ticket, nil)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		_, err := svc.MarkSolved(context.Background(), "t1", alice)

		assertErrorCode(t, err, apperrors.CodeInvalidTransition)
	})

	t.Run("non-member rejected", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", mock.Anything, "t1").Return(pendingTicket(), nil)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		_, err := svc.MarkSolved(context.Background(), "t1", &domain.User{ID: "mallory"})

		assertErrorCode(t, err, apperrors.CodeUnauthorized)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", mock.Anything, "nope").Return(nil, pgx.ErrNoRows)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		_, err := svc.MarkSolved(context.Background(), "nope", alice)

		assertErrorCode(t, err, apperrors.CodeNotFound)
	})
}

func TestTicketService_Leave(t *testing.T) {
	t.Run("member leaves", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", mock.Anything, "t1").Return(pendingTicket(), nil)
		tickets.On("RemoveMember", mock.Anything, "t1", "bob").Return(nil)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		got, err := svc.Leave(context.Background(), "t1", "bob")

		assert.NoError(t, err)
		assert.Len(t, got.Members, 1)
		assert.Equal(t, "alice", got.Members[0].ID)
		tickets.AssertExpectations(t)
	})

	t.Run("last member may leave, status untouched", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		ticket := pendingTicket()
		ticket.Members = []domain.UserRef{{ID: "alice"}}
		tickets.On("GetByID", mock.Anything, "t1").Return(ticket, nil)
		tickets.On("RemoveMember", mock.Anything, "t1", "alice").Return(nil)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		got, err := svc.Leave(context.Background(), "t1", "alice")

		assert.NoError(t, err)
		assert.Empty(t, got.Members)
		assert.Equal(t, domain.TicketStatusPending, got.Status)
	})

	t.Run("cannot leave solved ticket", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		ticket := pendingTicket()
		ticket.Status = domain.TicketStatusComplete
		solver := domain.UserRef{ID: "bob"}
		ticket.SolvedBy = &solver
		tickets.On("GetByID", mock.Anything, "t1").Return(ticket, nil)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		_, err := svc.Leave(context.Background(), "t1", "alice")

		assertErrorCode(t, err, apperrors.CodeUnauthorized)
	})

	t.Run("non-member rejected", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", mock.Anything, "t1").Return(pendingTicket(), nil)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		_, err := svc.Leave(context.Background(), "t1", "mallory")

		assertErrorCode(t, err, apperrors.CodeUnauthorized)
	})
}

func TestTicketService_AddComment(t *testing.T) {
	alice := &domain.User{ID: "alice", Name: "Alice"}

	t.Run("member comments", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		comments := new(MockCommentRepository)
		dispatcher := &recordingDispatcher{}

		tickets.On("GetByID", mock.Anything, "t1").Return(pendingTicket(), nil)
		comments.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.TicketID == "t1" && c.Author.ID == "alice" && c.Content == "looking into it"
		})).Return(nil)

		svc := newTicketService(tickets, comments, new(MockUserRepository), dispatcher)
		got, err := svc.AddComment(context.Background(), "t1", alice, "  looking into it  ")

		assert.NoError(t, err)
		assert.Equal(t, "looking into it", got.Content)
		if assert.Len(t, dispatcher.published, 1) {
			assert.Equal(t, events.EventCommentAdded, dispatcher.published[0].Type)
		}
		comments.AssertExpectations(t)
	})

	t.Run("blank content rejected before any read", func(t *testing.T) {
		svc := newTicketService(new(MockTicketRepository), new(MockCommentRepository), new(MockUserRepository), nil)
		_, err := svc.AddComment(context.Background(), "t1", alice, "   ")

		assertErrorCode(t, err, apperrors.CodeInvalidInput)
	})

	t.Run("closed ticket rejects comments", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		ticket := pendingTicket()
		ticket.Status = domain.TicketStatusComplete
		tickets.On("GetByID", mock.Anything, "t1").Return(ticket, nil)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		_, err := svc.AddComment(context.Background(), "t1", alice, "too late")

		assertErrorCode(t, err, apperrors.CodeUnauthorized)
	})
}

func TestTicketService_DeleteComment(t *testing.T) {
	t.Run("author deletes own comment", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		comments := new(MockCommentRepository)
		tickets.On("GetByID", mock.Anything, "t1").Return(pendingTicket(), nil)
		comments.On("Delete", mock.Anything, "t1", "c1").Return(nil)

		svc := newTicketService(tickets, comments, new(MockUserRepository), nil)
		err := svc.DeleteComment(context.Background(), "t1", "alice", "c1")

		assert.NoError(t, err)
		comments.AssertExpectations(t)
	})

	t.Run("non-author rejected", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", mock.Anything, "t1").Return(pendingTicket(), nil)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		err := svc.DeleteComment(context.Background(), "t1", "bob", "c1")

		assertErrorCode(t, err, apperrors.CodeNotAuthor)
	})

	t.Run("unknown comment", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetByID", mock.Anything, "t1").Return(pendingTicket(), nil)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		err := svc.DeleteComment(context.Background(), "t1", "alice", "missing")

		assertErrorCode(t, err, apperrors.CodeNotFound)
	})
}

func TestTicketService_CreateTicket(t *testing.T) {
	alice := &domain.User{ID: "alice", Name: "Alice"}

	t.Run("defaults applied and creator assigned", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		users := new(MockUserRepository)
		dispatcher := &recordingDispatcher{}

		users.On("GetByID", mock.Anything, "bob").Return(&domain.User{ID: "bob", Name: "Bob"}, nil)
		tickets.On("Create", mock.Anything, mock.MatchedBy(func(tk *domain.Ticket) bool {
			return tk.Priority == domain.TicketPriorityMid &&
				tk.Status == domain.TicketStatusPending &&
				len(tk.Members) == 2 &&
				tk.Members[0].ID == "alice"
		})).Return(nil)

		svc := newTicketService(tickets, new(MockCommentRepository), users, dispatcher)
		got, err := svc.CreateTicket(context.Background(), alice, TicketCreateInput{
			TeamID:    "team1",
			Subject:   "printer on fire",
			MemberIDs: []string{"bob", "alice"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "printer on fire", got.Subject)
		if assert.Len(t, dispatcher.published, 1) {
			assert.Equal(t, events.EventTicketCreated, dispatcher.published[0].Type)
		}
		tickets.AssertExpectations(t)
	})

	t.Run("blank subject rejected", func(t *testing.T) {
		svc := newTicketService(new(MockTicketRepository), new(MockCommentRepository), new(MockUserRepository), nil)
		_, err := svc.CreateTicket(context.Background(), alice, TicketCreateInput{TeamID: "team1", Subject: "  "})

		assertErrorCode(t, err, apperrors.CodeInvalidInput)
	})

	t.Run("unknown priority rejected", func(t *testing.T) {
		svc := newTicketService(new(MockTicketRepository), new(MockCommentRepository), new(MockUserRepository), nil)
		_, err := svc.CreateTicket(context.Background(), alice, TicketCreateInput{
			TeamID:   "team1",
			Subject:  "subject",
			Priority: "Critical",
		})

		assertErrorCode(t, err, apperrors.CodeInvalidInput)
	})

	t.Run("unknown member rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetByID", mock.Anything, "ghost").Return(nil, pgx.ErrNoRows)

		svc := newTicketService(new(MockTicketRepository), new(MockCommentRepository), users, nil)
		_, err := svc.CreateTicket(context.Background(), alice, TicketCreateInput{
			TeamID:    "team1",
			Subject:   "subject",
			MemberIDs: []string{"ghost"},
		})

		assertErrorCode(t, err, apperrors.CodeNotFound)
	})
}

func TestTicketService_GetAttachment(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetAttachment", mock.Anything, "t1", "a1").
			Return(&domain.Attachment{ID: "a1", TicketID: "t1", Name: "log.txt", URL: "https://files/log.txt"}, nil)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		att, err := svc.GetAttachment(context.Background(), "t1", "a1")

		assert.NoError(t, err)
		assert.Equal(t, "log.txt", att.Name)
	})

	t.Run("missing", func(t *testing.T) {
		tickets := new(MockTicketRepository)
		tickets.On("GetAttachment", mock.Anything, "t1", "nope").Return(nil, pgx.ErrNoRows)

		svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)
		_, err := svc.GetAttachment(context.Background(), "t1", "nope")

		assertErrorCode(t, err, apperrors.CodeNotFound)
	})
}

func TestTicketService_ListTickets(t *testing.T) {
	tickets := new(MockTicketRepository)
	tickets.On("ListByMember", mock.Anything, "alice").Return([]domain.Ticket{{ID: "t1"}, {ID: "t2"}}, nil)
	tickets.On("ListByTeam", mock.Anything, "team1").Return(nil, errors.New("db down"))

	svc := newTicketService(tickets, new(MockCommentRepository), new(MockUserRepository), nil)

	got, err := svc.ListTicketsForUser(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.ListTicketsForTeam(context.Background(), "team1")
	assertErrorCode(t, err, apperrors.CodeInternal)
}
