package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, domain.SortByDue, parseSortKey("d"))
	assert.Equal(t, domain.SortByPriority, parseSortKey("p"))
	assert.Equal(t, domain.SortByStatus, parseSortKey("s"))
	assert.Equal(t, domain.SortByNewest, parseSortKey("n"))
	assert.Equal(t, domain.TicketSortKey(""), parseSortKey("bogus"))
	assert.Equal(t, domain.TicketSortKey(""), parseSortKey(""))
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, parsePage(""))
	assert.Equal(t, 1, parsePage("0"))
	assert.Equal(t, 1, parsePage("-3"))
	assert.Equal(t, 1, parsePage("abc"))
	assert.Equal(t, 7, parsePage("7"))
}

func TestTicketPage(t *testing.T) {
	tickets := make([]domain.Ticket, 13)
	for i := range tickets {
		tickets[i] = domain.Ticket{
			ID:       string(rune('a' + i)),
			Priority: domain.TicketPriorityLow,
		}
	}
	tickets[12].Priority = domain.TicketPriorityUrgent

	page := ticketPage(tickets, domain.SortByPriority, 1)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 13, page.Total)
	assert.Len(t, page.Tickets, 6)
	assert.Equal(t, "m", page.Tickets[0].ID, "urgent ticket sorts first")

	empty := ticketPage(tickets, domain.SortByPriority, 9)
	assert.Empty(t, empty.Tickets)
	assert.Equal(t, 3, empty.TotalPages)
}

func TestTicketResponseMapping(t *testing.T) {
	due := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	solver := domain.UserRef{ID: "bob", Name: "Bob"}
	ticket := &domain.Ticket{
		ID:        "t1",
		TeamID:    "team1",
		Subject:   "printer on fire",
		Content:   "third floor",
		Priority:  domain.TicketPriorityHigh,
		Status:    domain.TicketStatusComplete,
		Due:       &due,
		CreatedBy: domain.UserRef{ID: "alice", Name: "Alice", Avatar: "a.png"},
		Members:   []domain.UserRef{{ID: "alice", Name: "Alice"}, {ID: "bob", Name: "Bob"}},
		SolvedBy:  &solver,
		Attachments: []domain.Attachment{
			{ID: "att1", Name: "photo.jpg", URL: "https://files/photo.jpg"},
		},
		Comments: []domain.Comment{
			{ID: "c1", Content: "on it", Author: domain.UserRef{ID: "bob", Name: "Bob"}},
		},
	}

	resp := ticketResponse(ticket)

	assert.Equal(t, "t1", resp.ID)
	assert.Equal(t, "team1", resp.Team.ID)
	assert.Equal(t, "alice", resp.CreatedBy.ID)
	assert.Len(t, resp.Member, 2)
	if assert.NotNil(t, resp.SolvedBy) {
		assert.Equal(t, "bob", resp.SolvedBy.ID)
	}
	assert.Equal(t, &due, resp.Due)
	if assert.Len(t, resp.Comments, 1) {
		assert.Equal(t, "bob", resp.Comments[0].Member.ID)
	}
	if assert.Len(t, resp.Attachments, 1) {
		assert.Equal(t, "photo.jpg", resp.Attachments[0].Name)
	}
}

func TestTicketResponseOpenTicket(t *testing.T) {
	resp := ticketResponse(&domain.Ticket{ID: "t2", Status: domain.TicketStatusPending})

	assert.Nil(t, resp.SolvedBy)
	assert.Nil(t, resp.Due)
	assert.Empty(t, resp.Member)
	assert.Empty(t, resp.Comments)
}
