package domain

import (
	"sort"
	"time"
)

// TicketPageSize is the fixed number of tickets shown per page.
const TicketPageSize = 6

// TicketSortKey selects a comparator for SortTickets. The one-letter values
// match the sort selector the UI sends.
type TicketSortKey string

const (
	SortByDue      TicketSortKey = "d"
	SortByPriority TicketSortKey = "p"
	SortByStatus   TicketSortKey = "s"
	SortByNewest   TicketSortKey = "n"
)

// farFuture stands in for a missing due date so undated tickets sort last.
var farFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

func dueOrFarFuture(t *Ticket) time.Time {
	if t.Due == nil {
		return farFuture
	}
	return *t.Due
}

// SortTickets returns a stably sorted copy of the collection. An unknown key
// leaves the original order intact. The input slice is never mutated, so a
// shared snapshot can be sorted concurrently by multiple callers.
func SortTickets(tickets []Ticket, key TicketSortKey) []Ticket {
	out := make([]Ticket, len(tickets))
	copy(out, tickets)

	switch key {
	case SortByDue:
		sort.SliceStable(out, func(i, j int) bool {
			return dueOrFarFuture(&out[i]).Before(dueOrFarFuture(&out[j]))
		})
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Severity() > out[j].Priority.Severity()
		})
	case SortByStatus:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Status.Severity() > out[j].Status.Severity()
		})
	case SortByNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// PaginateTickets slices out the 1-indexed page of a sorted collection.
// Pages past the end yield an empty slice, not an error.
func PaginateTickets(tickets []Ticket, page int) []Ticket {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * TicketPageSize
	if offset >= len(tickets) {
		return []Ticket{}
	}
	end := offset + TicketPageSize
	if end > len(tickets) {
		end = len(tickets)
	}
	return tickets[offset:end]
}

// TotalPages reports how many pages the collection spans.
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + TicketPageSize - 1) / TicketPageSize
}
