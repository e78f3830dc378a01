package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. Complete is terminal;
// Processing has no transition inside this engine and is only set by
// administrative mutation, but it remains a valid value for sorting and display.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "Pending"
	TicketStatusProcessing TicketStatus = "Processing"
	TicketStatusComplete   TicketStatus = "Complete"
)

var statusSeverity = map[TicketStatus]int{
	TicketStatusComplete:   1,
	TicketStatusProcessing: 2,
	TicketStatusPending:    3,
}

// Severity returns the sort weight of the status; least-resolved statuses
// weigh the most.
func (s TicketStatus) Severity() int {
	return statusSeverity[s]
}

// Valid reports whether s is a known status value.
func (s TicketStatus) Valid() bool {
	_, ok := statusSeverity[s]
	return ok
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMid    TicketPriority = "Mid"
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityUrgent TicketPriority = "Urgent"
)

var prioritySeverity = map[TicketPriority]int{
	TicketPriorityLow:    1,
	TicketPriorityMid:    2,
	TicketPriorityHigh:   3,
	TicketPriorityUrgent: 4,
}

// Severity returns the sort weight of the priority.
func (p TicketPriority) Severity() int {
	return prioritySeverity[p]
}

// Valid reports whether p is a known priority value.
func (p TicketPriority) Valid() bool {
	_, ok := prioritySeverity[p]
	return ok
}

// UserRef is the projection of a user carried inside tickets and comments.
// The user record itself is owned by the identity collaborator.
type UserRef struct {
	ID     string
	Name   string
	Avatar string
}

// Attachment references a stored file; this engine never inspects contents.
type Attachment struct {
	ID       string
	TicketID string
	Name     string
	URL      string
}

// Ticket is the collaboration aggregate. CreatedBy and TeamID never change
// after creation; Members shrink only through leave; SolvedBy is set exactly
// when Status becomes Complete.
type Ticket struct {
	ID          string
	TeamID      string
	Subject     string
	Content     string
	Priority    TicketPriority
	Status      TicketStatus
	Due         *time.Time
	CreatedAt   time.Time
	CreatedBy   UserRef
	Members     []UserRef
	SolvedBy    *UserRef
	Attachments []Attachment
	Comments    []Comment
}

// IsMember reports whether the user is currently assigned to the ticket.
func (t *Ticket) IsMember(userID string) bool {
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// Solved reports whether a solver has been recorded.
func (t *Ticket) Solved() bool {
	return t.SolvedBy != nil
}

// CommentByID finds a comment in the thread.
func (t *Ticket) CommentByID(id string) (*Comment, bool) {
	for i := range t.Comments {
		if t.Comments[i].ID == id {
			return &t.Comments[i], true
		}
	}
	return nil, false
}
