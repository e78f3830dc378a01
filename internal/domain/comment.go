package domain

import "time"

// Comment belongs exclusively to its parent ticket. Thread position is
// arrival order; CreatedAt exists for serialization, not re-sorting.
type Comment struct {
	ID        string
	TicketID  string
	Author    UserRef
	Content   string
	CreatedAt time.Time
}
