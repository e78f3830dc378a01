package domain

// Action is the closed set of operations a user can attempt on a ticket.
// Using tagged variants instead of strings keeps the switch in CanAct
// exhaustive under the compiler's eye.
type Action interface {
	isAction()
}

// CommentAction asks to append a comment to the thread.
type CommentAction struct{}

// DeleteCommentAction asks to remove one comment by identifier.
type DeleteCommentAction struct {
	CommentID string
}

// LeaveAction asks to remove the user from the ticket's member set.
type LeaveAction struct{}

// MarkSolvedAction asks to complete the ticket.
type MarkSolvedAction struct{}

func (CommentAction) isAction()       {}
func (DeleteCommentAction) isAction() {}
func (LeaveAction) isAction()         {}
func (MarkSolvedAction) isAction()    {}

// CanAct decides whether userID may perform action on the ticket. It is a
// pure predicate with no side effects; callers must reject denied attempts
// with an authorization error rather than ignore them.
func CanAct(t *Ticket, userID string, action Action) bool {
	switch a := action.(type) {
	case CommentAction, MarkSolvedAction:
		return t.IsMember(userID) && t.Status != TicketStatusComplete
	case LeaveAction:
		return t.IsMember(userID) && !t.Solved()
	case DeleteCommentAction:
		// Authorship only; a member who left keeps delete rights over
		// their own comments.
		comment, ok := t.CommentByID(a.CommentID)
		return ok && comment.Author.ID == userID
	default:
		return false
	}
}
