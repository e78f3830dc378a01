package domain

import (
	"errors"
	"time"
)

// ErrDuplicateMember rejects invites addressed to an existing team member.
var ErrDuplicateMember = errors.New("email already belongs to a team member")

// Invite is a pending request for a user to join a team, keyed by the target
// email. Acceptance happens outside this engine.
type Invite struct {
	ID        string
	SenderID  string
	TeamID    string
	Email     string
	CreatedAt time.Time
}

// ValidateInvite checks the candidate email against the team roster and, on
// success, constructs the invite to be dispatched by the caller. The match is
// exact: addresses differing only in case are considered distinct.
func ValidateInvite(team *Team, senderID, email string) (*Invite, error) {
	for _, member := range team.Members {
		if member.Email == email {
			return nil, ErrDuplicateMember
		}
	}
	return &Invite{
		SenderID: senderID,
		TeamID:   team.ID,
		Email:    email,
	}, nil
}
