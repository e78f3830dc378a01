package domain

import "time"

// Team owns its member roster. Membership changes only through accepted
// invites, which happen outside this engine; here the roster is read to
// validate invite uniqueness.
type Team struct {
	ID        string
	Name      string
	Members   []TeamMember
	CreatedAt time.Time
}

// TeamMember is a roster entry. UserID stays nil until the invite behind the
// entry is accepted.
type TeamMember struct {
	ID       string
	TeamID   string
	Email    string
	Name     string
	UserID   *string
	JoinedAt time.Time
}
