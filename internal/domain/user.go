package domain

import "time"

// User is the domain model for people who file and work tickets. Accounts
// are managed by the auth boundary; the engine only reads identity fields.
type User struct {
	ID           string
	Name         string
	Avatar       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Ref projects the user into the shape embedded in tickets and comments.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
