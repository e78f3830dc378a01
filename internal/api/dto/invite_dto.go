package dto

import "time"

// CreateInviteRequest payload; `member` is the target email, matching the
// stored representation.
type CreateInviteRequest struct {
	Member string `json:"member"`
	Team   string `json:"team"`
}

// InviteResponse mirrors a persisted invite.
type InviteResponse struct {
	ID        string    `json:"_id"`
	Sender    string    `json:"sender"`
	Member    string    `json:"member"`
	Team      string    `json:"team"`
	CreatedAt time.Time `json:"createdAt"`
}
