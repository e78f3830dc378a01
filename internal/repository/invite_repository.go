package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// InviteRepository persists pending invites. Acceptance is handled by the
// external team-membership flow.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) error
	ListByTeam(ctx context.Context, teamID string) ([]domain.Invite, error)
}

type inviteRepository struct {
	pool *pgxpool.Pool
}

// NewInviteRepository constructs repository.
func NewInviteRepository(pool *pgxpool.Pool) InviteRepository {
	return &inviteRepository{pool: pool}
}

func (r *inviteRepository) Create(ctx context.Context, invite *domain.Invite) error {
	const query = `
        INSERT INTO invites (sender_id, team_id, email)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		invite.SenderID,
		invite.TeamID,
		invite.Email,
	).Scan(&invite.ID, &invite.CreatedAt)
}

func (r *inviteRepository) ListByTeam(ctx context.Context, teamID string) ([]domain.Invite, error) {
	const query = `
        SELECT id, sender_id, team_id, email, created_at
        FROM invites WHERE team_id=$1
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Invite
	for rows.Next() {
		var invite domain.Invite
		if err := rows.Scan(
			&invite.ID,
			&invite.SenderID,
			&invite.TeamID,
			&invite.Email,
			&invite.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, invite)
	}
	return result, rows.Err()
}
