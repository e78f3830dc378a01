package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// TeamRepository manages persistence for teams and their rosters.
type TeamRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Team, error)
}

type teamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository constructs repository.
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &teamRepository{pool: pool}
}

// GetByID loads a team together with its member roster in roster order.
func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	const query = `
        SELECT id, name, created_at
        FROM teams WHERE id=$1`
	var team domain.Team
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.CreatedAt,
	); err != nil {
		return nil, err
	}

	const memberQuery = `
        SELECT tm.id, tm.team_id, tm.email, tm.user_id, COALESCE(u.name, ''), tm.joined_at
        FROM team_members tm
        LEFT JOIN users u ON u.id = tm.user_id
        WHERE tm.team_id=$1
        ORDER BY tm.joined_at ASC`
	rows, err := r.pool.Query(ctx, memberQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var member domain.TeamMember
		if err := rows.Scan(
			&member.ID,
			&member.TeamID,
			&member.Email,
			&member.UserID,
			&member.Name,
			&member.JoinedAt,
		); err != nil {
			return nil, err
		}
		team.Members = append(team.Members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) ListForUser(ctx context.Context, userID string) ([]domain.Team, error) {
	const query = `
        SELECT t.id, t.name, t.created_at
        FROM teams t
        JOIN team_members tm ON tm.team_id = t.id
        WHERE tm.user_id=$1
        ORDER BY t.created_at ASC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Team
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, team)
	}
	return result, rows.Err()
}
