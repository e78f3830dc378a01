package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Every mutation targets a
// single ticket row plus its child tables; there are no cross-ticket writes.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListByMember(ctx context.Context, userID string) ([]domain.Ticket, error)
	ListByTeam(ctx context.Context, teamID string) ([]domain.Ticket, error)
	RemoveMember(ctx context.Context, ticketID, userID string) error
	GetAttachment(ctx context.Context, ticketID, attachmentID string) (*domain.Attachment, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `
        t.id, t.team_id, t.subject, t.content, t.priority, t.status, t.due, t.created_at,
        cb.id, cb.name, cb.avatar,
        sb.id, sb.name, sb.avatar`

const ticketFrom = `
        FROM tickets t
        JOIN users cb ON cb.id = t.created_by
        LEFT JOIN users sb ON sb.id = t.solved_by`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertTicket = `
        INSERT INTO tickets (team_id, subject, content, priority, status, due, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertTicket,
		ticket.TeamID,
		ticket.Subject,
		ticket.Content,
		ticket.Priority,
		ticket.Status,
		ticket.Due,
		ticket.CreatedBy.ID,
	).Scan(&ticket.ID, &ticket.CreatedAt); err != nil {
		return err
	}

	const insertMember = `INSERT INTO ticket_members (ticket_id, user_id) VALUES ($1,$2)`
	for _, member := range ticket.Members {
		if _, err := tx.Exec(ctx, insertMember, ticket.ID, member.ID); err != nil {
			return err
		}
	}

	const insertAttachment = `
        INSERT INTO ticket_attachments (ticket_id, name, url)
        VALUES ($1,$2,$3)
        RETURNING id`
	for i := range ticket.Attachments {
		att := &ticket.Attachments[i]
		att.TicketID = ticket.ID
		if err := tx.QueryRow(ctx, insertAttachment, ticket.ID, att.Name, att.URL).Scan(&att.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Update persists the mutable lifecycle fields. Subject, content, creator and
// team are immutable after creation and deliberately excluded.
func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET priority=$1, status=$2, due=$3, solved_by=$4, updated_at=NOW()
        WHERE id=$5`
	var solvedBy *string
	if ticket.SolvedBy != nil {
		solvedBy = &ticket.SolvedBy.ID
	}
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Priority,
		ticket.Status,
		ticket.Due,
		solvedBy,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ticketFrom + ` WHERE t.id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	ticket, err := scanTicket(row)
	if err != nil {
		return nil, err
	}
	if err := r.hydrateChildren(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) ListByMember(ctx context.Context, userID string) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ticketFrom + `
        JOIN ticket_members tm ON tm.ticket_id = t.id
        WHERE tm.user_id=$1
        ORDER BY t.created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *ticketRepository) ListByTeam(ctx context.Context, teamID string) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ticketFrom + `
        WHERE t.team_id=$1
        ORDER BY t.created_at DESC`
	return r.list(ctx, query, teamID)
}

func (r *ticketRepository) RemoveMember(ctx context.Context, ticketID, userID string) error {
	const query = `DELETE FROM ticket_members WHERE ticket_id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, ticketID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetAttachment(ctx context.Context, ticketID, attachmentID string) (*domain.Attachment, error) {
	const query = `
        SELECT id, ticket_id, name, url
        FROM ticket_attachments WHERE id=$1 AND ticket_id=$2`
	var att domain.Attachment
	if err := r.pool.QueryRow(ctx, query, attachmentID, ticketID).Scan(
		&att.ID,
		&att.TicketID,
		&att.Name,
		&att.URL,
	); err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *ticketRepository) list(ctx context.Context, query string, arg any) ([]domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.hydrateMembers(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket         domain.Ticket
		solvedID       *string
		solvedName     *string
		solvedAvatar   *string
	)
	if err := row.Scan(
		&ticket.ID,
		&ticket.TeamID,
		&ticket.Subject,
		&ticket.Content,
		&ticket.Priority,
		&ticket.Status,
		&ticket.Due,
		&ticket.CreatedAt,
		&ticket.CreatedBy.ID,
		&ticket.CreatedBy.Name,
		&ticket.CreatedBy.Avatar,
		&solvedID,
		&solvedName,
		&solvedAvatar,
	); err != nil {
		return nil, err
	}
	if solvedID != nil {
		ref := domain.UserRef{ID: *solvedID}
		if solvedName != nil {
			ref.Name = *solvedName
		}
		if solvedAvatar != nil {
			ref.Avatar = *solvedAvatar
		}
		ticket.SolvedBy = &ref
	}
	return &ticket, nil
}

// hydrateMembers loads the member sets for a batch of tickets in one query.
func (r *ticketRepository) hydrateMembers(ctx context.Context, tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	ids := make([]string, 0, len(tickets))
	index := make(map[string]*domain.Ticket, len(tickets))
	for i := range tickets {
		ids = append(ids, tickets[i].ID)
		index[tickets[i].ID] = &tickets[i]
	}

	const query = `
        SELECT tm.ticket_id, u.id, u.name, u.avatar
        FROM ticket_members tm
        JOIN users u ON u.id = tm.user_id
        WHERE tm.ticket_id = ANY($1)
        ORDER BY tm.joined_at ASC`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ticketID string
			member   domain.UserRef
		)
		if err := rows.Scan(&ticketID, &member.ID, &member.Name, &member.Avatar); err != nil {
			return err
		}
		if ticket, ok := index[ticketID]; ok {
			ticket.Members = append(ticket.Members, member)
		}
	}
	return rows.Err()
}

func (r *ticketRepository) hydrateChildren(ctx context.Context, ticket *domain.Ticket) error {
	batch := []domain.Ticket{*ticket}
	if err := r.hydrateMembers(ctx, batch); err != nil {
		return err
	}
	ticket.Members = batch[0].Members

	const attachmentQuery = `
        SELECT id, ticket_id, name, url
        FROM ticket_attachments WHERE ticket_id=$1
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, attachmentQuery, ticket.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var att domain.Attachment
		if err := rows.Scan(&att.ID, &att.TicketID, &att.Name, &att.URL); err != nil {
			return err
		}
		ticket.Attachments = append(ticket.Attachments, att)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const commentQuery = `
        SELECT c.id, c.ticket_id, c.content, c.created_at, u.id, u.name, u.avatar
        FROM ticket_comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.ticket_id=$1
        ORDER BY c.created_at ASC, c.id ASC`
	commentRows, err := r.pool.Query(ctx, commentQuery, ticket.ID)
	if err != nil {
		return err
	}
	defer commentRows.Close()
	for commentRows.Next() {
		var comment domain.Comment
		if err := commentRows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.Author.ID,
			&comment.Author.Name,
			&comment.Author.Avatar,
		); err != nil {
			return err
		}
		ticket.Comments = append(ticket.Comments, comment)
	}
	return commentRows.Err()
}
