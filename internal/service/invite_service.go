package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// InviteService validates and records team invites. Delivery and acceptance
// belong to the external membership flow; this service only guards creation.
type InviteService struct {
	teams      repository.TeamRepository
	invites    repository.InviteRepository
	dispatcher events.Dispatcher
	validate   *validator.Validate
}

// InviteDependencies bundles repositories for invite service.
type InviteDependencies struct {
	TeamRepo   repository.TeamRepository
	InviteRepo repository.InviteRepository
	Dispatcher events.Dispatcher
}

// NewInviteService builds the service.
func NewInviteService(deps InviteDependencies) *InviteService {
	return &InviteService{
		teams:      deps.TeamRepo,
		invites:    deps.InviteRepo,
		dispatcher: deps.Dispatcher,
		validate:   validator.New(),
	}
}

// CreateInvite checks the candidate against the team roster and persists the
// invite. The email match is exact and case-sensitive.
func (s *InviteService) CreateInvite(ctx context.Context, senderID, teamID, email string) (*domain.Invite, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, apperrors.NewInvalidInput("malformed email", map[string]any{"email": email})
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("team", map[string]any{"team_id": teamID})
		}
		return nil, apperrors.MapError(err)
	}

	invite, err := domain.ValidateInvite(team, senderID, email)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateMember) {
			return nil, apperrors.NewDuplicateMember("already a member", map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventInviteCreated,
			ActorID: senderID,
			Payload: events.InviteCreatedPayload{
				TeamID: team.ID,
				Email:  invite.Email,
			},
		})
	}
	return invite, nil
}
