package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

func rosterTeam() *domain.Team {
	return &domain.Team{
		ID: "team1",
		Members: []domain.TeamMember{
			{Email: "alice@example.com"},
			{Email: "bob@example.com"},
		},
	}
}

func TestInviteService_CreateInvite(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMocks    func(*MockTeamRepository, *MockInviteRepository)
		expectedError bool
		errorCode     string
	}{
		{
			name:  "new address invited",
			email: "carol@example.com",
			setupMocks: func(tr *MockTeamRepository, ir *MockInviteRepository) {
				tr.On("GetByID", mock.Anything, "team1").Return(rosterTeam(), nil)
				ir.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invite) bool {
					return inv.TeamID == "team1" && inv.Email == "carol@example.com" && inv.SenderID == "sender1"
				})).Return(nil)
			},
		},
		{
			name:  "existing member rejected",
			email: "alice@example.com",
			setupMocks: func(tr *MockTeamRepository, ir *MockInviteRepository) {
				tr.On("GetByID", mock.Anything, "team1").Return(rosterTeam(), nil)
			},
			expectedError: true,
			errorCode:     apperrors.CodeDuplicateMember,
		},
		{
			name:  "case differs, invite allowed",
			email: "Alice@example.com",
			setupMocks: func(tr *MockTeamRepository, ir *MockInviteRepository) {
				tr.On("GetByID", mock.Anything, "team1").Return(rosterTeam(), nil)
				ir.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:          "malformed email rejected before lookup",
			email:         "not-an-email",
			setupMocks:    func(*MockTeamRepository, *MockInviteRepository) {},
			expectedError: true,
			errorCode:     apperrors.CodeInvalidInput,
		},
		{
			name:  "unknown team",
			email: "carol@example.com",
			setupMocks: func(tr *MockTeamRepository, ir *MockInviteRepository) {
				tr.On("GetByID", mock.Anything, "team1").Return(nil, pgx.ErrNoRows)
			},
			expectedError: true,
			errorCode:     apperrors.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teams := new(MockTeamRepository)
			invites := new(MockInviteRepository)
			dispatcher := &recordingDispatcher{}

			tt.setupMocks(teams, invites)

			svc := NewInviteService(InviteDependencies{
				TeamRepo:   teams,
				InviteRepo: invites,
				Dispatcher: dispatcher,
			})

			invite, err := svc.CreateInvite(context.Background(), "sender1", "team1", tt.email)

			if tt.expectedError {
				assert.Nil(t, invite)
				domainErr := &apperrors.DomainError{}
				if assert.ErrorAs(t, err, &domainErr) {
					assert.Equal(t, tt.errorCode, domainErr.Code)
				}
				assert.Empty(t, dispatcher.published)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, invite.Email)
				if assert.Len(t, dispatcher.published, 1) {
					assert.Equal(t, events.EventInviteCreated, dispatcher.published[0].Type)
				}
			}

			teams.AssertExpectations(t)
			invites.AssertExpectations(t)
		})
	}
}
