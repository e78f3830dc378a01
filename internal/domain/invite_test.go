package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateInvite(t *testing.T) {
	team := &Team{
		ID: "team1",
		Members: []TeamMember{
			{Email: "alice@example.com"},
			{Email: "bob@example.com"},
		},
	}

	t.Run("new address accepted", func(t *testing.T) {
		invite, err := ValidateInvite(team, "sender1", "carol@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "team1", invite.TeamID)
		assert.Equal(t, "sender1", invite.SenderID)
		assert.Equal(t, "carol@example.com", invite.Email)
	})

	t.Run("existing member rejected", func(t *testing.T) {
		invite, err := ValidateInvite(team, "sender1", "alice@example.com")
		assert.ErrorIs(t, err, ErrDuplicateMember)
		assert.Nil(t, invite)
	})

	t.Run("match is case sensitive", func(t *testing.T) {
		invite, err := ValidateInvite(team, "sender1", "Alice@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, invite)
	})

	t.Run("empty roster accepts anyone", func(t *testing.T) {
		empty := &Team{ID: "team2"}
		invite, err := ValidateInvite(empty, "sender1", "dave@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, invite)
	})
}
