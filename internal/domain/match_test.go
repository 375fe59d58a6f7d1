package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatch_CanonicalizesPair(t *testing.T) {
	m, err := NewMatch(7, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, m.User1ID)
	assert.Equal(t, 7, m.User2ID)
	assert.False(t, m.IsAcceptedByUser1)
	assert.True(t, m.IsAcceptedByUser2, "initiator side should be accepted")
}

func TestNewMatch_InitiatorIsSmallerID(t *testing.T) {
	m, err := NewMatch(2, 9)
	require.NoError(t, err)

	assert.Equal(t, 2, m.User1ID)
	assert.Equal(t, 9, m.User2ID)
	assert.True(t, m.IsAcceptedByUser1)
	assert.False(t, m.IsAcceptedByUser2)
}

func TestNewMatch_Self(t *testing.T) {
	_, err := NewMatch(4, 4)
	assert.ErrorIs(t, err, ErrCannotMatchSelf)
}

func TestMatch_AcceptByAndMutual(t *testing.T) {
	m, err := NewMatch(1, 2)
	require.NoError(t, err)
	assert.False(t, m.IsMutual())

	require.NoError(t, m.AcceptBy(2))
	assert.True(t, m.IsMutual())

	assert.ErrorIs(t, m.AcceptBy(5), ErrNotMatchParticipant)
}

func TestMatch_GetOtherUserID(t *testing.T) {
	m := &Match{User1ID: 1, User2ID: 2}

	other, ok := m.GetOtherUserID(1)
	assert.True(t, ok)
	assert.Equal(t, 2, other)

	_, ok = m.GetOtherUserID(3)
	assert.False(t, ok)
	assert.False(t, m.HasUser(3))
}

func TestValidationError(t *testing.T) {
	verr := NewValidationError("username", "already taken")
	verr.Add("email", "invalid")
	verr.Add("username", "ignored")

	assert.True(t, verr.HasErrors())
	assert.Equal(t, "already taken", verr.Fields["username"])
	assert.Equal(t, "validation failed: email: invalid; username: already taken", verr.Error())

	got, ok := AsValidationError(verr)
	assert.True(t, ok)
	assert.Same(t, verr, got)
}
