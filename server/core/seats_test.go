package core

import (
	"testing"

	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatTable_SingleSeatServer(t *testing.T) {
	seats := NewSeatTable(1)

	s, err := seats.Join("a", "Ann", "purple", "")
	require.NoError(t, err)
	assert.Equal(t, netconfig.TeamPurple, s.Team)

	_, err = seats.Join("b", "Bob", "", "")
	assert.ErrorIs(t, err, ErrServerFull)

	_, err = seats.Join("a", "Ann", "", "")
	assert.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestSeatTable_TokenOnlyReclaimsVacantSeat(t *testing.T) {
	seats := NewSeatTable(2)
	s, err := seats.Join("a", "Ann", "blue", "")
	require.NoError(t, err)

	// The owner is still connected, so the token is treated as a fresh join.
	dup, err := seats.Join("b", "Bob", "", s.Token)
	require.NoError(t, err)
	assert.Equal(t, netconfig.TeamPurple, dup.Team)
	assert.NotEqual(t, s.Token, dup.Token)

	left := seats.Disconnect("a", 10)
	require.NotNil(t, left)
	assert.Equal(t, 10.0, left.LeftAt)
	assert.Equal(t, 1, seats.PlayerCount())

	back, err := seats.Join("a2", "", "", s.Token)
	require.NoError(t, err)
	assert.Same(t, s, back)
	assert.Equal(t, "Ann", back.PlayerName)
	assert.Equal(t, 2, seats.PlayerCount())
}

func TestSeatTable_Expire(t *testing.T) {
	seats := NewSeatTable(2)
	_, err := seats.Join("a", "", "blue", "")
	require.NoError(t, err)
	_, err = seats.Join("b", "", "purple", "")
	require.NoError(t, err)

	seats.Disconnect("a", 1)
	assert.Empty(t, seats.Expire(20, 30))
	assert.Equal(t, []netconfig.Team{netconfig.TeamBlue}, seats.Expire(31, 30))
	assert.Nil(t, seats.Team(netconfig.TeamBlue))
	assert.NotNil(t, seats.Team(netconfig.TeamPurple))

	assert.Nil(t, seats.Disconnect("nobody", 40))
}

func TestInputGate_PerClientBuckets(t *testing.T) {
	g := NewInputGate(1, 2)

	assert.True(t, g.Allow("a"))
	assert.True(t, g.Allow("a"))
	assert.False(t, g.Allow("a"))
	assert.True(t, g.Allow("b"))

	g.Forget("a")
	assert.True(t, g.Allow("a"))
}

func TestStaleSequence(t *testing.T) {
	assert.False(t, staleSequence(0, 1))
	assert.True(t, staleSequence(4, 4))
	assert.True(t, staleSequence(4, 2))
	assert.False(t, staleSequence(4, 0))
}
