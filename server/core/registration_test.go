package core

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/automoto/kickoff/master"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatus struct {
	players      int
	blue, purple int
}

func (f *fakeStatus) PlayerCount() int          { return f.players }
func (f *fakeStatus) MaxPlayers() int           { return 2 }
func (f *fakeStatus) Score() (blue, purple int) { return f.blue, f.purple }
func (f *fakeStatus) MatchID() string           { return "match-1" }

func newTestMaster(t *testing.T) (*master.Registry, string) {
	t.Helper()
	reg := master.NewRegistry(time.Minute)
	srv := httptest.NewServer(master.NewMux(reg))
	t.Cleanup(srv.Close)
	return reg, srv.URL
}

func TestRegistration_RegisterAndHeartbeat(t *testing.T) {
	reg, url := newTestMaster(t)
	status := &fakeStatus{players: 1}
	r := NewRegistration(RegistrationConfig{
		MasterURL: url,
		Name:      "Pitch One",
		Address:   "ws://localhost:7373",
		Version:   "1.0.0",
		Region:    "eu",
		Pitch:     "five",
	}, status)

	require.NoError(t, r.register())
	require.NotEmpty(t, r.ServerID())

	servers := reg.List(master.Filter{})
	require.Len(t, servers, 1)
	assert.Equal(t, r.ServerID(), servers[0].ID)
	assert.Equal(t, "five", servers[0].Pitch)
	assert.Equal(t, "match-1", servers[0].MatchID)
	assert.Equal(t, 2, servers[0].MaxPlayers)

	status.players, status.blue, status.purple = 2, 3, 1
	require.NoError(t, r.sendHeartbeat())

	servers = reg.List(master.Filter{})
	require.Len(t, servers, 1)
	assert.Equal(t, 2, servers[0].Players)
	assert.Equal(t, 3, servers[0].BlueScore)
	assert.Equal(t, 1, servers[0].PurpleScore)
}

func TestRegistration_ReRegistersWhenForgotten(t *testing.T) {
	reg, url := newTestMaster(t)
	r := NewRegistration(RegistrationConfig{MasterURL: url, Name: "a", Address: "ws://a"}, &fakeStatus{})

	// No id yet: the heartbeat registers.
	require.NoError(t, r.sendHeartbeat())
	first := r.ServerID()
	require.NotEmpty(t, first)

	r.serverID = "unknown"
	require.NoError(t, r.sendHeartbeat())
	assert.NotEqual(t, "unknown", r.ServerID())
	assert.Len(t, reg.List(master.Filter{}), 2)
}

func TestRegistration_RejectedRegister(t *testing.T) {
	_, url := newTestMaster(t)
	r := NewRegistration(RegistrationConfig{MasterURL: url}, &fakeStatus{})

	err := r.register()
	assert.ErrorContains(t, err, "unexpected status: 400")
	assert.Empty(t, r.ServerID())
}
