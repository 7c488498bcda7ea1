package soccer

import (
	"testing"

	"github.com/automoto/kickoff/assets"
	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLateralOffset(t *testing.T) {
	tests := []struct {
		role netconfig.Role
		slot int
		want float64
	}{
		{netconfig.RoleStriker, 0, -3},
		{netconfig.RoleStriker, 1, 3},
		{netconfig.RoleStriker, 2, -9},
		{netconfig.RoleStriker, 3, 9},
		{netconfig.RoleStriker, 4, 0},
		{netconfig.RoleGoalie, 1, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, LateralOffset(tt.role, tt.slot, 6), 1e-9, "%s slot %d", tt.role, tt.slot)
	}
	assert.Zero(t, LateralOffset(netconfig.RoleDefender, 0, 0))
}

func TestFormationPlace(t *testing.T) {
	f := NewFormation(config.Formation)

	assert.Equal(t, gamemath.V(-12, -3), f.Place(netconfig.TeamBlue, netconfig.RoleStriker, 0, 28, 18))
	assert.Equal(t, gamemath.V(26, 0), f.Place(netconfig.TeamPurple, netconfig.RoleGoalie, 0, 28, 18))
	assert.Equal(t, gamemath.V(20, 4), f.Place(netconfig.TeamPurple, netconfig.RoleDefender, 1, 28, 18))
}

func TestFormationPlace_ClampsToField(t *testing.T) {
	f := NewFormation(config.Formation)

	got := f.Place(netconfig.TeamBlue, netconfig.RoleDefender, 2, 10, 2)
	assert.Equal(t, gamemath.V(-9, -1), got)

	got = f.Place(netconfig.TeamPurple, netconfig.RoleGoalie, 0, 0.5, 0.5)
	assert.Equal(t, gamemath.V(0, 0), got)
}

func TestFormationApply(t *testing.T) {
	f := NewFormation(config.Formation)

	var players []*Player
	for _, team := range []netconfig.Team{netconfig.TeamBlue, netconfig.TeamPurple} {
		for i, role := range config.Formation.Roster {
			players = append(players, NewPlayer(int(team)*10+i, team, role))
		}
	}

	f.Apply(append(players, nil), 28, 18)

	want := []gamemath.Vec2{
		gamemath.V(-26, 0),
		gamemath.V(-20, -4), gamemath.V(-20, 4),
		gamemath.V(-12, -3), gamemath.V(-12, 3),
		gamemath.V(26, 0),
		gamemath.V(20, -4), gamemath.V(20, 4),
		gamemath.V(12, -3), gamemath.V(12, 3),
	}
	for i, p := range players {
		assert.Equal(t, want[i], p.BasePos, p.Name)
		assert.Equal(t, p.BasePos, p.Pos)
		assert.InDelta(t, 0.5, p.Height, 1e-9)
	}
}

func TestLoadPresets(t *testing.T) {
	presets, err := LoadPresets(assets.Formations(), "formations/presets.toml")
	require.NoError(t, err)

	require.Contains(t, presets, "five")
	require.Contains(t, presets, "diamond")
	require.Contains(t, presets, "training")

	diamond := presets["diamond"].Apply(config.Formation)
	assert.InDelta(t, 10.0, diamond.Depth[netconfig.RoleStriker], 1e-9)
	assert.Zero(t, diamond.LateralSpacing[netconfig.RoleDefender])
	assert.Equal(t, []netconfig.Role{
		netconfig.RoleGoalie,
		netconfig.RoleDefender,
		netconfig.RoleStriker,
		netconfig.RoleStriker,
		netconfig.RoleStriker,
	}, diamond.Roster)

	// The base config is left alone.
	assert.InDelta(t, 12.0, config.Formation.Depth[netconfig.RoleStriker], 1e-9)
	assert.Equal(t, "training", presets["training"].Pitch)
}

func TestLoadPresets_Missing(t *testing.T) {
	_, err := LoadPresets(assets.Formations(), "formations/nope.toml")
	assert.Error(t, err)
}
