package soccer

import (
	"math/rand"
	"testing"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEpisodeFixture(seed int64, maxSteps int) (*Episode, []*Player, *Ball) {
	cfg := config.Episode
	cfg.MaxEnvironmentSteps = maxSteps
	ep := NewEpisode(cfg, config.Spawn, rand.New(rand.NewSource(seed)))

	ball := NewBall(gamemath.V(0, 0), 0.5)
	token := &OwnerToken{}
	blue := newTestPlayer(1, netconfig.TeamBlue, gamemath.V(-12, 0), ball, token)
	purple := newTestPlayer(2, netconfig.TeamPurple, gamemath.V(12, 0), ball, token)
	blue.BasePos, purple.BasePos = blue.Pos, purple.Pos
	return ep, []*Player{blue, purple}, ball
}

func TestEpisodeReset_Jitter(t *testing.T) {
	ep, players, ball := newEpisodeFixture(1, 100)
	ball.Vel = gamemath.V(5, 5)
	players[0].Vel = gamemath.V(3, 0)

	for i := 0; i < 20; i++ {
		ep.Reset(players, ball)

		for _, p := range players {
			d := p.Pos.Sub(p.BasePos)
			assert.LessOrEqual(t, d.X, config.Spawn.PlayerJitterX)
			assert.GreaterOrEqual(t, d.X, -config.Spawn.PlayerJitterX)
			assert.LessOrEqual(t, d.Z, config.Spawn.PlayerJitterZ)
			assert.GreaterOrEqual(t, d.Z, -config.Spawn.PlayerJitterZ)
			assert.True(t, p.Vel.IsZero())
		}

		blueHeading := players[0].Facing.Heading()
		assert.GreaterOrEqual(t, blueHeading, 80-1e-6)
		assert.LessOrEqual(t, blueHeading, 100+1e-6)

		purpleHeading := players[1].Facing.Heading()
		assert.GreaterOrEqual(t, purpleHeading, -100-1e-6)
		assert.LessOrEqual(t, purpleHeading, -80+1e-6)

		assert.LessOrEqual(t, ball.Pos.Sub(ball.BasePos).X, config.Spawn.BallJitterX)
		assert.True(t, ball.Vel.IsZero())
		assert.Zero(t, ball.VertVel)
		assert.True(t, ball.Gravity)
		assert.InDelta(t, config.Spawn.BallHeight, ball.Height, 1e-9)
		assert.Zero(t, ep.Steps())
	}
}

func TestEpisodeReset_IsDeterministic(t *testing.T) {
	a, pa, ba := newEpisodeFixture(7, 100)
	b, pb, bb := newEpisodeFixture(7, 100)

	a.Reset(pa, ba)
	b.Reset(pb, bb)

	assert.Equal(t, pa[0].Pos, pb[0].Pos)
	assert.Equal(t, pa[1].Facing, pb[1].Facing)
	assert.Equal(t, ba.Pos, bb.Pos)
}

func TestEpisodeReset_ClampsToField(t *testing.T) {
	ep, players, ball := newEpisodeFixture(3, 100)
	ep.SetBounds(28, 18, 1)
	players[1].BasePos = gamemath.V(26, 16)

	for i := 0; i < 20; i++ {
		ep.Reset(players, ball)
		assert.LessOrEqual(t, players[1].Pos.X, 27.0)
		assert.LessOrEqual(t, players[1].Pos.Z, 17.0)
	}
}

func TestEpisodeReset_ClearsPossession(t *testing.T) {
	ep, players, ball := newEpisodeFixture(1, 100)
	players[0].Pos = gamemath.V(1, 0)
	players[0].Possession.Update(0)
	require.True(t, players[0].Holding())

	ep.Reset(players, ball)

	assert.False(t, players[0].Holding())
	assert.Nil(t, ball.HeldBy)
}

func TestEpisodeStep_Timeout(t *testing.T) {
	ep, _, _ := newEpisodeFixture(1, 3)

	assert.False(t, ep.Step())
	assert.False(t, ep.Step())
	assert.True(t, ep.Step())
}

func TestEpisodeStep_ZeroBudgetNeverEnds(t *testing.T) {
	ep, _, _ := newEpisodeFixture(1, 0)
	for i := 0; i < 1000; i++ {
		require.False(t, ep.Step())
	}
}

func TestEpisodeGoalTouched(t *testing.T) {
	ep, _, _ := newEpisodeFixture(1, 100)

	var events []string
	var scored [2]int
	ep.OnScore(func(blue, purple int) {
		events = append(events, "score")
		scored = [2]int{blue, purple}
	})
	ep.OnEnd(func(EpisodeResult) { events = append(events, "end") })

	for i := 0; i < 25; i++ {
		ep.Step()
	}
	r := ep.GoalTouched(netconfig.TeamPurple)

	assert.Equal(t, []string{"score", "end"}, events)
	assert.Equal(t, [2]int{0, 1}, scored)
	assert.Equal(t, EndGoal, r.Reason)
	assert.Equal(t, netconfig.TeamPurple, r.Scorer)
	assert.Equal(t, 1, r.Number)
	assert.Equal(t, 25, r.Steps)
	assert.InDelta(t, 0.75, r.Rewards[netconfig.TeamPurple], 1e-9)
	assert.InDelta(t, -1, r.Rewards[netconfig.TeamBlue], 1e-9)
	assert.Equal(t, 2, ep.Number)
}

func TestEpisodeGoalTouched_NoBudget(t *testing.T) {
	ep, _, _ := newEpisodeFixture(1, 0)
	ep.Step()

	r := ep.GoalTouched(netconfig.TeamBlue)
	assert.InDelta(t, 1, r.Rewards[netconfig.TeamBlue], 1e-9)
}

func TestEpisodeInterrupt(t *testing.T) {
	ep, _, _ := newEpisodeFixture(1, 2)
	ep.Step()
	ep.Step()

	r := ep.Interrupt()
	assert.Equal(t, EndTimeout, r.Reason)
	assert.Equal(t, 2, r.Steps)
	assert.Equal(t, [2]float64{}, r.Rewards)
	blue, purple := ep.Score()
	assert.Zero(t, blue+purple)
}

func TestSetDefensiveRadii(t *testing.T) {
	ep, _, _ := newEpisodeFixture(1, 0)

	ep.SetDefensiveRadii(9, 14)
	assert.InDelta(t, 14, ep.DefensiveRadius(), 1e-9)

	ep.SetDefensiveRadii(20, 14)
	assert.InDelta(t, 20, ep.DefensiveRadius(), 1e-9)
}
