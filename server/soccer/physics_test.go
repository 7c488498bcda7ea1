package soccer

import (
	"testing"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/automoto/kickoff/shared/pitchdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDt = 1.0 / 60

func testPitch() *pitchdata.Pitch {
	return pitchdata.Default(28, 18, 7, 2, 2)
}

func TestWorld_BallRollsIntoGoal(t *testing.T) {
	w := NewWorld(testPitch(), config.Physics)
	ball := NewBall(gamemath.V(26, 0), config.Physics.BallRadius)
	ball.Vel = gamemath.V(20, 0)
	w.AddBall(ball)

	var scorer netconfig.Team
	scored := false
	for i := 0; i < 60 && !scored; i++ {
		scorer, scored = w.Step(nil, ball, testDt)
	}

	require.True(t, scored)
	assert.Equal(t, netconfig.TeamBlue, scorer, "purple defends +X")
	assert.GreaterOrEqual(t, ball.Pos.X, 28.0)
}

func TestWorld_BallBouncesOffTouchline(t *testing.T) {
	w := NewWorld(testPitch(), config.Physics)
	ball := NewBall(gamemath.V(0, 17), config.Physics.BallRadius)
	ball.Vel = gamemath.V(0, 10)
	w.AddBall(ball)

	for i := 0; i < 30; i++ {
		_, scored := w.Step(nil, ball, testDt)
		require.False(t, scored)
	}

	assert.Less(t, ball.Vel.Z, 0.0)
	assert.LessOrEqual(t, ball.Pos.Z, 18-config.Physics.BallRadius+1e-6)
}

func TestWorld_BallStoppedByEndLineBesideGoal(t *testing.T) {
	w := NewWorld(testPitch(), config.Physics)
	ball := NewBall(gamemath.V(-26, 10), config.Physics.BallRadius)
	ball.Vel = gamemath.V(-15, 0)
	w.AddBall(ball)

	for i := 0; i < 60; i++ {
		_, scored := w.Step(nil, ball, testDt)
		require.False(t, scored)
	}
	assert.GreaterOrEqual(t, ball.Pos.X, -28+config.Physics.BallRadius-1e-6)
}

func TestWorld_BallRollsToRest(t *testing.T) {
	w := NewWorld(testPitch(), config.Physics)
	ball := NewBall(gamemath.V(0, 0), 2)
	ball.Vel = gamemath.V(3, 0)
	w.AddBall(ball)

	for i := 0; i < 600; i++ {
		w.Step(nil, ball, testDt)
	}

	assert.True(t, ball.Vel.IsZero())
	assert.InDelta(t, config.Physics.BallRadius, ball.Height, 1e-9)
	assert.Zero(t, ball.VertVel)
}

func TestWorld_HeldBallIsNotIntegrated(t *testing.T) {
	w := NewWorld(testPitch(), config.Physics)
	ball := NewBall(gamemath.V(0, 0), 0.5)
	ball.Vel = gamemath.V(3, 0)
	ball.HeldBy = NewPlayer(1, netconfig.TeamBlue, netconfig.RoleStriker)
	w.AddBall(ball)

	w.Step(nil, ball, testDt)

	assert.Equal(t, gamemath.V(0, 0), ball.Pos)
	assert.InDelta(t, 0.5, ball.Height, 1e-9)
}

func TestWorld_DribbleAlongTouchlineKeepsBallInPlay(t *testing.T) {
	w := NewWorld(testPitch(), config.Physics)
	ball := NewBall(gamemath.V(0, 16.5), 0.5)
	token := &OwnerToken{}
	p := newTestPlayer(1, netconfig.TeamBlue, gamemath.V(0, 17), ball, token)
	p.Facing = gamemath.V(0, 1)
	w.AddPlayer(p)
	w.AddBall(ball)
	players := []*Player{p}

	maxZ := 18 - config.Physics.BallRadius + 1e-6
	now := 0.0
	for i := 0; i < 60; i++ {
		p.Possession.Update(now)
		p.Possession.PhysicsUpdate(now, testDt)
		w.Step(players, ball, testDt)
		now += testDt
	}
	require.True(t, p.Holding())
	assert.LessOrEqual(t, ball.Pos.Z, maxZ, "held ball pushed through the touchline")

	p.Possession.ForceRelease(gamemath.V(0, -5), 0)
	p.Pos = gamemath.V(10, 0)
	for i := 0; i < 600; i++ {
		w.Step(players, ball, testDt)
	}

	assert.Less(t, ball.Pos.Z, 12.0, "released ball rolls back onto the pitch")
	assert.True(t, ball.Vel.IsZero())
}

func TestWorld_PlaceBallSkipsWalls(t *testing.T) {
	w := NewWorld(testPitch(), config.Physics)
	ball := NewBall(gamemath.V(-29, 0), 0.5)
	w.AddBall(ball)

	// Back from inside the blue goal to a spot the goal's side wall would
	// block if the held ball were carried there.
	ball.Pos = gamemath.V(-26, 10)
	ball.HeldBy = NewPlayer(1, netconfig.TeamBlue, netconfig.RoleStriker)
	w.PlaceBall(ball)
	_, scored := w.Step(nil, ball, testDt)

	assert.False(t, scored)
	assert.Equal(t, gamemath.V(-26, 10), ball.Pos)
}

func TestWorld_PlayerStopsAtWall(t *testing.T) {
	w := NewWorld(testPitch(), config.Physics)
	p := NewPlayer(1, netconfig.TeamBlue, netconfig.RoleStriker)
	p.Pos = gamemath.V(0, 16)
	w.AddPlayer(p)

	for i := 0; i < 30; i++ {
		p.Vel = gamemath.V(0, 10)
		w.Step([]*Player{p}, nil, testDt)
	}

	assert.InDelta(t, 18-config.Physics.PlayerRadius, p.Pos.Z, 1e-6)
	assert.Zero(t, p.Vel.Z)
}

func TestWorld_ContactEnterFiresOncePerOverlap(t *testing.T) {
	w := NewWorld(testPitch(), config.Physics)
	a := NewPlayer(1, netconfig.TeamBlue, netconfig.RoleStriker)
	a.Pos = gamemath.V(0, 0)
	b := NewPlayer(2, netconfig.TeamPurple, netconfig.RoleStriker)
	b.Pos = gamemath.V(0.8, 0)
	w.AddPlayer(a)
	w.AddPlayer(b)

	contacts := 0
	w.OnPlayerContact = func(x, y *Player) { contacts++ }

	players := []*Player{a, b}
	for i := 0; i < 5; i++ {
		a.Vel = gamemath.V(5, 0)
		b.Vel = gamemath.V(-5, 0)
		w.Step(players, nil, testDt)
	}
	assert.Equal(t, 1, contacts)
	assert.GreaterOrEqual(t, b.Pos.Sub(a.Pos).Len(), 2*config.Physics.PlayerRadius-1e-6)

	// Separate and come back together.
	a.Pos, b.Pos = gamemath.V(-5, 0), gamemath.V(5, 0)
	a.Vel, b.Vel = gamemath.Vec2{}, gamemath.Vec2{}
	w.Step(players, nil, testDt)
	a.Pos, b.Pos = gamemath.V(0, 0), gamemath.V(0.5, 0)
	w.Step(players, nil, testDt)
	assert.Equal(t, 2, contacts)
}

func TestWorld_TackleThroughContact(t *testing.T) {
	w := NewWorld(testPitch(), config.Physics)
	ball := NewBall(gamemath.V(0, 0), 0.5)
	token := &OwnerToken{}
	holder := newTestPlayer(1, netconfig.TeamBlue, gamemath.V(1, 0), ball, token)
	tackler := newTestPlayer(2, netconfig.TeamPurple, gamemath.V(1, 0.6), ball, token)
	w.AddPlayer(holder)
	w.AddPlayer(tackler)
	w.AddBall(ball)
	w.OnPlayerContact = func(a, b *Player) {
		a.Possession.OnContact(b)
		b.Possession.OnContact(a)
	}

	holder.Possession.Update(0)
	require.True(t, holder.Holding())

	w.Step([]*Player{holder, tackler}, ball, testDt)

	assert.False(t, holder.Holding())
	assert.False(t, tackler.Holding())
	assert.False(t, token.Held())
}

func TestWorld_RemovePlayer(t *testing.T) {
	w := NewWorld(testPitch(), config.Physics)
	p := NewPlayer(1, netconfig.TeamBlue, netconfig.RoleStriker)
	w.AddPlayer(p)
	require.NotNil(t, p.body)

	w.RemovePlayer(p)
	assert.Nil(t, p.body)
	assert.NotPanics(t, func() { w.Step([]*Player{p}, nil, testDt) })
}
