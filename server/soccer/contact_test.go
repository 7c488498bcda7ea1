package soccer

import (
	"math"
	"testing"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/stretchr/testify/assert"
)

func TestImpactTimer_FiresOncePerClip(t *testing.T) {
	timer := ImpactTimer{Impact: 0.45, Rearm: 0.98}

	assert.False(t, timer.Update(true, 0.2))
	assert.True(t, timer.Update(true, 0.45))
	assert.False(t, timer.Update(true, 0.6))
	assert.False(t, timer.Update(true, 0.99))

	// Re-armed near the end, so a looping clip fires again.
	assert.True(t, timer.Update(true, 1.5))
}

func TestImpactTimer_LingeringPastRearmFiresOnce(t *testing.T) {
	timer := ImpactTimer{Impact: 0.45, Rearm: 0.98}

	fires := 0
	for _, nt := range []float64{0.3, 0.45, 0.7, 0.985, 0.99, 0.995, 1.0, 1.0} {
		if timer.Update(true, nt) {
			fires++
		}
	}
	assert.Equal(t, 1, fires)
}

func TestImpactTimer_WrapWithinUnitRangeRearms(t *testing.T) {
	timer := ImpactTimer{Impact: 0.45, Rearm: 0.98}

	assert.True(t, timer.Update(true, 0.5))
	assert.False(t, timer.Update(true, 0.99))
	assert.False(t, timer.Update(true, 0.1))
	assert.True(t, timer.Update(true, 0.5))

	// Jitter backwards mid-clip does not count as a new loop.
	assert.False(t, timer.Update(true, 0.48))
	assert.False(t, timer.Update(true, 0.6))
}

func TestImpactTimer_LeavingClipRearms(t *testing.T) {
	timer := ImpactTimer{Impact: 0.45, Rearm: 0.98}

	assert.True(t, timer.Update(true, 0.5))
	assert.False(t, timer.Update(false, 0))
	assert.True(t, timer.Update(true, 0.5))
}

func TestKickContact_Shoot(t *testing.T) {
	kc := NewKickContact(config.KickContact, config.Physics.BallRadius)
	ball := NewBall(gamemath.V(0.4, 0), 0.5)
	ball.Vel = gamemath.V(10, 0)

	ok := kc.Shoot(gamemath.V(0.4, 0), ball, gamemath.V(10, 0))

	n := math.Sqrt(1 + 0.2*0.2)
	assert.True(t, ok)
	assert.InDelta(t, 2+8/n, ball.Vel.X, 1e-9)
	assert.InDelta(t, 0, ball.Vel.Z, 1e-9)
	assert.InDelta(t, 8*0.2/n, ball.VertVel, 1e-9)
	assert.True(t, ball.Gravity)
}

func TestKickContact_PassUsesHalfLift(t *testing.T) {
	kc := NewKickContact(config.KickContact, config.Physics.BallRadius)
	ball := NewBall(gamemath.V(0, 0.4), 0.5)

	ok := kc.Pass(gamemath.V(0, 0.4), ball, gamemath.V(0, 10))

	n := math.Sqrt(1 + 0.1*0.1)
	assert.True(t, ok)
	assert.InDelta(t, 6/n, ball.Vel.Z, 1e-9)
	assert.InDelta(t, 6*0.1/n, ball.VertVel, 1e-9)
}

func TestKickContact_RefusesOutOfReach(t *testing.T) {
	kc := NewKickContact(config.KickContact, config.Physics.BallRadius)
	ball := NewBall(gamemath.V(1, 0), 0.5)
	ball.Vel = gamemath.V(3, 0)

	assert.False(t, kc.Shoot(gamemath.V(0, 0), ball, gamemath.V(10, 0)))
	assert.Equal(t, gamemath.V(3, 0), ball.Vel)
}

func TestKickContact_RefusesHeldBall(t *testing.T) {
	kc := NewKickContact(config.KickContact, config.Physics.BallRadius)
	ball := NewBall(gamemath.V(0, 0), 0.5)
	ball.HeldBy = NewPlayer(1, netconfig.TeamBlue, netconfig.RoleStriker)

	assert.False(t, kc.Shoot(gamemath.V(0, 0), ball, gamemath.V(10, 0)))
	assert.True(t, ball.Vel.IsZero())
}
