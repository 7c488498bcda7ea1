package soccer

import (
	"math"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
)

// ImpactTimer fires a kick or pass contact once per clip loop, when the
// clip's normalized time reaches the impact point.
type ImpactTimer struct {
	Impact float64
	Rearm  float64

	fired   bool
	started bool
	loop    float64
	last    float64
}

// Update returns true on the tick the contact should be applied. The timer
// re-arms when the clip is left (playing=false), when normalized crosses
// into the next loop, or when it wraps back after passing Rearm.
func (t *ImpactTimer) Update(playing bool, normalized float64) bool {
	if !playing {
		t.fired = false
		t.started = false
		return false
	}
	loop := math.Floor(normalized)
	nt := normalized - loop
	if normalized >= 1 && nt == 0 {
		nt = 1
		loop--
	}
	if t.started && (loop > t.loop || (nt < t.last && t.last > t.Rearm)) {
		t.fired = false
	}
	t.started = true
	t.loop = loop
	t.last = nt

	if !t.fired && nt >= t.Impact {
		t.fired = true
		return true
	}
	return false
}

// KickContact applies the velocity change at the impact frame of an
// autonomous shot or pass.
type KickContact struct {
	cfg        config.KickContactConfig
	ballRadius float64
}

func NewKickContact(cfg config.KickContactConfig, ballRadius float64) KickContact {
	return KickContact{cfg: cfg, ballRadius: ballRadius}
}

// Reaches reports whether the ball is touching the foot sphere and within
// the maximum kick distance.
func (k KickContact) Reaches(foot gamemath.Vec2, ball *Ball) bool {
	d := foot.Dist(ball.Pos)
	return d <= k.cfg.ContactRadius+k.ballRadius && d <= k.cfg.MaxKickDistance
}

// Shoot kicks the ball towards target with full lift.
func (k KickContact) Shoot(foot gamemath.Vec2, ball *Ball, target gamemath.Vec2) bool {
	return k.apply(foot, ball, target, k.cfg.Lift, k.cfg.KickPower)
}

// Pass plays the ball towards target with half the shot lift.
func (k KickContact) Pass(foot gamemath.Vec2, ball *Ball, target gamemath.Vec2) bool {
	return k.apply(foot, ball, target, k.cfg.Lift*0.5, k.cfg.PassPower)
}

func (k KickContact) apply(foot gamemath.Vec2, ball *Ball, target gamemath.Vec2, lift, power float64) bool {
	if ball == nil || ball.HeldBy != nil {
		return false
	}
	if !k.Reaches(foot, ball) {
		return false
	}

	to := target.Sub(ball.Pos).Normalize()
	dir, dirY := gamemath.Normalize3(to, lift)
	if dir.IsZero() && dirY == 0 {
		return false
	}

	ball.Vel = ball.Vel.Scale(k.cfg.PreDamp)
	ball.VertVel *= k.cfg.PreDamp
	ball.Vel = ball.Vel.Add(dir.Scale(power))
	ball.VertVel += dirY * power
	ball.Gravity = true
	return true
}
