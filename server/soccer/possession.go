package soccer

import (
	"math"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/tanema/gween/ease"
)

// PossessionState is a player's relationship to the ball.
type PossessionState int

const (
	PossessionIdle PossessionState = iota
	PossessionDribbling
	PossessionCharging
)

func (s PossessionState) String() string {
	switch s {
	case PossessionIdle:
		return "idle"
	case PossessionDribbling:
		return "dribbling"
	case PossessionCharging:
		return "charging"
	}
	return "unknown"
}

// ReleaseKind says why a held ball was let go.
type ReleaseKind int

const (
	ReleaseKick ReleaseKind = iota
	ReleaseTackle
	ReleaseForced
)

func (k ReleaseKind) String() string {
	switch k {
	case ReleaseKick:
		return "kick"
	case ReleaseTackle:
		return "tackle"
	case ReleaseForced:
		return "forced"
	}
	return "unknown"
}

// Release describes a ball leaving a holder.
type Release struct {
	Player   *Player
	Tackler  *Player // set for tackles
	Kind     ReleaseKind
	Velocity gamemath.Vec2
	VertVel  float64
	Power    float64 // kicks only
	Charge   float64 // charge ratio at release, kicks only
}

// PossessionConfig groups the tunables a Possession reads.
type PossessionConfig struct {
	Dribble config.DribbleConfig
	Kick    config.KickConfig
	Tackle  config.TackleConfig
}

// DefaultPossessionConfig returns the global tunables.
func DefaultPossessionConfig() PossessionConfig {
	return PossessionConfig{
		Dribble: config.Dribble,
		Kick:    config.Kick,
		Tackle:  config.Tackle,
	}
}

const neverKicked = -999.0

// Possession is the per-player state machine
// Idle -> Dribbling -> Charging -> (kick) -> Idle. Ownership is arbitrated
// by the shared OwnerToken.
type Possession struct {
	player *Player
	ball   *Ball
	token  *OwnerToken
	cfg    PossessionConfig
	curve  ease.TweenFunc

	state       PossessionState
	chargeStart float64
	lastKick    float64

	// OnRelease is called synchronously every time the ball is let go.
	OnRelease func(Release)
}

// NewPossession wires a player to the ball and the shared token.
func NewPossession(p *Player, ball *Ball, token *OwnerToken, cfg PossessionConfig) *Possession {
	return &Possession{
		player:      p,
		ball:        ball,
		token:       token,
		cfg:         cfg,
		curve:       gamemath.CurveByName(cfg.Kick.Curve),
		chargeStart: neverKicked,
		lastKick:    neverKicked,
	}
}

func (s *Possession) State() PossessionState { return s.state }

// Holding reports whether the player owns the ball (dribbling or charging).
func (s *Possession) Holding() bool { return s.state != PossessionIdle }

func (s *Possession) Charging() bool { return s.state == PossessionCharging }

// Update is the logic-tick step: take the ball when close enough and nobody
// else holds it.
func (s *Possession) Update(now float64) {
	if s.ball == nil || s.player == nil || s.token == nil {
		return
	}
	if s.state != PossessionIdle {
		return
	}
	if now-s.lastKick < s.cfg.Kick.Cooldown {
		return
	}

	if s.distanceToBall() > s.cfg.Dribble.Range {
		return
	}
	if !s.token.Acquire(s.player) {
		return
	}
	s.startDribble()
}

func (s *Possession) distanceToBall() float64 {
	dy := s.ball.Height - s.player.Height
	return math.Sqrt(s.player.Pos.DistSqr(s.ball.Pos) + dy*dy)
}

func (s *Possession) startDribble() {
	s.state = PossessionDribbling
	s.ball.Gravity = false
	s.ball.Stop()
	s.ball.ignore = s.player
	s.ball.HeldBy = s.player
}

// StartCharge begins charging a kick. Only valid while dribbling and past
// the kick cooldown.
func (s *Possession) StartCharge(now float64) bool {
	if s.state != PossessionDribbling {
		return false
	}
	if now-s.lastKick < s.cfg.Kick.Cooldown {
		return false
	}
	s.state = PossessionCharging
	s.chargeStart = now
	return true
}

// ChargeProgress returns clamp01((now-start)/chargeTime) while charging and
// 0 otherwise.
func (s *Possession) ChargeProgress(now float64) float64 {
	if s.state != PossessionCharging {
		return 0
	}
	return gamemath.ChargeProgress(now, s.chargeStart, s.cfg.Kick.ChargeTime)
}

// KickPower returns the power a kick released at charge ratio would have.
func (s *Possession) KickPower(ratio float64) float64 {
	return gamemath.KickPower(s.cfg.Kick.MinPower, s.cfg.Kick.MaxPower, ratio, s.curve)
}

// ExecuteKick releases a charged kick along the player's facing.
func (s *Possession) ExecuteKick(now float64) {
	if s.state != PossessionCharging {
		return
	}
	if s.token == nil || s.token.Holder() != s.player || s.ball == nil {
		s.CancelCharge()
		s.state = PossessionIdle
		return
	}

	ratio := s.ChargeProgress(now)
	power := s.KickPower(ratio)
	s.lastKick = now

	dir := s.player.Facing.Normalize()
	vel := dir.Scale(power)
	if s.cfg.Kick.CarryInertia {
		vel = vel.Add(s.player.Vel)
	}

	s.release(Release{
		Kind:     ReleaseKick,
		Velocity: vel,
		Power:    power,
		Charge:   ratio,
	})
}

// CancelCharge abandons a charge and keeps dribbling.
func (s *Possession) CancelCharge() {
	if s.state == PossessionCharging {
		s.state = PossessionDribbling
	}
	s.chargeStart = neverKicked
}

// PhysicsUpdate is the physics-tick step: puppet the held ball ahead of the
// player and fire a charge that reached its full duration.
func (s *Possession) PhysicsUpdate(now, dt float64) {
	if s.ball == nil || s.player == nil || !s.Holding() {
		return
	}

	s.followBall(dt)

	if s.state == PossessionCharging && now-s.chargeStart >= s.cfg.Kick.ChargeTime {
		s.ExecuteKick(now)
	}
}

func (s *Possession) followBall(dt float64) {
	d := s.cfg.Dribble
	target := s.player.Pos.Add(s.player.Facing.Normalize().Scale(d.Distance))
	follow := d.FollowSpeed + s.player.Vel.Len()*d.SpeedFollow
	t := gamemath.Clamp01(dt * follow)

	s.ball.Pos = s.ball.Pos.Lerp(target, t)
	s.ball.Height = gamemath.Lerp(s.ball.Height, d.Height, t)
	s.ball.Stop()
}

// OnContact handles a collision-enter with another player. An opponent
// touching the holder knocks the ball away regardless of charge.
func (s *Possession) OnContact(other *Player) {
	if other == nil || s.player == nil || s.ball == nil {
		return
	}
	if !s.Holding() || other.Team == s.player.Team {
		return
	}

	away := s.ball.Pos.Sub(other.Pos).Normalize()
	f := s.cfg.Tackle.Force
	s.release(Release{
		Kind:     ReleaseTackle,
		Tackler:  other,
		Velocity: away.Scale(f),
		VertVel:  s.cfg.Tackle.Lift * f,
	})
}

// ForceRelease lets go of the ball with the given velocity.
func (s *Possession) ForceRelease(vel gamemath.Vec2, vertVel float64) {
	if !s.Holding() {
		return
	}
	s.release(Release{Kind: ReleaseForced, Velocity: vel, VertVel: vertVel})
}

// Reset returns to Idle without notifying, used on episode reset.
func (s *Possession) Reset() {
	if s.token != nil {
		s.token.Release(s.player)
	}
	if s.ball != nil && s.ball.HeldBy == s.player {
		s.ball.HeldBy = nil
		s.ball.ignore = nil
		s.ball.Gravity = true
	}
	s.state = PossessionIdle
	s.chargeStart = neverKicked
	s.lastKick = neverKicked
}

func (s *Possession) release(r Release) {
	s.CancelCharge()
	s.state = PossessionIdle
	if s.token != nil {
		s.token.Release(s.player)
	}

	s.ball.HeldBy = nil
	s.ball.Gravity = true
	s.ball.ignore = nil
	s.ball.Vel = r.Velocity
	s.ball.VertVel = r.VertVel

	r.Player = s.player
	if s.OnRelease != nil {
		s.OnRelease(r)
	}
}
