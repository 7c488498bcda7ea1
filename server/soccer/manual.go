package soccer

import (
	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
)

// InputState is the latest polled input of a team's human. It is replaced,
// not queued, every time a client input arrives.
type InputState struct {
	Up, Down, Left, Right bool
	Dash                  bool
	Kick                  bool
}

// Moving reports whether any movement key is held. A held kick does not
// count, so charging never blocks a control switch.
func (in InputState) Moving() bool {
	return in.Up || in.Down || in.Left || in.Right || in.Dash
}

// InputFromActions converts the wire action map to an InputState.
func InputFromActions(actions map[netconfig.ActionID]bool) InputState {
	return InputState{
		Up:    actions[netconfig.ActionMoveUp],
		Down:  actions[netconfig.ActionMoveDown],
		Left:  actions[netconfig.ActionMoveLeft],
		Right: actions[netconfig.ActionMoveRight],
		Dash:  actions[netconfig.ActionDash],
		Kick:  actions[netconfig.ActionKick],
	}
}

// ManualDriver turns human input into player velocity and kick commands.
type ManualDriver struct {
	cfg      config.ManualConfig
	desired  gamemath.Vec2
	kickHeld bool
}

func newManualDriver(cfg config.ManualConfig) ManualDriver {
	return ManualDriver{cfg: cfg}
}

// Update reads the input for this tick. Right is +X and Up is +Z. Kick
// press starts a charge, release fires it.
func (d *ManualDriver) Update(p *Player, in InputState, now float64) {
	var dir gamemath.Vec2
	if in.Right {
		dir.X++
	}
	if in.Left {
		dir.X--
	}
	if in.Up {
		dir.Z++
	}
	if in.Down {
		dir.Z--
	}

	speed := d.cfg.MoveSpeed
	if in.Dash {
		speed *= d.cfg.DashMultiplier
	}
	d.desired = dir.Normalize().Scale(speed)

	if p == nil || p.Possession == nil {
		d.kickHeld = in.Kick
		return
	}
	switch {
	case in.Kick && !d.kickHeld:
		p.Possession.StartCharge(now)
	case !in.Kick && d.kickHeld:
		p.Possession.ExecuteKick(now)
	}
	d.kickHeld = in.Kick
}

// Desired returns the target planar velocity from the last Update.
func (d *ManualDriver) Desired() gamemath.Vec2 { return d.desired }

// PhysicsUpdate adds the desired velocity as a velocity change, clamps
// planar speed and turns the player towards the ball. With no input the
// player coasts down under Drag.
func (d *ManualDriver) PhysicsUpdate(p *Player, ball *Ball, dt float64) {
	if p == nil {
		return
	}
	if d.desired.IsZero() {
		p.Vel = gamemath.ApplyPlanarFriction(p.Vel, d.cfg.Drag*dt)
	} else {
		p.Vel = p.Vel.Add(d.desired).ClampLen(d.cfg.MaxVelocity)
	}

	switch {
	case d.cfg.AutoFaceBall && ball != nil && ball.HeldBy != p:
		p.Facing = gamemath.RotateTowards(p.Facing, ball.Pos.Sub(p.Pos), d.cfg.TurnSpeed*dt)
	case !d.desired.IsZero():
		p.Facing = gamemath.RotateTowards(p.Facing, d.desired, d.cfg.TurnSpeed*dt)
	}
}

func (d *ManualDriver) reset() {
	d.desired = gamemath.Vec2{}
	d.kickHeld = false
}
