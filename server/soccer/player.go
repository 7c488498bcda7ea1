// Package soccer is the match simulation: control arbitration, ball
// possession, kick decisions and episode resets. It is single-threaded; the
// caller drives it with Match.Tick and Match.PhysicsTick from one goroutine.
package soccer

import (
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/solarlune/resolv"
)

// Player is one outfield player or keeper.
type Player struct {
	ID     int
	Name   string
	Team   netconfig.Team
	Role   netconfig.Role
	Pos    gamemath.Vec2
	Height float64 // Centre height above the ground
	Vel    gamemath.Vec2
	Facing gamemath.Vec2 // Unit vector on the ground plane

	// Active players take part in control arbitration.
	Active bool
	// Manual players follow human input; Autonomous players follow the bot policy.
	Manual     bool
	Autonomous bool

	BasePos gamemath.Vec2 // Formation position before jitter
	RotSign float64       // +1 faces +X at kick-off, -1 faces -X

	Possession *Possession
	Decider    *KickDecider
	Anim       *AnimBridge
	Signals    *AnimSignals
	State      netconfig.StateID

	manual ManualDriver
	bot    *BotDriver
	body   *resolv.Object
}

// NewPlayer creates an active, autonomous player facing its attacking
// direction.
func NewPlayer(id int, team netconfig.Team, role netconfig.Role) *Player {
	rot := -team.Direction()
	return &Player{
		ID:         id,
		Team:       team,
		Role:       role,
		Facing:     gamemath.V(rot, 0),
		Active:     true,
		Autonomous: true,
		RotSign:    rot,
		State:      netconfig.Idle,
	}
}

// Foot returns the foot marker position offset ahead of the player.
func (p *Player) Foot(offset float64) gamemath.Vec2 {
	return p.Pos.Add(p.Facing.Normalize().Scale(offset))
}

// Holding reports whether this player currently owns the ball.
func (p *Player) Holding() bool {
	return p.Possession != nil && p.Possession.Holding()
}

// setControl switches between human and autonomous control.
func (p *Player) setControl(manual bool) {
	p.Manual = manual
	p.Autonomous = !manual
	if !manual {
		p.manual.reset()
	}
}
