package soccer

import (
	"math"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/netconfig"
)

// ControlChange is delivered to observers when the human-controlled player
// of a team changes. Next is nil when control is handed back to the bots.
type ControlChange struct {
	Team netconfig.Team
	Prev *Player
	Next *Player
}

// ControlArbiter picks which player of a team receives human input. Every
// CheckInterval it looks for the eligible player nearest the ball and hands
// control over when the switch guard allows it.
type ControlArbiter struct {
	team   netconfig.Team
	roster []*Player
	ball   *Ball
	cfg    config.ArbiterConfig

	timer    float64
	cooldown float64
	current  *Player

	observers []func(ControlChange)
}

// NewControlArbiter creates an arbiter over roster. Players keep their
// roster order, which decides ties.
func NewControlArbiter(team netconfig.Team, roster []*Player, ball *Ball, cfg config.ArbiterConfig) *ControlArbiter {
	return &ControlArbiter{
		team:   team,
		roster: roster,
		ball:   ball,
		cfg:    cfg,
	}
}

// Subscribe adds an observer. Observers run synchronously in subscription
// order inside the tick that made the switch.
func (a *ControlArbiter) Subscribe(fn func(ControlChange)) {
	a.observers = append(a.observers, fn)
}

func (a *ControlArbiter) Current() *Player     { return a.current }
func (a *ControlArbiter) Team() netconfig.Team { return a.team }

// Cooldown returns the remaining switch cooldown in seconds.
func (a *ControlArbiter) Cooldown() float64 { return a.cooldown }

// Init hands control to the nearest player if nobody is controlled yet.
// The cooldown does not block this first assignment.
func (a *ControlArbiter) Init() {
	if a.current != nil || a.ball == nil {
		return
	}
	if nearest, _ := a.Nearest(); nearest != nil {
		a.SwitchTo(nearest)
	}
}

// Tick advances the timers and re-evaluates control every CheckInterval.
// Returns true when control switched.
func (a *ControlArbiter) Tick(dt float64, inputActive bool) bool {
	a.timer += dt
	a.cooldown -= dt
	if a.timer < a.cfg.CheckInterval {
		return false
	}
	a.timer = 0

	if a.ball == nil || len(a.roster) == 0 {
		return false
	}

	nearest, bestSqr := a.Nearest()
	if nearest == nil {
		return false
	}

	currentSqr := math.Inf(1)
	if a.current != nil {
		currentSqr = a.current.Pos.DistSqr(a.ball.Pos)
	}

	if !a.ShouldSwitch(nearest != a.current, bestSqr, currentSqr, inputActive) {
		return false
	}
	a.SwitchTo(nearest)
	return true
}

// ShouldSwitch is the switch guard: the candidate differs, the cooldown has
// expired, it is closer by the hysteresis margin (bestSqr + h² < currentSqr)
// and no human input is active.
func (a *ControlArbiter) ShouldSwitch(differs bool, bestSqr, currentSqr float64, inputActive bool) bool {
	h2 := a.cfg.Hysteresis * a.cfg.Hysteresis
	return differs && a.cooldown <= 0 && bestSqr+h2 < currentSqr && !inputActive
}

// Nearest returns the active player closest to the ball on the ground plane
// and its squared distance. The first player found wins ties.
func (a *ControlArbiter) Nearest() (*Player, float64) {
	if a.ball == nil {
		return nil, math.MaxFloat64
	}
	var nearest *Player
	best := math.MaxFloat64
	for _, p := range a.roster {
		if p == nil || !p.Active {
			continue
		}
		d2 := p.Pos.DistSqr(a.ball.Pos)
		if d2 < best {
			best = d2
			nearest = p
		}
	}
	return nearest, best
}

// SwitchTo gives p manual control, puts everyone else back on autonomous
// control and restarts the cooldown.
func (a *ControlArbiter) SwitchTo(p *Player) {
	if p == nil {
		return
	}
	for _, other := range a.roster {
		if other != nil {
			other.setControl(false)
		}
	}
	p.setControl(true)

	prev := a.current
	a.current = p
	a.cooldown = a.cfg.MinSwitchCooldown
	a.notify(ControlChange{Team: a.team, Prev: prev, Next: p})
}

// Release hands every player back to autonomous control, used when the
// team's human leaves.
func (a *ControlArbiter) Release() {
	if a.current == nil {
		return
	}
	for _, p := range a.roster {
		if p != nil {
			p.setControl(false)
		}
	}
	prev := a.current
	a.current = nil
	a.notify(ControlChange{Team: a.team, Prev: prev})
}

// Remove drops p from the roster, clearing control if p had it.
func (a *ControlArbiter) Remove(p *Player) {
	for i, other := range a.roster {
		if other == p {
			a.roster = append(a.roster[:i:i], a.roster[i+1:]...)
			break
		}
	}
	if a.current == p {
		p.setControl(false)
		a.current = nil
		a.notify(ControlChange{Team: a.team, Prev: p})
	}
}

func (a *ControlArbiter) notify(c ControlChange) {
	for _, fn := range a.observers {
		fn(c)
	}
}
