package soccer

import (
	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
)

// aimTolerance is how far off target, in degrees, a holder may be when it
// starts charging.
const aimTolerance = 15.0

// BotView is what the autonomous driver sees each tick.
type BotView struct {
	Ball      *Ball
	Goal      gamemath.Vec2 // Centre of the goal being attacked
	HasGoal   bool
	Chaser    bool // Nearest teammate to the ball
	Teammates []*Player
}

type botClip struct {
	action  Action
	target  gamemath.Vec2
	elapsed float64
}

// BotDriver is the autonomous policy: chase or hold formation, decide on
// first-time shots and passes, and charge kicks at goal when holding.
type BotDriver struct {
	cfg       config.BotDifficultyConfig
	manual    config.ManualConfig
	contact   KickContact
	clipLen   float64
	footAhead float64

	impact   ImpactTimer
	clip     *botClip
	reaction float64
	desired  gamemath.Vec2
	aim      gamemath.Vec2
	hasAim   bool

	// onContact runs when a shot or pass actually touched the ball.
	onContact func(p *Player, a Action)
}

func NewBotDriver(cfg config.BotDifficultyConfig, manual config.ManualConfig, kc config.KickContactConfig, ballRadius float64) *BotDriver {
	return &BotDriver{
		cfg:       cfg,
		manual:    manual,
		contact:   NewKickContact(kc, ballRadius),
		clipLen:   kc.ClipDuration,
		footAhead: kc.FootOffset,
		impact:    ImpactTimer{Impact: kc.ImpactTime, Rearm: kc.RearmTime},
		reaction:  cfg.ReactionDelay,
	}
}

// Busy reports whether a kick or pass clip is playing.
func (b *BotDriver) Busy() bool { return b.clip != nil }

// ClipState returns the state a playing clip shows, or StateNone.
func (b *BotDriver) ClipState() netconfig.StateID {
	if b.clip == nil {
		return netconfig.StateNone
	}
	if b.clip.action == ActionPass {
		return netconfig.Passing
	}
	return netconfig.Kicking
}

// Update runs one logic tick and returns the decision taken, if any.
func (b *BotDriver) Update(p *Player, v BotView, now, dt float64) Decision {
	b.desired = gamemath.Vec2{}
	b.hasAim = false
	if p == nil || v.Ball == nil {
		return Decision{}
	}

	b.advanceClip(p, v.Ball, dt)

	if b.reaction > 0 {
		b.reaction -= dt
		return Decision{}
	}

	if p.Holding() {
		return b.attack(p, v, now, dt)
	}

	if v.Chaser {
		b.desired = b.steer(p.Pos, v.Ball.Pos, b.cfg.ChaseSpeed)
	} else if p.BasePos.Dist(p.Pos) > 0.5 {
		b.desired = b.steer(p.Pos, p.BasePos, b.cfg.ReturnSpeed)
	}

	if p.Decider == nil {
		return Decision{}
	}
	d := p.Decider.Decide(dt, DecisionView{
		Pos:       p.Pos,
		Facing:    p.Facing,
		Vel:       p.Vel,
		Foot:      p.Foot(b.footAhead),
		Ball:      v.Ball.Pos,
		HasBall:   v.Ball.HeldBy == nil,
		Goal:      v.Goal,
		HasGoal:   v.HasGoal,
		Teammates: v.Teammates,
		Busy:      b.Busy(),
	})
	switch d.Action {
	case ActionShoot:
		b.startClip(p, ActionShoot, v.Goal)
	case ActionPass:
		if d.Target != nil {
			b.startClip(p, ActionPass, d.Target.Pos)
		}
	}
	return d
}

// attack carries the ball towards goal, picks shot or pass and releases a
// charged kick once aimed and charged to the difficulty's hold ratio.
func (b *BotDriver) attack(p *Player, v BotView, now, dt float64) Decision {
	if !v.HasGoal {
		return Decision{}
	}
	b.desired = b.steer(p.Pos, v.Goal, b.cfg.ChaseSpeed)
	b.aim, b.hasAim = v.Goal, true

	var d Decision
	if p.Decider != nil {
		foot := p.Foot(b.footAhead)
		d = p.Decider.Decide(dt, DecisionView{
			Pos:       p.Pos,
			Facing:    p.Facing,
			Vel:       p.Vel,
			Foot:      foot,
			Ball:      foot,
			HasBall:   true,
			Goal:      v.Goal,
			HasGoal:   true,
			Teammates: v.Teammates,
		})
		if d.Action == ActionPass && d.Target != nil {
			b.aim = d.Target.Pos
		}
	}

	poss := p.Possession
	switch poss.State() {
	case PossessionDribbling:
		aimed := gamemath.AngleBetween(p.Facing, b.aim.Sub(p.Pos)) <= aimTolerance
		if aimed && d.Action != ActionNone {
			poss.StartCharge(now)
		}
	case PossessionCharging:
		if poss.ChargeProgress(now) >= b.cfg.ChargeHold {
			poss.ExecuteKick(now)
		}
	}
	return d
}

func (b *BotDriver) steer(from, to gamemath.Vec2, speedRatio float64) gamemath.Vec2 {
	return to.Sub(from).Normalize().Scale(b.manual.MoveSpeed * speedRatio)
}

func (b *BotDriver) startClip(p *Player, a Action, target gamemath.Vec2) {
	b.clip = &botClip{action: a, target: target}
	b.impact.Update(false, 0)
	if p.Anim != nil {
		if a == ActionPass {
			p.Anim.Trigger(TriggerPass)
		} else {
			p.Anim.Trigger(TriggerKick)
		}
	}
}

func (b *BotDriver) advanceClip(p *Player, ball *Ball, dt float64) {
	if b.clip == nil {
		return
	}
	b.clip.elapsed += dt
	normalized := 1.0
	if b.clipLen > 0 {
		normalized = b.clip.elapsed / b.clipLen
	}
	if normalized >= 1 {
		b.clip = nil
		b.impact.Update(false, 0)
		return
	}
	if b.impact.Update(true, normalized) {
		foot := p.Foot(b.footAhead)
		var hit bool
		if b.clip.action == ActionPass {
			hit = b.contact.Pass(foot, ball, b.clip.target)
		} else {
			hit = b.contact.Shoot(foot, ball, b.clip.target)
		}
		if hit && b.onContact != nil {
			b.onContact(p, b.clip.action)
		}
	}
}

// PhysicsUpdate applies the desired velocity and turns towards the aim
// point when holding, otherwise towards the ball.
func (b *BotDriver) PhysicsUpdate(p *Player, ball *Ball, dt float64) {
	if p == nil {
		return
	}
	p.Vel = b.desired
	turn := b.manual.TurnSpeed * dt
	switch {
	case b.hasAim:
		p.Facing = gamemath.RotateTowards(p.Facing, b.aim.Sub(p.Pos), turn)
	case ball != nil:
		p.Facing = gamemath.RotateTowards(p.Facing, ball.Pos.Sub(p.Pos), turn)
	}
}

func (b *BotDriver) reset() {
	b.clip = nil
	b.impact.Update(false, 0)
	b.reaction = b.cfg.ReactionDelay
	b.desired = gamemath.Vec2{}
	b.hasAim = false
}
