package soccer

import (
	"math"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
)

// Action is the outcome of a kick decision.
type Action int

const (
	ActionNone Action = iota
	ActionShoot
	ActionPass
)

func (a Action) String() string {
	switch a {
	case ActionShoot:
		return "shoot"
	case ActionPass:
		return "pass"
	}
	return "none"
}

// Decision is what an autonomous player chose this tick.
type Decision struct {
	Action     Action
	Target     *Player // Pass receiver
	ShootScore float64
	PassScore  float64
}

// DecisionView is everything the decider reads about the world.
type DecisionView struct {
	Pos       gamemath.Vec2
	Facing    gamemath.Vec2
	Vel       gamemath.Vec2
	Foot      gamemath.Vec2
	Ball      gamemath.Vec2
	HasBall   bool
	Goal      gamemath.Vec2 // Centre of the goal being attacked
	HasGoal   bool
	Teammates []*Player
	Busy      bool // A kick or pass clip is playing
}

// KickDecider is the autonomous shoot-or-pass heuristic.
type KickDecider struct {
	cfg      config.AutoKickConfig
	cooldown float64
}

// NewKickDecider starts with StartDelay plus extraDelay on the clock.
func NewKickDecider(cfg config.AutoKickConfig, extraDelay float64) *KickDecider {
	return &KickDecider{cfg: cfg, cooldown: cfg.StartDelay + extraDelay}
}

// Cooldown returns the seconds left before the next decision.
func (k *KickDecider) Cooldown() float64 { return k.cooldown }

// Restart puts the start delay back on the clock, used on episode reset.
func (k *KickDecider) Restart(extraDelay float64) {
	k.cooldown = k.cfg.StartDelay + extraDelay
}

// Decide evaluates the heuristic. It returns ActionNone while cooling
// down, mid-clip, nearly stationary or out of kick range.
func (k *KickDecider) Decide(dt float64, v DecisionView) Decision {
	if !v.HasBall || !v.HasGoal {
		return Decision{}
	}

	if k.cooldown > 0 {
		k.cooldown -= dt
		return Decision{}
	}

	if v.Busy {
		return Decision{}
	}
	if v.Vel.LenSqr() < k.cfg.MinMoveSpeed*k.cfg.MinMoveSpeed {
		return Decision{}
	}
	if v.Foot.Dist(v.Ball) > k.cfg.MaxKickRange {
		return Decision{}
	}

	fwd := v.Facing.Normalize()

	var passScore float64
	mate := k.BestTeammate(v.Pos, fwd, v.Teammates)
	if mate != nil {
		toMate := mate.Pos.Sub(v.Pos)
		passScore = PassScore(gamemath.AngleBetween(fwd, toMate), toMate.Len(), k.cfg)
	}

	toGoal := v.Goal.Sub(v.Pos)
	shootScore := ShootScore(gamemath.AngleBetween(fwd, toGoal), toGoal.Len(), k.cfg)

	if shootScore <= 0 && passScore <= 0 {
		return Decision{}
	}

	d := Decision{ShootScore: shootScore, PassScore: passScore}
	if shootScore >= passScore {
		d.Action = ActionShoot
	} else {
		d.Action = ActionPass
		d.Target = mate
	}
	k.cooldown = k.cfg.DecisionCooldown
	return d
}

// BestTeammate ranks teammates by closeness and how far inside the pass
// cone they are.
func (k *KickDecider) BestTeammate(pos, fwd gamemath.Vec2, mates []*Player) *Player {
	var best *Player
	bestScore := -1.0
	for _, m := range mates {
		if m == nil {
			continue
		}
		to := m.Pos.Sub(pos)
		score := TeammateScore(gamemath.AngleBetween(fwd, to), to.Len(), k.cfg)
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best
}

// TeammateScore is clamp01(1-d/passMax) * clamp01((passMin-angle)/passMin).
func TeammateScore(angle, dist float64, cfg config.AutoKickConfig) float64 {
	return gamemath.Clamp01(1-dist/math.Max(cfg.PassMaxDistance, 1e-4)) *
		gamemath.Clamp01((cfg.PassMinAngle-angle)/math.Max(cfg.PassMinAngle, 1e-4))
}

// PassScore is zero outside the pass cone or range.
func PassScore(angle, dist float64, cfg config.AutoKickConfig) float64 {
	if angle > cfg.PassMinAngle || dist > cfg.PassMaxDistance {
		return 0
	}
	return cfg.PreferPassWeight *
		((cfg.PassMinAngle - angle) / math.Max(cfg.PassMinAngle, 1e-4)) *
		gamemath.Clamp01(1-dist/math.Max(cfg.PassMaxDistance, 1e-4))
}

// ShootScore is zero outside the forward cone and gains NearGoalBonus inside
// MinShootDistance.
func ShootScore(angle, dist float64, cfg config.AutoKickConfig) float64 {
	if angle > cfg.KickForwardAngle {
		return 0
	}
	score := cfg.PreferShootWeight *
		((cfg.KickForwardAngle - angle) / math.Max(cfg.KickForwardAngle, 1e-4)) *
		gamemath.Clamp01(1-dist/math.Max(cfg.MinShootDistance, 1e-4))
	if dist <= cfg.MinShootDistance {
		score += cfg.NearGoalBonus
	}
	return score
}
