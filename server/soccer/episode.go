package soccer

import (
	"math"
	"math/rand"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
)

// EndReason says how an episode finished.
type EndReason int

const (
	EndGoal EndReason = iota
	EndTimeout
)

func (r EndReason) String() string {
	if r == EndGoal {
		return "goal"
	}
	return "timeout"
}

// EpisodeResult is produced when an episode ends. Rewards are indexed by
// team; a timeout leaves both at zero.
type EpisodeResult struct {
	Number  int
	Reason  EndReason
	Scorer  netconfig.Team // valid for EndGoal
	Steps   int
	Rewards [2]float64
	Blue    int // score after this episode
	Purple  int
}

// Episode tracks the step budget, the score and the kick-off placement.
type Episode struct {
	cfg   config.EpisodeConfig
	spawn config.SpawnConfig
	rng   *rand.Rand

	halfLength float64
	halfWidth  float64
	margin     float64

	steps  int
	Number int
	scores [2]int

	defensiveRadius float64

	scoreObservers []func(blue, purple int)
	endObservers   []func(EpisodeResult)
}

// NewEpisode creates episode 1. rng must not be shared with another
// goroutine.
func NewEpisode(cfg config.EpisodeConfig, spawn config.SpawnConfig, rng *rand.Rand) *Episode {
	e := &Episode{
		cfg:    cfg,
		spawn:  spawn,
		rng:    rng,
		Number: 1,
	}
	e.SetDefensiveRadii(cfg.DefensiveShell, cfg.DefensiveMax)
	return e
}

// SetBounds limits spawn jitter to the field minus margin.
func (e *Episode) SetBounds(halfLength, halfWidth, margin float64) {
	e.halfLength = halfLength
	e.halfWidth = halfWidth
	e.margin = margin
}

func (e *Episode) OnScore(fn func(blue, purple int)) {
	e.scoreObservers = append(e.scoreObservers, fn)
}

func (e *Episode) OnEnd(fn func(EpisodeResult)) {
	e.endObservers = append(e.endObservers, fn)
}

func (e *Episode) Steps() int { return e.steps }

// Score returns the goals scored by each team.
func (e *Episode) Score() (blue, purple int) {
	return e.scores[netconfig.TeamBlue], e.scores[netconfig.TeamPurple]
}

// DefensiveRadius is the larger of the configured shell and max radii.
func (e *Episode) DefensiveRadius() float64 { return e.defensiveRadius }

func (e *Episode) SetDefensiveRadii(shell, max float64) {
	e.defensiveRadius = math.Max(shell, max)
}

// Reset puts every player back on its base position plus jitter and the
// ball on its spot plus jitter, with all motion and possession cleared.
func (e *Episode) Reset(players []*Player, ball *Ball) {
	e.steps = 0

	for _, p := range players {
		if p == nil {
			continue
		}
		if p.Possession != nil {
			p.Possession.Reset()
		}
		p.Pos = e.clampToField(p.BasePos.Add(gamemath.V(
			e.uniform(-e.spawn.PlayerJitterX, e.spawn.PlayerJitterX),
			e.uniform(-e.spawn.PlayerJitterZ, e.spawn.PlayerJitterZ),
		)))
		heading := p.RotSign * e.uniform(e.spawn.RotationMin, e.spawn.RotationMax)
		p.Facing = gamemath.FromHeading(heading)
		p.Vel = gamemath.Vec2{}
		if p.Decider != nil {
			p.Decider.Restart(0)
		}
		if p.bot != nil {
			p.bot.reset()
		}
		p.manual.reset()
	}

	if ball == nil {
		return
	}
	ball.HeldBy = nil
	ball.ignore = nil
	ball.Pos = e.clampToField(ball.BasePos.Add(gamemath.V(
		e.uniform(-e.spawn.BallJitterX, e.spawn.BallJitterX),
		e.uniform(-e.spawn.BallJitterZ, e.spawn.BallJitterZ),
	)))
	ball.Height = e.spawn.BallHeight
	ball.Stop()
	ball.Gravity = true
}

// Step counts one physics tick and reports whether the step budget is
// spent. A zero budget never runs out.
func (e *Episode) Step() bool {
	e.steps++
	return e.cfg.MaxEnvironmentSteps > 0 && e.steps >= e.cfg.MaxEnvironmentSteps
}

// GoalTouched ends the episode with a goal for scorer. The scorer is
// rewarded 1 - steps/MaxSteps and the other team -1. Score observers run
// before end observers.
func (e *Episode) GoalTouched(scorer netconfig.Team) EpisodeResult {
	reward := 1.0
	if e.cfg.MaxEnvironmentSteps > 0 {
		reward = 1 - float64(e.steps)/float64(e.cfg.MaxEnvironmentSteps)
	}

	e.scores[scorer]++
	blue, purple := e.Score()
	for _, fn := range e.scoreObservers {
		fn(blue, purple)
	}

	r := EpisodeResult{
		Number: e.Number,
		Reason: EndGoal,
		Scorer: scorer,
		Steps:  e.steps,
		Blue:   blue,
		Purple: purple,
	}
	r.Rewards[scorer] = reward
	r.Rewards[scorer.Opponent()] = -1
	e.end(r)
	return r
}

// Interrupt ends the episode without a winner.
func (e *Episode) Interrupt() EpisodeResult {
	blue, purple := e.Score()
	r := EpisodeResult{
		Number: e.Number,
		Reason: EndTimeout,
		Steps:  e.steps,
		Blue:   blue,
		Purple: purple,
	}
	e.end(r)
	return r
}

// ResetScore zeroes the scoreboard, used when a new match starts.
func (e *Episode) ResetScore() {
	e.scores = [2]int{}
	e.Number = 1
}

func (e *Episode) end(r EpisodeResult) {
	e.Number++
	for _, fn := range e.endObservers {
		fn(r)
	}
}

func (e *Episode) uniform(lo, hi float64) float64 {
	if hi <= lo || e.rng == nil {
		return lo
	}
	return lo + e.rng.Float64()*(hi-lo)
}

func (e *Episode) clampToField(p gamemath.Vec2) gamemath.Vec2 {
	if e.halfLength <= 0 || e.halfWidth <= 0 {
		return p
	}
	mx := math.Max(e.halfLength-e.margin, 0)
	mz := math.Max(e.halfWidth-e.margin, 0)
	return gamemath.V(gamemath.Clamp(p.X, -mx, mx), gamemath.Clamp(p.Z, -mz, mz))
}
