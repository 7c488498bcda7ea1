package soccer

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/automoto/kickoff/shared/pitchdata"
)

// Options configures a new Match. Zero values fall back to the config
// package globals.
type Options struct {
	Pitch     *pitchdata.Pitch
	Formation *config.FormationConfig
	Bot       *config.BotDifficultyConfig
	Seed      int64
}

// Match owns everything on the pitch and runs it in two phases per server
// tick: Tick for logic and PhysicsTick for motion.
type Match struct {
	pitch     *pitchdata.Pitch
	formation Formation
	players   []*Player
	teams     [2][]*Player
	ball      *Ball
	token     *OwnerToken
	arbiters  [2]*ControlArbiter
	episode   *Episode
	world     *World

	now    float64
	state  netconfig.MatchStateID
	humans [2]bool
	inputs [2]InputState

	releaseObservers  []func(Release)
	decisionObservers []func(*Player, Decision)
	contactObservers  []func(*Player, Action)
	resetObservers    []func(episode int)
}

// NewMatch builds the rosters, the ball and the physics world on the pitch
// and places everyone in formation. Call Init before the first Tick.
func NewMatch(opts Options) (*Match, error) {
	if opts.Pitch == nil {
		return nil, fmt.Errorf("new match: nil pitch")
	}
	fcfg := config.Formation
	if opts.Formation != nil {
		fcfg = *opts.Formation
	}
	if len(fcfg.Roster) == 0 {
		return nil, fmt.Errorf("new match: empty roster")
	}
	bcfg := config.Bot.Current()
	if opts.Bot != nil {
		bcfg = *opts.Bot
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	m := &Match{
		pitch:     opts.Pitch,
		formation: NewFormation(fcfg),
		ball:      NewBall(opts.Pitch.BallSpot, config.Spawn.BallHeight),
		token:     &OwnerToken{},
		state:     netconfig.MatchStateWaiting,
	}

	id := 0
	for _, team := range []netconfig.Team{netconfig.TeamBlue, netconfig.TeamPurple} {
		for i, role := range fcfg.Roster {
			p := m.newPlayer(id, team, role, bcfg)
			p.Name = fmt.Sprintf("%s %s %d", team, role, i+1)
			m.players = append(m.players, p)
			m.teams[team] = append(m.teams[team], p)
			id++
		}
	}
	m.formation.Apply(m.players, m.pitch.HalfLength, m.pitch.HalfWidth)

	m.world = NewWorld(m.pitch, config.Physics)
	for _, p := range m.players {
		m.world.AddPlayer(p)
	}
	m.world.AddBall(m.ball)
	m.world.OnPlayerContact = func(a, b *Player) {
		a.Possession.OnContact(b)
		b.Possession.OnContact(a)
	}

	for _, team := range []netconfig.Team{netconfig.TeamBlue, netconfig.TeamPurple} {
		m.arbiters[team] = NewControlArbiter(team, m.teams[team], m.ball, config.Arbiter)
	}

	m.episode = NewEpisode(config.Episode, config.Spawn, rng)
	m.episode.SetBounds(m.pitch.HalfLength, m.pitch.HalfWidth, fcfg.Margin)
	return m, nil
}

func (m *Match) newPlayer(id int, team netconfig.Team, role netconfig.Role, bcfg config.BotDifficultyConfig) *Player {
	p := NewPlayer(id, team, role)
	p.Possession = NewPossession(p, m.ball, m.token, DefaultPossessionConfig())
	p.Possession.OnRelease = m.handleRelease
	p.Decider = NewKickDecider(config.AutoKick, 0)
	p.Signals = &AnimSignals{}
	p.Anim = NewAnimBridge(config.Anim, p.Signals)
	p.manual = newManualDriver(config.Manual)
	p.bot = NewBotDriver(bcfg, config.Manual, config.KickContact, config.Physics.BallRadius)
	p.bot.onContact = m.handleContact
	return p
}

func (m *Match) Players() []*Player                       { return m.players }
func (m *Match) Team(t netconfig.Team) []*Player          { return m.teams[t] }
func (m *Match) Ball() *Ball                              { return m.ball }
func (m *Match) Pitch() *pitchdata.Pitch                  { return m.pitch }
func (m *Match) Episode() *Episode                        { return m.episode }
func (m *Match) State() netconfig.MatchStateID            { return m.state }
func (m *Match) Now() float64                             { return m.now }
func (m *Match) Holder() *Player                          { return m.token.Holder() }
func (m *Match) Arbiter(t netconfig.Team) *ControlArbiter { return m.arbiters[t] }

// Score returns the goals scored by each team.
func (m *Match) Score() (blue, purple int) { return m.episode.Score() }

// OnControlChanged subscribes to both teams' arbiters.
func (m *Match) OnControlChanged(fn func(ControlChange)) {
	for _, a := range m.arbiters {
		a.Subscribe(fn)
	}
}

func (m *Match) OnScore(fn func(blue, purple int))   { m.episode.OnScore(fn) }
func (m *Match) OnEpisodeEnd(fn func(EpisodeResult)) { m.episode.OnEnd(fn) }
func (m *Match) OnRelease(fn func(Release))          { m.releaseObservers = append(m.releaseObservers, fn) }
func (m *Match) OnDecision(fn func(*Player, Decision)) {
	m.decisionObservers = append(m.decisionObservers, fn)
}
func (m *Match) OnReset(fn func(episode int)) { m.resetObservers = append(m.resetObservers, fn) }

// OnContact fires when an autonomous shot or pass touches a free ball.
func (m *Match) OnContact(fn func(*Player, Action)) {
	m.contactObservers = append(m.contactObservers, fn)
}

// Init starts the first episode.
func (m *Match) Init() {
	m.resetEpisode()
	for t, a := range m.arbiters {
		if m.humans[t] {
			a.Init()
		}
	}
}

// SetHuman seats or unseats a human on team. Unseating hands the whole team
// back to autonomous control.
func (m *Match) SetHuman(team netconfig.Team, on bool) {
	m.humans[team] = on
	m.inputs[team] = InputState{}
	if on {
		m.arbiters[team].Init()
		if m.state == netconfig.MatchStateWaiting {
			m.state = netconfig.MatchStateKickoff
		}
		return
	}
	m.arbiters[team].Release()
	if !m.humans[team.Opponent()] {
		m.state = netconfig.MatchStateWaiting
	}
}

// HasHuman reports whether a human is seated on team.
func (m *Match) HasHuman(team netconfig.Team) bool { return m.humans[team] }

// SetInput stores the latest input for team. Earlier unread input is
// dropped.
func (m *Match) SetInput(team netconfig.Team, in InputState) {
	if !m.humans[team] {
		return
	}
	m.inputs[team] = in
}

// Tick runs the logic phase: arbiters, possession, drivers and decisions,
// then animation signals.
func (m *Match) Tick(dt float64) {
	m.now += dt
	if m.state == netconfig.MatchStateKickoff || m.state == netconfig.MatchStateGoal {
		m.state = netconfig.MatchStatePlaying
	}

	for t, a := range m.arbiters {
		if m.humans[t] {
			a.Tick(dt, m.inputs[t].Moving())
		}
	}

	for _, p := range m.players {
		p.Possession.Update(m.now)
	}

	for t := range m.teams {
		m.driveTeam(netconfig.Team(t), dt)
	}

	for _, p := range m.players {
		p.Anim.Update(p.Vel, p.Facing, p.Holding(), dt)
		p.State = m.deriveState(p)
	}
}

func (m *Match) driveTeam(team netconfig.Team, dt float64) {
	goal, hasGoal := m.pitch.GoalOf(team.Opponent())
	chaser := m.nearestToBall(team)

	for _, p := range m.teams[team] {
		if p.Manual {
			p.manual.Update(p, m.inputs[team], m.now)
			continue
		}
		d := p.bot.Update(p, BotView{
			Ball:      m.ball,
			Goal:      goal.Center(),
			HasGoal:   hasGoal,
			Chaser:    p == chaser,
			Teammates: m.teammates(p),
		}, m.now, dt)
		if d.Action != ActionNone {
			for _, fn := range m.decisionObservers {
				fn(p, d)
			}
		}
	}
}

// PhysicsTick runs the motion phase: driver velocities, the held-ball
// puppet and auto-kick, integration, contacts, goals and the step budget.
func (m *Match) PhysicsTick(dt float64) {
	for _, p := range m.players {
		if p.Manual {
			p.manual.PhysicsUpdate(p, m.ball, dt)
		} else {
			p.bot.PhysicsUpdate(p, m.ball, dt)
		}
	}

	for _, p := range m.players {
		p.Possession.PhysicsUpdate(m.now, dt)
	}

	if scorer, ok := m.world.Step(m.players, m.ball, dt); ok {
		if m.state != netconfig.MatchStateWaiting {
			m.state = netconfig.MatchStateGoal
		}
		r := m.episode.GoalTouched(scorer)
		blue, purple := m.Score()
		log.Printf("[match] Episode %d: goal for %s after %d steps (%d-%d)", r.Number, scorer, r.Steps, blue, purple)
		m.resetEpisode()
		return
	}

	if m.episode.Step() {
		r := m.episode.Interrupt()
		log.Printf("[match] Episode %d: interrupted after %d steps", r.Number, r.Steps)
		m.resetEpisode()
	}
}

func (m *Match) resetEpisode() {
	m.episode.Reset(m.players, m.ball)
	if m.world != nil {
		m.world.PlaceBall(m.ball)
	}
	for _, p := range m.players {
		p.Anim.reset()
		p.State = netconfig.Idle
	}
	if m.state != netconfig.MatchStateWaiting {
		m.state = netconfig.MatchStateKickoff
	}
	for _, fn := range m.resetObservers {
		fn(m.episode.Number)
	}
}

func (m *Match) handleRelease(r Release) {
	if r.Kind == ReleaseKick && r.Player != nil && r.Player.Anim != nil {
		r.Player.Anim.Trigger(TriggerKick)
	}
	for _, fn := range m.releaseObservers {
		fn(r)
	}
}

func (m *Match) handleContact(p *Player, a Action) {
	for _, fn := range m.contactObservers {
		fn(p, a)
	}
}

// nearestToBall returns the active player of team closest to the ball.
func (m *Match) nearestToBall(team netconfig.Team) *Player {
	var nearest *Player
	best := math.MaxFloat64
	for _, p := range m.teams[team] {
		if !p.Active {
			continue
		}
		if d := p.Pos.DistSqr(m.ball.Pos); d < best {
			best = d
			nearest = p
		}
	}
	return nearest
}

func (m *Match) teammates(p *Player) []*Player {
	mates := make([]*Player, 0, len(m.teams[p.Team])-1)
	for _, o := range m.teams[p.Team] {
		if o != p && o.Active {
			mates = append(mates, o)
		}
	}
	return mates
}

func (m *Match) deriveState(p *Player) netconfig.StateID {
	switch p.Possession.State() {
	case PossessionCharging:
		return netconfig.Charging
	case PossessionDribbling:
		return netconfig.Dribbling
	}
	if !p.Manual {
		if s := p.bot.ClipState(); s != netconfig.StateNone {
			return s
		}
	}
	if p.Vel.Len() >= 0.1 {
		return netconfig.Running
	}
	return netconfig.Idle
}

// AttackDirection returns the unit vector towards the goal team attacks.
func AttackDirection(team netconfig.Team) gamemath.Vec2 {
	return gamemath.V(-team.Direction(), 0)
}
