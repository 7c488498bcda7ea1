package soccer

import (
	"math"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/automoto/kickoff/shared/pitchdata"
	"github.com/solarlune/resolv"
)

// Resolv tags
const (
	tagWall   = "wall"
	tagGoal   = "goal"
	tagPlayer = "player"
	tagBall   = "ball"
)

const (
	wallThickness = 1.0
	maxBallSteps  = 8
	playerReach   = 1.8 // Ball heights above this clear the players

	// Resolv rounds bounds to whole units, so bodies live in a space scaled
	// to 16 units per metre.
	unitsPerMeter = 16.0
	cellSize      = 8
)

// pair is an unordered player pair keyed by id.
type pair struct{ a, b int }

func makePair(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// World integrates the ball and players against the pitch walls and
// reports contacts and goals. Resolv works in non-negative coordinates so
// every body is offset by (ox, oz) metres before scaling.
type World struct {
	space  *resolv.Space
	cfg    config.PhysicsConfig
	pitch  *pitchdata.Pitch
	ox, oz float64

	touching map[pair]bool

	// OnPlayerContact is called once when two players start overlapping.
	OnPlayerContact func(a, b *Player)
}

// NewWorld builds the wall and goal geometry for pitch.
func NewWorld(pitch *pitchdata.Pitch, cfg config.PhysicsConfig) *World {
	hl, hw := pitch.HalfLength, pitch.HalfWidth
	reachX := math.Max(pitch.MapWidth/2, hl)
	reachZ := math.Max(pitch.MapHeight/2, hw)
	for _, g := range pitch.Goals {
		reachX = math.Max(reachX, math.Max(math.Abs(g.Min.X), math.Abs(g.Max.X)))
	}
	ox := reachX + 2*wallThickness + 1
	oz := reachZ + 2*wallThickness + 1

	w := &World{
		space:    resolv.NewSpace(int(math.Ceil(2*ox*unitsPerMeter)), int(math.Ceil(2*oz*unitsPerMeter)), cellSize, cellSize),
		cfg:      cfg,
		pitch:    pitch,
		ox:       ox,
		oz:       oz,
		touching: map[pair]bool{},
	}

	t := wallThickness
	// Touchlines
	w.addRect(-reachX-t, -hw-t, reachX+t, -hw, tagWall)
	w.addRect(-reachX-t, hw, reachX+t, hw+t, tagWall)

	blue, _ := pitch.GoalOf(netconfig.TeamBlue)
	purple, _ := pitch.GoalOf(netconfig.TeamPurple)
	w.addEndLine(-hl-t, -hl, hw, blue)
	w.addEndLine(hl, hl+t, hw, purple)

	for _, g := range pitch.Goals {
		w.addGoal(g)
	}
	return w
}

// addEndLine walls off an end line, leaving the goal mouth open.
func (w *World) addEndLine(x0, x1, hw float64, g pitchdata.Goal) {
	if g.Max.Z <= g.Min.Z {
		w.addRect(x0, -hw, x1, hw, tagWall)
		return
	}
	w.addRect(x0, -hw, x1, g.Min.Z, tagWall)
	w.addRect(x0, g.Max.Z, x1, hw, tagWall)
}

// addGoal adds the net walls behind the line and the scoring sensor.
func (w *World) addGoal(g pitchdata.Goal) {
	t := wallThickness
	if g.Center().X < 0 {
		w.addRect(g.Min.X-t, g.Min.Z-t, g.Min.X, g.Max.Z+t, tagWall)
	} else {
		w.addRect(g.Max.X, g.Min.Z-t, g.Max.X+t, g.Max.Z+t, tagWall)
	}
	w.addRect(g.Min.X, g.Min.Z-t, g.Max.X, g.Min.Z, tagWall)
	w.addRect(g.Min.X, g.Max.Z, g.Max.X, g.Max.Z+t, tagWall)

	sensor := w.addRect(g.Min.X, g.Min.Z, g.Max.X, g.Max.Z, tagGoal)
	sensor.Data = g
}

func (w *World) addRect(x0, z0, x1, z1 float64, tags ...string) *resolv.Object {
	width, height := (x1-x0)*unitsPerMeter, (z1-z0)*unitsPerMeter
	obj := resolv.NewObject((x0+w.ox)*unitsPerMeter, (z0+w.oz)*unitsPerMeter, width, height, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	w.space.Add(obj)
	return obj
}

// AddPlayer creates the player's body.
func (w *World) AddPlayer(p *Player) {
	if p == nil || p.body != nil {
		return
	}
	size := 2 * w.cfg.PlayerRadius * unitsPerMeter
	p.body = resolv.NewObject(0, 0, size, size, tagPlayer)
	p.body.SetShape(resolv.NewRectangle(0, 0, size, size))
	p.body.Data = p
	w.space.Add(p.body)
	w.place(p.body, p.Pos)
}

// RemovePlayer drops the player's body and any contact it was part of.
func (w *World) RemovePlayer(p *Player) {
	if p == nil || p.body == nil {
		return
	}
	w.space.Remove(p.body)
	p.body = nil
	for k := range w.touching {
		if k.a == p.ID || k.b == p.ID {
			delete(w.touching, k)
		}
	}
}

// AddBall creates the ball's body.
func (w *World) AddBall(b *Ball) {
	if b == nil || b.body != nil {
		return
	}
	size := 2 * w.cfg.BallRadius * unitsPerMeter
	b.body = resolv.NewObject(0, 0, size, size, tagBall)
	b.body.SetShape(resolv.NewRectangle(0, 0, size, size))
	w.space.Add(b.body)
	w.place(b.body, b.Pos)
}

// place centres obj on a world position.
func (w *World) place(obj *resolv.Object, pos gamemath.Vec2) {
	obj.X = (pos.X+w.ox)*unitsPerMeter - obj.W/2
	obj.Y = (pos.Z+w.oz)*unitsPerMeter - obj.H/2
	obj.Update()
}

func (w *World) centre(obj *resolv.Object) gamemath.Vec2 {
	return gamemath.V(
		(obj.X+obj.W/2)/unitsPerMeter-w.ox,
		(obj.Y+obj.H/2)/unitsPerMeter-w.oz,
	)
}

// sweep moves obj by (dx, dy) space units along one axis, stopping at the
// first wall it would overlap. It reports whether a wall was hit.
func sweep(obj *resolv.Object, dx, dy float64) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	hit := false
	if check := obj.Check(dx, dy, tagWall); check != nil {
		for _, wall := range check.ObjectsByTags(tagWall) {
			if !overlaps(obj, dx, dy, wall) {
				continue
			}
			contact := check.ContactWithObject(wall)
			if dx != 0 {
				dx = contact.X()
			}
			if dy != 0 {
				dy = contact.Y()
			}
			hit = true
			break
		}
	}
	obj.X += dx
	obj.Y += dy
	return hit
}

// overlaps reports whether obj moved by (dx, dy) intersects other.
func overlaps(obj *resolv.Object, dx, dy float64, other *resolv.Object) bool {
	x, y := obj.X+dx, obj.Y+dy
	return x < other.X+other.W && x+obj.W > other.X &&
		y < other.Y+other.H && y+obj.H > other.Y
}

// Step advances one physics tick. It returns the scoring team when the ball
// ends the tick inside a goal.
func (w *World) Step(players []*Player, ball *Ball, dt float64) (netconfig.Team, bool) {
	for _, p := range players {
		if p == nil || p.body == nil {
			continue
		}
		w.place(p.body, p.Pos)
		if !p.Active {
			p.Vel = gamemath.ApplyPlanarFriction(p.Vel, w.cfg.PlayerDrag*dt)
		}
		w.movePlayer(p, dt)
	}

	w.resolveContacts(players)

	if ball == nil || ball.body == nil {
		return netconfig.TeamBlue, false
	}
	if ball.HeldBy == nil {
		w.place(ball.body, ball.Pos)
		w.integrateBall(ball, dt)
		w.deflectBall(players, ball)
	} else {
		w.carryBall(ball)
	}
	return w.goalCheck(ball)
}

// PlaceBall moves the ball's body to the ball's position without checking
// walls, used after a reset teleports the ball.
func (w *World) PlaceBall(b *Ball) {
	if b == nil || b.body == nil {
		return
	}
	w.place(b.body, b.Pos)
}

// carryBall follows a held ball from where its body was last tick to where
// the holder puppeted it, stopping at walls. A ball dribbled into a
// touchline stays on the pitch side of it.
func (w *World) carryBall(b *Ball) {
	d := b.Pos.Sub(w.centre(b.body))
	steps := 1
	if dist := d.Len(); dist > w.cfg.BallRadius && w.cfg.BallRadius > 0 {
		steps = int(math.Ceil(dist / w.cfg.BallRadius))
	}
	step := d.Scale(unitsPerMeter / float64(steps))

	hit := false
	for i := 0; i < steps; i++ {
		if sweep(b.body, step.X, 0) {
			hit = true
			step.X = 0
		}
		if sweep(b.body, 0, step.Z) {
			hit = true
			step.Z = 0
		}
		b.body.Update()
	}
	if hit {
		b.Pos = w.centre(b.body)
	}
}

func (w *World) movePlayer(p *Player, dt float64) {
	obj := p.body
	if sweep(obj, p.Vel.X*dt*unitsPerMeter, 0) {
		p.Vel.X = 0
	}
	if sweep(obj, 0, p.Vel.Z*dt*unitsPerMeter) {
		p.Vel.Z = 0
	}
	obj.Update()
	p.Pos = w.centre(obj)
}

func (w *World) integrateBall(b *Ball, dt float64) {
	steps := 1
	if travel := b.Speed() * dt; travel > w.cfg.BallRadius && w.cfg.BallRadius > 0 {
		steps = int(math.Min(math.Ceil(travel/w.cfg.BallRadius), maxBallSteps))
	}
	h := dt / float64(steps)
	for i := 0; i < steps; i++ {
		w.stepBall(b, h)
	}
	b.Pos = w.centre(b.body)
}

func (w *World) stepBall(b *Ball, dt float64) {
	grounded := true
	if b.Gravity {
		b.Height, b.VertVel, grounded = gamemath.StepHeight(b.Height, b.VertVel, w.cfg.Gravity, w.cfg.BallRadius, w.cfg.BallRestitution, dt)
	}
	if grounded {
		b.Vel = gamemath.ApplyPlanarFriction(b.Vel, w.cfg.BallRollDrag*dt)
	}

	obj := b.body
	if sweep(obj, b.Vel.X*dt*unitsPerMeter, 0) {
		b.Vel.X = -b.Vel.X * w.cfg.WallRestitution
	}
	if sweep(obj, 0, b.Vel.Z*dt*unitsPerMeter) {
		b.Vel.Z = -b.Vel.Z * w.cfg.WallRestitution
	}
	obj.Update()
}

// resolveContacts reports new player overlaps and pushes overlapping
// players apart.
func (w *World) resolveContacts(players []*Player) {
	minDist := 2 * w.cfg.PlayerRadius
	now := map[pair]bool{}

	for _, p := range players {
		if p == nil || p.body == nil {
			continue
		}
		check := p.body.Check(0, 0, tagPlayer)
		if check == nil {
			continue
		}
		for _, obj := range check.ObjectsByTags(tagPlayer) {
			other, ok := obj.Data.(*Player)
			if !ok || other == p || other.ID < p.ID {
				continue
			}
			delta := other.Pos.Sub(p.Pos)
			dist := delta.Len()
			if dist >= minDist {
				continue
			}

			key := makePair(p.ID, other.ID)
			now[key] = true
			if !w.touching[key] && w.OnPlayerContact != nil {
				w.OnPlayerContact(p, other)
			}

			n := delta.Normalize()
			if n.IsZero() {
				n = gamemath.V(1, 0)
			}
			push := n.Scale((minDist - dist) / 2)
			p.Pos = p.Pos.Sub(push)
			other.Pos = other.Pos.Add(push)
			w.place(p.body, p.Pos)
			w.place(other.body, other.Pos)
		}
	}
	w.touching = now
}

// deflectBall bounces a free ball off players it overlaps.
func (w *World) deflectBall(players []*Player, b *Ball) {
	reach := w.cfg.PlayerRadius + w.cfg.BallRadius
	for _, p := range players {
		if p == nil || b.IgnoresCollisionWith(p) {
			continue
		}
		if b.Height > playerReach {
			continue
		}
		delta := b.Pos.Sub(p.Pos)
		dist := delta.Len()
		if dist >= reach {
			continue
		}
		n := delta.Normalize()
		if n.IsZero() {
			n = p.Facing.Normalize()
		}
		rel := b.Vel.Sub(p.Vel)
		if vn := rel.Dot(n); vn < 0 {
			b.Vel = b.Vel.Sub(n.Scale((1 + w.cfg.WallRestitution) * vn))
		}
		b.Pos = p.Pos.Add(n.Scale(reach))
		w.place(b.body, b.Pos)
	}
}

func (w *World) goalCheck(b *Ball) (netconfig.Team, bool) {
	check := b.body.Check(0, 0, tagGoal)
	if check == nil {
		return netconfig.TeamBlue, false
	}
	for _, obj := range check.ObjectsByTags(tagGoal) {
		g, ok := obj.Data.(pitchdata.Goal)
		if ok && g.Contains(b.Pos) {
			return g.Team.Opponent(), true
		}
	}
	return netconfig.TeamBlue, false
}
