// Package pitchdata provides TMX pitch parsing shared between the match
// server and tools. Pure data only, no simulation or network types.
package pitchdata

import (
	"github.com/automoto/kickoff/shared/gamemath"
	"github.com/automoto/kickoff/shared/netconfig"
)

// Pitch holds the playable area, goal mouths and ball spot in world
// coordinates centred on the kick-off spot.
type Pitch struct {
	Name       string
	HalfLength float64 // X half-extent of the field
	HalfWidth  float64 // Z half-extent of the field
	MapWidth   float64 // Full map extent including the area behind the goals
	MapHeight  float64
	Goals      []Goal
	BallSpot   gamemath.Vec2
}

// Goal is an axis-aligned goal mouth defended by Team. A ball inside it
// scores for the opponent.
type Goal struct {
	Team     netconfig.Team
	Min, Max gamemath.Vec2
}

// Center returns the middle of the goal mouth.
func (g Goal) Center() gamemath.Vec2 {
	return g.Min.Lerp(g.Max, 0.5)
}

// Contains reports whether p lies inside the goal rectangle.
func (g Goal) Contains(p gamemath.Vec2) bool {
	return p.X >= g.Min.X && p.X <= g.Max.X && p.Z >= g.Min.Z && p.Z <= g.Max.Z
}

// GoalOf returns the goal defended by team.
func (p *Pitch) GoalOf(team netconfig.Team) (Goal, bool) {
	for _, g := range p.Goals {
		if g.Team == team {
			return g, true
		}
	}
	return Goal{}, false
}

// Default builds a rectangular pitch with goals centred on both end lines.
func Default(halfLength, halfWidth, goalWidth, goalDepth, margin float64) *Pitch {
	gw := goalWidth / 2
	return &Pitch{
		Name:       "default",
		HalfLength: halfLength,
		HalfWidth:  halfWidth,
		MapWidth:   2 * (halfLength + margin),
		MapHeight:  2 * (halfWidth + margin),
		Goals: []Goal{
			{
				Team: netconfig.TeamBlue,
				Min:  gamemath.V(-halfLength-goalDepth, -gw),
				Max:  gamemath.V(-halfLength, gw),
			},
			{
				Team: netconfig.TeamPurple,
				Min:  gamemath.V(halfLength, -gw),
				Max:  gamemath.V(halfLength+goalDepth, gw),
			},
		},
	}
}
