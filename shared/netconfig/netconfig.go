// Package netconfig defines lightweight types shared between the match
// server, clients and the master for network serialization. It has no
// dependencies so every binary can import it.
package netconfig

// Team identifies one of the two sides of a match.
type Team int

const (
	TeamBlue Team = iota
	TeamPurple
)

// Opponent returns the other side.
func (t Team) Opponent() Team {
	if t == TeamBlue {
		return TeamPurple
	}
	return TeamBlue
}

// Direction is the sign of the side of the pitch a team defends on the X
// axis: Blue defends negative X and attacks towards positive X.
func (t Team) Direction() float64 {
	if t == TeamBlue {
		return -1
	}
	return 1
}

func (t Team) String() string {
	switch t {
	case TeamBlue:
		return "blue"
	case TeamPurple:
		return "purple"
	}
	return "unknown"
}

// ParseTeam maps a team name (as used in TMX properties and config files)
// to a Team. Unknown names report false.
func ParseTeam(name string) (Team, bool) {
	switch name {
	case "blue", "Blue":
		return TeamBlue, true
	case "purple", "Purple":
		return TeamPurple, true
	}
	return TeamBlue, false
}

// Role is a player's formation role.
type Role int

const (
	RoleStriker Role = iota
	RoleDefender
	RoleGoalie
)

func (r Role) String() string {
	switch r {
	case RoleStriker:
		return "striker"
	case RoleDefender:
		return "defender"
	case RoleGoalie:
		return "goalie"
	}
	return "unknown"
}

// ParseRole maps a role name to a Role. Unknown names fall back to striker.
func ParseRole(name string) Role {
	switch name {
	case "defender", "Defender":
		return RoleDefender
	case "goalie", "Goalie":
		return RoleGoalie
	}
	return RoleStriker
}

// StateID identifies a player's possession/animation state.
type StateID int

const (
	StateNone StateID = -1

	Idle StateID = iota
	Running
	Dribbling
	Charging
	Kicking
	Passing
)

// StateToClipName maps StateID to the animation clip a client plays.
var StateToClipName = map[StateID]string{
	Idle:      "idle",
	Running:   "run",
	Dribbling: "dribble",
	Charging:  "charge",
	Kicking:   "Strike Foward Jog",
	Passing:   "Soccer Pass",
}

func (s StateID) String() string {
	if name, ok := StateToClipName[s]; ok {
		return name
	}
	return "unknown"
}

// MatchStateID represents the current state of a match.
type MatchStateID int

const (
	MatchStateWaiting MatchStateID = iota // No human connected yet
	MatchStateKickoff                     // Episode was just reset
	MatchStatePlaying                     // Ball in play
	MatchStateGoal                        // Goal scored, reset pending
)

// ActionID represents a logical input action polled once per tick.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionDash
	ActionKick
	ActionCount // Must be last - used for array sizing
)
