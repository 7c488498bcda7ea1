package messages

import "github.com/automoto/kickoff/shared/netconfig"

// ControlChangedEvent is broadcast when a team's human starts driving a
// different player. PlayerID is -1 when control returns to the bots.
type ControlChangedEvent struct {
	Team       netconfig.Team
	PlayerID   int
	PreviousID int
}

// KickEvent is broadcast when a ball leaves a player's feet through a
// charged kick or an autonomous shot or pass.
type KickEvent struct {
	PlayerID int
	Team     netconfig.Team
	Kind     string // "kick", "shot" or "pass"
	Power    float64
	Charge   float64 // 0.0 to 1.0, charged kicks only
	X, Z     float64
}

// TackleEvent is broadcast when an opponent knocks the ball off its holder.
type TackleEvent struct {
	HolderID  int
	TacklerID int
	X, Z      float64
}

// GoalEvent is broadcast when the ball crosses a goal line.
type GoalEvent struct {
	Scorer  netconfig.Team
	Episode int
	Steps   int
	Reward  float64
}

// ScoreUpdateEvent is broadcast when scores change
type ScoreUpdateEvent struct {
	Blue   int
	Purple int
}

// EpisodeResetEvent is broadcast after players and ball return to their
// kick-off spots.
type EpisodeResetEvent struct {
	Episode int
	Reason  string // "goal", "timeout" or "start"
}
