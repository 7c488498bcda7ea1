package network

import (
	"fmt"
	"math"

	"github.com/automoto/kickoff/shared/netconfig"
)

// Patterns lists the scripted inputs a headless client can play.
var Patterns = []string{"idle", "sweep", "attack"}

// Script produces the actions held at a given time since joining.
type Script struct {
	pattern string
	team    netconfig.Team
}

func NewScript(pattern string, team netconfig.Team) (Script, error) {
	for _, p := range Patterns {
		if p == pattern {
			return Script{pattern: pattern, team: team}, nil
		}
	}
	return Script{}, fmt.Errorf("unknown input pattern %q", pattern)
}

// Actions returns the held actions at t seconds.
//
// sweep walks up, right, down and left for a second each. attack runs at
// the opponent goal with dash held and charges a kick for half a second
// out of every two.
func (s Script) Actions(t float64) map[netconfig.ActionID]bool {
	actions := make(map[netconfig.ActionID]bool)
	switch s.pattern {
	case "sweep":
		dirs := [...]netconfig.ActionID{
			netconfig.ActionMoveUp,
			netconfig.ActionMoveRight,
			netconfig.ActionMoveDown,
			netconfig.ActionMoveLeft,
		}
		actions[dirs[int(t)%len(dirs)]] = true
	case "attack":
		if s.team == netconfig.TeamBlue {
			actions[netconfig.ActionMoveRight] = true
		} else {
			actions[netconfig.ActionMoveLeft] = true
		}
		actions[netconfig.ActionDash] = true
		if math.Mod(t, 2) >= 1.5 {
			actions[netconfig.ActionKick] = true
		}
	}
	return actions
}
