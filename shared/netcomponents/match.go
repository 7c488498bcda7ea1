package netcomponents

import (
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetMatchData struct {
	MatchID     string
	State       netconfig.MatchStateID
	BlueScore   int
	PurpleScore int
	Episode     int
	Steps       int
	Elapsed     float64 // Seconds since the server started the match
	Controlled  [2]int  // PlayerID each team's human drives, -1 when none
}

var NetMatch = donburi.NewComponentType[NetMatchData]()
