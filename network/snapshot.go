package network

import (
	"github.com/automoto/kickoff/shared/netcomponents"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/leap-fish/necs/esync"
)

// View is one decoded world snapshot.
type View struct {
	Match   *netcomponents.NetMatchData
	Ball    *netcomponents.NetBallData
	Players map[int]netcomponents.NetPlayerData
}

// DecodeSnapshot deserializes every component in snap. Components that
// fail to decode are skipped.
func DecodeSnapshot(snap esync.WorldSnapshot) View {
	v := View{Players: map[int]netcomponents.NetPlayerData{}}
	for _, ent := range snap {
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			v.add(instance)
		}
	}
	return v
}

func (v *View) add(data any) {
	switch d := data.(type) {
	case netcomponents.NetPlayerData:
		v.Players[d.PlayerID] = d
	case netcomponents.NetBallData:
		v.Ball = &d
	case netcomponents.NetMatchData:
		v.Match = &d
	}
}

// Controlled returns the player team's human drives.
func (v View) Controlled(team netconfig.Team) (netcomponents.NetPlayerData, bool) {
	if v.Match == nil {
		return netcomponents.NetPlayerData{}, false
	}
	p, ok := v.Players[v.Match.Controlled[team]]
	return p, ok
}
