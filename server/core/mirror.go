package core

import (
	"fmt"

	"github.com/automoto/kickoff/server/soccer"
	"github.com/automoto/kickoff/shared/netcomponents"
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
)

// netEntities are the synced mirrors of the match: one entity per player,
// one for the ball and one carrying the match header.
type netEntities struct {
	world   donburi.World
	players map[int]donburi.Entity
	ball    donburi.Entity
	match   donburi.Entity
}

func newNetEntities(world donburi.World, m *soccer.Match) (*netEntities, error) {
	n := &netEntities{
		world:   world,
		players: make(map[int]donburi.Entity, len(m.Players())),
	}

	for _, p := range m.Players() {
		e := world.Create(netcomponents.NetPlayer)
		netcomponents.NetPlayer.Set(world.Entry(e), &netcomponents.NetPlayerData{})
		if err := srvsync.NetworkSync(world, &e, srvsync.WithInterp(netcomponents.NetPlayer)); err != nil {
			return nil, fmt.Errorf("sync player %d: %w", p.ID, err)
		}
		n.players[p.ID] = e
	}

	n.ball = world.Create(netcomponents.NetBall)
	netcomponents.NetBall.Set(world.Entry(n.ball), &netcomponents.NetBallData{HolderID: -1})
	if err := srvsync.NetworkSync(world, &n.ball, srvsync.WithInterp(netcomponents.NetBall)); err != nil {
		return nil, fmt.Errorf("sync ball: %w", err)
	}

	n.match = world.Create(netcomponents.NetMatch)
	netcomponents.NetMatch.Set(world.Entry(n.match), &netcomponents.NetMatchData{Controlled: [2]int{-1, -1}})
	if err := srvsync.NetworkSync(world, &n.match, netcomponents.NetMatch); err != nil {
		return nil, fmt.Errorf("sync match: %w", err)
	}
	return n, nil
}

// matchNetworkID returns the id clients use to find the match header.
func (n *netEntities) matchNetworkID() *esync.NetworkId {
	if n == nil || !n.world.Valid(n.match) {
		return nil
	}
	return esync.GetNetworkId(n.world.Entry(n.match))
}

// update copies the simulation into the synced components.
func (n *netEntities) update(m *soccer.Match, matchID string, elapsed float64, seats *SeatTable) {
	if n == nil {
		return
	}
	for _, p := range m.Players() {
		e, ok := n.players[p.ID]
		if !ok || !n.world.Valid(e) {
			continue
		}
		var seq uint32
		if p.Manual {
			if seat := seats.Team(p.Team); seat != nil {
				seq = seat.LastSequence
			}
		}
		writePlayer(netcomponents.NetPlayer.Get(n.world.Entry(e)), p, seq)
	}

	if n.world.Valid(n.ball) {
		writeBall(netcomponents.NetBall.Get(n.world.Entry(n.ball)), m.Ball())
	}
	if n.world.Valid(n.match) {
		writeMatch(netcomponents.NetMatch.Get(n.world.Entry(n.match)), m, matchID, elapsed)
	}
}

func writePlayer(d *netcomponents.NetPlayerData, p *soccer.Player, seq uint32) {
	d.PlayerID = p.ID
	d.Team = p.Team
	d.Role = p.Role
	d.X, d.Z = p.Pos.X, p.Pos.Z
	d.Height = p.Height
	d.Heading = p.Facing.Heading()
	d.StateID = p.State
	d.Manual = p.Manual
	d.LastSequence = seq
	if p.Signals != nil {
		d.Forward = p.Signals.Forward
		d.RunSpeedMult = p.Signals.RunSpeedMult
		d.IsDribbling = p.Signals.IsDribbling
		for _, t := range p.Signals.DrainTriggers() {
			switch t {
			case soccer.TriggerKick:
				d.StateID = netconfig.Kicking
			case soccer.TriggerPass:
				d.StateID = netconfig.Passing
			}
		}
	}
}

func writeBall(d *netcomponents.NetBallData, b *soccer.Ball) {
	d.X, d.Z = b.Pos.X, b.Pos.Z
	d.Height = b.Height
	d.VelX, d.VelZ = b.Vel.X, b.Vel.Z
	d.HolderID = -1
	if b.HeldBy != nil {
		d.HolderID = b.HeldBy.ID
	}
}

func writeMatch(d *netcomponents.NetMatchData, m *soccer.Match, matchID string, elapsed float64) {
	d.MatchID = matchID
	d.State = m.State()
	d.BlueScore, d.PurpleScore = m.Score()
	d.Episode = m.Episode().Number
	d.Steps = m.Episode().Steps()
	d.Elapsed = elapsed
	for _, team := range []netconfig.Team{netconfig.TeamBlue, netconfig.TeamPurple} {
		d.Controlled[team] = -1
		if cur := m.Arbiter(team).Current(); cur != nil {
			d.Controlled[team] = cur.ID
		}
	}
}
