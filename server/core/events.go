package core

import (
	"log"

	"github.com/automoto/kickoff/server/soccer"
	"github.com/automoto/kickoff/shared/messages"
	"github.com/automoto/kickoff/shared/netconfig"
)

// Metrics receives match telemetry. server/metrics provides the
// Prometheus implementation.
type Metrics interface {
	SetPlayers(n int)
	InputDropped(reason string)
	ObserveTick(seconds float64)
	RecordKick(team netconfig.Team, kind string, power float64)
	RecordTackle(team netconfig.Team)
	RecordControlSwitch(team netconfig.Team)
	RecordEpisode(reason string, steps int)
	RecordGoal(scorer netconfig.Team)
}

type nopMetrics struct{}

func (nopMetrics) SetPlayers(int)                             {}
func (nopMetrics) InputDropped(string)                        {}
func (nopMetrics) ObserveTick(float64)                        {}
func (nopMetrics) RecordKick(netconfig.Team, string, float64) {}
func (nopMetrics) RecordTackle(netconfig.Team)                {}
func (nopMetrics) RecordControlSwitch(netconfig.Team)         {}
func (nopMetrics) RecordEpisode(string, int)                  {}
func (nopMetrics) RecordGoal(netconfig.Team)                  {}

// Peer is a connected client. *router.NetworkClient satisfies it.
type Peer interface {
	Id() string
	SendMessage(msg any) error
}

func (s *Server) send(p Peer, msg any) {
	if err := p.SendMessage(msg); err != nil {
		log.Printf("[server] Send to %s failed: %v", p.Id(), err)
	}
}

// broadcastEvent sends msg to every connected client.
func (s *Server) broadcastEvent(msg any) {
	s.mu.RLock()
	peers := make([]Peer, 0, len(s.peers))
	for _, p := range s.peers {
		peers = append(peers, p)
	}
	s.mu.RUnlock()

	for _, p := range peers {
		s.send(p, msg)
	}
}

// wireMatchEvents turns match observers into client events, metrics and
// stored results. Observers run on the tick goroutine.
func (s *Server) wireMatchEvents() {
	s.match.OnControlChanged(func(c soccer.ControlChange) {
		evt := messages.ControlChangedEvent{Team: c.Team, PlayerID: -1, PreviousID: -1}
		if c.Next != nil {
			evt.PlayerID = c.Next.ID
		}
		if c.Prev != nil {
			evt.PreviousID = c.Prev.ID
		}
		if c.Next != nil {
			s.metrics.RecordControlSwitch(c.Team)
		}
		s.broadcastEvent(evt)
	})

	s.match.OnRelease(func(r soccer.Release) {
		switch r.Kind {
		case soccer.ReleaseKick:
			s.metrics.RecordKick(r.Player.Team, "kick", r.Power)
			s.broadcastEvent(messages.KickEvent{
				PlayerID: r.Player.ID,
				Team:     r.Player.Team,
				Kind:     "kick",
				Power:    r.Power,
				Charge:   r.Charge,
				X:        r.Player.Pos.X,
				Z:        r.Player.Pos.Z,
			})
		case soccer.ReleaseTackle:
			if r.Tackler == nil {
				return
			}
			s.metrics.RecordTackle(r.Tackler.Team)
			s.broadcastEvent(messages.TackleEvent{
				HolderID:  r.Player.ID,
				TacklerID: r.Tackler.ID,
				X:         r.Player.Pos.X,
				Z:         r.Player.Pos.Z,
			})
		}
	})

	s.match.OnContact(func(p *soccer.Player, a soccer.Action) {
		kind := "shot"
		power := s.contactPower.shot
		if a == soccer.ActionPass {
			kind = "pass"
			power = s.contactPower.pass
		}
		s.metrics.RecordKick(p.Team, kind, power)
		s.broadcastEvent(messages.KickEvent{
			PlayerID: p.ID,
			Team:     p.Team,
			Kind:     kind,
			Power:    power,
			X:        p.Pos.X,
			Z:        p.Pos.Z,
		})
	})

	s.match.OnScore(func(blue, purple int) {
		s.broadcastEvent(messages.ScoreUpdateEvent{Blue: blue, Purple: purple})
	})

	s.match.OnEpisodeEnd(func(r soccer.EpisodeResult) {
		s.metrics.RecordEpisode(r.Reason.String(), r.Steps)
		if r.Reason == soccer.EndGoal {
			s.metrics.RecordGoal(r.Scorer)
			s.broadcastEvent(messages.GoalEvent{
				Scorer:  r.Scorer,
				Episode: r.Number,
				Steps:   r.Steps,
				Reward:  r.Rewards[r.Scorer],
			})
		}
		s.results.Add(s.matchID, r)
		s.pendingReset = r.Reason.String()
	})

	s.match.OnReset(func(episode int) {
		reason := s.pendingReset
		if reason == "" {
			reason = "start"
		}
		s.pendingReset = ""
		s.broadcastEvent(messages.EpisodeResetEvent{Episode: episode, Reason: reason})
	})
}
