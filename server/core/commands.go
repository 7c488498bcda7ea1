package core

import (
	"errors"
	"log"

	"github.com/automoto/kickoff/server/soccer"
	"github.com/automoto/kickoff/shared/messages"
)

const inboxSize = 256

// Commands are produced by router callbacks and consumed by the game loop,
// so match state is only touched from the tick goroutine.
type joinCommand struct {
	peer Peer
	req  messages.JoinRequest
}

type leaveCommand struct {
	clientID string
}

type inputCommand struct {
	clientID string
	input    messages.PlayerInput
}

// enqueue hands cmd to the game loop. A full inbox drops inputs but blocks
// for joins and leaves.
func (s *Server) enqueue(cmd any) {
	if _, ok := cmd.(inputCommand); ok {
		select {
		case s.inbox <- cmd:
		default:
			s.metrics.InputDropped("queue_full")
		}
		return
	}
	s.inbox <- cmd
}

// ProcessCommands drains the inbox. Called once per tick before the match
// advances.
func (s *Server) ProcessCommands() {
	for {
		select {
		case cmd := <-s.inbox:
			s.handleCommand(cmd)
		default:
			return
		}
	}
}

func (s *Server) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case joinCommand:
		s.handleJoin(c.peer, c.req)
	case leaveCommand:
		s.handleLeave(c.clientID)
	case inputCommand:
		s.handleInput(c.clientID, c.input)
	}
}

func (s *Server) handleJoin(p Peer, req messages.JoinRequest) {
	if s.cfg.Version != "" && req.Version != s.cfg.Version {
		log.Printf("[server] Rejecting %s: version %q, want %q", p.Id(), req.Version, s.cfg.Version)
		s.send(p, messages.JoinRejected{Reason: "version mismatch"})
		return
	}

	seat, err := s.seats.Join(p.Id(), req.PlayerName, req.PreferredTeam, req.ReconnectToken)
	if err != nil {
		reason := err.Error()
		if errors.Is(err, ErrAlreadyJoined) {
			reason = "already joined"
		}
		log.Printf("[server] Rejecting %s: %v", p.Id(), err)
		s.send(p, messages.JoinRejected{Reason: reason})
		return
	}

	s.match.SetHuman(seat.Team, true)
	seat.LastSequence = 0

	accepted := messages.JoinAccepted{
		Team:           seat.Team,
		ReconnectToken: seat.Token,
		MatchID:        s.matchID,
		ServerName:     s.cfg.Name,
		TickRate:       s.cfg.TickRate,
		Pitch:          s.cfg.PitchName,
	}
	if nid := s.net.matchNetworkID(); nid != nil {
		accepted.NetworkID = *nid
	}
	s.send(p, accepted)
	s.metrics.SetPlayers(s.seats.PlayerCount())

	log.Printf("[server] %s (%q) joined %s", p.Id(), seat.PlayerName, seat.Team)
}

func (s *Server) handleLeave(clientID string) {
	s.inputs.Forget(clientID)

	seat := s.seats.Disconnect(clientID, s.match.Now())
	if seat == nil {
		return
	}
	s.match.SetHuman(seat.Team, false)
	s.metrics.SetPlayers(s.seats.PlayerCount())

	log.Printf("[server] %s left %s, bots take over", clientID, seat.Team)
}

// expireSeats frees seats nobody reclaimed within the reconnect grace.
func (s *Server) expireSeats() {
	for _, team := range s.seats.Expire(s.match.Now(), s.cfg.ReconnectGrace) {
		log.Printf("[server] Seat on %s expired", team)
	}
}

func (s *Server) handleInput(clientID string, in messages.PlayerInput) {
	seat, ok := s.seats.Lookup(clientID)
	if !ok {
		return
	}
	if staleSequence(seat.LastSequence, in.Sequence) {
		s.metrics.InputDropped("stale")
		return
	}
	seat.LastSequence = in.Sequence
	s.match.SetInput(seat.Team, soccer.InputFromActions(in.Actions))
}
