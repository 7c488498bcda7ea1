package messages

import (
	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/leap-fish/necs/esync"
)

// JoinRequest is sent by a client after connecting to request a seat.
// PreferredTeam is a team name; empty takes whichever side is free.
type JoinRequest struct {
	Version        string
	PlayerName     string
	PreferredTeam  string
	ReconnectToken string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	NetworkID      esync.NetworkId // Match entity carrying NetMatch
	Team           netconfig.Team
	ReconnectToken string
	MatchID        string
	ServerName     string
	TickRate       int
	Pitch          string
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
