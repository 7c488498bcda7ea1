package core

import (
	"errors"
	"sync"

	"github.com/automoto/kickoff/shared/netconfig"
	"github.com/google/uuid"
)

var (
	ErrServerFull    = errors.New("server full")
	ErrTeamTaken     = errors.New("team already has a player")
	ErrAlreadyJoined = errors.New("client already joined")
)

// Seat is a human's place on a team. It outlives the connection so the
// same token can reclaim it after a drop.
type Seat struct {
	Team         netconfig.Team
	Token        string
	PlayerName   string
	ClientID     string // empty while the owner is disconnected
	LastSequence uint32
	LeftAt       float64 // match time of the last disconnect
}

// SeatTable assigns at most one human per team. It is safe for concurrent
// use; PlayerCount is read from the registration goroutine.
type SeatTable struct {
	mu       sync.RWMutex
	max      int
	byTeam   [2]*Seat
	byClient map[string]*Seat
}

func NewSeatTable(maxPlayers int) *SeatTable {
	if maxPlayers <= 0 || maxPlayers > 2 {
		maxPlayers = 2
	}
	return &SeatTable{
		max:      maxPlayers,
		byClient: make(map[string]*Seat),
	}
}

// Join seats clientID. A token matching a vacated seat reclaims it,
// otherwise the preferred team is used when free and the other side when
// not.
func (t *SeatTable) Join(clientID, playerName, preferred, token string) (*Seat, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byClient[clientID]; ok {
		return nil, ErrAlreadyJoined
	}

	if token != "" {
		for _, s := range t.byTeam {
			if s != nil && s.Token == token && s.ClientID == "" {
				s.ClientID = clientID
				if playerName != "" {
					s.PlayerName = playerName
				}
				t.byClient[clientID] = s
				return s, nil
			}
		}
	}

	if t.occupied() >= t.max {
		return nil, ErrServerFull
	}

	team, ok := t.pickTeam(preferred)
	if !ok {
		return nil, ErrTeamTaken
	}

	s := &Seat{
		Team:       team,
		Token:      uuid.NewString(),
		PlayerName: playerName,
		ClientID:   clientID,
	}
	t.byTeam[team] = s
	t.byClient[clientID] = s
	return s, nil
}

func (t *SeatTable) pickTeam(preferred string) (netconfig.Team, bool) {
	if team, ok := netconfig.ParseTeam(preferred); ok && t.byTeam[team] == nil {
		return team, true
	}
	for _, team := range []netconfig.Team{netconfig.TeamBlue, netconfig.TeamPurple} {
		if t.byTeam[team] == nil {
			return team, true
		}
	}
	return netconfig.TeamBlue, false
}

// occupied counts seats held by a connected or reconnecting human.
func (t *SeatTable) occupied() int {
	n := 0
	for _, s := range t.byTeam {
		if s != nil {
			n++
		}
	}
	return n
}

// Disconnect detaches clientID from its seat but keeps the seat for a
// reconnect. It returns the seat, or nil if the client never joined.
func (t *SeatTable) Disconnect(clientID string, now float64) *Seat {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.byClient[clientID]
	if !ok {
		return nil
	}
	delete(t.byClient, clientID)
	s.ClientID = ""
	s.LeftAt = now
	return s
}

// Expire vacates seats whose owner has been gone longer than grace and
// returns their teams.
func (t *SeatTable) Expire(now, grace float64) []netconfig.Team {
	t.mu.Lock()
	defer t.mu.Unlock()

	var freed []netconfig.Team
	for team, s := range t.byTeam {
		if s != nil && s.ClientID == "" && now-s.LeftAt >= grace {
			t.byTeam[team] = nil
			freed = append(freed, netconfig.Team(team))
		}
	}
	return freed
}

// Lookup returns the seat of a connected client.
func (t *SeatTable) Lookup(clientID string) (*Seat, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.byClient[clientID]
	return s, ok
}

// Team returns the seat on team, connected or not.
func (t *SeatTable) Team(team netconfig.Team) *Seat {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byTeam[team]
}

// PlayerCount returns the number of connected humans.
func (t *SeatTable) PlayerCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byClient)
}

func (t *SeatTable) MaxPlayers() int { return t.max }
