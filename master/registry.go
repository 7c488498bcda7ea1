// Package master is the server browser: match servers register and
// heartbeat here, clients list them.
package master

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ServerInfo describes a match server visible to clients.
type ServerInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Players     int    `json:"players"`
	MaxPlayers  int    `json:"maxPlayers"`
	Version     string `json:"version"`
	Region      string `json:"region"`
	Pitch       string `json:"pitch"`
	MatchID     string `json:"matchId"`
	BlueScore   int    `json:"blueScore"`
	PurpleScore int    `json:"purpleScore"`
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	Region  string
	Version string
	HasRoom bool
}

func (f Filter) match(s ServerInfo) bool {
	if f.Region != "" && s.Region != f.Region {
		return false
	}
	if f.Version != "" && s.Version != f.Version {
		return false
	}
	if f.HasRoom && s.MaxPlayers > 0 && s.Players >= s.MaxPlayers {
		return false
	}
	return true
}

type serverRecord struct {
	ServerInfo
	LastSeen time.Time
}

// Registry is an in-memory store of active match servers with TTL-based expiry.
type Registry struct {
	mu      sync.RWMutex
	servers map[string]*serverRecord
	ttl     time.Duration
	now     func() time.Time
	stopCh  chan struct{}
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		servers: make(map[string]*serverRecord),
		ttl:     ttl,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
}

// Start runs the expiry sweep every interval until Stop.
func (r *Registry) Start(interval time.Duration) {
	go r.cleanupLoop(interval)
}

func (r *Registry) Stop() {
	close(r.stopCh)
}

func (r *Registry) Register(info ServerInfo) string {
	info.ID = uuid.NewString()

	r.mu.Lock()
	r.servers[info.ID] = &serverRecord{
		ServerInfo: info,
		LastSeen:   r.now(),
	}
	r.mu.Unlock()

	return info.ID
}

// Heartbeat refreshes id and its live numbers. False means the id is
// unknown or expired and the server must register again.
func (r *Registry) Heartbeat(id string, players, blue, purple int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.servers[id]
	if !ok {
		return false
	}
	rec.LastSeen = r.now()
	rec.Players = players
	rec.BlueScore = blue
	rec.PurpleScore = purple
	return true
}

// List returns the servers matching f sorted by name.
func (r *Registry) List(f Filter) []ServerInfo {
	r.mu.RLock()
	result := make([]ServerInfo, 0, len(r.servers))
	for _, rec := range r.servers {
		if f.match(rec.ServerInfo) {
			result = append(result, rec.ServerInfo)
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Expire drops servers not seen for a TTL and returns how many went.
func (r *Registry) Expire() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, rec := range r.servers {
		if now.Sub(rec.LastSeen) >= r.ttl {
			log.Printf("[master] expired server %q (id=%s, last seen %s ago)",
				rec.Name, id, now.Sub(rec.LastSeen).Round(time.Second))
			delete(r.servers, id)
			n++
		}
	}
	return n
}

func (r *Registry) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.Expire()
		}
	}
}
