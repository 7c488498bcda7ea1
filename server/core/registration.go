package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// StatusSource is what the heartbeat reports. *Server implements it.
type StatusSource interface {
	PlayerCount() int
	MaxPlayers() int
	Score() (blue, purple int)
	MatchID() string
}

// Registration handles registering and heartbeating with the master server.
type Registration struct {
	masterURL string
	serverID  string
	name      string
	address   string
	version   string
	region    string
	pitch     string
	interval  time.Duration
	source    StatusSource
	client    *http.Client
	stopCh    chan struct{}
}

type regRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
	Pitch      string `json:"pitch"`
	MatchID    string `json:"matchId"`
}

type regResponse struct {
	ID string `json:"id"`
}

type heartbeatRequest struct {
	ID          string `json:"id"`
	Players     int    `json:"players"`
	BlueScore   int    `json:"blueScore"`
	PurpleScore int    `json:"purpleScore"`
}

// RegistrationConfig is the identity a server advertises to the master.
type RegistrationConfig struct {
	MasterURL string
	Name      string
	Address   string
	Version   string
	Region    string
	Pitch     string
	Interval  time.Duration
}

func NewRegistration(cfg RegistrationConfig, source StatusSource) *Registration {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Registration{
		masterURL: cfg.MasterURL,
		name:      cfg.Name,
		address:   cfg.Address,
		version:   cfg.Version,
		region:    cfg.Region,
		pitch:     cfg.Pitch,
		interval:  interval,
		source:    source,
		client:    &http.Client{Timeout: 5 * time.Second},
		stopCh:    make(chan struct{}),
	}
}

func (r *Registration) Start() {
	if err := r.register(); err != nil {
		log.Printf("[registration] initial registration failed: %v", err)
	}
	go r.heartbeatLoop()
}

func (r *Registration) Stop() {
	close(r.stopCh)
}

// ServerID returns the id the master assigned, empty before registering.
func (r *Registration) ServerID() string { return r.serverID }

func (r *Registration) register() error {
	body, err := json.Marshal(regRequest{
		Name:       r.name,
		Address:    r.address,
		Players:    r.source.PlayerCount(),
		MaxPlayers: r.source.MaxPlayers(),
		Version:    r.version,
		Region:     r.region,
		Pitch:      r.pitch,
		MatchID:    r.source.MatchID(),
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.masterURL+"/servers/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result regResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	r.serverID = result.ID
	log.Printf("[registration] registered with master (id=%s)", r.serverID)
	return nil
}

func (r *Registration) heartbeatLoop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.sendHeartbeat(); err != nil {
				log.Printf("[registration] heartbeat failed: %v", err)
			}
		}
	}
}

func (r *Registration) sendHeartbeat() error {
	if r.serverID == "" {
		return r.register()
	}

	blue, purple := r.source.Score()
	body, err := json.Marshal(heartbeatRequest{
		ID:          r.serverID,
		Players:     r.source.PlayerCount(),
		BlueScore:   blue,
		PurpleScore: purple,
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.masterURL+"/servers/heartbeat", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Println("[registration] master lost our registration, re-registering")
		return r.register()
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}
