package core

import (
	"fmt"
	"log"
	"sync"

	"github.com/automoto/kickoff/config"
	"github.com/automoto/kickoff/server/soccer"
	"github.com/automoto/kickoff/shared/messages"
	"github.com/google/uuid"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// Config describes one match server.
type Config struct {
	Name           string
	Version        string // Required client version, empty accepts any
	TickRate       int
	MaxPlayers     int
	PitchName      string
	ReconnectGrace float64 // Seconds a dropped human's seat is held
	InputRate      float64
	InputBurst     int
	RecentResults  int
	Match          soccer.Options
}

// Option customises a Server.
type Option func(*Server)

// WithMetrics reports telemetry to m.
func WithMetrics(m Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithEpisodeSinks persists every finished episode to sinks.
func WithEpisodeSinks(sinks ...EpisodeSink) Option {
	return func(s *Server) { s.sinks = append(s.sinks, sinks...) }
}

// Server runs one match and its client connections. Router callbacks only
// enqueue commands; the game loop goroutine owns the match.
type Server struct {
	cfg       Config
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport

	match   *soccer.Match
	matchID string
	net     *netEntities

	inbox   chan any
	seats   *SeatTable
	inputs  *InputGate
	metrics Metrics
	sinks   []EpisodeSink
	results *ResultLog

	contactPower struct{ shot, pass float64 }
	pendingReset string

	peers map[string]Peer
	mu    sync.RWMutex
}

// NewServer creates the match, its synced entities and the router
// callbacks. protocol.RegisterComponents must have been called.
func NewServer(cfg Config, opts ...Option) (*Server, error) {
	s, err := newServer(cfg, opts...)
	if err != nil {
		return nil, err
	}

	s.world = donburi.NewWorld()
	srvsync.UseEsync(s.world)

	s.net, err = newNetEntities(s.world, s.match)
	if err != nil {
		return nil, fmt.Errorf("create net entities: %w", err)
	}

	s.setupRouterCallbacks()
	return s, nil
}

// newServer builds everything that does not touch the network.
func newServer(cfg Config, opts ...Option) (*Server, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.InputRate <= 0 {
		cfg.InputRate = config.Network.InputRate
	}
	if cfg.InputBurst <= 0 {
		cfg.InputBurst = config.Network.InputBurst
	}
	if cfg.RecentResults <= 0 {
		cfg.RecentResults = config.Network.RecentResults
	}

	match, err := soccer.NewMatch(cfg.Match)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		match:   match,
		matchID: uuid.NewString(),
		inbox:   make(chan any, inboxSize),
		seats:   NewSeatTable(cfg.MaxPlayers),
		inputs:  NewInputGate(cfg.InputRate, cfg.InputBurst),
		metrics: nopMetrics{},
		peers:   make(map[string]Peer),
	}
	s.contactPower.shot = config.KickContact.KickPower
	s.contactPower.pass = config.KickContact.PassPower
	for _, opt := range opts {
		opt(s)
	}
	s.results = NewResultLog(cfg.RecentResults, s.sinks...)
	s.loop = NewGameLoop(s, cfg.TickRate)

	s.wireMatchEvents()
	s.match.Init()
	return s, nil
}

// Start runs the game loop and blocks serving websockets on port.
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop halts the game loop.
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.addPeer(client)
		log.Printf("[server] Client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] Client %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("[server] Client %s disconnected", client.Id())
		}
		s.removePeer(client.Id())
		s.enqueue(leaveCommand{clientID: client.Id()})
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(joinCommand{peer: client, req: req})
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.onPlayerInput(client.Id(), input)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] Client error: %v", err)
	})
}

func (s *Server) onPlayerInput(clientID string, input messages.PlayerInput) {
	if !s.inputs.Allow(clientID) {
		s.metrics.InputDropped("rate")
		return
	}
	s.enqueue(inputCommand{clientID: clientID, input: input})
}

func (s *Server) addPeer(p Peer) {
	s.mu.Lock()
	s.peers[p.Id()] = p
	s.mu.Unlock()
}

func (s *Server) removePeer(id string) {
	s.mu.Lock()
	delete(s.peers, id)
	s.mu.Unlock()
}

// World returns the ECS world holding the synced mirrors.
func (s *Server) World() donburi.World {
	return s.world
}

// MatchID identifies this run of the match in stored results.
func (s *Server) MatchID() string { return s.matchID }

// Results returns the in-memory log of finished episodes.
func (s *Server) Results() *ResultLog { return s.results }

// PlayerCount returns the number of seated humans.
func (s *Server) PlayerCount() int {
	return s.seats.PlayerCount()
}

func (s *Server) MaxPlayers() int { return s.seats.MaxPlayers() }

// Score returns the last score published by the game loop. Safe to call
// from any goroutine.
func (s *Server) Score() (blue, purple int) {
	return s.loop.Score()
}
