package core

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

type GameLoop struct {
	server   *Server
	tickRate int
	dt       float64
	elapsed  float64
	running  atomic.Bool
	stopChan chan struct{}

	// score is blue<<32 | purple, published for other goroutines.
	score atomic.Uint64
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		dt:       1 / float64(tickRate),
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	g.running.Store(true)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[server] Game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			g.running.Store(false)
			log.Println("[server] Game loop stopped")
			return
		case <-ticker.C:
			start := time.Now()
			g.tick()
			g.server.metrics.ObserveTick(time.Since(start).Seconds())
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

func (g *GameLoop) Running() bool { return g.running.Load() }

// tick runs one fixed step: commands, the logic and physics phases of the
// match, then the mirrors and the network sync.
func (g *GameLoop) tick() {
	s := g.server
	s.ProcessCommands()
	s.expireSeats()

	s.match.Tick(g.dt)
	s.match.PhysicsTick(g.dt)
	g.elapsed += g.dt

	blue, purple := s.match.Score()
	g.score.Store(uint64(uint32(blue))<<32 | uint64(uint32(purple)))

	if s.net == nil {
		return
	}
	s.net.update(s.match, s.matchID, g.elapsed, s.seats)
	if err := srvsync.DoSync(); err != nil {
		log.Printf("[server] Sync error: %v", err)
	}
}

// Score returns the score as of the last tick.
func (g *GameLoop) Score() (blue, purple int) {
	v := g.score.Load()
	return int(v >> 32), int(uint32(v))
}
