// Package network is the headless client side of the match protocol: it
// joins a server, streams input and decodes the synced state.
package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/kickoff/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	default:
		return "disconnected"
	}
}

// JoinOptions is what the client asks for when it joins.
type JoinOptions struct {
	Version        string
	PlayerName     string
	PreferredTeam  string
	ReconnectToken string
}

// Client manages a WebSocket connection to a match server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	joined    messages.JoinAccepted
	conn      *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	controlCh chan messages.ControlChangedEvent
	kickCh    chan messages.KickEvent
	tackleCh  chan messages.TackleEvent
	goalCh    chan messages.GoalEvent
	resetCh   chan messages.EpisodeResetEvent
	scoreCh   chan messages.ScoreUpdateEvent
}

func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		controlCh:  make(chan messages.ControlChangedEvent, 16),
		kickCh:     make(chan messages.KickEvent, 16),
		tackleCh:   make(chan messages.TackleEvent, 16),
		goalCh:     make(chan messages.GoalEvent, 4),
		resetCh:    make(chan messages.EpisodeResetEvent, 4),
		scoreCh:    make(chan messages.ScoreUpdateEvent, 4),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address string, opts JoinOptions) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.SendMessage(messages.JoinRequest{
			Version:        opts.Version,
			PlayerName:     opts.PlayerName,
			PreferredTeam:  opts.PreferredTeam,
			ReconnectToken: opts.ReconnectToken,
		}); err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: team=%s server=%s pitch=%s tickRate=%d",
			msg.Team, msg.ServerName, msg.Pitch, msg.TickRate)
		c.mu.Lock()
		c.joined = msg
		c.state = StateJoinedGame
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.ControlChangedEvent) { offer(c.controlCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.KickEvent) { offer(c.kickCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.TackleEvent) { offer(c.tackleCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.GoalEvent) { offer(c.goalCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.EpisodeResetEvent) { offer(c.resetCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.ScoreUpdateEvent) { offer(c.scoreCh, evt) })

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Joined returns the accepted join, zero before the server answers.
func (c *Client) Joined() messages.JoinAccepted {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.joined
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// Events holds everything the server broadcast since the last drain.
type Events struct {
	Control []messages.ControlChangedEvent
	Kicks   []messages.KickEvent
	Tackles []messages.TackleEvent
	Goals   []messages.GoalEvent
	Resets  []messages.EpisodeResetEvent
	Scores  []messages.ScoreUpdateEvent
}

// DrainEvents returns all pending events, non-blocking.
func (c *Client) DrainEvents() Events {
	return Events{
		Control: drainChan(c.controlCh),
		Kicks:   drainChan(c.kickCh),
		Tackles: drainChan(c.tackleCh),
		Goals:   drainChan(c.goalCh),
		Resets:  drainChan(c.resetCh),
		Scores:  drainChan(c.scoreCh),
	}
}

// offer queues v, dropping it when the reader has fallen behind.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
