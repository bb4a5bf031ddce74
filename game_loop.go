package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrLoopStopped = errors.New("game loop stopped")

// GameLoop is the single writer of a GameState. Connection handlers, the
// HTTP API and the spawn ticker all funnel into Run's select, so every
// registry mutation and collision check happens in arrival order on one
// goroutine.
type GameLoop struct {
	state   *GameState
	clients map[string]Client
	inbox   chan any
	done    chan struct{}
	sink    EventSink
	logger  Logger
}

// NewGameLoop creates a loop bound to state. sink and logger may be nil.
func NewGameLoop(state *GameState, sink EventSink, logger Logger) *GameLoop {
	if sink == nil {
		sink = nopSink{}
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &GameLoop{
		state:   state,
		clients: make(map[string]Client),
		inbox:   make(chan any, InboxSize),
		done:    make(chan struct{}),
		sink:    sink,
		logger:  logger,
	}
}

// Run processes commands and spawn ticks until ctx is cancelled.
func (gl *GameLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(gl.state.Settings.SpawnInterval)
	defer ticker.Stop()
	defer close(gl.done)
	gl.logger.Info(fmt.Sprintf("game loop started, spawning every %s", gl.state.Settings.SpawnInterval))

	for {
		select {
		case <-ctx.Done():
			gl.logger.Info("game loop stopped")
			return
		case cmd := <-gl.inbox:
			gl.dispatch(cmd)
		case <-ticker.C:
			gl.dispatch(spawnTick{})
		}
	}
}

// Submit enqueues a command for the loop.
func (gl *GameLoop) Submit(ctx context.Context, cmd any) error {
	select {
	case <-gl.done:
		return ErrLoopStopped
	default:
	}
	select {
	case gl.inbox <- cmd:
		return nil
	case <-gl.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Summary returns settings, counts and the leaderboard as seen by the loop.
func (gl *GameLoop) Summary(ctx context.Context) (StateSummary, error) {
	reply := make(chan StateSummary, 1)
	if err := gl.Submit(ctx, Query{Reply: reply}); err != nil {
		return StateSummary{}, err
	}
	select {
	case s := <-reply:
		return s, nil
	case <-gl.done:
		return StateSummary{}, ErrLoopStopped
	case <-ctx.Done():
		return StateSummary{}, ctx.Err()
	}
}

// dispatch runs one command; a panicking handler is logged and the loop keeps going.
func (gl *GameLoop) dispatch(cmd any) {
	defer func() {
		if r := recover(); r != nil {
			gl.logger.Error(fmt.Sprintf("recovered from panic handling %T: %v", cmd, r))
		}
	}()
	gl.handleCommand(cmd)
}

func (gl *GameLoop) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		gl.handleJoin(c.Client)
	case Leave:
		gl.handleLeave(c.PlayerID)
	case Move:
		gl.handleMove(c.PlayerID, c.Movement)
	case Query:
		c.Reply <- gl.summary()
	case spawnTick:
		gl.spawnCollectible()
	default:
		gl.logger.Warning(fmt.Sprintf("ignoring unknown command %T", cmd))
	}
}

// handleJoin sends the newcomer a full snapshot, then announces it to everyone else.
func (gl *GameLoop) handleJoin(c Client) {
	id := c.ID()
	if _, exists := gl.clients[id]; exists {
		gl.logger.Warning(fmt.Sprintf("duplicate join for %s ignored", id))
		return
	}
	p := gl.state.Players.Add(id)
	gl.clients[id] = c

	c.Send(EventInit, InitMsg{
		Player:       p,
		Players:      gl.state.Players.Snapshot(),
		Collectibles: gl.state.Collectibles.Snapshot(),
		GameSettings: gl.state.Settings.DTO(),
	})
	gl.broadcast(EventNewPlayer, p, id)
	gl.logger.Info(fmt.Sprintf("player joined: %s at (%.0f,%.0f), %d online", id, p.X, p.Y, len(gl.clients)))
}

func (gl *GameLoop) handleLeave(id string) {
	_, hadClient := gl.clients[id]
	delete(gl.clients, id)
	if !gl.state.Players.Remove(id) && !hadClient {
		return
	}
	gl.broadcast(EventPlayerDisconnected, id, "")
	gl.logger.Info(fmt.Sprintf("player left: %s, %d online", id, len(gl.clients)))
}

// handleMove applies one movement command: move, pick up at most one
// collectible, then tell the other clients where the player is now.
func (gl *GameLoop) handleMove(id string, m MovementMsg) {
	current, ok := gl.state.Players.Get(id)
	if !ok {
		// Raced a disconnect.
		return
	}
	dir, ok := ParseDirection(m.Direction)
	if !ok {
		gl.logger.Warning(fmt.Sprintf("ignoring movement with direction %q from %s", m.Direction, id))
		return
	}
	speed, ok := gl.requestedSpeed(current, m.Speed)
	if !ok {
		gl.logger.Warning(fmt.Sprintf("ignoring movement with non-finite speed from %s", id))
		return
	}

	p, _ := gl.state.Players.Move(id, dir, speed)
	if c, hit := gl.firstOverlap(p); hit {
		p, _ = gl.state.Players.ApplyScore(id, c.Value)
		gl.state.Collectibles.Remove(c.ID)
		gl.broadcast(EventCollectibleCollected, CollectibleCollectedMsg{CollectibleID: c.ID, PlayerID: id}, "")
	}

	gl.broadcast(EventPlayerMoved, PlayerMovedMsg{PlayerID: id, X: p.X, Y: p.Y, Score: p.Score}, id)
}

// requestedSpeed trusts the client unless a max speed is configured.
// An omitted speed means the player's own.
func (gl *GameLoop) requestedSpeed(p Player, requested *float64) (float64, bool) {
	if requested == nil {
		return p.Speed, true
	}
	speed := *requested
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 0, false
	}
	if limit := gl.state.Settings.MaxSpeed; limit > 0 {
		speed = math.Max(-limit, math.Min(limit, speed))
	}
	return speed, true
}

// firstOverlap scans in registration order and stops at the first hit, so
// a single move never collects more than one item.
func (gl *GameLoop) firstOverlap(p Player) (Collectible, bool) {
	pc := p.Circle()
	for _, c := range gl.state.Collectibles.List() {
		if CirclesOverlap(pc, c.Circle()) {
			return c, true
		}
	}
	return Collectible{}, false
}

func (gl *GameLoop) spawnCollectible() {
	c := gl.state.Collectibles.SpawnOne()
	gl.broadcast(EventNewCollectible, c, "")
}

func (gl *GameLoop) summary() StateSummary {
	return StateSummary{
		GameSettings: gl.state.Settings.DTO(),
		Players:      gl.state.Players.Len(),
		Collectibles: gl.state.Collectibles.Len(),
		Leaderboard:  gl.state.Leaderboard(LeaderboardSize),
	}
}

// broadcast pushes an event to every client except the one with id except
// (empty for all) and mirrors it to the sink. Never blocks.
func (gl *GameLoop) broadcast(event string, payload any, except string) {
	for id, c := range gl.clients {
		if id == except {
			continue
		}
		c.Send(event, payload)
	}
	gl.sink.Publish(event, payload)
}
