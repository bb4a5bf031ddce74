package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Submitter accepts commands for the game loop
type Submitter interface {
	Submit(ctx context.Context, cmd any) error
}

// Conn manages a single WebSocket player session. Outbound frames go through
// a bounded queue drained by WritePump, so Send never blocks the game loop.
type Conn struct {
	id        string
	ws        *websocket.Conn
	codec     Codec
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	dropped   atomic.Uint64
	logger    Logger
}

// NewConn wraps ws with a fresh connection id
func NewConn(ws *websocket.Conn, codec Codec, logger Logger) *Conn {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Conn{
		id:     uuid.New().String(),
		ws:     ws,
		codec:  codec,
		send:   make(chan []byte, SendQueueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// ID returns the transport-assigned connection id, which is also the player id
func (c *Conn) ID() string {
	return c.id
}

// Send encodes the event and queues it. Frames for a closed connection or a
// full queue are dropped.
func (c *Conn) Send(event string, payload any) {
	data, err := c.codec.Encode(event, payload)
	if err != nil {
		c.logger.Error(fmt.Sprintf("encoding %s for %s: %v", event, c.id, err))
		return
	}
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- data:
	default:
		if n := c.dropped.Add(1); n == 1 || n%100 == 0 {
			c.logger.Warning(fmt.Sprintf("send queue full for %s, %d frames dropped", c.id, n))
		}
	}
}

// Dropped returns the number of frames discarded for a full queue
func (c *Conn) Dropped() uint64 {
	return c.dropped.Load()
}

// Close marks the connection closed and closes the socket. Safe to call more than once.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// WritePump writes queued frames and keepalive pings until the connection closes.
func (c *Conn) WritePump() {
	ticker := time.NewTicker(PingPeriodSec * time.Second)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(WriteWaitSec * time.Second))
			if err := c.ws.WriteMessage(c.codec.MessageType(), data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(WriteWaitSec * time.Second))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadLoop joins the game, then forwards movement commands until the client
// disconnects. It always submits a Leave on the way out.
func (c *Conn) ReadLoop(ctx context.Context, loop Submitter) {
	defer func() {
		if err := loop.Submit(context.Background(), Leave{PlayerID: c.id}); err != nil {
			c.logger.Warning(fmt.Sprintf("leave for %s not delivered: %v", c.id, err))
		}
		c.Close()
	}()

	c.ws.SetReadLimit(ReadLimitBytes)
	_ = c.ws.SetReadDeadline(time.Now().Add(PongWaitSec * time.Second))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(PongWaitSec * time.Second))
	})

	if err := loop.Submit(ctx, Join{Client: c}); err != nil {
		c.logger.Warning(fmt.Sprintf("join for %s not delivered: %v", c.id, err))
		return
	}

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warning(fmt.Sprintf("ws read error for %s: %v", c.id, err))
			}
			return
		}
		// Any inbound traffic proves the peer is alive.
		_ = c.ws.SetReadDeadline(time.Now().Add(PongWaitSec * time.Second))

		frame, err := c.codec.Decode(raw)
		if err != nil {
			c.logger.Warning(fmt.Sprintf("bad frame from %s: %v", c.id, err))
			continue
		}

		switch frame.Event {
		case EventPlayerMovement:
			m, err := DecodePayload[MovementMsg](c.codec, frame)
			if err != nil {
				c.logger.Warning(fmt.Sprintf("bad movement from %s: %v", c.id, err))
				continue
			}
			if err := loop.Submit(ctx, Move{PlayerID: c.id, Movement: m}); err != nil {
				return
			}
		default:
			c.logger.Warning(fmt.Sprintf("unknown event %q from %s", frame.Event, c.id))
		}
	}
}

// ConnManager tracks open sockets for admission control and shutdown
type ConnManager struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

// NewConnManager creates an empty connection manager
func NewConnManager() *ConnManager {
	return &ConnManager{conns: make(map[string]*Conn)}
}

// Add registers a connection
func (m *ConnManager) Add(c *Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[c.ID()] = c
}

// Remove unregisters a connection
func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
}

// Count returns the number of active connections
func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// CloseAll closes every registered connection
func (m *ConnManager) CloseAll() {
	m.mu.RLock()
	list := make([]*Conn, 0, len(m.conns))
	for _, c := range m.conns {
		list = append(list, c)
	}
	m.mu.RUnlock()
	for _, c := range list {
		c.Close()
	}
}
