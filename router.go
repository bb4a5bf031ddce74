package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients are served from arbitrary hosts; there is no session to protect.
		return true
	},
	ReadBufferSize:    ReadBufferSize,
	WriteBufferSize:   WriteBufferSize,
	EnableCompression: true,
}

// RouterConfig holds the dependencies of the HTTP surface.
type RouterConfig struct {
	Loop         *GameLoop
	Conns        *ConnManager
	Limiter      *ipRateLimiter
	MaxPlayers   int
	DefaultCodec string
	StaticDir    string // Served for unmatched routes when set
	Logger       Logger
}

// Router serves the websocket endpoint and the read-only JSON API.
type Router struct {
	loop         *GameLoop
	conns        *ConnManager
	limiter      *ipRateLimiter
	maxPlayers   int
	defaultCodec string
	staticDir    string
	logger       Logger
}

// NewRouter creates a Router from config, filling in defaults.
func NewRouter(config RouterConfig) *Router {
	r := &Router{
		loop:         config.Loop,
		conns:        config.Conns,
		limiter:      config.Limiter,
		maxPlayers:   config.MaxPlayers,
		defaultCodec: config.DefaultCodec,
		staticDir:    config.StaticDir,
		logger:       config.Logger,
	}
	if r.conns == nil {
		r.conns = NewConnManager()
	}
	if r.limiter == nil {
		r.limiter = newIPRateLimiter(0)
	}
	if r.maxPlayers <= 0 {
		r.maxPlayers = DefaultMaxPlayers
	}
	if r.defaultCodec == "" {
		r.defaultCodec = CodecJSON
	}
	if r.logger == nil {
		r.logger = nopLogger{}
	}
	return r
}

// Engine builds the gin engine. ctx bounds every websocket session.
func (r *Router) Engine(ctx context.Context) *gin.Engine {
	engine := gin.Default()

	engine.GET(WebSocketPath, func(c *gin.Context) {
		r.serveWS(ctx, c)
	})

	api := engine.Group(APIBasePath)
	{
		api.GET("/healthz", r.health)
		api.GET("/state", r.state)
	}

	if r.staticDir != "" {
		engine.NoRoute(gin.WrapH(http.FileServer(http.Dir(r.staticDir))))
	}
	return engine
}

// serveWS upgrades the request and blocks until the session ends.
func (r *Router) serveWS(ctx context.Context, c *gin.Context) {
	codec, err := codecFor(c.DefaultQuery("codec", r.defaultCodec))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		r.logger.Warning(fmt.Sprintf("ws upgrade error: %v", err))
		return
	}

	// Check limits after upgrade so the client can receive the reason
	if r.conns.Count() >= r.maxPlayers {
		sendErrorAndClose(ws, codec, "Server full. Please try again later.")
		return
	}
	if !r.limiter.allow(c.ClientIP()) {
		sendErrorAndClose(ws, codec, "Too many connections. Please wait before reconnecting.")
		return
	}
	ws.EnableWriteCompression(true)

	conn := NewConn(ws, codec, r.logger)
	r.conns.Add(conn)
	defer r.conns.Remove(conn.ID())
	r.logger.Info(fmt.Sprintf("connection opened: %s (%s, %s)", conn.ID(), c.ClientIP(), codec.Name()))

	go conn.WritePump()
	conn.ReadLoop(ctx, r.loop)
	r.logger.Info(fmt.Sprintf("connection closed: %s", conn.ID()))
}

func (r *Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (r *Router) state(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()
	summary, err := r.loop.Summary(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// sendErrorAndClose sends an error event then closes the connection
func sendErrorAndClose(ws *websocket.Conn, codec Codec, msg string) {
	if data, err := codec.Encode(EventError, ErrorMsg{Message: msg}); err == nil {
		_ = ws.SetWriteDeadline(time.Now().Add(WriteWaitSec * time.Second))
		_ = ws.WriteMessage(codec.MessageType(), data)
	}
	_ = ws.Close()
}
