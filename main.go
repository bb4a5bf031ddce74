package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Global variables for dependencies
var (
	appLogger Logger
	env       Env
	sink      EventSink
	loop      *GameLoop
	conns     *ConnManager
	limiter   *ipRateLimiter
	server    *http.Server
)

func mustLogger(prefix, color string) Logger {
	l, err := NewLogger(prefix, color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

func initEnv() {
	var (
		dotenvLoaded bool
		err          error
	)
	env, dotenvLoaded, err = LoadEnv()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Loading configuration: %v", err))
		os.Exit(1)
	}
	if !dotenvLoaded {
		appLogger.Info(".env file not found, using process environment")
	}
	gin.SetMode(env.GinMode)
	appLogger.Info("Configuration loaded")
}

func initSink(ctx context.Context) {
	if env.RedisAddr == "" {
		sink = nopSink{}
		appLogger.Info("Event sink disabled")
		return
	}
	redisSink := NewRedisSink(redis.NewClient(&redis.Options{Addr: env.RedisAddr}), env.RedisChannel, mustLogger("SINK", ColorMagenta))
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisSink.Ping(pingCtx); err != nil {
		appLogger.Error(fmt.Sprintf("Connecting to redis at %s: %v", env.RedisAddr, err))
		os.Exit(1)
	}
	go redisSink.Run(ctx)
	sink = redisSink
	appLogger.Info(fmt.Sprintf("Event sink publishing to redis channel %s", env.RedisChannel))
}

func initGameLoop(ctx context.Context) {
	state := NewGameState(env.Game, rand.New(rand.NewSource(time.Now().UnixNano())))
	loop = NewGameLoop(state, sink, mustLogger("GAME-LOOP", ColorCyan))
	go loop.Run(ctx)
	if env.Game.MaxSpeed > 0 {
		appLogger.Info(fmt.Sprintf("Client speed capped at %.1f", env.Game.MaxSpeed))
	}
	appLogger.Info("Game loop initialized")
}

func initServer(ctx context.Context) {
	conns = NewConnManager()
	limiter = newIPRateLimiter(env.IPCooldown)
	go limiter.Run(ctx)

	router := NewRouter(RouterConfig{
		Loop:         loop,
		Conns:        conns,
		Limiter:      limiter,
		MaxPlayers:   env.MaxPlayers,
		DefaultCodec: env.DefaultCodec,
		StaticDir:    env.StaticDir,
		Logger:       mustLogger("SOCKET", ColorBlue),
	})
	server = &http.Server{
		Addr:    env.Addr(),
		Handler: router.Engine(ctx),
	}
	appLogger.Info("Router initialized")
}

func main() {
	appLogger = mustLogger("APP", ColorGreen)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initEnv()
	initSink(ctx)
	initGameLoop(ctx)
	initServer(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// Hijacked websockets aren't tracked by http.Server.
		conns.CloseAll()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Warning(fmt.Sprintf("Shutting down HTTP server: %v", err))
		}
	}()

	appLogger.Info(fmt.Sprintf("Listening on %s (field %.0fx%.0f)", server.Addr, env.Game.Width, env.Game.Height))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLogger.Error(fmt.Sprintf("Serving HTTP: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Server stopped")
}
