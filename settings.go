package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// GameSettings is process-wide and read-only once the loop starts.
type GameSettings struct {
	Width             float64
	Height            float64
	SpawnInterval     time.Duration
	CollectibleValue  int
	PlayerRadius      float64
	PlayerSpeed       float64
	CollectibleRadius float64
	// MaxSpeed caps the client-requested speed when > 0.
	// Zero keeps the trust-the-client behavior.
	MaxSpeed float64
}

// DefaultSettings returns the settings every client expects for the 800x600 field.
func DefaultSettings() GameSettings {
	return GameSettings{
		Width:             FieldWidth,
		Height:            FieldHeight,
		SpawnInterval:     DefaultSpawnIntervalMillis * time.Millisecond,
		CollectibleValue:  DefaultCollectibleValue,
		PlayerRadius:      PlayerRadius,
		PlayerSpeed:       PlayerSpeed,
		CollectibleRadius: CollectibleRadius,
	}
}

// Bounds returns the field rectangle.
func (s GameSettings) Bounds() Bounds {
	return Bounds{Width: s.Width, Height: s.Height}
}

// DTO converts settings to the init payload shape.
func (s GameSettings) DTO() SettingsDTO {
	return SettingsDTO{
		Width:                    s.Width,
		Height:                   s.Height,
		CollectibleSpawnInterval: s.SpawnInterval.Milliseconds(),
		CollectibleValue:         s.CollectibleValue,
	}
}

// Env holds the process configuration loaded from environment variables.
type Env struct {
	HostIP       string // Interface to bind, empty for all
	Port         int    // HTTP/websocket port
	GinMode      string // release, debug or test
	StaticDir    string // Optional directory served at "/"
	DefaultCodec string // Codec for connections that don't ask for one
	MaxPlayers   int    // Concurrent connection cap
	IPCooldown   time.Duration
	RedisAddr    string // Optional event sink, disabled when empty
	RedisChannel string
	Game         GameSettings
}

// Addr returns the listen address.
func (e Env) Addr() string {
	return fmt.Sprintf("%s:%d", e.HostIP, e.Port)
}

// LoadEnv reads an optional .env file and then the process environment.
func LoadEnv() (Env, bool, error) {
	// A missing .env is fine; the caller logs it.
	dotenvLoaded := godotenv.Load() == nil

	env := Env{
		HostIP:       getEnvWithDefault("HOST_IP", ""),
		GinMode:      getEnvWithDefault("GIN_MODE", "release"),
		StaticDir:    getEnvWithDefault("STATIC_DIR", ""),
		DefaultCodec: getEnvWithDefault("DEFAULT_CODEC", CodecJSON),
		RedisAddr:    getEnvWithDefault("REDIS_ADDR", ""),
		RedisChannel: getEnvWithDefault("REDIS_CHANNEL", DefaultRedisChannel),
		Game:         DefaultSettings(),
	}

	var err error
	if env.Port, err = getEnvAsInt("PORT", DefaultPort); err != nil {
		return Env{}, dotenvLoaded, err
	}
	if env.MaxPlayers, err = getEnvAsInt("MAX_PLAYERS", DefaultMaxPlayers); err != nil {
		return Env{}, dotenvLoaded, err
	}
	cooldown, err := getEnvAsInt("IP_COOLDOWN_SEC", 0)
	if err != nil {
		return Env{}, dotenvLoaded, err
	}
	env.IPCooldown = time.Duration(cooldown) * time.Second

	interval, err := getEnvAsInt("SPAWN_INTERVAL_MS", DefaultSpawnIntervalMillis)
	if err != nil {
		return Env{}, dotenvLoaded, err
	}
	if interval <= 0 {
		return Env{}, dotenvLoaded, fmt.Errorf("SPAWN_INTERVAL_MS must be positive, got %d", interval)
	}
	env.Game.SpawnInterval = time.Duration(interval) * time.Millisecond

	if env.Game.CollectibleValue, err = getEnvAsInt("COLLECTIBLE_VALUE", DefaultCollectibleValue); err != nil {
		return Env{}, dotenvLoaded, err
	}
	if env.Game.CollectibleValue <= 0 {
		return Env{}, dotenvLoaded, fmt.Errorf("COLLECTIBLE_VALUE must be positive, got %d", env.Game.CollectibleValue)
	}
	if env.Game.MaxSpeed, err = getEnvAsFloat("MAX_SPEED", 0); err != nil {
		return Env{}, dotenvLoaded, err
	}

	if _, err := codecFor(env.DefaultCodec); err != nil {
		return Env{}, dotenvLoaded, fmt.Errorf("DEFAULT_CODEC: %w", err)
	}
	return env, dotenvLoaded, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set or empty.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back to defaultValue when unset.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a number: %w", key, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, fmt.Errorf("environment variable %s must be a finite non-negative number, got %v", key, value)
	}
	return value, nil
}
