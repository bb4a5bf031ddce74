package main

// Game configuration constants
const (
	// Server
	DefaultPort   = 3000
	WebSocketPath = "/ws"
	APIBasePath   = "/api/v1"

	// Field: fixed rectangle shared with client-side prediction.
	// Changing these desyncs any client that clamps locally.
	FieldWidth  = 800.0
	FieldHeight = 600.0

	// Player
	PlayerRadius      = 20.0
	PlayerSpeed       = 5.0 // px per movement command
	PlayerSpawnMargin = 25  // spawn x in [margin, width-margin-1]

	// Collectible
	CollectibleRadius          = 10.0
	CollectibleSpawnMargin     = 10
	DefaultCollectibleValue    = 10
	DefaultSpawnIntervalMillis = 5000

	// Loop
	InboxSize = 256

	// Connection
	SendQueueSize   = 64   // outbound frames buffered per connection before dropping
	ReadLimitBytes  = 4096 // inbound frames are tiny movement commands
	ReadBufferSize  = 1024
	WriteBufferSize = 4096
	PongWaitSec     = 60
	PingPeriodSec   = 25 // must be below PongWaitSec
	WriteWaitSec    = 10

	// Admission
	DefaultMaxPlayers = 64

	// Leaderboard
	LeaderboardSize = 10

	// Event sink
	DefaultRedisChannel = "arena:events"
	SinkQueueSize       = 1024
)

// Log colors, one per component logger.
const (
	ColorGreen   = "\033[32m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
)
