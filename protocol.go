package main

// Every frame is an envelope {"t": event, "p": payload}.
//
//   Client → Server:
//     "playerMovement"       {"direction":"up","speed":5}   (speed optional)
//   Server → Client:
//     "init"                 {"player":{..},"players":{id:{..}},"collectibles":{id:{..}},"gameSettings":{..}}
//     "newPlayer"            Player
//     "playerMoved"          {"playerId":"..","x":1,"y":2,"score":10}
//     "newCollectible"       Collectible
//     "collectibleCollected" {"collectibleId":"..","playerId":".."}
//     "playerDisconnected"   "id"
//     "error"                {"message":".."}   only before a refused connection is closed
//
// Player:      {"id":"..","x":1,"y":2,"radius":20,"score":0,"speed":5}
// Collectible: {"id":"collectible-0","x":1,"y":2,"radius":10,"value":10}

// Event names
const (
	EventPlayerMovement       = "playerMovement"
	EventInit                 = "init"
	EventNewPlayer            = "newPlayer"
	EventPlayerMoved          = "playerMoved"
	EventNewCollectible       = "newCollectible"
	EventCollectibleCollected = "collectibleCollected"
	EventPlayerDisconnected   = "playerDisconnected"
	EventError                = "error"
)

// MovementMsg is the only client command.
// Speed is a pointer so an omitted speed falls back to the player's own.
type MovementMsg struct {
	Direction string   `json:"direction"`
	Speed     *float64 `json:"speed,omitempty"`
}

// InitMsg is sent once to a newly connected client
type InitMsg struct {
	Player       Player                 `json:"player"`
	Players      map[string]Player      `json:"players"`
	Collectibles map[string]Collectible `json:"collectibles"`
	GameSettings SettingsDTO            `json:"gameSettings"`
}

// SettingsDTO is the client-facing part of GameSettings.
// collectibleSpawnInterval is in milliseconds.
type SettingsDTO struct {
	Width                    float64 `json:"width"`
	Height                   float64 `json:"height"`
	CollectibleSpawnInterval int64   `json:"collectibleSpawnInterval"`
	CollectibleValue         int     `json:"collectibleValue"`
}

// PlayerMovedMsg is the position/score delta sent to everyone but the mover
type PlayerMovedMsg struct {
	PlayerID string  `json:"playerId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Score    int     `json:"score"`
}

// CollectibleCollectedMsg announces a pickup to every client
type CollectibleCollectedMsg struct {
	CollectibleID string `json:"collectibleId"`
	PlayerID      string `json:"playerId"`
}

// ErrorMsg tells a refused client why before the socket closes
type ErrorMsg struct {
	Message string `json:"message"`
}

// LeaderboardEntry is a single leaderboard row
type LeaderboardEntry struct {
	Rank  int    `json:"rank"`
	ID    string `json:"id"`
	Score int    `json:"score"`
}

// StateSummary is the read-only view served by the HTTP API
type StateSummary struct {
	GameSettings SettingsDTO        `json:"gameSettings"`
	Players      int                `json:"players"`
	Collectibles int                `json:"collectibles"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
}
