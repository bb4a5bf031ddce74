package main

// Client is a connected peer the loop can push events to.
type Client interface {
	ID() string
	// Send queues an event without blocking; delivery is best-effort.
	Send(event string, payload any)
}

// Join registers a freshly connected client and spawns its player
type Join struct {
	Client Client
}

// Leave retires a player after its connection closed
type Leave struct {
	PlayerID string
}

// Move carries one decoded playerMovement command
type Move struct {
	PlayerID string
	Movement MovementMsg
}

// Query asks for a read-only summary; the loop replies exactly once
type Query struct {
	Reply chan<- StateSummary
}

// spawnTick is dispatched by the loop's own ticker
type spawnTick struct{}
