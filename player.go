package main

import "math/rand"

// Player is one connected avatar. The JSON shape is what clients receive in
// init and newPlayer events.
type Player struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Score  int     `json:"score"`
	Speed  float64 `json:"speed"`
}

// Pos returns the player's center
func (p Player) Pos() Vec {
	return Vec{X: p.X, Y: p.Y}
}

// Circle returns the player's collision disc
func (p Player) Circle() Circle {
	return Circle{Center: p.Pos(), Radius: p.Radius}
}

// PlayerRegistry maps connection id to live player state.
// Not safe for concurrent use; the game loop owns it.
type PlayerRegistry struct {
	settings GameSettings
	rng      *rand.Rand
	players  map[string]*Player
}

// NewPlayerRegistry creates an empty registry spawning players inside settings' field
func NewPlayerRegistry(settings GameSettings, rng *rand.Rand) *PlayerRegistry {
	return &PlayerRegistry{
		settings: settings,
		rng:      rng,
		players:  make(map[string]*Player),
	}
}

// Add spawns a player with score 0 at a random in-bounds position.
// If id is already registered the existing player is returned unchanged.
func (r *PlayerRegistry) Add(id string) Player {
	if p, ok := r.players[id]; ok {
		return *p
	}
	p := &Player{
		ID:     id,
		X:      randomSpawnCoord(r.rng, r.settings.Width, PlayerSpawnMargin),
		Y:      randomSpawnCoord(r.rng, r.settings.Height, PlayerSpawnMargin),
		Radius: r.settings.PlayerRadius,
		Speed:  r.settings.PlayerSpeed,
	}
	r.players[id] = p
	return *p
}

// Remove deletes a player, reporting whether it existed
func (r *PlayerRegistry) Remove(id string) bool {
	if _, ok := r.players[id]; !ok {
		return false
	}
	delete(r.players, id)
	return true
}

// Move steps the player by the requested speed and clamps it into the field.
func (r *PlayerRegistry) Move(id string, dir Direction, speed float64) (Player, bool) {
	p, ok := r.players[id]
	if !ok {
		return Player{}, false
	}
	pos := ClampMove(p.Pos(), dir, speed, r.settings.Bounds(), p.Radius)
	p.X, p.Y = pos.X, pos.Y
	return *p, true
}

// ApplyScore adds amount to the player's score. Non-positive amounts are
// ignored so scores never decrease.
func (r *PlayerRegistry) ApplyScore(id string, amount int) (Player, bool) {
	p, ok := r.players[id]
	if !ok {
		return Player{}, false
	}
	if amount > 0 {
		p.Score += amount
	}
	return *p, true
}

// Get returns a copy of the player
func (r *PlayerRegistry) Get(id string) (Player, bool) {
	p, ok := r.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// Snapshot copies every player, keyed by id
func (r *PlayerRegistry) Snapshot() map[string]Player {
	out := make(map[string]Player, len(r.players))
	for id, p := range r.players {
		out[id] = *p
	}
	return out
}

// Len returns the number of live players
func (r *PlayerRegistry) Len() int {
	return len(r.players)
}

// randomSpawnCoord returns an integer coordinate in [margin, size-margin-1],
// the same range the browser client was written against.
func randomSpawnCoord(rng *rand.Rand, size float64, margin int) float64 {
	span := int(size) - 2*margin
	if span <= 0 {
		return size / 2
	}
	return float64(rng.Intn(span) + margin)
}
