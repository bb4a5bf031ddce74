package main

import (
	"fmt"
	"math/rand"
)

// Collectible represents a pickup in the field
type Collectible struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Value  int     `json:"value"`
}

// Circle returns the collectible's collision disc
func (c Collectible) Circle() Circle {
	return Circle{Center: Vec{X: c.X, Y: c.Y}, Radius: c.Radius}
}

// CollectibleRegistry holds live collectibles in registration order.
// Not safe for concurrent use; the game loop owns it.
type CollectibleRegistry struct {
	settings GameSettings
	rng      *rand.Rand
	items    map[string]Collectible
	order    []string // registration order, used for the collision scan
	counter  int
}

// NewCollectibleRegistry creates an empty registry whose ids start at collectible-0
func NewCollectibleRegistry(settings GameSettings, rng *rand.Rand) *CollectibleRegistry {
	return &CollectibleRegistry{
		settings: settings,
		rng:      rng,
		items:    make(map[string]Collectible),
	}
}

// SpawnOne creates a collectible at a random in-bounds position with the configured value.
func (r *CollectibleRegistry) SpawnOne() Collectible {
	c := Collectible{
		ID:     r.nextID(),
		X:      randomSpawnCoord(r.rng, r.settings.Width, CollectibleSpawnMargin),
		Y:      randomSpawnCoord(r.rng, r.settings.Height, CollectibleSpawnMargin),
		Radius: r.settings.CollectibleRadius,
		Value:  r.settings.CollectibleValue,
	}
	r.add(c)
	return c
}

// add registers c at the end of the scan order (caller guarantees a fresh id)
func (r *CollectibleRegistry) add(c Collectible) {
	r.items[c.ID] = c
	r.order = append(r.order, c.ID)
}

// Remove deletes a collectible, reporting whether it was still present.
// A collectible can only be removed once.
func (r *CollectibleRegistry) Remove(id string) bool {
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns live collectibles in registration order
func (r *CollectibleRegistry) List() []Collectible {
	out := make([]Collectible, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Get returns a collectible by id
func (r *CollectibleRegistry) Get(id string) (Collectible, bool) {
	c, ok := r.items[id]
	return c, ok
}

// Snapshot copies every collectible, keyed by id
func (r *CollectibleRegistry) Snapshot() map[string]Collectible {
	out := make(map[string]Collectible, len(r.items))
	for id, c := range r.items {
		out[id] = c
	}
	return out
}

// Len returns the number of live collectibles
func (r *CollectibleRegistry) Len() int {
	return len(r.items)
}

func (r *CollectibleRegistry) nextID() string {
	id := fmt.Sprintf("collectible-%d", r.counter)
	r.counter++
	return id
}
