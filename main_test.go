package main

import (
	"math/rand"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestState(settings GameSettings) *GameState {
	return NewGameState(settings, rand.New(rand.NewSource(1)))
}

// placePlayer registers id and moves it to (x,y) without going through ClampMove.
func placePlayer(s *GameState, id string, x, y float64) Player {
	s.Players.Add(id)
	p := s.Players.players[id]
	p.X, p.Y = x, y
	return *p
}

func placeCollectible(s *GameState, x, y float64) Collectible {
	c := Collectible{
		ID:     s.Collectibles.nextID(),
		X:      x,
		Y:      y,
		Radius: s.Settings.CollectibleRadius,
		Value:  s.Settings.CollectibleValue,
	}
	s.Collectibles.add(c)
	return c
}

func speedPtr(v float64) *float64 {
	return &v
}
