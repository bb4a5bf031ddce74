package main

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayers() *PlayerRegistry {
	return NewPlayerRegistry(DefaultSettings(), rand.New(rand.NewSource(3)))
}

func TestPlayerRegistryAdd(t *testing.T) {
	r := newTestPlayers()

	p := r.Add("a")
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "a", p.ID)
	assert.Equal(t, 0, p.Score)
	assert.Equal(t, PlayerRadius, p.Radius)
	assert.Equal(t, PlayerSpeed, p.Speed)
	assert.True(t, inField(p.Pos(), p.Radius), "spawned at %v", p.Pos())

	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, p, got)

	t.Run("re-adding returns the live player", func(t *testing.T) {
		_, _ = r.ApplyScore("a", 10)
		again := r.Add("a")
		assert.Equal(t, 10, again.Score)
		assert.Equal(t, 1, r.Len())
	})
}

func TestPlayerSpawnRange(t *testing.T) {
	r := newTestPlayers()
	for i := 0; i < 2000; i++ {
		p := r.Add(fmt.Sprintf("p%d", i))
		assert.GreaterOrEqual(t, p.X, 25.0)
		assert.LessOrEqual(t, p.X, 774.0)
		assert.GreaterOrEqual(t, p.Y, 25.0)
		assert.LessOrEqual(t, p.Y, 574.0)
		assert.Equal(t, float64(int(p.X)), p.X, "spawn x should be whole")
	}
}

func TestPlayerRegistryMove(t *testing.T) {
	s := newTestState(DefaultSettings())
	placePlayer(s, "a", 100, 100)

	p, ok := s.Players.Move("a", DirRight, 5)
	require.True(t, ok)
	assert.Equal(t, Vec{105, 100}, p.Pos())

	placePlayer(s, "b", 15, 100)
	p, ok = s.Players.Move("b", DirLeft, 20)
	require.True(t, ok)
	assert.Equal(t, Vec{20, 100}, p.Pos())

	_, ok = s.Players.Move("missing", DirUp, 5)
	assert.False(t, ok)
}

func TestPlayerRegistryApplyScore(t *testing.T) {
	r := newTestPlayers()
	r.Add("a")

	p, ok := r.ApplyScore("a", 10)
	require.True(t, ok)
	assert.Equal(t, 10, p.Score)

	p, _ = r.ApplyScore("a", -5)
	assert.Equal(t, 10, p.Score, "scores never decrease")

	p, _ = r.ApplyScore("a", 0)
	assert.Equal(t, 10, p.Score)

	_, ok = r.ApplyScore("ghost", 10)
	assert.False(t, ok)
}

func TestPlayerRegistryRemove(t *testing.T) {
	r := newTestPlayers()
	r.Add("a")

	assert.True(t, r.Remove("a"))
	assert.False(t, r.Remove("a"))
	assert.Equal(t, 0, r.Len())

	_, ok := r.Get("a")
	assert.False(t, ok)
	_, ok = r.Move("a", DirUp, 5)
	assert.False(t, ok)
}

func TestPlayerSnapshotIsACopy(t *testing.T) {
	r := newTestPlayers()
	r.Add("a")

	snap := r.Snapshot()
	p := snap["a"]
	p.Score = 999
	snap["a"] = p
	delete(snap, "a")

	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, 0, got.Score)
}
