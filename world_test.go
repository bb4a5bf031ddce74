package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaderboard(t *testing.T) {
	s := newTestState(DefaultSettings())
	for _, id := range []string{"a", "b", "c"} {
		s.Players.Add(id)
	}
	s.Players.ApplyScore("b", 20)
	s.Players.ApplyScore("c", 10)

	assert.Equal(t, []LeaderboardEntry{
		{Rank: 1, ID: "b", Score: 20},
		{Rank: 2, ID: "c", Score: 10},
		{Rank: 3, ID: "a", Score: 0},
	}, s.Leaderboard(10))

	assert.Len(t, s.Leaderboard(2), 2)
}

func TestRankOf(t *testing.T) {
	players := map[string]Player{
		"a": {ID: "a", Score: 10},
		"b": {ID: "b", Score: 30},
		"c": {ID: "c", Score: 10},
	}

	rank, total := RankOf("b", players)
	assert.Equal(t, 1, rank)
	assert.Equal(t, 3, total)

	// ties break by id
	rank, _ = RankOf("a", players)
	assert.Equal(t, 2, rank)
	rank, _ = RankOf("c", players)
	assert.Equal(t, 3, rank)

	rank, total = RankOf("missing", players)
	assert.Equal(t, 0, rank)
	assert.Equal(t, 3, total)

	assert.Equal(t, "Rank: 2/3", RankLabel(2, 3))
}
