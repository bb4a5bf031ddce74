package main

import (
	"fmt"
	"math/rand"
	"sort"
)

// GameState holds all authoritative game state for one arena.
// It is owned by exactly one GameLoop and never shared across goroutines.
type GameState struct {
	Settings     GameSettings
	Players      *PlayerRegistry
	Collectibles *CollectibleRegistry
}

// NewGameState creates an empty arena. Both registries draw from rng so a
// seeded source makes spawns reproducible.
func NewGameState(settings GameSettings, rng *rand.Rand) *GameState {
	return &GameState{
		Settings:     settings,
		Players:      NewPlayerRegistry(settings, rng),
		Collectibles: NewCollectibleRegistry(settings, rng),
	}
}

// Leaderboard returns the top n players by score, ties broken by id
func (s *GameState) Leaderboard(n int) []LeaderboardEntry {
	return leaderboardOf(s.Players.Snapshot(), n)
}

func leaderboardOf(players map[string]Player, n int) []LeaderboardEntry {
	sorted := make([]Player, 0, len(players))
	for _, p := range players {
		sorted = append(sorted, p)
	}
	sortByScore(sorted)
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	entries := make([]LeaderboardEntry, len(sorted))
	for i, p := range sorted {
		entries[i] = LeaderboardEntry{Rank: i + 1, ID: p.ID, Score: p.Score}
	}
	return entries
}

func sortByScore(players []Player) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].ID < players[j].ID
	})
}

// RankOf returns the 1-based rank of id among players and the player count.
// rank is 0 when id isn't present.
func RankOf(id string, players map[string]Player) (rank, total int) {
	sorted := make([]Player, 0, len(players))
	for _, p := range players {
		sorted = append(sorted, p)
	}
	sortByScore(sorted)
	for i, p := range sorted {
		if p.ID == id {
			return i + 1, len(sorted)
		}
	}
	return 0, len(sorted)
}

// RankLabel formats a rank the way the HUD shows it.
func RankLabel(rank, total int) string {
	return fmt.Sprintf("Rank: %d/%d", rank, total)
}
