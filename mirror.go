package main

import (
	"errors"
	"fmt"
)

var ErrNotInitialized = errors.New("mirror has not received init")

// Mirror is a client's cached copy of the arena, built from the init
// snapshot and the delta events that follow. It owns no authoritative state;
// a renderer draws from it and reads the display rank.
type Mirror struct {
	SelfID       string
	Players      map[string]Player
	Collectibles map[string]Collectible
	Settings     SettingsDTO
	ready        bool
}

// NewMirror creates an empty mirror waiting for init
func NewMirror() *Mirror {
	return &Mirror{
		Players:      make(map[string]Player),
		Collectibles: make(map[string]Collectible),
	}
}

// Ready reports whether init has been applied
func (m *Mirror) Ready() bool {
	return m.ready
}

// Apply folds one server event into the mirror.
func (m *Mirror) Apply(c Codec, f Frame) error {
	if f.Event != EventInit && f.Event != EventError && !m.ready {
		return fmt.Errorf("%w: got %q", ErrNotInitialized, f.Event)
	}

	switch f.Event {
	case EventInit:
		msg, err := DecodePayload[InitMsg](c, f)
		if err != nil {
			return err
		}
		m.SelfID = msg.Player.ID
		m.Players = msg.Players
		if m.Players == nil {
			m.Players = make(map[string]Player)
		}
		m.Players[msg.Player.ID] = msg.Player
		m.Collectibles = msg.Collectibles
		if m.Collectibles == nil {
			m.Collectibles = make(map[string]Collectible)
		}
		m.Settings = msg.GameSettings
		m.ready = true

	case EventNewPlayer:
		p, err := DecodePayload[Player](c, f)
		if err != nil {
			return err
		}
		m.Players[p.ID] = p

	case EventPlayerMoved:
		msg, err := DecodePayload[PlayerMovedMsg](c, f)
		if err != nil {
			return err
		}
		if p, ok := m.Players[msg.PlayerID]; ok {
			p.X, p.Y, p.Score = msg.X, msg.Y, msg.Score
			m.Players[msg.PlayerID] = p
		}

	case EventPlayerDisconnected:
		id, err := DecodePayload[string](c, f)
		if err != nil {
			return err
		}
		delete(m.Players, id)

	case EventNewCollectible:
		col, err := DecodePayload[Collectible](c, f)
		if err != nil {
			return err
		}
		m.Collectibles[col.ID] = col

	case EventCollectibleCollected:
		msg, err := DecodePayload[CollectibleCollectedMsg](c, f)
		if err != nil {
			return err
		}
		value := m.Settings.CollectibleValue
		if col, ok := m.Collectibles[msg.CollectibleID]; ok {
			value = col.Value
		}
		delete(m.Collectibles, msg.CollectibleID)
		// playerMoved never reaches the mover, so credit ourselves here.
		if msg.PlayerID == m.SelfID {
			if self, ok := m.Players[m.SelfID]; ok {
				self.Score += value
				m.Players[m.SelfID] = self
			}
		}

	case EventError:
		msg, err := DecodePayload[ErrorMsg](c, f)
		if err != nil {
			return err
		}
		return fmt.Errorf("server refused connection: %s", msg.Message)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, f.Event)
	}
	return nil
}

// PredictMove applies a local movement to our own player with the same
// clamping the server uses, so the avatar doesn't wait for a round trip.
func (m *Mirror) PredictMove(dir Direction, speed float64) (Player, bool) {
	self, ok := m.Players[m.SelfID]
	if !ok {
		return Player{}, false
	}
	pos := ClampMove(self.Pos(), dir, speed, Bounds{Width: m.Settings.Width, Height: m.Settings.Height}, self.Radius)
	self.X, self.Y = pos.X, pos.Y
	m.Players[m.SelfID] = self
	return self, true
}

// Rank returns our display rank among the players we know about
func (m *Mirror) Rank() (rank, total int) {
	return RankOf(m.SelfID, m.Players)
}

// RankLabel is the HUD string, e.g. "Rank: 2/5"
func (m *Mirror) RankLabel() string {
	return RankLabel(m.Rank())
}
