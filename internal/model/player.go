package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlayerID uniquely identifies a player within a session
type PlayerID string

// NewPlayerID generates a fresh collision-resistant player id
func NewPlayerID() PlayerID {
	return PlayerID(uuid.NewString())
}

// Player represents a person on a session's roster
type Player struct {
	ID        PlayerID
	Name      string
	Priority  bool // priority players are spread evenly across teams
	CreatedAt time.Time
}

// NewPlayer builds a player with a fresh id and a trimmed name.
// Priority always starts false; it is toggled explicitly.
func NewPlayer(rawName string, now time.Time) Player {
	return Player{
		ID:        NewPlayerID(),
		Name:      strings.TrimSpace(rawName),
		Priority:  false,
		CreatedAt: now,
	}
}

// Copy returns an independent player with the same name, priority and
// creation time but a fresh id. Used when materializing a game from a
// waiting room so the two rosters never share identity.
func (p Player) Copy() Player {
	c := p
	c.ID = NewPlayerID()
	return c
}

// playerIndex returns the position of the player with the given id, or -1
func playerIndex(players []Player, id PlayerID) int {
	for i := range players {
		if players[i].ID == id {
			return i
		}
	}
	return -1
}
