package model

import (
	"fmt"

	"github.com/google/uuid"
)

// TeamID uniquely identifies a team within a sort result
type TeamID string

// NewTeamID generates a fresh team id; every sort produces new ids
func NewTeamID() TeamID {
	return TeamID(uuid.NewString())
}

// Team is one partition of a sorted roster
type Team struct {
	ID      TeamID
	Name    string // "Team 1", "Team 2", ... assigned by position
	Players []Player
}

// NewTeam creates an empty team labelled by its 1-indexed position
func NewTeam(position int) Team {
	return Team{
		ID:      NewTeamID(),
		Name:    fmt.Sprintf("Team %d", position),
		Players: []Player{},
	}
}

// Size returns the number of players assigned to the team
func (t *Team) Size() int {
	return len(t.Players)
}
