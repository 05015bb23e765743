package response

import (
	"time"

	"github.com/cmarcal/futmeet-sub000/internal/model"
)

// Player is the API representation of a roster entry
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Priority  bool      `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerFromModel converts a model player to its API representation
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		Priority:  p.Priority,
		CreatedAt: p.CreatedAt,
	}
}

// PlayersFromModel converts a roster to its API representation
func PlayersFromModel(players []model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Team is the API representation of a sorted team
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// TeamFromModel converts a model team to its API representation
func TeamFromModel(t model.Team) Team {
	return Team{
		ID:      string(t.ID),
		Name:    t.Name,
		Players: PlayersFromModel(t.Players),
	}
}

// TeamsFromModel converts a slice of model teams
func TeamsFromModel(teams []model.Team) []Team {
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = TeamFromModel(t)
	}
	return out
}

// GameSession is the API representation of a game session
type GameSession struct {
	ID        string    `json:"id"`
	Players   []Player  `json:"players"`
	TeamCount int       `json:"team_count"`
	Status    string    `json:"status"`
	Teams     []Team    `json:"teams"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameSessionFromModel converts a model game session to its API representation
func GameSessionFromModel(g *model.GameSession) GameSession {
	return GameSession{
		ID:        string(g.ID),
		Players:   PlayersFromModel(g.Players),
		TeamCount: g.TeamCount,
		Status:    string(g.Status),
		Teams:     TeamsFromModel(g.Teams),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// WaitingRoom is the API representation of a waiting room
type WaitingRoom struct {
	ID        string    `json:"id"`
	Players   []Player  `json:"players"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WaitingRoomFromModel converts a model waiting room to its API representation
func WaitingRoomFromModel(r *model.WaitingRoom) WaitingRoom {
	return WaitingRoom{
		ID:        string(r.ID),
		Players:   PlayersFromModel(r.Players),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Roster is returned by endpoints that change the player list
type Roster struct {
	Players []Player `json:"players"`
}

// TeamCount is returned when the team count changes
type TeamCount struct {
	TeamCount int `json:"team_count"`
}

// SortResult is returned after teams are drawn
type SortResult struct {
	Status string `json:"status"`
	Teams  []Team `json:"teams"`
}

// Share is a shareable text summary of a session
type Share struct {
	Text        string `json:"text"`
	WhatsAppURL string `json:"whatsapp_url"`
}
