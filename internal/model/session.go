package model

import "time"

// SessionID identifies a game session or a waiting room. Games and rooms
// are independent namespaces: the same id may name one of each, which is
// exactly what happens when a room is materialized into a game.
type SessionID string

// Status represents the lifecycle phase of a game session
type Status string

const (
	StatusSetup    Status = "setup"    // roster being assembled
	StatusSorting  Status = "sorting"  // teams being computed
	StatusComplete Status = "complete" // teams available
)

// Team count bounds; values outside are clamped, never rejected
const (
	MinTeamCount = 2
	MaxTeamCount = 10
)

// ClampTeamCount forces a team count into the valid [MinTeamCount, MaxTeamCount] range
func ClampTeamCount(count int) int {
	if count < MinTeamCount {
		return MinTeamCount
	}
	if count > MaxTeamCount {
		return MaxTeamCount
	}
	return count
}

// GameSession holds one game's roster and its latest sort result
type GameSession struct {
	ID        SessionID
	Players   []Player // insertion order, except explicit moves
	TeamCount int      // always within [MinTeamCount, MaxTeamCount]
	Status    Status
	Teams     []Team // empty until the first sort, replaced on every sort
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGameSession creates an empty game session in the setup phase
func NewGameSession(id SessionID, now time.Time) *GameSession {
	return &GameSession{
		ID:        id,
		Players:   []Player{},
		TeamCount: MinTeamCount,
		Status:    StatusSetup,
		Teams:     []Team{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PlayerIndex returns the roster position of the given player id, or -1
func (g *GameSession) PlayerIndex(id PlayerID) int {
	return playerIndex(g.Players, id)
}

// Clone returns a deep copy sharing no slices with the original
func (g *GameSession) Clone() *GameSession {
	c := *g
	c.Players = make([]Player, len(g.Players))
	copy(c.Players, g.Players)
	c.Teams = make([]Team, len(g.Teams))
	for i, t := range g.Teams {
		ct := t
		ct.Players = make([]Player, len(t.Players))
		copy(ct.Players, t.Players)
		c.Teams[i] = ct
	}
	return &c
}

// WaitingRoom holds a pre-game roster. Rooms have no status or teams;
// they exist to be materialized into game sessions.
type WaitingRoom struct {
	ID        SessionID
	Players   []Player
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWaitingRoom creates an empty waiting room
func NewWaitingRoom(id SessionID, now time.Time) *WaitingRoom {
	return &WaitingRoom{
		ID:        id,
		Players:   []Player{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PlayerIndex returns the roster position of the given player id, or -1
func (r *WaitingRoom) PlayerIndex(id PlayerID) int {
	return playerIndex(r.Players, id)
}

// Clone returns a deep copy sharing no slices with the original
func (r *WaitingRoom) Clone() *WaitingRoom {
	c := *r
	c.Players = make([]Player, len(r.Players))
	copy(c.Players, r.Players)
	return &c
}

// Snapshot is the serialized form of the whole store: every game session
// and waiting room, keyed by id. It is the unit the durable cache saves
// and loads.
type Snapshot struct {
	Games   map[SessionID]*GameSession
	Rooms   map[SessionID]*WaitingRoom
	SavedAt time.Time
}
