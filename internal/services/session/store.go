package session

import (
	"log/slog"
	"sync"

	"github.com/cmarcal/futmeet-sub000/internal/dependencies/clock"
	"github.com/cmarcal/futmeet-sub000/internal/model"
	"github.com/cmarcal/futmeet-sub000/internal/services/sorter"
)

// Observer receives an event after each completed store mutation.
// Publish must not block; the store calls it outside its lock.
type Observer interface {
	Publish(event model.Event)
}

// Store is the process-wide holder of game sessions and waiting rooms.
// A single mutex serializes every operation, so each one observes and
// produces a consistent state. All returned sessions, rosters and teams
// are deep copies; callers never share memory with the store.
//
// Mutations on a missing session are no-ops reporting found=false.
// The store never rejects values it can repair: team counts are clamped
// and names trimmed rather than refused. Input validation belongs to
// the API boundary.
type Store struct {
	mu    sync.Mutex
	games map[model.SessionID]*model.GameSession
	rooms map[model.SessionID]*model.WaitingRoom

	sorter   *sorter.Service
	clock    clock.Clock
	observer Observer
	logger   *slog.Logger
}

// NewStore creates an empty Store. The observer may be nil, in which
// case no events are published.
func NewStore(
	sorterService *sorter.Service,
	clk clock.Clock,
	observer Observer,
	logger *slog.Logger,
) *Store {
	return &Store{
		games:    make(map[model.SessionID]*model.GameSession),
		rooms:    make(map[model.SessionID]*model.WaitingRoom),
		sorter:   sorterService,
		clock:    clk,
		observer: observer,
		logger:   logger.With(slog.String("component", "session-store")),
	}
}

// ---- Game sessions ----

// InitGame returns the game session with the given id, creating an
// empty one if it does not exist yet. Calling it again with the same id
// returns the existing session untouched.
func (s *Store) InitGame(id model.SessionID) *model.GameSession {
	s.mu.Lock()
	g, ok := s.games[id]
	created := false
	if !ok {
		g = model.NewGameSession(id, s.clock.Now())
		s.games[id] = g
		created = true
	}
	view := g.Clone()
	s.mu.Unlock()

	if created {
		s.logger.Debug("game session created", slog.String("session_id", string(id)))
		s.publish(model.Event{
			Type:      model.EventSessionCreated,
			Kind:      model.KindGame,
			SessionID: id,
			Timestamp: view.CreatedAt,
		})
	}
	return view
}

// Game returns a copy of the game session, or found=false
func (s *Store) Game(id model.SessionID) (*model.GameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// AddPlayer appends a new player to the game's roster. The name is
// trimmed and the player starts without priority.
func (s *Store) AddPlayer(id model.SessionID, name string) (model.Player, bool) {
	s.mu.Lock()
	g, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return model.Player{}, false
	}
	now := s.clock.Now()
	player := model.NewPlayer(name, now)
	g.Players = append(g.Players, player)
	g.UpdatedAt = now
	s.mu.Unlock()

	s.publish(model.Event{
		Type:      model.EventPlayerAdded,
		Kind:      model.KindGame,
		SessionID: id,
		Timestamp: now,
		Data:      model.PlayerAddedData{Player: player},
	})
	return player, true
}

// RemovePlayer removes a player from the game's roster and from any
// team of the current sort result. found=false if either the session
// or the player does not exist.
func (s *Store) RemovePlayer(id model.SessionID, playerID model.PlayerID) bool {
	s.mu.Lock()
	g, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	idx := g.PlayerIndex(playerID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	now := s.clock.Now()
	g.Players = append(g.Players[:idx], g.Players[idx+1:]...)
	for i := range g.Teams {
		team := &g.Teams[i]
		for j := range team.Players {
			if team.Players[j].ID == playerID {
				team.Players = append(team.Players[:j], team.Players[j+1:]...)
				break
			}
		}
	}
	g.UpdatedAt = now
	s.mu.Unlock()

	s.publish(model.Event{
		Type:      model.EventPlayerRemoved,
		Kind:      model.KindGame,
		SessionID: id,
		Timestamp: now,
		Data:      model.PlayerRemovedData{PlayerID: playerID},
	})
	return true
}

// TogglePriority flips a player's priority flag and returns the
// updated player
func (s *Store) TogglePriority(id model.SessionID, playerID model.PlayerID) (model.Player, bool) {
	s.mu.Lock()
	g, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return model.Player{}, false
	}
	idx := g.PlayerIndex(playerID)
	if idx < 0 {
		s.mu.Unlock()
		return model.Player{}, false
	}
	now := s.clock.Now()
	g.Players[idx].Priority = !g.Players[idx].Priority
	player := g.Players[idx]
	g.UpdatedAt = now
	s.mu.Unlock()

	s.publish(model.Event{
		Type:      model.EventPriorityToggled,
		Kind:      model.KindGame,
		SessionID: id,
		Timestamp: now,
		Data:      model.PriorityToggledData{PlayerID: playerID, Priority: player.Priority},
	})
	return player, true
}

// ReorderPlayers moves the roster entry at position from to position
// to, shifting the players in between. Out-of-range positions are
// clamped into the roster. Returns the updated roster.
func (s *Store) ReorderPlayers(id model.SessionID, from, to int) ([]model.Player, bool) {
	s.mu.Lock()
	g, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	now := s.clock.Now()
	from, to, moved := movePlayer(g.Players, from, to)
	if moved {
		g.UpdatedAt = now
	}
	roster := make([]model.Player, len(g.Players))
	copy(roster, g.Players)
	s.mu.Unlock()

	if moved {
		s.publish(model.Event{
			Type:      model.EventPlayersReordered,
			Kind:      model.KindGame,
			SessionID: id,
			Timestamp: now,
			Data:      model.PlayersReorderedData{From: from, To: to},
		})
	}
	return roster, true
}

// SetTeamCount stores a new team count, clamped into the valid range,
// and returns the value actually stored. Teams from a previous sort are
// left untouched until the next sort.
func (s *Store) SetTeamCount(id model.SessionID, count int) (int, bool) {
	s.mu.Lock()
	g, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return 0, false
	}
	now := s.clock.Now()
	clamped := model.ClampTeamCount(count)
	g.TeamCount = clamped
	g.UpdatedAt = now
	s.mu.Unlock()

	s.publish(model.Event{
		Type:      model.EventTeamCountChanged,
		Kind:      model.KindGame,
		SessionID: id,
		Timestamp: now,
		Data:      model.TeamCountChangedData{TeamCount: clamped},
	})
	return clamped, true
}

// SortTeams distributes the roster into the session's team count and
// replaces the previous sort result. The session passes through the
// sorting status and lands on complete, both within the same locked
// operation. Returns the new teams.
func (s *Store) SortTeams(id model.SessionID) ([]model.Team, bool) {
	s.mu.Lock()
	g, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	now := s.clock.Now()
	g.Status = model.StatusSorting
	g.Teams = s.sorter.Sort(g.Players, g.TeamCount)
	g.Status = model.StatusComplete
	g.UpdatedAt = now
	view := g.Clone()
	s.mu.Unlock()

	s.publish(model.Event{
		Type:      model.EventStatusChanged,
		Kind:      model.KindGame,
		SessionID: id,
		Timestamp: now,
		Data:      model.StatusChangedData{Status: model.StatusSorting},
	})
	s.publish(model.Event{
		Type:      model.EventTeamsSorted,
		Kind:      model.KindGame,
		SessionID: id,
		Timestamp: now,
		Data:      model.TeamsSortedData{TeamCount: view.TeamCount, Status: model.StatusComplete},
	})
	return view.Teams, true
}

// ---- Waiting rooms ----

// InitRoom returns the waiting room with the given id, creating an
// empty one if it does not exist yet
func (s *Store) InitRoom(id model.SessionID) *model.WaitingRoom {
	s.mu.Lock()
	r, ok := s.rooms[id]
	created := false
	if !ok {
		r = model.NewWaitingRoom(id, s.clock.Now())
		s.rooms[id] = r
		created = true
	}
	view := r.Clone()
	s.mu.Unlock()

	if created {
		s.logger.Debug("waiting room created", slog.String("session_id", string(id)))
		s.publish(model.Event{
			Type:      model.EventSessionCreated,
			Kind:      model.KindRoom,
			SessionID: id,
			Timestamp: view.CreatedAt,
		})
	}
	return view
}

// Room returns a copy of the waiting room, or found=false
func (s *Store) Room(id model.SessionID) (*model.WaitingRoom, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// AddRoomPlayer appends a new player to the room's roster
func (s *Store) AddRoomPlayer(id model.SessionID, name string) (model.Player, bool) {
	s.mu.Lock()
	r, ok := s.rooms[id]
	if !ok {
		s.mu.Unlock()
		return model.Player{}, false
	}
	now := s.clock.Now()
	player := model.NewPlayer(name, now)
	r.Players = append(r.Players, player)
	r.UpdatedAt = now
	s.mu.Unlock()

	s.publish(model.Event{
		Type:      model.EventPlayerAdded,
		Kind:      model.KindRoom,
		SessionID: id,
		Timestamp: now,
		Data:      model.PlayerAddedData{Player: player},
	})
	return player, true
}

// RemoveRoomPlayer removes a player from the room's roster
func (s *Store) RemoveRoomPlayer(id model.SessionID, playerID model.PlayerID) bool {
	s.mu.Lock()
	r, ok := s.rooms[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	idx := r.PlayerIndex(playerID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	now := s.clock.Now()
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	r.UpdatedAt = now
	s.mu.Unlock()

	s.publish(model.Event{
		Type:      model.EventPlayerRemoved,
		Kind:      model.KindRoom,
		SessionID: id,
		Timestamp: now,
		Data:      model.PlayerRemovedData{PlayerID: playerID},
	})
	return true
}

// ToggleRoomPriority flips a room player's priority flag
func (s *Store) ToggleRoomPriority(id model.SessionID, playerID model.PlayerID) (model.Player, bool) {
	s.mu.Lock()
	r, ok := s.rooms[id]
	if !ok {
		s.mu.Unlock()
		return model.Player{}, false
	}
	idx := r.PlayerIndex(playerID)
	if idx < 0 {
		s.mu.Unlock()
		return model.Player{}, false
	}
	now := s.clock.Now()
	r.Players[idx].Priority = !r.Players[idx].Priority
	player := r.Players[idx]
	r.UpdatedAt = now
	s.mu.Unlock()

	s.publish(model.Event{
		Type:      model.EventPriorityToggled,
		Kind:      model.KindRoom,
		SessionID: id,
		Timestamp: now,
		Data:      model.PriorityToggledData{PlayerID: playerID, Priority: player.Priority},
	})
	return player, true
}

// ReorderRoomPlayers moves a room roster entry, clamping out-of-range
// positions, and returns the updated roster
func (s *Store) ReorderRoomPlayers(id model.SessionID, from, to int) ([]model.Player, bool) {
	s.mu.Lock()
	r, ok := s.rooms[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	now := s.clock.Now()
	from, to, moved := movePlayer(r.Players, from, to)
	if moved {
		r.UpdatedAt = now
	}
	roster := make([]model.Player, len(r.Players))
	copy(roster, r.Players)
	s.mu.Unlock()

	if moved {
		s.publish(model.Event{
			Type:      model.EventPlayersReordered,
			Kind:      model.KindRoom,
			SessionID: id,
			Timestamp: now,
			Data:      model.PlayersReorderedData{From: from, To: to},
		})
	}
	return roster, true
}

// MaterializeGame turns a waiting room's roster into a fresh game
// session under the same id, overwriting any existing game there. The
// copied players receive fresh ids, so the room and the game stay fully
// independent afterwards. A missing room materializes as an empty game.
func (s *Store) MaterializeGame(id model.SessionID) *model.GameSession {
	s.mu.Lock()
	now := s.clock.Now()
	g := model.NewGameSession(id, now)
	if r, ok := s.rooms[id]; ok {
		g.Players = make([]model.Player, 0, len(r.Players))
		for _, p := range r.Players {
			g.Players = append(g.Players, p.Copy())
		}
	}
	s.games[id] = g
	view := g.Clone()
	s.mu.Unlock()

	s.logger.Debug("game materialized from room",
		slog.String("session_id", string(id)),
		slog.Int("players", len(view.Players)))
	s.publish(model.Event{
		Type:      model.EventGameMaterialized,
		Kind:      model.KindGame,
		SessionID: id,
		Timestamp: now,
		Data:      model.GameMaterializedData{RoomID: id, Players: len(view.Players)},
	})
	return view
}

// ---- Whole-store operations ----

// Snapshot returns a deep copy of every session, suitable for
// serialization
func (s *Store) Snapshot() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := &model.Snapshot{
		Games:   make(map[model.SessionID]*model.GameSession, len(s.games)),
		Rooms:   make(map[model.SessionID]*model.WaitingRoom, len(s.rooms)),
		SavedAt: s.clock.Now(),
	}
	for id, g := range s.games {
		snap.Games[id] = g.Clone()
	}
	for id, r := range s.rooms {
		snap.Rooms[id] = r.Clone()
	}
	return snap
}

// Restore replaces the whole store contents with the snapshot. Used
// once at startup after cache hydration. A nil snapshot is ignored.
func (s *Store) Restore(snap *model.Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	now := s.clock.Now()
	s.games = make(map[model.SessionID]*model.GameSession, len(snap.Games))
	for id, g := range snap.Games {
		if g == nil {
			continue
		}
		s.games[id] = g.Clone()
	}
	s.rooms = make(map[model.SessionID]*model.WaitingRoom, len(snap.Rooms))
	for id, r := range snap.Rooms {
		if r == nil {
			continue
		}
		s.rooms[id] = r.Clone()
	}
	games, rooms := len(s.games), len(s.rooms)
	s.mu.Unlock()

	s.logger.Info("store restored from snapshot",
		slog.Int("games", games),
		slog.Int("rooms", rooms))
	s.publish(model.Event{
		Type:      model.EventStoreRestored,
		Timestamp: now,
	})
}

// Reset drops every session
func (s *Store) Reset() {
	s.mu.Lock()
	now := s.clock.Now()
	s.games = make(map[model.SessionID]*model.GameSession)
	s.rooms = make(map[model.SessionID]*model.WaitingRoom)
	s.mu.Unlock()

	s.logger.Info("store reset")
	s.publish(model.Event{
		Type:      model.EventStoreReset,
		Timestamp: now,
	})
}

// Counts returns the number of game sessions and waiting rooms
func (s *Store) Counts() (games, rooms int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games), len(s.rooms)
}

func (s *Store) publish(ev model.Event) {
	if s.observer == nil {
		return
	}
	s.observer.Publish(ev)
}

// movePlayer performs the remove-then-insert roster move in place.
// Both positions are clamped into the roster; to addresses the roster
// after removal, so it is also the moved player's final position.
// Reports the clamped positions and whether anything moved.
func movePlayer(players []model.Player, from, to int) (int, int, bool) {
	n := len(players)
	if n == 0 {
		return 0, 0, false
	}
	from = clampIndex(from, n)
	to = clampIndex(to, n)
	if from == to {
		return from, to, false
	}
	moved := players[from]
	if from < to {
		copy(players[from:], players[from+1:to+1])
	} else {
		copy(players[to+1:], players[to:from])
	}
	players[to] = moved
	return from, to, true
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
